// Package crawler checks the links of an audited site.
//
// A Spider starts at the audited URL and walks same-site links breadth-first
// up to a depth and page limit. Every URL it visits is recorded with its
// status, size and load time, so pages that return an error status or fail
// to load can be reported as broken links. Only HTML pages are parsed for
// further links.
//
// "Same site" means the same registrable domain according to the public
// suffix list: www.example.pl and bip.example.pl are one site, example.com.pl
// and other.com.pl are not.
//
// # Usage
//
//	spider := crawler.NewSpider(fetchClient, crawler.WithMaxDepth(2))
//	pages, err := spider.Crawl(ctx, "https://www.example.pl/")
package crawler
