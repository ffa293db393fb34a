package crawler

import (
	"io"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"
)

// skippedSchemes are href prefixes that never point to a checkable page.
var skippedSchemes = []string{"javascript:", "mailto:", "tel:", "data:"}

// Parser extracts the title and outgoing links of an HTML page.
type Parser struct {
	// pageURL is the URL of the page being parsed. Links are classified
	// against it.
	pageURL *url.URL

	// baseURL resolves relative links. It starts as pageURL and follows
	// a <base href> element.
	baseURL *url.URL
}

// ParseResult contains the link-check data extracted from one page.
type ParseResult struct {
	// Title is the page title from <title> tag.
	Title string

	// Links contains every resolved <a href> in document order.
	Links []string

	// InternalLinks are links to the same site as the base URL.
	InternalLinks []string

	// ExternalLinks are links to other sites.
	ExternalLinks []string
}

// NewParser creates a new HTML parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{pageURL: u, baseURL: u}, nil
}

// Parse parses HTML content and extracts the title and links.
// A <base href> element changes how later relative links resolve.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Links:         make([]string, 0),
		InternalLinks: make([]string, 0),
		ExternalLinks: make([]string, 0),
	}
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if result.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "base":
				if href := getAttr(n, "href"); href != "" {
					if u, err := url.Parse(href); err == nil {
						p.baseURL = p.baseURL.ResolveReference(u)
					}
				}
			case "a":
				resolved := p.resolveURL(getAttr(n, "href"))
				if resolved != "" && !seen[resolved] {
					seen[resolved] = true
					result.Links = append(result.Links, resolved)
					p.classifyLink(resolved, result)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result, nil
}

// resolveURL resolves href against the base URL and drops the fragment.
// It returns "" for hrefs that are not checkable pages.
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	lower := strings.ToLower(href)
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := p.baseURL.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

func (p *Parser) classifyLink(link string, result *ParseResult) {
	u, err := url.Parse(link)
	if err != nil {
		return
	}
	if SameSite(p.pageURL, u) {
		result.InternalLinks = append(result.InternalLinks, link)
	} else {
		result.ExternalLinks = append(result.ExternalLinks, link)
	}
}

// SameSite reports whether a and b belong to the same registrable domain,
// so www.example.pl and bip.example.pl are one site. IP addresses and hosts
// without a public suffix must match exactly.
func SameSite(a, b *url.URL) bool {
	ha, hb := strings.ToLower(a.Hostname()), strings.ToLower(b.Hostname())
	if ha == hb {
		return true
	}
	if net.ParseIP(ha) != nil || net.ParseIP(hb) != nil {
		return false
	}
	da, errA := publicsuffix.EffectiveTLDPlusOne(ha)
	db, errB := publicsuffix.EffectiveTLDPlusOne(hb)
	return errA == nil && errB == nil && da == db
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
