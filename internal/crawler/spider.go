package crawler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/siteaudit/internal/model"
)

// Fetcher downloads one page. *fetch.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (*model.Page, error)
}

// Spider checks the links of a site breadth-first.
// Every visited URL is recorded, including the ones that failed, so broken
// links show up in the result. Only HTML pages on the same site are expanded.
type Spider struct {
	// fetcher downloads pages with the audit's client settings.
	fetcher Fetcher

	// maxDepth limits how deep to crawl from the starting URL.
	// 0 means only the starting page, 1 means one level of links, etc.
	maxDepth int

	// maxPages limits the total number of URLs fetched.
	maxPages int

	// delay is the time to wait between requests.
	delay time.Duration

	// ignorePatterns are URL path patterns to skip during crawling.
	// Patterns use glob syntax (e.g., "/admin/*", "*.pdf").
	ignorePatterns []string

	// followPatterns are URL path patterns to follow during crawling.
	// If set, only URLs matching these patterns are crawled.
	// Empty means all URLs are allowed (subject to ignorePatterns).
	followPatterns []string

	logger *slog.Logger

	// visited tracks URLs already visited to avoid duplicates.
	visited map[string]bool

	// mutex protects visited and pageCount.
	mutex sync.Mutex

	// pageCount tracks pages fetched.
	pageCount int
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the starting page, 1 = starting page plus linked pages, etc.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		s.maxDepth = depth
	}
}

// WithMaxPages sets the maximum number of pages to check.
func WithMaxPages(maxPages int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = maxPages
	}
}

// WithDelay sets the delay between requests.
func WithDelay(d time.Duration) SpiderOption {
	return func(s *Spider) {
		s.delay = d
	}
}

// WithIgnorePatterns sets URL path patterns to skip during crawling.
// Patterns use glob syntax (e.g., "/admin/*", "*.pdf", "/logout*").
func WithIgnorePatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.ignorePatterns = patterns
	}
}

// WithFollowPatterns restricts crawling to URL paths matching at least one
// pattern. An empty slice allows every path.
func WithFollowPatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.followPatterns = patterns
	}
}

// WithLogger sets the logger for per-page debug output.
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a new Spider that downloads through fetcher.
func NewSpider(fetcher Fetcher, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:  fetcher,
		maxDepth: 1,
		maxPages: 20,
		delay:    250 * time.Millisecond,
		logger:   slog.New(slog.DiscardHandler),
		visited:  make(map[string]bool),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// queueItem represents an item in the crawl queue.
type queueItem struct {
	url      string
	depth    int
	referrer string
}

// Crawl checks startURL and the same-site links reachable from it within
// the depth limit. The results are in visit order. On cancellation the pages
// checked so far are returned with the context error.
func (s *Spider) Crawl(ctx context.Context, startURL string) ([]model.CrawledPage, error) {
	start, err := parseStartURL(startURL)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, start, make([]model.CrawledPage, 0), []queueItem{{url: start.String()}})
}

// CrawlFrom is Crawl for a start page that was already downloaded. The page
// is recorded and its links are queued without fetching it again, so it does
// not count against the page limit.
func (s *Spider) CrawlFrom(ctx context.Context, page *model.Page) ([]model.CrawledPage, error) {
	start, err := parseStartURL(page.URL)
	if err != nil {
		return nil, err
	}

	item := queueItem{url: start.String()}
	s.markVisited(item.url)
	if page.FinalURL != "" {
		s.markVisited(page.FinalURL)
	}
	crawled, links := s.record(item, page)
	queue := s.enqueue(nil, start, item, links)
	return s.run(ctx, start, []model.CrawledPage{crawled}, queue)
}

func parseStartURL(startURL string) (*url.URL, error) {
	start, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("invalid start URL: %w", err)
	}
	if start.Scheme != "http" && start.Scheme != "https" {
		return nil, fmt.Errorf("invalid start URL: unsupported scheme %q", start.Scheme)
	}
	return start, nil
}

// run works through queue breadth-first, appending to pages.
func (s *Spider) run(ctx context.Context, start *url.URL, pages []model.CrawledPage, queue []queueItem) ([]model.CrawledPage, error) {
	for len(queue) > 0 && s.Stats().PagesVisited < s.maxPages {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		item := queue[0]
		queue = queue[1:]

		if s.isVisited(item.url) {
			continue
		}
		s.markVisited(item.url)

		crawled, links := s.check(ctx, item)
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		pages = append(pages, crawled)
		s.countPage()
		queue = s.enqueue(queue, start, item, links)

		if s.delay > 0 && len(queue) > 0 {
			select {
			case <-ctx.Done():
				return pages, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	return pages, nil
}

// enqueue appends the crawlable same-site links found on from.
func (s *Spider) enqueue(queue []queueItem, start *url.URL, from queueItem, links []string) []queueItem {
	if from.depth >= s.maxDepth {
		return queue
	}
	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil || !SameSite(start, u) || s.isVisited(link) || !s.shouldCrawl(link) {
			continue
		}
		queue = append(queue, queueItem{url: link, depth: from.depth + 1, referrer: from.url})
	}
	return queue
}

// check fetches one URL and returns its record plus the links to follow.
func (s *Spider) check(ctx context.Context, item queueItem) (model.CrawledPage, []string) {
	page, err := s.fetcher.Fetch(ctx, item.url)
	if err != nil {
		s.logger.Debug("link check failed", "url", item.url, "error", err)
		return model.CrawledPage{URL: item.url, ReferencedBy: item.referrer, Error: err.Error()}, nil
	}
	s.logger.Debug("link checked", "url", item.url, "status", page.StatusCode)
	return s.record(item, page)
}

// record describes a downloaded page and extracts its internal links.
func (s *Spider) record(item queueItem, page *model.Page) (model.CrawledPage, []string) {
	crawled := model.CrawledPage{
		URL:          item.url,
		ReferencedBy: item.referrer,
		StatusCode:   page.StatusCode,
		SizeBytes:    page.SizeBytes(),
		LoadSeconds:  page.Timing.TotalLoadSeconds,
	}
	if crawled.Broken() || !page.IsHTML() {
		return crawled, nil
	}

	base := page.FinalURL
	if base == "" {
		base = item.url
	}
	parser, err := NewParser(base)
	if err != nil {
		return crawled, nil
	}
	result, err := parser.Parse(bytes.NewReader(page.Raw))
	if err != nil {
		return crawled, nil
	}
	crawled.Title = result.Title
	return crawled, result.InternalLinks
}

// isVisited checks if a URL has been visited.
func (s *Spider) isVisited(pageURL string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.visited[normalizeURL(pageURL)]
}

// markVisited marks a URL as visited.
func (s *Spider) markVisited(pageURL string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.visited[normalizeURL(pageURL)] = true
}

func (s *Spider) countPage() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.pageCount++
}

// normalizeURL normalizes a URL for deduplication: no fragment, lowercase
// scheme and host, and "/" for an empty path.
func normalizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// Stats returns current crawl statistics.
func (s *Spider) Stats() SpiderStats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return SpiderStats{
		PagesVisited: s.pageCount,
		URLsSeen:     len(s.visited),
	}
}

// SpiderStats contains crawl statistics.
type SpiderStats struct {
	// PagesVisited is the number of URLs checked.
	PagesVisited int

	// URLsSeen is the number of unique URLs dequeued.
	URLsSeen int
}

// shouldCrawl applies the ignore patterns first, then the follow patterns.
func (s *Spider) shouldCrawl(targetURL string) bool {
	u, err := url.Parse(targetURL)
	if err != nil {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range s.ignorePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}

	if len(s.followPatterns) > 0 {
		for _, pattern := range s.followPatterns {
			if matchPattern(pattern, path) {
				return true
			}
		}
		return false
	}

	return true
}

// matchPattern checks if a path matches a glob pattern.
// Patterns can use:
//   - * to match any sequence of non-separator characters
//   - ? to match any single character
//   - a trailing /* to match everything below a directory
//
// Examples:
//   - "/admin/*" matches "/admin/dashboard" and "/admin/users/1"
//   - "*.pdf" matches "/docs/file.pdf"
//   - "/api/v?" matches "/api/v1", "/api/v2"
func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	if ext, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(ext, ".") {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err == nil && matched {
			return true
		}
	}

	return false
}
