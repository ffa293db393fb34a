package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/nao1215/siteaudit/internal/audit"
	"github.com/nao1215/siteaudit/internal/config"
	"github.com/nao1215/siteaudit/internal/crawler"
	"github.com/nao1215/siteaudit/internal/fetch"
	"github.com/nao1215/siteaudit/internal/locale"
	"github.com/nao1215/siteaudit/internal/model"
)

// TLSInspector inspects the TLS endpoint of a host. *fetch.Client implements it.
type TLSInspector interface {
	InspectTLS(ctx context.Context, host string, port int, timeout time.Duration) (*model.TLSInfo, error)
}

// Store persists finished audits. *database.AuditDB implements it.
type Store interface {
	SaveAudit(ctx context.Context, report *model.AuditReport) error
}

// FetchStep downloads the audited page.
type FetchStep struct {
	fetcher crawler.Fetcher
	logger  *slog.Logger
}

// NewFetchStep creates a fetch step.
func NewFetchStep(fetcher crawler.Fetcher, logger *slog.Logger) *FetchStep {
	return &FetchStep{fetcher: fetcher, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches report.URL into report.Page.
func (s *FetchStep) Do(ctx context.Context, report *model.AuditReport) error {
	page, err := s.fetcher.Fetch(ctx, report.URL)
	if err != nil {
		return fmt.Errorf("%w: fetching %s: %w", ErrPageUnavailable, report.URL, err)
	}
	if page.StatusCode >= 400 {
		return fmt.Errorf("%w: %w: %s answered %d", ErrPageUnavailable, ErrPageStatus, report.URL, page.StatusCode)
	}
	report.Page = page
	s.logger.Debug("page fetched",
		"url", report.URL,
		"status", page.StatusCode,
		"bytes", page.SizeBytes(),
		"seconds", page.Timing.TotalLoadSeconds,
	)
	return nil
}

// TLSStep inspects the certificate of https targets. A failed inspection is
// recorded as the report's SSL error and does not fail the audit.
type TLSStep struct {
	inspector TLSInspector
	timeout   time.Duration
	logger    *slog.Logger
}

// NewTLSStep creates a TLS inspection step with the given dial timeout.
func NewTLSStep(inspector TLSInspector, timeout time.Duration, logger *slog.Logger) *TLSStep {
	if timeout <= 0 {
		timeout = config.DefaultTLSTimeout
	}
	return &TLSStep{inspector: inspector, timeout: timeout, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *TLSStep) Name() string {
	return "tls"
}

// Do inspects the TLS endpoint when the target uses https.
func (s *TLSStep) Do(ctx context.Context, report *model.AuditReport) error {
	u, err := url.Parse(report.URL)
	if err != nil {
		return err
	}
	if u.Scheme != "https" {
		return nil
	}

	port := 443
	if p := u.Port(); p != "" {
		if port, err = strconv.Atoi(p); err != nil {
			return fmt.Errorf("invalid port %q: %w", p, err)
		}
	}

	info, err := s.inspector.InspectTLS(ctx, u.Hostname(), port, s.timeout)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.logger.Debug("TLS inspection failed", "host", net.JoinHostPort(u.Hostname(), strconv.Itoa(port)), "error", err)
		report.Security.SSLError = err.Error()
		return nil
	}
	report.TLS = info
	return nil
}

// CrawlStep checks the same-site links reachable from the audited page.
// It is a no-op when the depth is zero.
type CrawlStep struct {
	fetcher crawler.Fetcher
	opts    []crawler.SpiderOption
	depth   int
	logger  *slog.Logger
}

// NewCrawlStep creates a crawl step. opts are passed to the spider after
// the depth and logger.
func NewCrawlStep(fetcher crawler.Fetcher, depth int, logger *slog.Logger, opts ...crawler.SpiderOption) *CrawlStep {
	return &CrawlStep{fetcher: fetcher, depth: depth, opts: opts, logger: orDefault(logger)}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do crawls the site and turns every broken page into a finding. A page
// already stored by the fetch step seeds the crawl instead of being
// downloaded again.
func (s *CrawlStep) Do(ctx context.Context, report *model.AuditReport) error {
	if s.depth <= 0 {
		return nil
	}

	opts := append([]crawler.SpiderOption{
		crawler.WithMaxDepth(s.depth),
		crawler.WithLogger(s.logger),
	}, s.opts...)
	spider := crawler.NewSpider(s.fetcher, opts...)

	var (
		pages []model.CrawledPage
		err   error
	)
	if report.Page != nil {
		pages, err = spider.CrawlFrom(ctx, report.Page)
	} else {
		pages, err = spider.Crawl(ctx, report.URL)
	}
	for _, p := range pages {
		report.AddCrawledPage(p)
		if !p.Broken() {
			continue
		}
		location := p.ReferencedBy
		if location == "" {
			location = report.URL
		}
		report.AddFinding(model.NewFinding(model.FindingBrokenLink, "Broken link", p.URL, location))
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		s.logger.Warn("crawl stopped", "url", report.URL, "error", err)
	}

	s.logger.Debug("crawl finished", "url", report.URL, "pages", len(pages), "broken", len(report.BrokenLinks()))
	return nil
}

// AnalyzeStep runs the page analyzers.
type AnalyzeStep struct {
	coordinator *audit.Coordinator
}

// NewAnalyzeStep creates an analysis step.
func NewAnalyzeStep(coordinator *audit.Coordinator) *AnalyzeStep {
	return &AnalyzeStep{coordinator: coordinator}
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do analyzes report.Page and adds the findings to the summary.
func (s *AnalyzeStep) Do(ctx context.Context, report *model.AuditReport) error {
	in, err := audit.NewInput(report)
	if err != nil {
		return err
	}
	findings, err := s.coordinator.Analyze(ctx, in)
	for _, f := range findings {
		report.AddFinding(f)
	}
	return err
}

// ScoreStep computes the scores and the localized recommendations.
type ScoreStep struct{}

// NewScoreStep creates a scoring step.
func NewScoreStep() *ScoreStep {
	return &ScoreStep{}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do fills report.Scores and report.Recommendations.
func (s *ScoreStep) Do(_ context.Context, report *model.AuditReport) error {
	report.Scores = audit.Score(report)
	report.Recommendations = audit.Recommend(report, locale.NewPrinter(report.Language))
	return nil
}

// SaveStep stores the finished audit in the history database.
type SaveStep struct {
	store Store
}

// NewSaveStep creates a step that saves the report to store.
func NewSaveStep(store Store) *SaveStep {
	return &SaveStep{store: store}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do saves the report.
func (s *SaveStep) Do(ctx context.Context, report *model.AuditReport) error {
	report.CompletedAt = time.Now()
	if err := s.store.SaveAudit(ctx, report); err != nil {
		return fmt.Errorf("saving audit: %w", err)
	}
	return nil
}

// DefaultConfig holds the settings of the default pipeline.
type DefaultConfig struct {
	// CrawlDepth enables link checking when positive.
	CrawlDepth int

	// CrawlMaxPages is the maximum number of pages to check.
	CrawlMaxPages int

	// CrawlDelay is the delay between crawl requests.
	CrawlDelay time.Duration

	// IgnorePatterns are URL path patterns to skip during crawling.
	IgnorePatterns []string

	// FollowPatterns are URL path patterns to follow during crawling.
	FollowPatterns []string

	// TLSTimeout is the dial timeout of the TLS inspection.
	TLSTimeout time.Duration

	// CheckImages enables the image metadata analyzer.
	CheckImages bool

	// MaxImages limits how many images are downloaded for metadata checks.
	MaxImages int

	// Store receives the finished audit. Nil disables saving.
	Store Store
}

// DefaultOption configures a DefaultConfig.
type DefaultOption func(*DefaultConfig)

// WithCrawl enables crawling up to depth and maxPages pages.
func WithCrawl(depth, maxPages int) DefaultOption {
	return func(c *DefaultConfig) {
		c.CrawlDepth = depth
		c.CrawlMaxPages = maxPages
	}
}

// WithCrawlDelay sets the delay between crawl requests.
func WithCrawlDelay(delay time.Duration) DefaultOption {
	return func(c *DefaultConfig) {
		c.CrawlDelay = delay
	}
}

// WithCrawlPatterns sets the ignore and follow patterns of the crawler.
func WithCrawlPatterns(ignore, follow []string) DefaultOption {
	return func(c *DefaultConfig) {
		c.IgnorePatterns = ignore
		c.FollowPatterns = follow
	}
}

// WithTLSTimeout sets the TLS dial timeout.
func WithTLSTimeout(timeout time.Duration) DefaultOption {
	return func(c *DefaultConfig) {
		c.TLSTimeout = timeout
	}
}

// WithImages enables or disables image metadata checks.
func WithImages(enabled bool, maxImages int) DefaultOption {
	return func(c *DefaultConfig) {
		c.CheckImages = enabled
		c.MaxImages = maxImages
	}
}

// WithStore saves finished audits to store.
func WithStore(store Store) DefaultOption {
	return func(c *DefaultConfig) {
		c.Store = store
	}
}

// DefaultPipeline creates the standard audit pipeline around client.
// Steps: fetch, tls, crawl, analyze, score and, with a store, save.
func DefaultPipeline(client *fetch.Client, pipelineOpts []Option, configOpts ...DefaultOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultConfig{
		CrawlDepth:    config.DefaultCrawlDepth,
		CrawlMaxPages: config.DefaultMaxPages,
		CrawlDelay:    config.DefaultCrawlDelay,
		TLSTimeout:    config.DefaultTLSTimeout,
		CheckImages:   true,
		MaxImages:     config.DefaultMaxImages,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	coordOpts := []audit.Option{audit.WithLogger(p.logger)}
	if cfg.CheckImages {
		coordOpts = append(coordOpts, audit.WithImageMetadata(client.HTTPClient(), cfg.MaxImages))
	}

	p.AddSteps(
		NewFetchStep(client, p.logger),
		NewTLSStep(client, cfg.TLSTimeout, p.logger),
		NewCrawlStep(client, cfg.CrawlDepth, p.logger,
			crawler.WithMaxPages(cfg.CrawlMaxPages),
			crawler.WithDelay(cfg.CrawlDelay),
			crawler.WithIgnorePatterns(cfg.IgnorePatterns),
			crawler.WithFollowPatterns(cfg.FollowPatterns),
		),
		NewAnalyzeStep(audit.NewCoordinator(coordOpts...)),
		NewScoreStep(),
	)
	if cfg.Store != nil {
		p.AddStep(NewSaveStep(cfg.Store))
	}

	return p
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
