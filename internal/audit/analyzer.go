package audit

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/url"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/model"
)

// ErrNoPage is returned by NewInput when the report has no fetched page.
var ErrNoPage = errors.New("report has no fetched page")

// Analyzer is one group of checks. It fills its section of Input.Report and
// returns the problems it found.
type Analyzer interface {
	// Name returns the analyzer's name for logging.
	Name() string

	// Category returns the finding category the analyzer reports under.
	Category() string

	// Analyze runs the checks on the provided data.
	Analyze(ctx context.Context, in *Input) ([]model.Finding, error)
}

// Input contains everything available to analyzers for one audited page.
type Input struct {
	// URL is the audited URL as requested.
	URL *url.URL

	// Page is the fetched document.
	Page *model.Page

	// Doc is the parsed HTML of Page.
	Doc *dom.Document

	// TLS is the inspected certificate, nil for http targets or when the
	// inspection failed.
	TLS *model.TLSInfo

	// Report receives the analyzer results.
	Report *model.AuditReport
}

// NewInput parses the report's page and prepares analyzer input.
func NewInput(report *model.AuditReport) (*Input, error) {
	if report.Page == nil {
		return nil, ErrNoPage
	}
	u, err := url.Parse(report.URL)
	if err != nil {
		return nil, err
	}
	doc, err := dom.ParseBytes(report.Page.Raw)
	if err != nil {
		return nil, err
	}
	return &Input{
		URL:    u,
		Page:   report.Page,
		Doc:    doc,
		TLS:    report.TLS,
		Report: report,
	}, nil
}

// HTTPS reports whether the audited URL uses https.
func (in *Input) HTTPS() bool {
	return in.URL.Scheme == "https"
}

// Options configures the built-in analyzers.
type Options struct {
	// EnableImageMetadata registers the EXIF analyzer.
	EnableImageMetadata bool

	// MaxImages limits how many images the EXIF analyzer downloads.
	MaxImages int

	// HTTPClient fetches images. The EXIF analyzer is skipped without one.
	HTTPClient *http.Client

	// Logger receives analyzer errors.
	Logger *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Options)

// WithImageMetadata enables the EXIF analyzer with the given client and limit.
func WithImageMetadata(client *http.Client, maxImages int) Option {
	return func(o *Options) {
		o.EnableImageMetadata = true
		o.HTTPClient = client
		o.MaxImages = maxImages
	}
}

// WithLogger sets the logger used for analyzer errors.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Coordinator runs the registered analyzers in order and merges their findings.
// Order matters: the WCAG and mobile checks read results of earlier analyzers.
type Coordinator struct {
	analyzers []Analyzer
	logger    *slog.Logger
}

// NewCoordinator creates a Coordinator with all built-in analyzers registered.
func NewCoordinator(opts ...Option) *Coordinator {
	options := Options{MaxImages: defaultMaxImages}
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Coordinator{logger: logger}

	c.Register(NewPerformanceAnalyzer())
	c.Register(NewSEOAnalyzer())
	c.Register(NewMobileAnalyzer())
	c.Register(NewTechnicalAnalyzer())
	c.Register(NewAccessibilityAnalyzer())
	c.Register(NewSecurityAnalyzer())
	c.Register(NewUsabilityAnalyzer())
	if options.EnableImageMetadata && options.HTTPClient != nil {
		c.Register(NewEXIFAnalyzer(options.HTTPClient, options.MaxImages))
	}

	return c
}

// Register adds an analyzer to the end of the run order.
func (c *Coordinator) Register(analyzer Analyzer) {
	c.analyzers = append(c.analyzers, analyzer)
}

// Analyzers returns the registered analyzers in run order.
func (c *Coordinator) Analyzers() []Analyzer {
	return c.analyzers
}

// Analyze runs every analyzer and returns the deduplicated findings.
// A failing analyzer is logged and skipped. Cancellation stops the run and
// returns what was collected so far.
func (c *Coordinator) Analyze(ctx context.Context, in *Input) ([]model.Finding, error) {
	var all []model.Finding

	for _, analyzer := range c.analyzers {
		select {
		case <-ctx.Done():
			return deduplicateFindings(all), ctx.Err()
		default:
		}

		findings, err := analyzer.Analyze(ctx, in)
		if err != nil {
			c.logger.Debug("analyzer failed", "analyzer", analyzer.Name(), "error", err)
			continue
		}
		all = append(all, findings...)
	}

	return deduplicateFindings(all), nil
}

// deduplicateFindings removes findings with the same type and value, keeping
// the most severe instance at the position of the first one.
func deduplicateFindings(findings []model.Finding) []model.Finding {
	seen := make(map[string]int)
	result := make([]model.Finding, 0, len(findings))

	for _, f := range findings {
		key := f.Key()
		if idx, ok := seen[key]; ok {
			if f.Severity > result[idx].Severity {
				result[idx] = f
			}
			continue
		}
		seen[key] = len(result)
		result = append(result, f)
	}

	return result
}

// round rounds v to the given number of decimals, half away from zero.
func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// percent returns count/max(total,1)*100 rounded to one decimal.
func percent(count, total int) float64 {
	return round(float64(count)/float64(max(total, 1))*100, 1)
}
