package model

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuditReport is the main audit result structure.
// It contains everything collected and computed for one audited URL.
//
// Sections are value types: a zero report serializes with every key present.
type AuditReport struct {
	// ID identifies the audit run in the history database.
	ID string `json:"id"`

	// URL is the audited URL as given by the user.
	URL string `json:"url"`

	// Host is the hostname of URL, used for file names and history lookups.
	Host string `json:"host"`

	// Timestamp is when the audit started.
	Timestamp time.Time `json:"timestamp"`

	// CompletedAt is when the last pipeline step finished.
	CompletedAt time.Time `json:"completed_at"`

	// Language selects the report and recommendation language ("pl" or "en").
	Language string `json:"language"`

	// Page is the fetched main document. Nil until the fetch step succeeds.
	Page *Page `json:"-"`

	// TLS is the inspected certificate information. Nil for http targets.
	TLS *TLSInfo `json:"-"`

	Performance   PerformanceReport   `json:"performance"`
	Accessibility AccessibilityReport `json:"accessibility"`
	Security      SecurityReport      `json:"security"`
	Usability     UsabilityReport     `json:"usability"`
	Images        ImagesReport        `json:"images"`

	// Scores holds the category and overall scores.
	Scores Scores `json:"scores"`

	// Recommendations is the prioritized, localized advice list.
	Recommendations Recommendations `json:"recommendations"`

	// CrawledPages contains the link-check results when crawling was enabled.
	CrawledPages []CrawledPage `json:"crawled_pages,omitempty"`

	// Summary aggregates all findings.
	Summary Summary `json:"summary"`

	// PerformedSteps lists the pipeline steps that completed.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error contains the error that stopped the audit, if any.
	Error error `json:"-"`

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// TLSInfo is the result of inspecting a host's TLS endpoint.
type TLSInfo struct {
	Certificate     *CertificateInfo
	DaysToExpiry    int
	ExpiresSoon     bool
	ProtocolVersion string
	OCSPStapled     bool
	OCSPStatus      string
	Issues          []string
}

// NewAuditReport creates a new report for the given URL. Host is lower-cased.
func NewAuditReport(rawURL, language string) *AuditReport {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = strings.ToLower(u.Hostname())
	}
	return &AuditReport{
		ID:        uuid.NewString(),
		URL:       rawURL,
		Host:      host,
		Timestamp: time.Now(),
		Language:  language,
	}
}

// AddFinding adds a finding to the summary, ignoring exact duplicates.
func (r *AuditReport) AddFinding(finding Finding) {
	r.Summary.add(finding)
}

// AddCrawledPage records a link-check result and keeps the page counter in sync.
func (r *AuditReport) AddCrawledPage(page CrawledPage) {
	r.CrawledPages = append(r.CrawledPages, page)
	r.Summary.PagesChecked = len(r.CrawledPages)
}

// SetError records the error that stopped the audit.
func (r *AuditReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// BrokenLinks returns the crawled pages that failed or returned an error status.
func (r *AuditReport) BrokenLinks() []CrawledPage {
	var broken []CrawledPage
	for _, p := range r.CrawledPages {
		if p.Broken() {
			broken = append(broken, p)
		}
	}
	return broken
}
