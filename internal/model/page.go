package model

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

// Page represents a fetched document: the raw response plus timing data.
type Page struct {
	// URL is the requested URL.
	URL string `json:"url"`

	// FinalURL is the URL after redirects.
	FinalURL string `json:"final_url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// Headers contains all HTTP response headers in canonical form.
	Headers http.Header `json:"headers"`

	// ContentType is the MIME type from the Content-Type header.
	ContentType string `json:"content_type"`

	// Title is the page title, filled by the crawler for link-check pages.
	Title string `json:"title,omitempty"`

	// Raw contains the response body, capped at the configured max body size.
	Raw []byte `json:"-"`

	// Truncated is true when the body exceeded the max body size.
	Truncated bool `json:"truncated,omitempty"`

	// Hash is the SHA-256 hash of Raw.
	Hash string `json:"hash"`

	// Timing holds the measured fetch durations.
	Timing Timing `json:"timing"`

	// TLSVersion is the negotiated protocol version, e.g. "TLSv1.3".
	TLSVersion string `json:"tls_version,omitempty"`

	// Links are the absolute URLs discovered on the page. Only the crawler fills this.
	Links []string `json:"-"`

	// FetchedAt is when the response was received.
	FetchedAt time.Time `json:"fetched_at"`
}

// Timing holds fetch durations.
type Timing struct {
	// DNSLookupMs is the resolve time in milliseconds. Nil when resolution failed.
	DNSLookupMs *float64 `json:"dns_lookup_time,omitempty"`

	// TotalLoadSeconds covers the request and the full body read.
	TotalLoadSeconds float64 `json:"total_load_time"`

	// ResponseSeconds is TotalLoadSeconds minus the DNS time. Nil when DNS time is unknown.
	ResponseSeconds *float64 `json:"response_time,omitempty"`
}

// ComputeHash calculates and sets the SHA-256 hash of the page's raw content.
func (p *Page) ComputeHash() {
	if len(p.Raw) == 0 {
		p.Hash = ""
		return
	}

	hash := sha256.Sum256(p.Raw)
	p.Hash = hex.EncodeToString(hash[:])
}

// GetHeader returns the first value of the named header, or "".
func (p *Page) GetHeader(name string) string {
	return p.Headers.Get(name)
}

// IsHTML returns true if the content type indicates HTML.
func (p *Page) IsHTML() bool {
	ct := strings.ToLower(p.ContentType)
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}

// IsImage returns true if the content type indicates an image.
func (p *Page) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(p.ContentType), "image/")
}

// SizeBytes returns the body length.
func (p *Page) SizeBytes() int {
	return len(p.Raw)
}

// CrawledPage is the link-check record of one page visited by the crawler.
type CrawledPage struct {
	URL          string  `json:"url"`
	StatusCode   int     `json:"status_code"`
	SizeBytes    int     `json:"size_bytes"`
	LoadSeconds  float64 `json:"load_time"`
	Title        string  `json:"title,omitempty"`
	Error        string  `json:"error,omitempty"`
	ReferencedBy string  `json:"referenced_by,omitempty"`
}

// Broken reports whether the page returned an error status or failed to load.
func (c CrawledPage) Broken() bool {
	return c.Error != "" || c.StatusCode >= http.StatusBadRequest
}
