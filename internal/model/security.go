package model

import "time"

// SecurityHeaderNames lists the checked response headers in report order.
var SecurityHeaderNames = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Content-Type-Options",
	"X-Frame-Options",
	"X-XSS-Protection",
	"Referrer-Policy",
	"Permissions-Policy",
}

// SecurityReport holds header, TLS, content and form checks plus the score.
type SecurityReport struct {
	Headers                   map[string]string `json:"headers"`
	MissingSecurityHeaders    int               `json:"missing_security_headers"`
	PresentSecurityHeaders    int               `json:"present_security_headers"`
	SecurityHeadersPercentage float64           `json:"security_headers_percentage"`

	HTTPSEnabled       bool             `json:"https_enabled"`
	SSLCertificate     *CertificateInfo `json:"ssl_certificate,omitempty"`
	SSLDaysToExpiry    *int             `json:"ssl_days_to_expiry,omitempty"`
	SSLExpiresSoon     bool             `json:"ssl_expires_soon"`
	SSLProtocolVersion string           `json:"ssl_protocol_version,omitempty"`
	OCSPStapled        bool             `json:"ocsp_stapled"`
	OCSPStatus         string           `json:"ocsp_status,omitempty"`
	SSLIssues          []string         `json:"ssl_issues"`
	SSLError           string           `json:"ssl_error,omitempty"`

	InlineScripts       int         `json:"inline_scripts"`
	HasUnsafeInline     bool        `json:"has_unsafe_inline"`
	PotentialXSSVectors []XSSVector `json:"potential_xss_vectors"`
	XSSRisk             bool        `json:"xss_risk"`

	MixedContent MixedContent `json:"mixed_content"`
	Forms        FormSecurity `json:"forms"`

	// ServerDisclosure lists response headers revealing server software.
	ServerDisclosure []HeaderDisclosure `json:"server_disclosure,omitempty"`

	Score      int      `json:"score"`
	MaxScore   int      `json:"max_score"`
	Deductions []string `json:"deductions"`
	Rating     string   `json:"rating"`
}

// CertificateInfo describes the leaf certificate of the audited host.
type CertificateInfo struct {
	Subject      map[string]string `json:"subject"`
	Issuer       map[string]string `json:"issuer"`
	Version      int               `json:"version"`
	SerialNumber string            `json:"serial_number"`
	NotBefore    time.Time         `json:"not_before"`
	NotAfter     time.Time         `json:"not_after"`
	DNSNames     []string          `json:"dns_names,omitempty"`
}

// HeaderDisclosure is a response header that reveals software details.
type HeaderDisclosure struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// XSSVector is an inline handler or javascript: URL.
type XSSVector struct {
	Element   string `json:"element"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// Mixed content status values.
const (
	MixedContentNotApplicable = "N/A - not using HTTPS"
	MixedContentFound         = "Issues found"
	MixedContentNone          = "No issues"
)

// MixedContent lists http:// resources on an https page.
type MixedContent struct {
	Status string             `json:"status"`
	Items  []MixedContentItem `json:"items,omitempty"`
	Count  int                `json:"count"`
}

// MixedContentItem is one insecure resource reference.
type MixedContentItem struct {
	Tag       string `json:"tag"`
	Attribute string `json:"attribute"`
	URL       string `json:"url"`
}

// FormSecurity aggregates form submission checks.
type FormSecurity struct {
	Total               int            `json:"total"`
	WithCSRFProtection  int            `json:"with_csrf_protection"`
	WithHTTPS           int            `json:"with_https"`
	WithAutocompleteOff int            `json:"with_autocomplete_off"`
	InsecureForms       []InsecureForm `json:"insecure_forms"`
}

// InsecureForm describes a form with at least one issue.
type InsecureForm struct {
	Action string   `json:"action"`
	Method string   `json:"method"`
	Issues []string `json:"issues"`
}

// SecurityRating maps a security score to its label.
func SecurityRating(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 50:
		return "Fair"
	case score >= 25:
		return "Poor"
	default:
		return "Very Poor"
	}
}
