package model

// Severity represents how strongly a finding affects users of the audited site.
type Severity int

const (
	// SeverityInfo marks observations with no direct user impact.
	SeverityInfo Severity = iota

	// SeverityLow marks minor issues, e.g. images without dimensions.
	SeverityLow

	// SeverityMedium marks issues that degrade the experience for some users.
	SeverityMedium

	// SeverityHigh marks issues that block some users or expose the site, e.g.
	// images without alternative text or a missing viewport.
	SeverityHigh

	// SeverityCritical marks issues that need immediate attention, e.g. GPS
	// coordinates published in image metadata.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Weight returns the risk weight used when comparing audits.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 100
	case SeverityHigh:
		return 50
	case SeverityMedium:
		return 10
	case SeverityLow:
		return 5
	default:
		return 1
	}
}

// FindingInfo contains metadata about a finding type.
type FindingInfo struct {
	Severity       Severity
	Category       string
	Impact         string
	Recommendation string
}

// Finding categories.
const (
	CategoryPerformance   = "performance"
	CategorySEO           = "seo"
	CategoryMobile        = "mobile"
	CategoryTechnical     = "technical"
	CategoryAccessibility = "accessibility"
	CategorySecurity      = "security"
	CategoryUsability     = "usability"
	CategoryPrivacy       = "privacy"
	CategoryLinks         = "links"
)

// Finding types produced by the analyzers.
const (
	FindingSlowLoad              = "slow_load"
	FindingLargePage             = "large_page"
	FindingImagesNoDimensions    = "images_without_dimensions"
	FindingNoModernImages        = "no_modern_image_format"
	FindingMissingTitle          = "missing_title"
	FindingMissingDescription    = "missing_meta_description"
	FindingMultipleH1            = "multiple_h1"
	FindingMissingCanonical      = "missing_canonical"
	FindingNoViewport            = "no_viewport"
	FindingHTMLErrors            = "html_validation_errors"
	FindingImagesNoAlt           = "images_without_alt"
	FindingInputsNoLabel         = "inputs_without_labels"
	FindingNoLang                = "missing_lang"
	FindingHeadingHierarchy      = "heading_hierarchy"
	FindingEmptyHeadings         = "empty_headings"
	FindingNoSkipLinks           = "no_skip_links"
	FindingPositiveTabindex      = "tabindex_issue"
	FindingLowContrast           = "low_contrast"
	FindingVideoNoCaptions       = "video_without_captions"
	FindingAutoplayMedia         = "autoplay_media"
	FindingIframeNoTitle         = "iframe_without_title"
	FindingMissingSecurityHeader = "missing_security_header"
	FindingNoHTTPS               = "no_https"
	FindingCertExpiresSoon       = "certificate_expires_soon"
	FindingTLSError              = "tls_error"
	FindingCertRevoked           = "certificate_revoked"
	FindingServerDisclosure      = "server_disclosure"
	FindingXSSVector             = "xss_vector"
	FindingMixedContent          = "mixed_content"
	FindingInsecureForm          = "insecure_form"
	FindingBrokenLink            = "broken_link"
	FindingPlaceholderLink       = "placeholder_link"
	FindingExifGPS               = "exif_gps"
	FindingExifSerial            = "exif_serial"
	FindingExifAuthor            = "exif_author"
	FindingExifCamera            = "exif_camera"
	FindingExifSoftware          = "exif_software"
)

// findingInfoMapping is the single source of severity, impact and remediation
// for every finding type.
var findingInfoMapping = map[string]FindingInfo{
	// Performance
	FindingSlowLoad: {
		Severity:       SeverityHigh,
		Category:       CategoryPerformance,
		Impact:         "The document takes more than 3 seconds to load. Visitors abandon slow pages and mobile users pay for the wait.",
		Recommendation: "Enable compression and caching, reduce server response time, defer non-critical scripts.",
	},
	FindingLargePage: {
		Severity:       SeverityMedium,
		Category:       CategoryPerformance,
		Impact:         "The HTML document is larger than 1 MB.",
		Recommendation: "Move inline data and styles to cacheable files and paginate long listings.",
	},
	FindingImagesNoDimensions: {
		Severity:       SeverityLow,
		Category:       CategoryPerformance,
		Impact:         "Images without width and height cause layout shifts while loading.",
		Recommendation: "Set width and height attributes on every image.",
	},
	FindingNoModernImages: {
		Severity:       SeverityInfo,
		Category:       CategoryPerformance,
		Impact:         "No image uses a modern format such as WebP.",
		Recommendation: "Serve WebP or AVIF versions of photos.",
	},

	// SEO and mobile
	FindingMissingTitle: {
		Severity:       SeverityMedium,
		Category:       CategorySEO,
		Impact:         "The page has no <title>. Search results and browser tabs show the bare URL.",
		Recommendation: "Add a descriptive, unique <title>.",
	},
	FindingMissingDescription: {
		Severity:       SeverityLow,
		Category:       CategorySEO,
		Impact:         "No meta description; search engines will pick an arbitrary snippet.",
		Recommendation: "Add a meta description of 50-160 characters.",
	},
	FindingMultipleH1: {
		Severity:       SeverityLow,
		Category:       CategorySEO,
		Impact:         "More than one <h1> blurs the main topic of the page.",
		Recommendation: "Keep a single <h1> and demote the others.",
	},
	FindingMissingCanonical: {
		Severity:       SeverityInfo,
		Category:       CategorySEO,
		Impact:         "No canonical URL is declared.",
		Recommendation: "Add <link rel=\"canonical\"> pointing at the preferred URL.",
	},
	FindingNoViewport: {
		Severity:       SeverityHigh,
		Category:       CategoryMobile,
		Impact:         "Without a viewport meta tag mobile browsers render a zoomed-out desktop layout.",
		Recommendation: "Add <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">.",
	},
	FindingHTMLErrors: {
		Severity:       SeverityLow,
		Category:       CategoryTechnical,
		Impact:         "The markup has structural errors or unbalanced tags.",
		Recommendation: "Validate the page with an HTML checker and fix reported errors.",
	},

	// Accessibility
	FindingImagesNoAlt: {
		Severity:       SeverityHigh,
		Category:       CategoryAccessibility,
		Impact:         "Screen reader users get no information about images without alt text (WCAG 1.1.1).",
		Recommendation: "Add alt text to informative images and alt=\"\" to decorative ones.",
	},
	FindingInputsNoLabel: {
		Severity:       SeverityHigh,
		Category:       CategoryAccessibility,
		Impact:         "Form fields without labels cannot be identified by assistive technology (WCAG 1.3.1, 4.1.2).",
		Recommendation: "Associate a <label for> or aria-label with every field.",
	},
	FindingNoLang: {
		Severity:       SeverityMedium,
		Category:       CategoryAccessibility,
		Impact:         "Without a lang attribute screen readers may use the wrong pronunciation (WCAG 3.1.1).",
		Recommendation: "Set lang on the <html> element.",
	},
	FindingHeadingHierarchy: {
		Severity:       SeverityMedium,
		Category:       CategoryAccessibility,
		Impact:         "Skipped heading levels or a missing <h1> break document outline navigation (WCAG 1.3.1).",
		Recommendation: "Start with a single <h1> and do not skip levels.",
	},
	FindingEmptyHeadings: {
		Severity:       SeverityLow,
		Category:       CategoryAccessibility,
		Impact:         "Empty headings are announced without content.",
		Recommendation: "Remove empty headings or give them text.",
	},
	FindingNoSkipLinks: {
		Severity:       SeverityLow,
		Category:       CategoryAccessibility,
		Impact:         "Keyboard users must tab through the whole navigation on every page (WCAG 2.4.1).",
		Recommendation: "Add a \"skip to content\" link as the first focusable element.",
	},
	FindingPositiveTabindex: {
		Severity:       SeverityMedium,
		Category:       CategoryAccessibility,
		Impact:         "Positive or invalid tabindex values break the natural focus order (WCAG 2.4.3).",
		Recommendation: "Use tabindex 0 or -1 only.",
	},
	FindingLowContrast: {
		Severity:       SeverityMedium,
		Category:       CategoryAccessibility,
		Impact:         "Text and background colors below a 4.5:1 contrast ratio are hard to read (WCAG 1.4.3).",
		Recommendation: "Adjust colors to reach at least 4.5:1 for normal text.",
	},
	FindingVideoNoCaptions: {
		Severity:       SeverityMedium,
		Category:       CategoryAccessibility,
		Impact:         "Videos without captions exclude deaf and hard of hearing users (WCAG 1.2.2).",
		Recommendation: "Add <track kind=\"captions\"> to every video.",
	},
	FindingAutoplayMedia: {
		Severity:       SeverityLow,
		Category:       CategoryAccessibility,
		Impact:         "Autoplaying media interferes with screen readers (WCAG 1.4.2).",
		Recommendation: "Remove autoplay or provide a pause control.",
	},
	FindingIframeNoTitle: {
		Severity:       SeverityLow,
		Category:       CategoryAccessibility,
		Impact:         "Frames without a title are announced without a purpose (WCAG 4.1.2).",
		Recommendation: "Give every iframe a descriptive title.",
	},

	// Security
	FindingMissingSecurityHeader: {
		Severity:       SeverityMedium,
		Category:       CategorySecurity,
		Impact:         "A recommended HTTP security header is not sent.",
		Recommendation: "Configure the web server to send the missing header.",
	},
	FindingNoHTTPS: {
		Severity:       SeverityHigh,
		Category:       CategorySecurity,
		Impact:         "The page is served over plain HTTP; traffic can be read and modified in transit.",
		Recommendation: "Serve the whole site over HTTPS and redirect HTTP requests.",
	},
	FindingCertExpiresSoon: {
		Severity:       SeverityHigh,
		Category:       CategorySecurity,
		Impact:         "The TLS certificate expires within 30 days.",
		Recommendation: "Renew the certificate or enable automatic renewal.",
	},
	FindingTLSError: {
		Severity:       SeverityHigh,
		Category:       CategorySecurity,
		Impact:         "The TLS handshake or certificate verification failed.",
		Recommendation: "Check the certificate chain and server TLS configuration.",
	},
	FindingCertRevoked: {
		Severity:       SeverityCritical,
		Category:       CategorySecurity,
		Impact:         "The stapled OCSP response reports the certificate as revoked.",
		Recommendation: "Replace the certificate immediately.",
	},
	FindingServerDisclosure: {
		Severity:       SeverityLow,
		Category:       CategorySecurity,
		Impact:         "A response header names the server software or its version, which narrows down known vulnerabilities.",
		Recommendation: "Hide version details in the Server header and drop X-Powered-By style headers.",
	},
	FindingXSSVector: {
		Severity:       SeverityLow,
		Category:       CategorySecurity,
		Impact:         "Inline event handlers and javascript: URLs prevent a strict Content-Security-Policy.",
		Recommendation: "Move handlers into external scripts using addEventListener.",
	},
	FindingMixedContent: {
		Severity:       SeverityMedium,
		Category:       CategorySecurity,
		Impact:         "An HTTPS page loads resources over HTTP; browsers block or warn about them.",
		Recommendation: "Load every resource over HTTPS.",
	},
	FindingInsecureForm: {
		Severity:       SeverityMedium,
		Category:       CategorySecurity,
		Impact:         "A form submits over HTTP, lacks a CSRF token or lets browsers autocomplete passwords.",
		Recommendation: "Submit forms over HTTPS and include an anti-CSRF token.",
	},

	// Links and usability
	FindingBrokenLink: {
		Severity:       SeverityMedium,
		Category:       CategoryLinks,
		Impact:         "An internal link returns an error status or cannot be fetched.",
		Recommendation: "Fix or remove the link.",
	},
	FindingPlaceholderLink: {
		Severity:       SeverityLow,
		Category:       CategoryUsability,
		Impact:         "Links with javascript:void(0) do nothing without JavaScript and confuse assistive technology.",
		Recommendation: "Use <button> for actions and real URLs for links.",
	},

	// Privacy (image metadata)
	FindingExifGPS: {
		Severity:       SeverityCritical,
		Category:       CategoryPrivacy,
		Impact:         "A published image contains GPS coordinates of where it was taken.",
		Recommendation: "Strip EXIF metadata from images before publishing.",
	},
	FindingExifSerial: {
		Severity:       SeverityHigh,
		Category:       CategoryPrivacy,
		Impact:         "A published image contains a device serial number.",
		Recommendation: "Strip EXIF metadata from images before publishing.",
	},
	FindingExifAuthor: {
		Severity:       SeverityMedium,
		Category:       CategoryPrivacy,
		Impact:         "A published image names its author or copyright holder.",
		Recommendation: "Confirm the author agreed to publication or strip the metadata.",
	},
	FindingExifCamera: {
		Severity:       SeverityLow,
		Category:       CategoryPrivacy,
		Impact:         "A published image identifies the camera make and model.",
		Recommendation: "Strip EXIF metadata from images before publishing.",
	},
	FindingExifSoftware: {
		Severity:       SeverityInfo,
		Category:       CategoryPrivacy,
		Impact:         "A published image names the software used to edit it.",
		Recommendation: "Strip EXIF metadata from images before publishing.",
	},
}

// GetSeverity returns the severity level for a finding type.
// Returns SeverityInfo if the finding type is not in the mapping.
func GetSeverity(findingType string) Severity {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetFindingInfo returns the full finding information for a finding type.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{
		Severity:       SeverityInfo,
		Impact:         "Unknown finding type. Review manually.",
		Recommendation: "Investigate the finding and assess impact.",
	}
}

// NewFinding builds a Finding for a known type, filling severity, category,
// impact and recommendation from the mapping.
func NewFinding(findingType, title, value, location string) Finding {
	info := GetFindingInfo(findingType)
	return Finding{
		Type:           findingType,
		Category:       info.Category,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          title,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
		Value:          value,
		Location:       location,
	}
}
