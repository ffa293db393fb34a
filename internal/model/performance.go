package model

// Missing is the placeholder recorded for absent tags, attributes and headers.
const Missing = "Missing"

// NotSpecified is the placeholder for an absent dir attribute.
const NotSpecified = "Not specified"

// PerformanceReport groups loading, resource, SEO, mobile and technical results.
type PerformanceReport struct {
	Loading   LoadingMetrics  `json:"loading"`
	Resources ResourceMetrics `json:"resources"`
	SEO       SEOReport       `json:"seo"`
	Mobile    MobileReport    `json:"mobile"`
	Technical TechnicalReport `json:"technical"`
}

// LoadingMetrics describes the main document fetch.
type LoadingMetrics struct {
	StatusCode        int      `json:"status_code"`
	TotalLoadTime     float64  `json:"total_load_time"`
	DNSLookupTime     *float64 `json:"dns_lookup_time,omitempty"`
	ResponseTime      *float64 `json:"response_time,omitempty"`
	ResponseSizeBytes int      `json:"response_size_bytes"`
	ResponseSizeKB    float64  `json:"response_size_kb"`
	ResponseSizeMB    float64  `json:"response_size_mb"`
}

// ResourceMetrics counts referenced resources and image optimization.
type ResourceMetrics struct {
	TotalImages                       int            `json:"total_images"`
	TotalCSSFiles                     int            `json:"total_css_files"`
	TotalJSFiles                      int            `json:"total_js_files"`
	ExternalLinks                     int            `json:"external_links"`
	ImagesWithoutDimensions           int            `json:"images_without_dimensions"`
	ImagesWithoutDimensionsPercentage float64        `json:"images_without_dimensions_percentage"`
	ImageFormats                      map[string]int `json:"image_formats"`
	ResponsiveImages                  int            `json:"responsive_images"`
	ResponsiveImagesPercentage        float64        `json:"responsive_images_percentage"`
	WebPImages                        int            `json:"webp_images"`
	WebPPercentage                    float64        `json:"webp_percentage"`
	ExternalCSS                       int            `json:"external_css"`
	ExternalJS                        int            `json:"external_js"`
	InternalCSS                       int            `json:"internal_css"`
	InternalJS                        int            `json:"internal_js"`
	InlineStyles                      int            `json:"inline_styles"`
	InlineScripts                     int            `json:"inline_scripts"`
}

// SEOReport holds meta tags, social cards and URL shape.
type SEOReport struct {
	Title                 string           `json:"title"`
	TitleLength           int              `json:"title_length"`
	MetaDescription       string           `json:"meta_description"`
	MetaDescriptionLength int              `json:"meta_description_length"`
	MetaKeywords          string           `json:"meta_keywords"`
	ViewportMeta          string           `json:"viewport_meta"`
	CanonicalURL          string           `json:"canonical_url"`
	Robots                string           `json:"robots"`
	OpenGraph             OpenGraph        `json:"opengraph"`
	TwitterCard           TwitterCard      `json:"twitter_card"`
	URLAnalysis           URLAnalysis      `json:"url_analysis"`
	HeadingsAnalysis      HeadingsAnalysis `json:"headings_analysis"`
}

// OpenGraph holds og:* meta properties.
type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	Type        string `json:"type"`
}

// TwitterCard holds twitter:* meta names.
type TwitterCard struct {
	Card        string `json:"card"`
	Site        string `json:"site"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// URLAnalysis describes the shape of the audited URL.
type URLAnalysis struct {
	Length       int  `json:"length"`
	PathSegments int  `json:"path_segments"`
	QueryParams  int  `json:"query_params"`
	HasHash      bool `json:"has_hash"`
	UsesHTTPS    bool `json:"uses_https"`
}

// HeadingsAnalysis summarizes headings for search engines.
type HeadingsAnalysis struct {
	Total   int             `json:"total"`
	H1Count int             `json:"h1_count"`
	Samples []HeadingSample `json:"samples"`
}

// HeadingSample is one heading in document order.
type HeadingSample struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// MobileReport holds static mobile optimization signals.
type MobileReport struct {
	ViewportConfigured bool `json:"viewport_configured"`
	ResponsiveImages   int  `json:"responsive_images"`
	CSSMediaQueries    int  `json:"css_media_queries"`
	UsesFlexbox        bool `json:"uses_flexbox"`
	UsesGrid           bool `json:"uses_grid"`
	MobileInputTypes   int  `json:"mobile_input_types"`
}

// TechnicalReport holds markup-level facts.
type TechnicalReport struct {
	Doctype               string `json:"doctype"`
	HTMLValidationErrors  int    `json:"html_validation_errors"`
	TotalDOMElements      int    `json:"total_dom_elements"`
	InlineStyles          int    `json:"inline_styles"`
	InlineScripts         int    `json:"inline_scripts"`
	HTML5SemanticElements int    `json:"html5_semantic_elements"`
	LangAttribute         string `json:"lang_attribute"`
	DirAttribute          string `json:"dir_attribute"`
	UsesJQuery            bool   `json:"uses_jquery"`
}
