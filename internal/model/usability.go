package model

// UsabilityReport groups navigation, content, readability and mobile usability.
type UsabilityReport struct {
	Navigation  NavigationReport  `json:"navigation"`
	Content     ContentReport     `json:"content"`
	Readability ReadabilityReport `json:"readability"`
	Mobile      MobileUsability   `json:"mobile_usability"`
}

// NavigationReport describes how easy the site is to move around.
type NavigationReport struct {
	NavElements                 int  `json:"nav_elements"`
	MenuElements                int  `json:"menu_elements"`
	BreadcrumbElements          int  `json:"breadcrumb_elements"`
	SearchAvailable             bool `json:"search_available"`
	InternalLinks               int  `json:"internal_links"`
	ExternalLinks               int  `json:"external_links"`
	SocialLinks                 int  `json:"social_links"`
	PotentiallyBrokenLinks      int  `json:"potentially_broken_links"`
	ExternalLinksWithIndication int  `json:"external_links_with_indication"`
	HasPrintStylesheet          bool `json:"has_print_stylesheet"`
	NavigationClarityScore      int  `json:"navigation_clarity_score"`
}

// ContentReport describes content structure.
type ContentReport struct {
	Paragraphs            int     `json:"paragraphs"`
	AvgParagraphLength    float64 `json:"avg_paragraph_length"`
	VeryLongParagraphs    int     `json:"very_long_paragraphs"`
	Lists                 int     `json:"lists"`
	Images                int     `json:"images"`
	ImagesWithAlt         int     `json:"images_with_alt"`
	Blockquotes           int     `json:"blockquotes"`
	HighlightedElements   int     `json:"highlighted_elements"`
	Tables                int     `json:"tables"`
	TablesWithCaption     int     `json:"tables_with_caption"`
	ContextualLinks       int     `json:"contextual_links"`
	CTAElements           int     `json:"cta_elements"`
	ContentStructureScore int     `json:"content_structure_score"`
}

// ReadabilityReport holds simple text statistics.
type ReadabilityReport struct {
	TotalWords          int     `json:"total_words"`
	TotalSentences      int     `json:"total_sentences"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	AvgWordLength       float64 `json:"avg_word_length"`
	LongWords           int     `json:"long_words"`
	LongWordsPercentage float64 `json:"long_words_percentage"`
	ReadabilityScore    int     `json:"readability_score"`
}

// MobileUsability describes touch and viewport readiness.
type MobileUsability struct {
	HasViewportMeta      bool   `json:"has_viewport_meta"`
	ViewportContent      string `json:"viewport_content"`
	HasMediaQueries      bool   `json:"has_media_queries"`
	TouchElements        int    `json:"touch_elements"`
	MobileFriendlyInputs int    `json:"mobile_friendly_inputs"`
	MobileScore          int    `json:"mobile_score"`
}

// ImagesReport summarizes the image metadata check.
type ImagesReport struct {
	Checked      int         `json:"checked"`
	WithMetadata int         `json:"with_metadata"`
	Images       []ImageExif `json:"images,omitempty"`
}

// ImageExif is the privacy-relevant metadata of one image.
type ImageExif struct {
	URL          string `json:"url"`
	HasGPS       bool   `json:"has_gps"`
	SerialNumber string `json:"serial_number,omitempty"`
	Author       string `json:"author,omitempty"`
	Camera       string `json:"camera,omitempty"`
	Software     string `json:"software,omitempty"`
	Error        string `json:"error,omitempty"`
}

// HasMetadata reports whether any privacy-relevant tag was found.
func (i ImageExif) HasMetadata() bool {
	return i.HasGPS || i.SerialNumber != "" || i.Author != "" || i.Camera != "" || i.Software != ""
}
