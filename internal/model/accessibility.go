package model

// AccessibilityReport groups the WCAG-oriented checks.
type AccessibilityReport struct {
	WCAG               WCAGCompliance     `json:"wcag_compliance"`
	SemanticStructure  SemanticStructure  `json:"semantic_structure"`
	KeyboardNavigation KeyboardNavigation `json:"keyboard_navigation"`
	ScreenReader       ScreenReader       `json:"screen_reader"`
	Multimedia         Multimedia         `json:"multimedia"`
	Forms              FormAccessibility  `json:"forms"`
	ColorContrast      ColorContrast      `json:"color_contrast"`
	TextContent        TextContent        `json:"text_content"`
}

// SemanticStructure covers language, headings and landmarks.
type SemanticStructure struct {
	LangAttribute          string                  `json:"lang_attribute"`
	DirAttribute           string                  `json:"dir_attribute"`
	Headings               map[string]HeadingLevel `json:"headings"`
	HeadingHierarchyIssues bool                    `json:"heading_hierarchy_issues"`
	EmptyHeadings          int                     `json:"empty_headings"`
	HTML5Landmarks         map[string]int          `json:"html5_landmarks"`
	ARIALandmarks          map[string]int          `json:"aria_landmarks"`
}

// HeadingLevel counts headings of one level and keeps the first texts.
type HeadingLevel struct {
	Count int      `json:"count"`
	Texts []string `json:"texts"`
}

// KeyboardNavigation covers focus order and bypass blocks.
type KeyboardNavigation struct {
	TotalInteractiveElements int      `json:"total_interactive_elements"`
	TabindexIssues           []string `json:"tabindex_issues"`
	SkipLinks                []string `json:"skip_links"`
	FocusIndicators          int      `json:"focus_indicators"`
}

// ScreenReader covers text alternatives and ARIA usage.
type ScreenReader struct {
	Images          ImageAltStats `json:"images"`
	ARIALabels      int           `json:"aria_labels"`
	ARIADescribedBy int           `json:"aria_describedby"`
	ARIALabelledBy  int           `json:"aria_labelledby"`
	SROnlyContent   int           `json:"sr_only_content"`
}

// ImageAltStats counts images by alt attribute state.
type ImageAltStats struct {
	Total                    int `json:"total"`
	WithAlt                  int `json:"with_alt"`
	WithEmptyAlt             int `json:"with_empty_alt"`
	WithoutAlt               int `json:"without_alt"`
	DecorativeProperlyMarked int `json:"decorative_properly_marked"`
}

// FormAccessibility covers labelling of form controls.
type FormAccessibility struct {
	TotalForms             int `json:"total_forms"`
	TotalInputs            int `json:"total_inputs"`
	InputsWithLabels       int `json:"inputs_with_labels"`
	InputsWithPlaceholders int `json:"inputs_with_placeholders"`
	RequiredFields         int `json:"required_fields"`
	Fieldsets              int `json:"fieldsets"`
	Legends                int `json:"legends"`
}

// MissingLabels returns the number of inputs without an accessible label.
func (f FormAccessibility) MissingLabels() int {
	if f.TotalInputs <= f.InputsWithLabels {
		return 0
	}
	return f.TotalInputs - f.InputsWithLabels
}

// Multimedia covers video, audio and frames.
type Multimedia struct {
	Videos  VideoStats  `json:"videos"`
	Audios  AudioStats  `json:"audios"`
	Iframes IframeStats `json:"iframes"`
}

// VideoStats counts video elements.
type VideoStats struct {
	Total        int `json:"total"`
	WithCaptions int `json:"with_captions"`
	WithControls int `json:"with_controls"`
	Autoplay     int `json:"autoplay"`
}

// AudioStats counts audio elements.
type AudioStats struct {
	Total        int `json:"total"`
	WithControls int `json:"with_controls"`
	Autoplay     int `json:"autoplay"`
}

// IframeStats counts iframe elements.
type IframeStats struct {
	Total         int `json:"total"`
	WithTitle     int `json:"with_title"`
	WithARIALabel int `json:"with_aria_label"`
}

// ColorContrast holds the result of the stylesheet contrast check.
type ColorContrast struct {
	Issues           []ContrastPair `json:"issues"`
	CompliantPairs   []ContrastPair `json:"compliant_pairs"`
	BackgroundColors []string       `json:"background_colors"`
	TextColors       []string       `json:"text_colors"`
	LinkColors       []string       `json:"link_colors"`
	HasIssues        bool           `json:"has_issues"`
}

// ContrastPair is a background/text color combination and its ratio.
type ContrastPair struct {
	Background string  `json:"background"`
	Text       string  `json:"text"`
	Ratio      float64 `json:"ratio"`
}

// TextContent covers text structure.
type TextContent struct {
	TotalTextLength int            `json:"total_text_length"`
	Paragraphs      int            `json:"paragraphs"`
	Lists           map[string]int `json:"lists"`
	Tables          TableStats     `json:"tables"`
	Abbreviations   int            `json:"abbreviations"`
	Quotes          int            `json:"quotes"`
}

// TableStats counts tables by accessibility features.
type TableStats struct {
	Total        int `json:"total"`
	WithHeaders  int `json:"with_headers"`
	WithCaption  int `json:"with_caption"`
	WithSummary  int `json:"with_summary"`
	DataTables   int `json:"data_tables"`
	LayoutTables int `json:"layout_tables"`
}

// WCAGCompliance holds the simplified level A and AA scores.
type WCAGCompliance struct {
	LevelA  WCAGLevel `json:"level_a"`
	LevelAA WCAGLevel `json:"level_aa"`
}

// WCAGLevel is the score for one conformance level.
type WCAGLevel struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Passed     bool    `json:"passed"`
}
