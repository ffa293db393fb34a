package audit

import (
	"context"
	"regexp"
	"strings"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/model"
)

var (
	mediaQueryPattern = regexp.MustCompile(`@media`)

	// Unanchored on purpose: type="datetime-local" and friends also match.
	mobileInputPattern = regexp.MustCompile(`tel|email|number|date|datetime-local|month|search|time|url|week`)
)

// MobileAnalyzer checks static signals of a responsive layout.
// It must run after PerformanceAnalyzer, whose responsive image count it reuses.
type MobileAnalyzer struct{}

// NewMobileAnalyzer creates a new MobileAnalyzer.
func NewMobileAnalyzer() *MobileAnalyzer {
	return &MobileAnalyzer{}
}

// Name returns the analyzer name.
func (a *MobileAnalyzer) Name() string {
	return "mobile"
}

// Category returns the analyzer category.
func (a *MobileAnalyzer) Category() string {
	return model.CategoryMobile
}

// Analyze fills the mobile section of the performance report.
func (a *MobileAnalyzer) Analyze(_ context.Context, in *Input) ([]model.Finding, error) {
	doc := in.Doc
	styles := doc.StyleText()

	_, hasViewport := doc.Meta("name", "viewport")
	in.Report.Performance.Mobile = model.MobileReport{
		ViewportConfigured: hasViewport,
		ResponsiveImages:   in.Report.Performance.Resources.ResponsiveImages,
		CSSMediaQueries:    countMediaQueries(doc),
		UsesFlexbox:        strings.Contains(styles, "display: flex") || strings.Contains(styles, "display:flex"),
		UsesGrid:           strings.Contains(styles, "display: grid") || strings.Contains(styles, "display:grid"),
		MobileInputTypes:   countMobileInputs(doc),
	}

	if !hasViewport {
		return []model.Finding{
			model.NewFinding(model.FindingNoViewport, "Missing viewport meta tag", "", in.Page.URL),
		}, nil
	}
	return nil, nil
}

// countMediaQueries counts @media rules in embedded styles plus stylesheets
// linked with a media other than "all".
func countMediaQueries(doc *dom.Document) int {
	count := len(mediaQueryPattern.FindAllStringIndex(doc.StyleText(), -1))
	for _, link := range stylesheetLinks(doc) {
		if media := dom.Attr(link, "media"); media != "" && media != "all" {
			count++
		}
	}
	return count
}

func countMobileInputs(doc *dom.Document) int {
	count := 0
	for _, input := range doc.FindAll("input") {
		if mobileInputPattern.MatchString(dom.Attr(input, "type")) {
			count++
		}
	}
	return count
}
