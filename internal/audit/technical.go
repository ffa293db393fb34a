package audit

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/model"
)

var jqueryPattern = regexp.MustCompile(`(?i)jquery`)

// html5SemanticTags are the sectioning elements counted by the technical check.
var html5SemanticTags = []string{"header", "nav", "main", "article", "section", "aside", "footer"}

// TechnicalAnalyzer inspects markup quality.
type TechnicalAnalyzer struct{}

// NewTechnicalAnalyzer creates a new TechnicalAnalyzer.
func NewTechnicalAnalyzer() *TechnicalAnalyzer {
	return &TechnicalAnalyzer{}
}

// Name returns the analyzer name.
func (a *TechnicalAnalyzer) Name() string {
	return "technical"
}

// Category returns the analyzer category.
func (a *TechnicalAnalyzer) Category() string {
	return model.CategoryTechnical
}

// Analyze fills the technical section of the performance report.
func (a *TechnicalAnalyzer) Analyze(_ context.Context, in *Input) ([]model.Finding, error) {
	doc := in.Doc
	lang, dir := langAndDir(doc)

	validationErrors, err := countValidationErrors(doc)
	if err != nil {
		return nil, err
	}

	tech := model.TechnicalReport{
		Doctype:               doc.Doctype(),
		HTMLValidationErrors:  validationErrors,
		TotalDOMElements:      doc.CountElements(),
		InlineStyles:          len(dom.WithAttr(doc.FindAll(), "style")),
		InlineScripts:         len(inlineScripts(doc)),
		HTML5SemanticElements: len(doc.FindAll(html5SemanticTags...)),
		LangAttribute:         lang,
		DirAttribute:          dir,
		UsesJQuery:            usesJQuery(doc),
	}
	in.Report.Performance.Technical = tech

	if tech.HTMLValidationErrors > 0 {
		return []model.Finding{
			model.NewFinding(model.FindingHTMLErrors, "HTML structure errors",
				strconv.Itoa(tech.HTMLValidationErrors), in.Page.URL),
		}, nil
	}
	return nil, nil
}

// langAndDir returns the html lang and dir attributes with their placeholders.
func langAndDir(doc *dom.Document) (string, string) {
	lang, dir := model.Missing, model.NotSpecified
	if root := doc.HTMLElement(); root != nil {
		if dom.HasAttr(root, "lang") {
			lang = dom.Attr(root, "lang")
		}
		if dom.HasAttr(root, "dir") {
			dir = dom.Attr(root, "dir")
		}
	}
	return lang, dir
}

// countValidationErrors is a rough structural check: one error per html,
// head or body missing from the source, one for a missing title, plus one per
// tag name whose start and end counts differ after re-serialization.
func countValidationErrors(doc *dom.Document) (int, error) {
	errs := 0
	for _, tag := range []string{"html", "head", "body"} {
		if !doc.HasSourceTag(tag) {
			errs++
		}
	}
	if doc.Find("title") == nil {
		errs++
	}

	balance, err := doc.TagBalance()
	if err != nil {
		return 0, err
	}
	for _, c := range balance {
		if c.Open != c.Closed {
			errs++
		}
	}
	return errs, nil
}

func usesJQuery(doc *dom.Document) bool {
	for _, s := range dom.WithAttr(doc.FindAll("script"), "src") {
		if jqueryPattern.MatchString(dom.Attr(s, "src")) {
			return true
		}
	}
	raw := doc.Raw()
	return strings.Contains(raw, "jQuery") || strings.Contains(raw, "$(")
}
