package audit

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/model"
)

var (
	skipLinkPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)skip.*nav`),
		regexp.MustCompile(`(?i)skip.*content`),
		regexp.MustCompile(`(?i)skip.*main`),
		regexp.MustCompile(`(?i)pomiń.*nav`),
		regexp.MustCompile(`(?i)pomiń.*treść`),
		regexp.MustCompile(`(?i)przeskocz.*treść`),
	}
	focusPattern  = regexp.MustCompile(`(?i):focus`)
	srOnlyPattern = regexp.MustCompile(`(?i)sr-only|visually-hidden|screen-reader`)
)

var (
	html5LandmarkTags = []string{"header", "nav", "main", "aside", "footer", "section", "article"}
	ariaLandmarkRoles = []string{"banner", "navigation", "main", "contentinfo", "complementary", "search"}
	interactiveTags   = []string{"a", "button", "input", "select", "textarea"}
	formControlTags   = []string{"input", "select", "textarea"}
)

// AccessibilityAnalyzer runs the WCAG 2.1 oriented checks.
type AccessibilityAnalyzer struct{}

// NewAccessibilityAnalyzer creates a new AccessibilityAnalyzer.
func NewAccessibilityAnalyzer() *AccessibilityAnalyzer {
	return &AccessibilityAnalyzer{}
}

// Name returns the analyzer name.
func (a *AccessibilityAnalyzer) Name() string {
	return "accessibility"
}

// Category returns the analyzer category.
func (a *AccessibilityAnalyzer) Category() string {
	return model.CategoryAccessibility
}

// Analyze fills the accessibility report. The WCAG score is computed last
// because it reads every other section.
func (a *AccessibilityAnalyzer) Analyze(_ context.Context, in *Input) ([]model.Finding, error) {
	doc := in.Doc
	acc := &in.Report.Accessibility

	acc.SemanticStructure = semanticStructure(doc)
	acc.KeyboardNavigation = keyboardNavigation(doc)
	acc.ScreenReader = screenReader(doc)
	acc.Forms = formAccessibility(doc)
	acc.Multimedia = multimedia(doc)
	acc.TextContent = textContent(doc)
	acc.ColorContrast = analyzeContrast(doc.StyleText())
	acc.WCAG = computeWCAG(acc)

	return accessibilityFindings(acc, in.Page.URL), nil
}

func semanticStructure(doc *dom.Document) model.SemanticStructure {
	lang, dir := langAndDir(doc)
	s := model.SemanticStructure{
		LangAttribute:  lang,
		DirAttribute:   dir,
		Headings:       make(map[string]model.HeadingLevel, len(headingTags)),
		HTML5Landmarks: make(map[string]int, len(html5LandmarkTags)),
		ARIALandmarks:  make(map[string]int, len(ariaLandmarkRoles)),
	}

	for _, tag := range headingTags {
		nodes := doc.FindAll(tag)
		texts := []string{}
		for _, n := range limit(nodes, headingSampleSize) {
			texts = append(texts, dom.Truncate(strings.TrimSpace(dom.Text(n)), headingTextLimit))
		}
		s.Headings[tag] = model.HeadingLevel{Count: len(nodes), Texts: texts}
	}

	var levels []int
	for _, n := range doc.FindAll(headingTags...) {
		levels = append(levels, headingLevel(n.Data))
		if strings.TrimSpace(dom.Text(n)) == "" {
			s.EmptyHeadings++
		}
	}
	s.HeadingHierarchyIssues = headingHierarchyIssues(levels)

	for _, tag := range html5LandmarkTags {
		s.HTML5Landmarks[tag] = len(doc.FindAll(tag))
	}
	for _, r := range ariaLandmarkRoles {
		s.ARIALandmarks[r] = 0
	}
	for _, el := range dom.WithAttr(doc.FindAll(), "role") {
		if n, ok := s.ARIALandmarks[dom.Attr(el, "role")]; ok {
			s.ARIALandmarks[dom.Attr(el, "role")] = n + 1
		}
	}
	return s
}

// headingHierarchyIssues reports a missing h1 or a skipped level between
// consecutive headings in document order. A page without headings has no issue.
func headingHierarchyIssues(levels []int) bool {
	if len(levels) == 0 {
		return false
	}
	hasH1 := false
	for _, l := range levels {
		if l == 1 {
			hasH1 = true
			break
		}
	}
	if !hasH1 {
		return true
	}
	for i := 1; i < len(levels); i++ {
		if levels[i]-levels[i-1] > 1 {
			return true
		}
	}
	return false
}

func keyboardNavigation(doc *dom.Document) model.KeyboardNavigation {
	interactive := doc.FindAll(interactiveTags...)
	k := model.KeyboardNavigation{
		TotalInteractiveElements: len(interactive),
		TabindexIssues:           []string{},
		SkipLinks:                []string{},
		FocusIndicators:          len(focusPattern.FindAllStringIndex(doc.StyleText(), -1)),
	}

	for _, el := range interactive {
		raw := dom.Attr(el, "tabindex")
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case err != nil:
			k.TabindexIssues = append(k.TabindexIssues, fmt.Sprintf("%s with invalid tabindex=%s", el.Data, raw))
		case v > 0:
			k.TabindexIssues = append(k.TabindexIssues, fmt.Sprintf("%s with tabindex=%d", el.Data, v))
		}
	}

	for _, link := range dom.WithAttr(doc.FindAll("a"), "href") {
		text := strings.ToLower(strings.TrimSpace(dom.Text(link)))
		href := strings.ToLower(dom.Attr(link, "href"))
		for _, re := range skipLinkPatterns {
			if re.MatchString(text) || re.MatchString(href) {
				k.SkipLinks = append(k.SkipLinks, text)
				break
			}
		}
	}
	return k
}

func screenReader(doc *dom.Document) model.ScreenReader {
	images := doc.FindAll("img")
	s := model.ScreenReader{Images: model.ImageAltStats{Total: len(images)}}
	for _, img := range images {
		if !dom.HasAttr(img, "alt") {
			s.Images.WithoutAlt++
			continue
		}
		s.Images.WithAlt++
		if dom.Attr(img, "alt") == "" {
			s.Images.WithEmptyAlt++
			if dom.Attr(img, "role") == "presentation" {
				s.Images.DecorativeProperlyMarked++
			}
		}
	}

	all := doc.FindAll()
	s.ARIALabels = len(dom.WithAttr(all, "aria-label"))
	s.ARIADescribedBy = len(dom.WithAttr(all, "aria-describedby"))
	s.ARIALabelledBy = len(dom.WithAttr(all, "aria-labelledby"))
	for _, el := range all {
		if dom.ClassMatches(el, srOnlyPattern) {
			s.SROnlyContent++
		}
	}
	return s
}

// formAccessibility counts form controls. A control is labelled once when a
// label points at its id or it carries aria-label or aria-labelledby.
func formAccessibility(doc *dom.Document) model.FormAccessibility {
	controls := doc.FindAll(formControlTags...)
	f := model.FormAccessibility{
		TotalForms:  len(doc.FindAll("form")),
		TotalInputs: len(controls),
		Fieldsets:   len(doc.FindAll("fieldset")),
		Legends:     len(doc.FindAll("legend")),
	}

	labelled := map[string]bool{}
	for _, label := range dom.WithAttr(doc.FindAll("label"), "for") {
		labelled[dom.Attr(label, "for")] = true
	}

	for _, c := range controls {
		if dom.HasAttr(c, "required") || dom.Attr(c, "aria-required") == "true" {
			f.RequiredFields++
		}
		if dom.Attr(c, "placeholder") != "" {
			f.InputsWithPlaceholders++
		}
		id := dom.Attr(c, "id")
		if (id != "" && labelled[id]) || dom.Attr(c, "aria-label") != "" || dom.Attr(c, "aria-labelledby") != "" {
			f.InputsWithLabels++
		}
	}
	return f
}

func multimedia(doc *dom.Document) model.Multimedia {
	var m model.Multimedia
	for _, v := range doc.FindAll("video") {
		m.Videos.Total++
		if hasCaptionTrack(v) {
			m.Videos.WithCaptions++
		}
		if dom.HasAttr(v, "controls") {
			m.Videos.WithControls++
		}
		if dom.HasAttr(v, "autoplay") {
			m.Videos.Autoplay++
		}
	}
	for _, a := range doc.FindAll("audio") {
		m.Audios.Total++
		if dom.HasAttr(a, "controls") {
			m.Audios.WithControls++
		}
		if dom.HasAttr(a, "autoplay") {
			m.Audios.Autoplay++
		}
	}
	for _, f := range doc.FindAll("iframe") {
		m.Iframes.Total++
		if dom.Attr(f, "title") != "" {
			m.Iframes.WithTitle++
		}
		if dom.Attr(f, "aria-label") != "" {
			m.Iframes.WithARIALabel++
		}
	}
	return m
}

func hasCaptionTrack(video *html.Node) bool {
	for _, t := range dom.Descendants(video, "track") {
		if dom.AttrEquals(t, "kind", "captions") {
			return true
		}
	}
	return false
}

func textContent(doc *dom.Document) model.TextContent {
	t := model.TextContent{
		TotalTextLength: utf8.RuneCountInString(doc.PageText()),
		Paragraphs:      len(doc.FindAll("p")),
		Lists: map[string]int{
			"ul": len(doc.FindAll("ul")),
			"ol": len(doc.FindAll("ol")),
			"dl": len(doc.FindAll("dl")),
		},
		Abbreviations: len(doc.FindAll("abbr")),
		Quotes:        len(doc.FindAll("q", "blockquote")),
	}
	for _, table := range doc.FindAll("table") {
		t.Tables.Total++
		hasTH := dom.HasDescendant(table, "th")
		if hasTH {
			t.Tables.WithHeaders++
		}
		if dom.HasDescendant(table, "caption") {
			t.Tables.WithCaption++
		}
		if dom.Attr(table, "summary") != "" {
			t.Tables.WithSummary++
		}
		if hasTH || dom.Attr(table, "role") == "table" {
			t.Tables.DataTables++
		} else {
			t.Tables.LayoutTables++
		}
	}
	return t
}

func accessibilityFindings(acc *model.AccessibilityReport, loc string) []model.Finding {
	var findings []model.Finding
	add := func(findingType, title, value string) {
		findings = append(findings, model.NewFinding(findingType, title, value, loc))
	}

	if n := acc.ScreenReader.Images.WithoutAlt; n > 0 {
		add(model.FindingImagesNoAlt, "Images without alternative text", fmt.Sprintf("%d images", n))
	}
	if n := acc.Forms.MissingLabels(); n > 0 {
		add(model.FindingInputsNoLabel, "Form fields without labels", fmt.Sprintf("%d fields", n))
	}
	if acc.SemanticStructure.LangAttribute == model.Missing {
		add(model.FindingNoLang, "Missing page language", "")
	}
	if acc.SemanticStructure.HeadingHierarchyIssues {
		add(model.FindingHeadingHierarchy, "Heading hierarchy issues", "")
	}
	if n := acc.SemanticStructure.EmptyHeadings; n > 0 {
		add(model.FindingEmptyHeadings, "Empty headings", strconv.Itoa(n))
	}
	if len(acc.KeyboardNavigation.SkipLinks) == 0 {
		add(model.FindingNoSkipLinks, "No skip navigation links", "")
	}
	for _, issue := range acc.KeyboardNavigation.TabindexIssues {
		add(model.FindingPositiveTabindex, "Tabindex breaks focus order", issue)
	}
	for _, pair := range acc.ColorContrast.Issues {
		add(model.FindingLowContrast, "Insufficient color contrast",
			fmt.Sprintf("%s on %s (%.2f:1)", pair.Text, pair.Background, pair.Ratio))
	}
	if n := acc.Multimedia.Videos.Total - acc.Multimedia.Videos.WithCaptions; n > 0 {
		add(model.FindingVideoNoCaptions, "Videos without captions", fmt.Sprintf("%d videos", n))
	}
	if n := acc.Multimedia.Videos.Autoplay + acc.Multimedia.Audios.Autoplay; n > 0 {
		add(model.FindingAutoplayMedia, "Autoplaying media", fmt.Sprintf("%d elements", n))
	}
	if n := acc.Multimedia.Iframes.Total - acc.Multimedia.Iframes.WithTitle; n > 0 {
		add(model.FindingIframeNoTitle, "Frames without title", fmt.Sprintf("%d frames", n))
	}
	return findings
}
