package audit

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/model"
)

const (
	longParagraphRunes = 500
	longWordRunes      = 10

	// Words per sentence: full points inside [low, high], half below max.
	readabilityWPSLow  = 10.0
	readabilityWPSHigh = 25.0
	readabilityWPSMax  = 35.0
)

var (
	menuClassPattern       = regexp.MustCompile(`(?i)menu|navigation`)
	breadcrumbClassPattern = regexp.MustCompile(`(?i)breadcrumb`)
	searchPattern          = regexp.MustCompile(`(?i)search`)
	ctaClassPattern        = regexp.MustCompile(`(?i)cta|button|btn`)
	touchClassPattern      = regexp.MustCompile(`(?i)btn|button`)
	sentenceEndPattern     = regexp.MustCompile(`[.!?](\s|$)`)
	printMediaPattern      = regexp.MustCompile(`(?i)print`)

	socialDomains     = []string{"facebook", "twitter", "instagram", "linkedin", "youtube"}
	placeholderHrefs  = []string{"javascript:void(0)", "javascript:;"}
	contextualPhrases = []string{"read more", "more info", "dowiedz", "więcej", "czytaj"}
	highlightedTags   = []string{"strong", "em", "b", "i", "mark"}
	usabilityListTags = []string{"ul", "ol"}
	touchElementTags  = []string{"button", "a"}
)

// UsabilityAnalyzer scores navigation, content structure, readability and
// mobile usability.
type UsabilityAnalyzer struct{}

// NewUsabilityAnalyzer creates a new UsabilityAnalyzer.
func NewUsabilityAnalyzer() *UsabilityAnalyzer {
	return &UsabilityAnalyzer{}
}

// Name returns the analyzer name.
func (a *UsabilityAnalyzer) Name() string {
	return "usability"
}

// Category returns the analyzer category.
func (a *UsabilityAnalyzer) Category() string {
	return model.CategoryUsability
}

// Analyze fills the usability report.
func (a *UsabilityAnalyzer) Analyze(_ context.Context, in *Input) ([]model.Finding, error) {
	nav, placeholders := navigation(in.Doc, in.URL)
	in.Report.Usability = model.UsabilityReport{
		Navigation:  nav,
		Content:     contentUsability(in.Doc),
		Readability: readability(in.Doc.VisibleText(" ")),
		Mobile:      mobileUsability(in.Doc),
	}

	var findings []model.Finding
	for _, href := range placeholders {
		findings = append(findings, model.NewFinding(model.FindingPlaceholderLink,
			"Link without destination", href, in.Page.URL))
	}
	return findings, nil
}

// navigation classifies links and returns the placeholder hrefs it found.
func navigation(doc *dom.Document, base *url.URL) (model.NavigationReport, []string) {
	all := doc.FindAll()
	n := model.NavigationReport{NavElements: len(doc.FindAll("nav"))}

	for _, el := range all {
		if dom.ClassMatches(el, menuClassPattern) {
			n.MenuElements++
		}
		if dom.ClassMatches(el, breadcrumbClassPattern) {
			n.BreadcrumbElements++
		}
		if dom.ClassMatches(el, searchPattern) {
			n.SearchAvailable = true
		}
	}
	for _, input := range doc.FindAll("input") {
		if dom.AttrEquals(input, "type", "search") {
			n.SearchAvailable = true
		}
	}
	for _, form := range doc.FindAll("form") {
		if searchPattern.MatchString(dom.Attr(form, "action")) {
			n.SearchAvailable = true
		}
	}

	var placeholders []string
	for _, a := range dom.WithAttr(doc.FindAll("a"), "href") {
		href := dom.Attr(a, "href")
		if href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		if strings.HasPrefix(href, "http") || strings.HasPrefix(href, "//") {
			if isSocialLink(href) {
				n.SocialLinks++
			} else {
				n.ExternalLinks++
			}
			if !sameHost(href, base) && (dom.AttrEquals(a, "target", "_blank") || dom.HasToken(dom.Attr(a, "class"), "external")) {
				n.ExternalLinksWithIndication++
			}
		} else {
			n.InternalLinks++
		}
		for _, p := range placeholderHrefs {
			if href == p {
				n.PotentiallyBrokenLinks++
				placeholders = append(placeholders, href)
			}
		}
	}

	for _, link := range doc.FindAll("link") {
		if printMediaPattern.MatchString(dom.Attr(link, "media")) {
			n.HasPrintStylesheet = true
		}
	}

	if n.NavElements > 0 {
		n.NavigationClarityScore += 30
	}
	if n.BreadcrumbElements > 0 {
		n.NavigationClarityScore += 20
	}
	if n.SearchAvailable {
		n.NavigationClarityScore += 30
	}
	if n.PotentiallyBrokenLinks == 0 {
		n.NavigationClarityScore += 20
	}
	return n, placeholders
}

func isSocialLink(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, d := range socialDomains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}

func sameHost(href string, base *url.URL) bool {
	u, err := url.Parse(href)
	return err == nil && base != nil && strings.EqualFold(u.Hostname(), base.Hostname())
}

func contentUsability(doc *dom.Document) model.ContentReport {
	paragraphs := doc.FindAll("p")
	images := doc.FindAll("img")
	tables := doc.FindAll("table")

	c := model.ContentReport{
		Paragraphs:          len(paragraphs),
		Lists:               len(doc.FindAll(usabilityListTags...)),
		Images:              len(images),
		Blockquotes:         len(doc.FindAll("blockquote")),
		HighlightedElements: len(doc.FindAll(highlightedTags...)),
		Tables:              len(tables),
	}

	total := 0
	for _, p := range paragraphs {
		l := utf8.RuneCountInString(strings.TrimSpace(dom.Text(p)))
		total += l
		if l > longParagraphRunes {
			c.VeryLongParagraphs++
		}
	}
	c.AvgParagraphLength = round(float64(total)/float64(max(len(paragraphs), 1)), 1)

	for _, img := range images {
		if dom.Attr(img, "alt") != "" {
			c.ImagesWithAlt++
		}
	}
	for _, t := range tables {
		if dom.HasDescendant(t, "caption") {
			c.TablesWithCaption++
		}
	}
	for _, a := range dom.WithAttr(doc.FindAll("a"), "href") {
		text := strings.ToLower(strings.TrimSpace(dom.Text(a)))
		for _, phrase := range contextualPhrases {
			if strings.Contains(text, phrase) {
				c.ContextualLinks++
				break
			}
		}
	}
	for _, a := range doc.FindAll("a") {
		if dom.ClassMatches(a, ctaClassPattern) {
			c.CTAElements++
		}
	}
	c.CTAElements += len(doc.FindAll("button"))

	score := 0
	if c.Paragraphs > 0 {
		score += 10
	}
	if c.AvgParagraphLength < 300 {
		score += 20
	}
	if c.Lists > 0 {
		score += 20
	}
	if float64(c.ImagesWithAlt)/float64(max(c.Images, 1)) > 0.7 {
		score += 20
	}
	if c.HighlightedElements > 0 {
		score += 10
	}
	if c.CTAElements > 0 {
		score += 20
	}
	c.ContentStructureScore = min(100, score)
	return c
}

func readability(text string) model.ReadabilityReport {
	words := strings.Fields(text)
	sentences := max(len(sentenceEndPattern.FindAllStringIndex(text, -1)), 1)
	r := model.ReadabilityReport{
		TotalWords:          len(words),
		TotalSentences:      sentences,
		AvgWordsPerSentence: round(float64(len(words))/float64(sentences), 1),
	}

	if len(words) > 0 {
		letters := 0
		for _, w := range words {
			l := utf8.RuneCountInString(w)
			letters += l
			if l > longWordRunes {
				r.LongWords++
			}
		}
		r.AvgWordLength = round(float64(letters)/float64(len(words)), 1)
		r.LongWordsPercentage = percent(r.LongWords, len(words))
	}

	switch {
	case r.AvgWordsPerSentence >= readabilityWPSLow && r.AvgWordsPerSentence <= readabilityWPSHigh:
		r.ReadabilityScore += 50
	case r.AvgWordsPerSentence < readabilityWPSMax:
		r.ReadabilityScore += 25
	}
	switch {
	case r.AvgWordLength <= 6:
		r.ReadabilityScore += 50
	case r.AvgWordLength <= 8:
		r.ReadabilityScore += 25
	}
	return r
}

func mobileUsability(doc *dom.Document) model.MobileUsability {
	viewport, hasViewport := doc.Meta("name", "viewport")
	m := model.MobileUsability{
		HasViewportMeta:      hasViewport,
		ViewportContent:      viewport,
		HasMediaQueries:      mediaQueryPattern.MatchString(doc.StyleText()),
		MobileFriendlyInputs: countMobileInputs(doc),
	}
	for _, el := range doc.FindAll(touchElementTags...) {
		if dom.ClassMatches(el, touchClassPattern) {
			m.TouchElements++
		}
	}

	if m.HasViewportMeta {
		m.MobileScore += 40
	}
	if m.HasMediaQueries {
		m.MobileScore += 30
	}
	if m.MobileFriendlyInputs > 0 {
		m.MobileScore += 30
	}
	return m
}
