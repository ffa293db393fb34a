package audit

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/model"
)

const (
	headingTextLimit  = 100
	headingSampleSize = 5
)

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// SEOAnalyzer reads meta tags, social cards and heading outline.
type SEOAnalyzer struct{}

// NewSEOAnalyzer creates a new SEOAnalyzer.
func NewSEOAnalyzer() *SEOAnalyzer {
	return &SEOAnalyzer{}
}

// Name returns the analyzer name.
func (a *SEOAnalyzer) Name() string {
	return "seo"
}

// Category returns the analyzer category.
func (a *SEOAnalyzer) Category() string {
	return model.CategorySEO
}

// Analyze fills the SEO section.
func (a *SEOAnalyzer) Analyze(_ context.Context, in *Input) ([]model.Finding, error) {
	doc := in.Doc
	seo := &in.Report.Performance.SEO

	if title, ok := doc.Title(); ok {
		seo.Title = title
		seo.TitleLength = utf8.RuneCountInString(title)
	} else {
		seo.Title = model.Missing
	}
	if desc, ok := doc.Meta("name", "description"); ok {
		seo.MetaDescription = desc
		seo.MetaDescriptionLength = utf8.RuneCountInString(desc)
	} else {
		seo.MetaDescription = model.Missing
	}
	seo.MetaKeywords = metaOrMissing(doc, "name", "keywords")
	seo.ViewportMeta = metaOrMissing(doc, "name", "viewport")
	seo.Robots = metaOrMissing(doc, "name", "robots")
	seo.CanonicalURL = model.Missing
	if link := doc.LinkRel("canonical"); link != nil {
		seo.CanonicalURL = dom.Attr(link, "href")
	}

	seo.OpenGraph = model.OpenGraph{
		Title:       metaOrMissing(doc, "property", "og:title"),
		Description: metaOrMissing(doc, "property", "og:description"),
		Image:       metaOrMissing(doc, "property", "og:image"),
		URL:         metaOrMissing(doc, "property", "og:url"),
		Type:        metaOrMissing(doc, "property", "og:type"),
	}
	seo.TwitterCard = model.TwitterCard{
		Card:        metaOrMissing(doc, "name", "twitter:card"),
		Site:        metaOrMissing(doc, "name", "twitter:site"),
		Title:       metaOrMissing(doc, "name", "twitter:title"),
		Description: metaOrMissing(doc, "name", "twitter:description"),
		Image:       metaOrMissing(doc, "name", "twitter:image"),
	}
	seo.URLAnalysis = analyzeURL(in)
	seo.HeadingsAnalysis = analyzeHeadings(doc)

	var findings []model.Finding
	loc := in.Page.URL
	if seo.Title == model.Missing || seo.Title == "" {
		findings = append(findings, model.NewFinding(model.FindingMissingTitle, "Missing page title", "", loc))
	}
	if seo.MetaDescription == model.Missing {
		findings = append(findings, model.NewFinding(model.FindingMissingDescription, "Missing meta description", "", loc))
	}
	if seo.HeadingsAnalysis.H1Count > 1 {
		findings = append(findings, model.NewFinding(model.FindingMultipleH1,
			"Multiple h1 headings", strconv.Itoa(seo.HeadingsAnalysis.H1Count), loc))
	}
	if seo.CanonicalURL == model.Missing {
		findings = append(findings, model.NewFinding(model.FindingMissingCanonical, "Missing canonical URL", "", loc))
	}
	return findings, nil
}

func metaOrMissing(doc *dom.Document, attr, key string) string {
	if v, ok := doc.Meta(attr, key); ok {
		return v
	}
	return model.Missing
}

func analyzeURL(in *Input) model.URLAnalysis {
	u := in.URL
	segments := 0
	for s := range strings.SplitSeq(u.Path, "/") {
		if s != "" {
			segments++
		}
	}
	params := 0
	if u.RawQuery != "" {
		params = len(strings.Split(u.RawQuery, "&"))
	}
	return model.URLAnalysis{
		Length:       utf8.RuneCountInString(in.Report.URL),
		PathSegments: segments,
		QueryParams:  params,
		HasHash:      u.Fragment != "",
		UsesHTTPS:    u.Scheme == "https",
	}
}

// analyzeHeadings samples headings in document order.
func analyzeHeadings(doc *dom.Document) model.HeadingsAnalysis {
	headings := doc.FindAll(headingTags...)
	h := model.HeadingsAnalysis{
		Total:   len(headings),
		Samples: []model.HeadingSample{},
	}
	for _, n := range headings {
		level := headingLevel(n.Data)
		if level == 1 {
			h.H1Count++
		}
		if len(h.Samples) < headingSampleSize {
			text := strings.TrimSpace(dom.Text(n))
			h.Samples = append(h.Samples, model.HeadingSample{
				Level:  level,
				Text:   dom.Truncate(text, headingTextLimit),
				Length: utf8.RuneCountInString(text),
			})
		}
	}
	return h
}

// headingLevel returns 1-6 for h1-h6 tag names.
func headingLevel(tag string) int {
	return int(tag[1] - '0')
}
