package audit

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/model"
)

// Thresholds shared by the performance findings, scoring and recommendations.
const (
	// SlowLoadSeconds is the load time above which a page is considered slow.
	SlowLoadSeconds = 3.0

	// LargePageMB is the document size above which a page is considered large.
	LargePageMB = 1.0
)

var externalHrefPattern = regexp.MustCompile(`^https?://`)

// PerformanceAnalyzer measures the main document and counts its resources.
type PerformanceAnalyzer struct{}

// NewPerformanceAnalyzer creates a new PerformanceAnalyzer.
func NewPerformanceAnalyzer() *PerformanceAnalyzer {
	return &PerformanceAnalyzer{}
}

// Name returns the analyzer name.
func (a *PerformanceAnalyzer) Name() string {
	return "performance"
}

// Category returns the analyzer category.
func (a *PerformanceAnalyzer) Category() string {
	return model.CategoryPerformance
}

// Analyze fills the loading and resource metrics.
func (a *PerformanceAnalyzer) Analyze(_ context.Context, in *Input) ([]model.Finding, error) {
	perf := &in.Report.Performance
	perf.Loading = loadingMetrics(in.Page)
	perf.Resources = resourceMetrics(in.Doc)

	var findings []model.Finding
	loc := in.Page.URL

	if perf.Loading.TotalLoadTime > SlowLoadSeconds {
		findings = append(findings, model.NewFinding(model.FindingSlowLoad,
			"Slow page load", fmt.Sprintf("%.2fs", perf.Loading.TotalLoadTime), loc))
	}
	if perf.Loading.ResponseSizeMB > LargePageMB {
		findings = append(findings, model.NewFinding(model.FindingLargePage,
			"Large HTML document", fmt.Sprintf("%.3f MB", perf.Loading.ResponseSizeMB), loc))
	}
	if n := perf.Resources.ImagesWithoutDimensions; n > 0 {
		findings = append(findings, model.NewFinding(model.FindingImagesNoDimensions,
			"Images without dimensions", fmt.Sprintf("%d images", n), loc))
	}
	if perf.Resources.TotalImages > 0 && perf.Resources.WebPImages == 0 {
		findings = append(findings, model.NewFinding(model.FindingNoModernImages,
			"No WebP images", "", loc))
	}

	return findings, nil
}

func loadingMetrics(page *model.Page) model.LoadingMetrics {
	size := page.SizeBytes()
	return model.LoadingMetrics{
		StatusCode:        page.StatusCode,
		TotalLoadTime:     page.Timing.TotalLoadSeconds,
		DNSLookupTime:     page.Timing.DNSLookupMs,
		ResponseTime:      page.Timing.ResponseSeconds,
		ResponseSizeBytes: size,
		ResponseSizeKB:    round(float64(size)/1024, 2),
		ResponseSizeMB:    round(float64(size)/(1024*1024), 3),
	}
}

func resourceMetrics(doc *dom.Document) model.ResourceMetrics {
	images := doc.FindAll("img")
	stylesheets := stylesheetLinks(doc)
	scripts := dom.WithAttr(doc.FindAll("script"), "src")

	r := model.ResourceMetrics{
		TotalImages:   len(images),
		TotalCSSFiles: len(stylesheets),
		TotalJSFiles:  len(scripts),
		ImageFormats:  map[string]int{},
	}

	for _, a := range dom.WithAttr(doc.FindAll("a"), "href") {
		if externalHrefPattern.MatchString(dom.Attr(a, "href")) {
			r.ExternalLinks++
		}
	}

	for _, img := range images {
		src := dom.Attr(img, "src")
		if src == "" {
			continue
		}
		if ext, ok := imageExtension(src); ok {
			r.ImageFormats[ext]++
			if ext == "webp" {
				r.WebPImages++
			}
		}
		if dom.Attr(img, "width") == "" && dom.Attr(img, "height") == "" {
			r.ImagesWithoutDimensions++
		}
		if dom.Attr(img, "srcset") != "" || dom.HasAttr(img, "sizes") {
			r.ResponsiveImages++
		}
	}
	r.ImagesWithoutDimensionsPercentage = percent(r.ImagesWithoutDimensions, len(images))
	r.ResponsiveImagesPercentage = percent(r.ResponsiveImages, len(images))
	r.WebPPercentage = percent(r.WebPImages, len(images))

	for _, link := range stylesheets {
		if isExternalResource(dom.Attr(link, "href")) {
			r.ExternalCSS++
		}
	}
	for _, s := range scripts {
		if isExternalResource(dom.Attr(s, "src")) {
			r.ExternalJS++
		}
	}
	r.InternalCSS = r.TotalCSSFiles - r.ExternalCSS
	r.InternalJS = r.TotalJSFiles - r.ExternalJS
	r.InlineStyles = len(dom.WithAttr(doc.FindAll(), "style"))
	r.InlineScripts = len(inlineScripts(doc))

	return r
}

// imageExtension returns the lowercased text after the last '.' of src with
// any query string removed.
func imageExtension(src string) (string, bool) {
	i := strings.LastIndex(src, ".")
	if i < 0 {
		return "", false
	}
	ext := strings.ToLower(src[i+1:])
	ext, _, _ = strings.Cut(ext, "?")
	return ext, true
}

// isExternalResource reports whether a resource reference points to another
// origin. Root-relative paths are local even when they contain "://".
func isExternalResource(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "/") && strings.Contains(ref, "://")
}

func stylesheetLinks(doc *dom.Document) []*html.Node {
	var out []*html.Node
	for _, link := range doc.FindAll("link") {
		if dom.HasToken(dom.Attr(link, "rel"), "stylesheet") {
			out = append(out, link)
		}
	}
	return out
}

func inlineScripts(doc *dom.Document) []*html.Node {
	var out []*html.Node
	for _, s := range doc.FindAll("script") {
		if !dom.HasAttr(s, "src") {
			out = append(out, s)
		}
	}
	return out
}
