package audit

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/siteaudit/internal/model"
)

const resourcePage = `<!DOCTYPE html>
<html><head>
<link rel="stylesheet" href="/main.css">
<link rel="stylesheet" href="https://cdn.example.com/x.css">
<script src="/app.js"></script>
<script>var a = 1;</script>
</head><body>
<img src="/a.webp" width="10" height="10">
<img src="/b.JPG?v=2" srcset="/b2.jpg 2x">
<img src="/c.png" style="border:0">
<a href="https://other.example/">x</a>
<a href="/local">y</a>
</body></html>`

func TestPerformanceAnalyzer(t *testing.T) {
	t.Parallel()

	in := newTestInput(t, "https://example.com/", resourcePage, nil)
	in.Page.Timing.TotalLoadSeconds = 3.5

	findings, err := NewPerformanceAnalyzer().Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := model.ResourceMetrics{
		TotalImages:                       3,
		TotalCSSFiles:                     2,
		TotalJSFiles:                      1,
		ExternalLinks:                     1,
		ImagesWithoutDimensions:           2,
		ImagesWithoutDimensionsPercentage: 66.7,
		ImageFormats:                      map[string]int{"webp": 1, "jpg": 1, "png": 1},
		ResponsiveImages:                  1,
		ResponsiveImagesPercentage:        33.3,
		WebPImages:                        1,
		WebPPercentage:                    33.3,
		ExternalCSS:                       1,
		InternalCSS:                       1,
		InternalJS:                        1,
		InlineStyles:                      1,
		InlineScripts:                     1,
	}
	if diff := cmp.Diff(want, in.Report.Performance.Resources); diff != "" {
		t.Errorf("resources mismatch (-want +got):\n%s", diff)
	}

	loading := in.Report.Performance.Loading
	if loading.StatusCode != 200 || loading.ResponseSizeBytes != len(resourcePage) {
		t.Errorf("loading = %+v", loading)
	}

	wantTypes := []string{model.FindingSlowLoad, model.FindingImagesNoDimensions}
	if diff := cmp.Diff(wantTypes, findingTypes(findings)); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestImageExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src    string
		want   string
		wantOK bool
	}{
		{src: "photo.JPG", want: "jpg", wantOK: true},
		{src: "/img/a.png?x=1", want: "png", wantOK: true},
		{src: "/img/a.webp", want: "webp", wantOK: true},
		{src: "noext", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			got, ok := imageExtension(tt.src)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("imageExtension(%q) = %q, %v, want %q, %v", tt.src, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsExternalResource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want bool
	}{
		{ref: "https://cdn.example.com/a.js", want: true},
		{ref: "//cdn.example.com/a.js", want: false},
		{ref: "/redirect?to=https://x", want: false},
		{ref: "local.css", want: false},
		{ref: "", want: false},
	}
	for _, tt := range tests {
		if got := isExternalResource(tt.ref); got != tt.want {
			t.Errorf("isExternalResource(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestSEOAnalyzer(t *testing.T) {
	t.Parallel()

	page := `<html><head><title>Urząd Miasta</title>
<meta name="viewport" content="width=device-width">
<meta property="og:title" content="OG">
</head><body><h1>A</h1><h2>B</h2><h1>C</h1></body></html>`
	in := newTestInput(t, "https://example.com/a/b/?x=1&y=2#top", page, nil)

	findings, err := NewSEOAnalyzer().Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	seo := in.Report.Performance.SEO
	if seo.Title != "Urząd Miasta" || seo.TitleLength != 12 {
		t.Errorf("title = %q (%d)", seo.Title, seo.TitleLength)
	}
	if seo.MetaDescription != model.Missing || seo.OpenGraph.Title != "OG" || seo.OpenGraph.Image != model.Missing {
		t.Errorf("meta = %q, og = %+v", seo.MetaDescription, seo.OpenGraph)
	}
	wantURL := model.URLAnalysis{
		Length:       len("https://example.com/a/b/?x=1&y=2#top"),
		PathSegments: 2,
		QueryParams:  2,
		HasHash:      true,
		UsesHTTPS:    true,
	}
	if diff := cmp.Diff(wantURL, seo.URLAnalysis); diff != "" {
		t.Errorf("url analysis mismatch (-want +got):\n%s", diff)
	}
	if seo.HeadingsAnalysis.Total != 3 || seo.HeadingsAnalysis.H1Count != 2 {
		t.Errorf("headings = %+v", seo.HeadingsAnalysis)
	}
	if got := seo.HeadingsAnalysis.Samples[1]; got.Level != 2 || got.Text != "B" {
		t.Errorf("second sample = %+v, want h2 B", got)
	}

	wantTypes := []string{model.FindingMissingDescription, model.FindingMultipleH1, model.FindingMissingCanonical}
	if diff := cmp.Diff(wantTypes, findingTypes(findings)); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestMobileAndTechnicalAnalyzers(t *testing.T) {
	t.Parallel()

	page := `<!DOCTYPE html><html lang="pl" dir="ltr"><head><title>T</title>
<style>@media (max-width: 600px) { .a { display: flex; } }</style>
<link rel="stylesheet" href="m.css" media="screen and (max-width: 600px)">
<script src="/js/jquery.min.js"></script>
</head><body><main><div><p>x</div></main>
<input type="tel"><input type="email"><input type="text">
</body></html>`
	in := newTestInput(t, "https://example.com/", page, nil)

	findings, err := NewMobileAnalyzer().Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("mobile Analyze() error = %v", err)
	}
	if len(findings) != 1 || findings[0].Type != model.FindingNoViewport {
		t.Errorf("mobile findings = %v, want no viewport", findingTypes(findings))
	}
	mobile := in.Report.Performance.Mobile
	if mobile.CSSMediaQueries != 2 || !mobile.UsesFlexbox || mobile.UsesGrid || mobile.MobileInputTypes != 2 {
		t.Errorf("mobile = %+v", mobile)
	}

	if _, err := NewTechnicalAnalyzer().Analyze(context.Background(), in); err != nil {
		t.Fatalf("technical Analyze() error = %v", err)
	}
	tech := in.Report.Performance.Technical
	if tech.Doctype != "html" || tech.LangAttribute != "pl" || tech.DirAttribute != "ltr" || !tech.UsesJQuery {
		t.Errorf("technical = %+v", tech)
	}
	if tech.HTML5SemanticElements != 1 {
		t.Errorf("semantic elements = %d, want 1", tech.HTML5SemanticElements)
	}
	if tech.HTMLValidationErrors != 0 {
		t.Errorf("validation errors = %d, want 0", tech.HTMLValidationErrors)
	}
}

func TestCountValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page string
		want int
	}{
		{
			name: "complete page",
			page: `<!DOCTYPE html><html><head><title>T</title></head><body><p>x</p></body></html>`,
		},
		{
			name: "inline svg and omitted optional end tags",
			page: `<!DOCTYPE html><html><head><title>T</title></head><body>
<svg><path d="M0 0"/></svg><ul><li>a<li>b</ul><p>one<p>two</body></html>`,
		},
		{
			name: "upper-case tags",
			page: `<HTML><HEAD><TITLE>T</TITLE></HEAD><BODY><DIV>x</div></BODY></HTML>`,
		},
		{
			name: "missing title",
			page: `<html><head></head><body><p>x</p></body></html>`,
			want: 1,
		},
		{
			name: "bare fragment",
			page: `<p>x</div>`,
			want: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := newTestInput(t, "https://example.com/", tt.page, nil)
			got, err := countValidationErrors(in.Doc)
			if err != nil {
				t.Fatalf("countValidationErrors() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("countValidationErrors() = %d, want %d", got, tt.want)
			}
		})
	}
}
