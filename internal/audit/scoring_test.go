package audit

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/siteaudit/internal/locale"
	"github.com/nao1215/siteaudit/internal/model"
)

func TestPerformanceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds float64
		sizeMB  float64
		want    float64
	}{
		{name: "fast and small", seconds: 0.5, sizeMB: 0.1, want: 100},
		{name: "over one second", seconds: 1.5, want: 95},
		{name: "over two seconds", seconds: 2.5, want: 85},
		{name: "slow and heavy", seconds: 3.5, sizeMB: 2.5, want: 50},
		{name: "over one megabyte", seconds: 0.2, sizeMB: 1.5, want: 90},
		{name: "exactly three seconds", seconds: 3, want: 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := performanceScore(model.LoadingMetrics{TotalLoadTime: tt.seconds, ResponseSizeMB: tt.sizeMB})
			if got != tt.want {
				t.Errorf("performanceScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	report := model.NewAuditReport("https://example.com", "pl")
	report.Performance.Loading = model.LoadingMetrics{TotalLoadTime: 2.5, ResponseSizeMB: 1.5}
	report.Accessibility.WCAG.LevelAA.Percentage = 66.7
	report.Security.Score = 24

	want := model.Scores{
		Performance:   75,
		Accessibility: 66.7,
		Security:      24,
		Overall:       61.5,
		Grade:         "D",
	}
	if diff := cmp.Diff(want, Score(report)); diff != "" {
		t.Errorf("Score() mismatch (-want +got):\n%s", diff)
	}
}

func problemReport() *model.AuditReport {
	report := model.NewAuditReport("http://example.com", "en")
	report.Performance.Loading = model.LoadingMetrics{TotalLoadTime: 3.5, ResponseSizeMB: 1.2}
	report.Performance.Resources.ImagesWithoutDimensions = 3
	report.Accessibility.ScreenReader.Images.WithoutAlt = 2
	report.Accessibility.Forms = model.FormAccessibility{TotalInputs: 3, InputsWithLabels: 1}
	report.Accessibility.KeyboardNavigation.TabindexIssues = []string{"a with tabindex=3"}
	report.Accessibility.SemanticStructure.EmptyHeadings = 1
	report.Security.Headers = map[string]string{"Content-Security-Policy": model.Missing}
	report.Security.MissingSecurityHeaders = 4
	report.Images.Images = []model.ImageExif{{URL: "a.jpg", HasGPS: true}, {URL: "b.jpg"}}
	report.AddCrawledPage(model.CrawledPage{URL: "http://example.com/gone", StatusCode: 404})
	report.AddCrawledPage(model.CrawledPage{URL: "http://example.com/ok", StatusCode: 200})
	return report
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	t.Run("english", func(t *testing.T) {
		t.Parallel()

		got := Recommend(problemReport(), locale.NewPrinter(locale.English))
		want := model.Recommendations{
			Critical: []string{
				"Drastically reduce page load time (>3s)",
				"Add alternative text to 2 images",
				"Add labels to 2 unlabeled form fields",
				"Remove GPS coordinates from the metadata of 1 images",
			},
			Important: []string{
				"Enable HTTPS across the whole site",
				"Add skip navigation links",
				"Fix keyboard navigation problems (invalid tabindex values)",
				"Configure a Content Security Policy",
				"Configure 4 missing security headers",
				"Fix 1 broken links",
			},
			Minor: []string{
				"Reduce the page size",
				"Add dimensions to 3 images",
				"Remove 1 empty headings",
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Recommend() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("polish", func(t *testing.T) {
		t.Parallel()

		got := Recommend(problemReport(), locale.NewPrinter(locale.Polish))
		if got.Critical[1] != "Dodać tekst alternatywny do 2 obrazów" {
			t.Errorf("Critical[1] = %q", got.Critical[1])
		}
		if got.Total() != 13 {
			t.Errorf("Total() = %d, want 13", got.Total())
		}
	})

	t.Run("clean report", func(t *testing.T) {
		t.Parallel()

		report := model.NewAuditReport("https://example.com", "en")
		report.Security.HTTPSEnabled = true
		report.Security.Headers = map[string]string{"Content-Security-Policy": "default-src 'self'"}
		report.Accessibility.KeyboardNavigation.SkipLinks = []string{"skip to content"}

		if got := Recommend(report, locale.NewPrinter(locale.English)); got.Total() != 0 {
			t.Errorf("Recommend() = %+v, want none", got)
		}
	})
}
