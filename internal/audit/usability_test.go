package audit

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/siteaudit/internal/model"
)

const usabilityPage = `<html><head>
<meta name="viewport" content="width=device-width">
<style>@media print { nav { display: none } }</style>
<link rel="stylesheet" media="print" href="p.css">
</head><body>
<nav class="main-menu">
<a href="/a">A</a>
<a href="https://www.facebook.com/city">FB</a>
<a href="https://other.example/" target="_blank">Ext</a>
<a href="javascript:void(0)">JS</a>
<a href="#top">Top</a>
</nav>
<div class="breadcrumb"></div>
<form action="/szukaj"><input type="search" name="q"></form>
<p>First sentence here. Second one!</p>
<ul><li>x</li></ul>
<img src="a.jpg" alt="A">
<a class="btn" href="/more">Czytaj więcej</a>
<button class="btn">Go</button>
</body></html>`

func TestUsabilityAnalyzer(t *testing.T) {
	t.Parallel()

	in := newTestInput(t, "https://example.com/", usabilityPage, nil)
	findings, err := NewUsabilityAnalyzer().Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	u := in.Report.Usability

	wantNav := model.NavigationReport{
		NavElements:                 1,
		MenuElements:                1,
		BreadcrumbElements:          1,
		SearchAvailable:             true,
		InternalLinks:               3,
		ExternalLinks:               1,
		SocialLinks:                 1,
		PotentiallyBrokenLinks:      1,
		ExternalLinksWithIndication: 1,
		HasPrintStylesheet:          true,
		NavigationClarityScore:      80,
	}
	if diff := cmp.Diff(wantNav, u.Navigation); diff != "" {
		t.Errorf("navigation mismatch (-want +got):\n%s", diff)
	}

	c := u.Content
	if c.Paragraphs != 1 || c.AvgParagraphLength != 32 || c.ContextualLinks != 1 || c.CTAElements != 2 {
		t.Errorf("content = %+v", c)
	}
	if c.ContentStructureScore != 90 {
		t.Errorf("content score = %d, want 90", c.ContentStructureScore)
	}

	wantMobile := model.MobileUsability{
		HasViewportMeta:      true,
		ViewportContent:      "width=device-width",
		HasMediaQueries:      true,
		TouchElements:        2,
		MobileFriendlyInputs: 1,
		MobileScore:          100,
	}
	if diff := cmp.Diff(wantMobile, u.Mobile); diff != "" {
		t.Errorf("mobile mismatch (-want +got):\n%s", diff)
	}

	if len(findings) != 1 || findings[0].Type != model.FindingPlaceholderLink || findings[0].Value != "javascript:void(0)" {
		t.Errorf("findings = %+v", findings)
	}
}

func TestReadability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want model.ReadabilityReport
	}{
		{
			name: "short sentences",
			text: "Ala ma kota. Kot ma Alę! Koniec",
			want: model.ReadabilityReport{
				TotalWords:          7,
				TotalSentences:      2,
				AvgWordsPerSentence: 3.5,
				AvgWordLength:       3.6,
				ReadabilityScore:    75,
			},
		},
		{
			name: "empty text",
			text: "",
			want: model.ReadabilityReport{TotalSentences: 1, ReadabilityScore: 75},
		},
		{
			name: "long words",
			text: "Konstantynopolitańczykowianeczka niezwykle przepięknie opowiadała.",
			want: model.ReadabilityReport{
				TotalWords:          4,
				TotalSentences:      1,
				AvgWordsPerSentence: 4,
				AvgWordLength:       15.8,
				LongWords:           3,
				LongWordsPercentage: 75,
				ReadabilityScore:    25,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, readability(tt.text)); diff != "" {
				t.Errorf("readability() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
