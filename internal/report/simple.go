package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/siteaudit/internal/locale"
	"github.com/nao1215/siteaudit/internal/model"
)

const (
	headerRuleWidth  = 80
	sectionRuleWidth = 50
	checkMark        = "✅"
	crossMark        = "❌"
	urlMarker        = "\x00"
)

// SimpleWriter outputs the localized console report: one section per
// category followed by the overall score and the recommendations.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether link check and image sections are shown
	// when nothing was checked.
	showEmpty bool

	// verbose adds finding descriptions to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in the language of report.Language.
// A failed audit prints the header and the error only.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder
	p := locale.NewPrinter(report.Language)

	w.writeHeader(&sb, p, report)
	if report.ErrorMessage != "" && report.Page == nil && len(report.PerformedSteps) == 0 {
		fmt.Fprintf(&sb, "%s %s\n", crossMark, report.ErrorMessage)
		return w.output.Write([]byte(sb.String()))
	}

	w.writePerformance(&sb, p, report)
	w.writeAccessibility(&sb, p, report)
	w.writeUsability(&sb, p, report)
	w.writeLinkCheck(&sb, p, report)
	w.writeImages(&sb, p, report)
	w.writeFindings(&sb, p, report)
	w.writeOverall(&sb, p, report)
	w.writeRecommendations(&sb, p, report)

	if report.ErrorMessage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", crossMark, report.ErrorMessage)
	}

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("=", headerRuleWidth))
	sb.WriteString("\n")
	// Only the label is upper-cased; the URL keeps its case.
	sb.WriteString(strings.Replace(p.Upper(locale.ReportTitle, urlMarker), urlMarker, report.URL, 1))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", headerRuleWidth))
	sb.WriteString("\n")
}

func sectionHeader(sb *strings.Builder, icon, title string) {
	fmt.Fprintf(sb, "\n%s %s\n", icon, title)
	sb.WriteString(strings.Repeat("-", sectionRuleWidth))
	sb.WriteString("\n")
}

func scoredHeader(sb *strings.Builder, p *locale.Printer, icon string, key locale.Key, score float64) {
	sectionHeader(sb, icon, fmt.Sprintf("%s (%s: %.0f/100)", p.Upper(key), p.T(locale.Score), score))
}

func bullet(sb *strings.Builder, label string, value any) {
	fmt.Fprintf(sb, "  • %s: %v\n", label, value)
}

func mark(ok bool) string {
	if ok {
		return checkMark
	}
	return crossMark
}

func (w *SimpleWriter) writePerformance(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	perf := report.Performance
	scoredHeader(sb, p, "🚀", locale.Performance, report.Scores.Performance)

	fmt.Fprintf(sb, "📊 %s:\n", p.Upper(locale.LoadingTimes))
	if perf.Loading.DNSLookupTime != nil {
		bullet(sb, p.T(locale.DNSLookup), fmt.Sprintf("%.1fms", *perf.Loading.DNSLookupTime))
	}
	bullet(sb, p.T(locale.TotalTime), fmt.Sprintf("%.2fs", perf.Loading.TotalLoadTime))
	bullet(sb, p.T(locale.ResponseSize), fmt.Sprintf("%.1fKB", perf.Loading.ResponseSizeKB))
	bullet(sb, p.T(locale.StatusCode), perf.Loading.StatusCode)

	fmt.Fprintf(sb, "\n📦 %s:\n", p.Upper(locale.Resources))
	res := perf.Resources
	bullet(sb, p.T(locale.Images), fmt.Sprintf("%d (%d %s)", res.TotalImages, res.ImagesWithoutDimensions, p.T(locale.WithoutDimensions)))
	bullet(sb, p.T(locale.CSSFiles), res.TotalCSSFiles)
	bullet(sb, p.T(locale.JSFiles), res.TotalJSFiles)
	bullet(sb, p.T(locale.ExternalLinks), res.ExternalLinks)
	if len(res.ImageFormats) > 0 {
		bullet(sb, p.T(locale.ImageFormats), formatCounts(res.ImageFormats))
	}

	fmt.Fprintf(sb, "\n🔍 %s:\n", p.Upper(locale.SEO))
	seo := perf.SEO
	bullet(sb, p.T(locale.PageTitle), orMissing(p, seo.Title))
	bullet(sb, p.T(locale.MetaDescription), presence(p, seo.MetaDescription))
	bullet(sb, p.T(locale.Viewport), presence(p, seo.ViewportMeta))
	bullet(sb, p.T(locale.Canonical), presence(p, seo.CanonicalURL))

	w.writeSecurity(sb, p, report)
}

func (w *SimpleWriter) writeSecurity(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	sec := report.Security
	fmt.Fprintf(sb, "\n🔒 %s (%s: %.0f/100):\n", p.Upper(locale.Security), p.T(locale.Score), report.Scores.Security)
	bullet(sb, p.T(locale.HTTPS), mark(sec.HTTPSEnabled)+" "+p.YesNo(sec.HTTPSEnabled))
	if sec.SSLDaysToExpiry != nil {
		bullet(sb, p.T(locale.CertExpires), p.T(locale.Days, *sec.SSLDaysToExpiry))
	}
	if sec.SSLError != "" {
		bullet(sb, "TLS", crossMark+" "+sec.SSLError)
	}
	bullet(sb, p.T(locale.Rating), fmt.Sprintf("%s (%d/%d)", sec.Rating, sec.Score, sec.MaxScore))
	fmt.Fprintf(sb, "  • %s:\n", p.T(locale.SecurityHeaders))
	for _, name := range model.SecurityHeaderNames {
		fmt.Fprintf(sb, "    %s %s\n", mark(isPresent(sec.Headers[name])), name)
	}
	bullet(sb, p.T(locale.MixedContent), sec.MixedContent.Count)
	bullet(sb, p.T(locale.XSSVectors), len(sec.PotentialXSSVectors))
	bullet(sb, p.T(locale.InsecureForms), len(sec.Forms.InsecureForms))
}

func (w *SimpleWriter) writeAccessibility(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	acc := report.Accessibility
	scoredHeader(sb, p, "♿", locale.Accessibility, report.Scores.Accessibility)

	sem := acc.SemanticStructure
	fmt.Fprintf(sb, "🏗️ %s:\n", p.Upper(locale.Semantic))
	bullet(sb, p.T(locale.PageLanguage), sem.LangAttribute)
	bullet(sb, p.T(locale.TextDirection), sem.DirAttribute)
	fmt.Fprintf(sb, "  • %s:\n", p.T(locale.Headings))
	for _, level := range headingLevels {
		if h, ok := sem.Headings[level]; ok && h.Count > 0 {
			fmt.Fprintf(sb, "    %s: %s\n", strings.ToUpper(level), p.T(locale.Pieces, h.Count))
		}
	}
	bullet(sb, p.T(locale.HeadingIssues), mark(!sem.HeadingHierarchyIssues)+" "+p.YesNo(sem.HeadingHierarchyIssues))
	bullet(sb, p.T(locale.EmptyHeadings), sem.EmptyHeadings)
	if landmarks := formatCounts(sem.HTML5Landmarks); landmarks != "" {
		bullet(sb, p.T(locale.Landmarks), landmarks)
	}

	kb := acc.KeyboardNavigation
	fmt.Fprintf(sb, "\n⌨️ %s:\n", p.Upper(locale.Keyboard))
	bullet(sb, p.T(locale.Interactive), kb.TotalInteractiveElements)
	bullet(sb, p.T(locale.SkipLinks), mark(len(kb.SkipLinks) > 0)+" "+fmt.Sprint(len(kb.SkipLinks)))
	bullet(sb, p.T(locale.TabindexIssues), len(kb.TabindexIssues))

	sr := acc.ScreenReader
	fmt.Fprintf(sb, "\n👁️ %s:\n", p.Upper(locale.ScreenReader))
	bullet(sb, p.T(locale.ImagesTotal), sr.Images.Total)
	bullet(sb, p.T(locale.WithAlt), sr.Images.WithAlt)
	bullet(sb, p.T(locale.WithoutAlt), mark(sr.Images.WithoutAlt == 0)+" "+fmt.Sprint(sr.Images.WithoutAlt))
	bullet(sb, p.T(locale.WithEmptyAlt), sr.Images.WithEmptyAlt)
	bullet(sb, p.T(locale.AriaLabels), sr.ARIALabels)

	forms := acc.Forms
	fmt.Fprintf(sb, "\n📝 %s:\n", p.Upper(locale.Forms))
	bullet(sb, p.T(locale.FormFields), forms.TotalInputs)
	bullet(sb, p.T(locale.LabeledFields), mark(forms.MissingLabels() == 0)+" "+fmt.Sprint(forms.InputsWithLabels))
	bullet(sb, p.T(locale.RequiredFields), forms.RequiredFields)
	bullet(sb, p.T(locale.Fieldsets), forms.Fieldsets)
	bullet(sb, p.T(locale.Legends), forms.Legends)
	bullet(sb, p.T(locale.ContrastIssues), len(acc.ColorContrast.Issues))

	fmt.Fprintf(sb, "\n✅ %s:\n", p.Upper(locale.WCAG))
	writeWCAGLevel(sb, "LEVEL A", acc.WCAG.LevelA)
	writeWCAGLevel(sb, "LEVEL AA", acc.WCAG.LevelAA)
}

func writeWCAGLevel(sb *strings.Builder, name string, level model.WCAGLevel) {
	fmt.Fprintf(sb, "  • %s: %.1f%% (%d/%d) %s\n", name, level.Percentage, level.Score, level.Total, mark(level.Passed))
}

func (w *SimpleWriter) writeUsability(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	use := report.Usability
	sectionHeader(sb, "👤", p.Upper(locale.Usability))

	fmt.Fprintf(sb, "🧭 %s:\n", p.Upper(locale.Navigation))
	bullet(sb, p.T(locale.NavElements), use.Navigation.NavElements)
	bullet(sb, p.T(locale.Breadcrumbs), use.Navigation.BreadcrumbElements)
	bullet(sb, p.T(locale.SearchFeature), mark(use.Navigation.SearchAvailable)+" "+p.YesNo(use.Navigation.SearchAvailable))
	bullet(sb, p.T(locale.InternalLinks), use.Navigation.InternalLinks)
	bullet(sb, p.T(locale.IndicatedLinks), use.Navigation.ExternalLinksWithIndication)
	bullet(sb, p.T(locale.NavigationClarity), fmt.Sprintf("%d/100", use.Navigation.NavigationClarityScore))

	fmt.Fprintf(sb, "\n📄 %s:\n", p.Upper(locale.Content))
	bullet(sb, p.T(locale.ContentStructure), fmt.Sprintf("%d/100", use.Content.ContentStructureScore))
	bullet(sb, p.T(locale.Readability), fmt.Sprintf("%d/100", use.Readability.ReadabilityScore))
	bullet(sb, p.T(locale.WordsPerSentence), fmt.Sprintf("%.1f", use.Readability.AvgWordsPerSentence))
	bullet(sb, p.T(locale.MobileUsability), fmt.Sprintf("%d/100", use.Mobile.MobileScore))
}

func (w *SimpleWriter) writeLinkCheck(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	if len(report.CrawledPages) == 0 && !w.showEmpty {
		return
	}
	sectionHeader(sb, "🔗", p.Upper(locale.LinkCheck))
	broken := report.BrokenLinks()
	bullet(sb, p.T(locale.PagesChecked), report.Summary.PagesChecked)
	bullet(sb, p.T(locale.BrokenLinks), mark(len(broken) == 0)+" "+fmt.Sprint(len(broken)))
	for _, page := range broken {
		status := page.Error
		if status == "" {
			status = fmt.Sprint(page.StatusCode)
		}
		fmt.Fprintf(sb, "    %s %s (%s)", crossMark, page.URL, status)
		if page.ReferencedBy != "" {
			fmt.Fprintf(sb, " ← %s", page.ReferencedBy)
		}
		sb.WriteString("\n")
	}
}

func (w *SimpleWriter) writeImages(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	images := report.Images
	if images.Checked == 0 && !w.showEmpty {
		return
	}
	sectionHeader(sb, "🖼️", p.Upper(locale.ImageMetadata))
	bullet(sb, p.T(locale.ImagesChecked), images.Checked)
	bullet(sb, p.T(locale.ImagesWithMetadata), mark(images.WithMetadata == 0)+" "+fmt.Sprint(images.WithMetadata))
	for _, img := range images.Images {
		if !img.HasMetadata() {
			continue
		}
		fmt.Fprintf(sb, "    %s %s: %s\n", crossMark, img.URL, exifSummary(img))
	}
}

func (w *SimpleWriter) writeFindings(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	if !report.Summary.HasFindings() && !w.showEmpty {
		return
	}
	sectionHeader(sb, "⚠️", fmt.Sprintf("%s (%d)", p.Upper(locale.Findings), report.Summary.TotalFindings()))
	for _, severity := range severities {
		findings := report.Summary.GetFindingsBySeverity(severity)
		if len(findings) == 0 {
			continue
		}
		fmt.Fprintf(sb, "[%s] %s\n", severityIndicator(severity), severity)
		for _, f := range findings {
			fmt.Fprintf(sb, "  * %s", f.Title)
			if f.Value != "" {
				fmt.Fprintf(sb, ": %s", f.Value)
			}
			sb.WriteString("\n")
			if w.verbose {
				if f.Location != "" {
					fmt.Fprintf(sb, "    @ %s\n", f.Location)
				}
				if f.Description != "" {
					fmt.Fprintf(sb, "    %s\n", f.Description)
				}
			}
		}
	}
}

func (w *SimpleWriter) writeOverall(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	scores := report.Scores
	fmt.Fprintf(sb, "\n🎯 %s: %.1f/100 (%s: %s)\n", p.Upper(locale.Overall), scores.Overall, p.T(locale.Grade), scores.Grade)
	bullet(sb, p.T(locale.Performance), fmt.Sprintf("%.0f/100", scores.Performance))
	bullet(sb, p.T(locale.Accessibility), fmt.Sprintf("%.0f/100", scores.Accessibility))
	bullet(sb, p.T(locale.Security), fmt.Sprintf("%.0f/100", scores.Security))
}

func (w *SimpleWriter) writeRecommendations(sb *strings.Builder, p *locale.Printer, report *model.AuditReport) {
	fmt.Fprintf(sb, "\n💡 %s:\n", p.Upper(locale.Recommendations))
	if report.Recommendations.Total() == 0 {
		fmt.Fprintf(sb, "  %s\n", p.T(locale.RecNoRecommendation))
		return
	}
	for _, priority := range model.Priorities {
		items := report.Recommendations.ByPriority(priority)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(sb, "\n%s %s:\n", priorityIcon(priority), p.Upper(priorityKey(priority)))
		for i, item := range items {
			fmt.Fprintf(sb, "  %d. %s\n", i+1, item)
		}
	}
}

// severityIndicator returns a visual indicator for the severity level.
func severityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}
