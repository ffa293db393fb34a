package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/siteaudit/internal/locale"
	"github.com/nao1215/siteaudit/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)
	p := locale.NewPrinter(report.Language)

	w.writeHeader(md, p, report)
	w.writeScores(md, p, report)
	w.writeSummary(md, p, report)
	w.writeLinkCheck(md, p, report)
	w.writeFindings(md, p, report)
	w.writeRecommendations(md, p, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, p *locale.Printer, report *model.AuditReport) {
	md.H1(p.T(locale.ReportTitle, report.Host))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Audit ID", "`" + report.ID + "`"},
			{"Date", report.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{p.T(locale.PagesChecked), strconv.Itoa(report.Summary.PagesChecked)},
			{"Status", statusText(report)},
		},
	})
	md.PlainText("")
}

func statusText(report *model.AuditReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// writeScores writes the category scores and a few headline metrics.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, p *locale.Printer, report *model.AuditReport) {
	s := report.Scores
	md.H2(p.T(locale.Score))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{p.T(locale.LatexMetric), p.T(locale.Score)},
		Rows: [][]string{
			{"🚀 " + p.T(locale.Performance), fmt.Sprintf("%.0f/100", s.Performance)},
			{"♿ " + p.T(locale.Accessibility), fmt.Sprintf("%.0f/100", s.Accessibility)},
			{"🔒 " + p.T(locale.Security), fmt.Sprintf("%.0f/100", s.Security)},
			{"**" + p.T(locale.Overall) + "**", fmt.Sprintf("**%.1f/100 (%s)**", s.Overall, s.Grade)},
		},
	})
	md.PlainText("")

	acc := report.Accessibility
	md.Table(markdown.TableSet{
		Header: []string{p.T(locale.LatexMetric), p.T(locale.LatexValue)},
		Rows: [][]string{
			{p.T(locale.TotalTime), fmt.Sprintf("%.2fs", report.Performance.Loading.TotalLoadTime)},
			{p.T(locale.ResponseSize), fmt.Sprintf("%.1fKB", report.Performance.Loading.ResponseSizeKB)},
			{p.T(locale.HTTPS), mark(report.Security.HTTPSEnabled)},
			{p.T(locale.Rating), fmt.Sprintf("%s (%d/%d)", report.Security.Rating, report.Security.Score, report.Security.MaxScore)},
			{"WCAG A", fmt.Sprintf("%.1f%% %s", acc.WCAG.LevelA.Percentage, mark(acc.WCAG.LevelA.Passed))},
			{"WCAG AA", fmt.Sprintf("%.1f%% %s", acc.WCAG.LevelAA.Percentage, mark(acc.WCAG.LevelAA.Passed))},
		},
	})
	md.PlainText("")
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, p *locale.Printer, report *model.AuditReport) {
	summary := &report.Summary
	md.H2(p.T(locale.Findings))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(summary.CriticalCount)},
			{"🟠 High", strconv.Itoa(summary.HighCount)},
			{"🟡 Medium", strconv.Itoa(summary.MediumCount)},
			{"🔵 Low", strconv.Itoa(summary.LowCount)},
			{"⚪ Info", strconv.Itoa(summary.InfoCount)},
			{"**Total**", "**" + strconv.Itoa(summary.TotalFindings()) + "**"},
		},
	})
	md.PlainText("")

	if summary.HasFindings() {
		w.writePieChart(md, summary)
	}

	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	counts := []int{summary.CriticalCount, summary.HighCount, summary.MediumCount, summary.LowCount, summary.InfoCount}
	for i, severity := range severities {
		if counts[i] > 0 {
			chart.LabelAndIntValue(severity.String(), uint64(counts[i])) //nolint:gosec // counts are never negative
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch {
	case summary.CriticalCount > 0:
		md.Cautionf(
			"Critical issues detected! %d critical finding(s) require immediate attention.",
			summary.CriticalCount,
		)
	case summary.HighCount > 0:
		md.Warningf(
			"High severity issues detected. %d finding(s) block some users or expose the site.",
			summary.HighCount,
		)
	case summary.MediumCount > 0:
		md.Importantf(
			"Medium severity issues found. %d finding(s) degrade the experience for some users.",
			summary.MediumCount,
		)
	case summary.TotalFindings() > 0:
		md.Note("Only low severity and informational findings detected.")
	default:
		md.Tip("No significant issues detected.")
	}
	md.PlainText("")
}

// writeLinkCheck lists broken links found by the crawler.
func (w *MarkdownWriter) writeLinkCheck(md *markdown.Markdown, p *locale.Printer, report *model.AuditReport) {
	if len(report.CrawledPages) == 0 {
		return
	}
	md.H2(p.T(locale.LinkCheck))
	md.PlainText("")

	broken := report.BrokenLinks()
	md.PlainTextf("%s: %d, %s: %d", p.T(locale.PagesChecked), report.Summary.PagesChecked, p.T(locale.BrokenLinks), len(broken))
	md.PlainText("")
	if len(broken) == 0 {
		return
	}

	rows := make([][]string, len(broken))
	for i, page := range broken {
		status := strconv.Itoa(page.StatusCode)
		if page.Error != "" {
			status = truncateString(page.Error, 40)
		}
		rows[i] = []string{page.URL, status, orDash(page.ReferencedBy)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", p.T(locale.LatexStatus), "Referrer"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, _ *locale.Printer, report *model.AuditReport) {
	if !report.Summary.HasFindings() {
		return
	}

	headers := map[model.Severity]string{
		model.SeverityCritical: "### 🔴 Critical",
		model.SeverityHigh:     "### 🟠 High",
		model.SeverityMedium:   "### 🟡 Medium",
		model.SeverityLow:      "### 🔵 Low",
		model.SeverityInfo:     "### ⚪ Info",
	}

	for _, sev := range severities {
		findings := report.Summary.GetFindingsBySeverity(sev)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(headers[sev])
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	rows := make([][]string, len(findings))
	for i, f := range findings {
		rows[i] = []string{
			f.Title,
			f.Category,
			truncateString(orDash(f.Value), 50),
			truncateString(orDash(f.Location), 40),
			truncateString(orDash(f.Recommendation), 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Title", "Category", "Value", "Location", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, f := range findings {
		if f.Description != "" {
			md.Details(f.Title, f.Description)
		}
	}
	md.PlainText("")
}

// writeRecommendations writes the prioritized advice.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, p *locale.Printer, report *model.AuditReport) {
	md.H2(p.T(locale.Recommendations))
	md.PlainText("")
	if report.Recommendations.Total() == 0 {
		md.PlainText(p.T(locale.RecNoRecommendation))
		md.PlainText("")
		return
	}
	for _, priority := range model.Priorities {
		items := report.Recommendations.ByPriority(priority)
		if len(items) == 0 {
			continue
		}
		md.H3(priorityIcon(priority) + " " + p.T(priorityKey(priority)))
		md.PlainText("")
		md.OrderedList(items...)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [siteaudit](https://github.com/nao1215/siteaudit)*")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
