package main

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/nao1215/siteaudit/internal/config"
	"github.com/nao1215/siteaudit/internal/database"
	"github.com/nao1215/siteaudit/internal/model"
)

// ErrNotEnoughAudits is returned when a host has fewer than two stored audits.
var ErrNotEnoughAudits = errors.New("at least 2 audits are required for comparison")

// Risk directions of a comparison.
const (
	riskDirectionWorsened  = "worsened"
	riskDirectionImproved  = "improved"
	riskDirectionUnchanged = "unchanged"
	noFindingsMessage      = "No findings"
)

// Comparison output formats.
const (
	compareFormatText     = "text"
	compareFormatMarkdown = "markdown"
	compareFormatJSON     = "json"
)

const defaultHistoryLimit = 20

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [url]",
		Short: "Compare the latest audits of a site",
		Long: `Compare loads the two most recent audits of a site from the history
database and shows:
- How each category score and the overall grade changed
- Findings that appeared since the previous audit
- Findings that were resolved

The argument may be a URL or a bare host name. Run 'siteaudit scan' at least
twice for the site first.

Examples:
  # Compare the latest two audits
  siteaudit compare https://www.example.com

  # Markdown output for a pull request or wiki page
  siteaudit compare -f markdown www.example.com

  # List the stored audits of a site (all sites without an argument)
  siteaudit compare --list www.example.com

  # Remove audits older than 90 days
  siteaudit compare --prune 2160h`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().StringP("format", "f", compareFormatText, "Output format: text, markdown or json")
	cmd.Flags().BoolP("list", "l", false, "List stored audits instead of comparing")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of audits listed by --list (0 for all)")
	cmd.Flags().Duration("prune", 0, "Delete audits older than this age before anything else")
	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data directory)")

	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if !slices.Contains([]string{compareFormatText, compareFormatMarkdown, compareFormatJSON}, format) {
		return fmt.Errorf("unknown compare format %q: must be text, markdown or json", format)
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	prune, err := cmd.Flags().GetDuration("prune")
	if err != nil {
		return err
	}

	var host string
	if len(args) > 0 {
		host, err = hostOf(args[0])
		if err != nil {
			return err
		}
	} else if !list && prune <= 0 {
		return errors.New("a URL or host is required (use --list to see stored audits)")
	}

	cfg := config.NewConfig()
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := stringFlag(cmd, "db-dir", &cfg.DBDir); err != nil {
		return err
	}

	// Comparing never creates an empty database.
	db, err := database.Open(cfg.DBDir, database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open audit history: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if prune > 0 {
		removed, err := db.DeleteOlderThan(ctx, time.Now().Add(-prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d audits older than %s\n", removed, prune)
		if host == "" && !list {
			return nil
		}
	}

	if list {
		return listAuditHistory(ctx, out, db, host, limit)
	}

	result, err := compareLatest(ctx, db, host)
	if err != nil {
		return err
	}

	switch format {
	case compareFormatJSON:
		return outputComparisonJSON(out, result)
	case compareFormatMarkdown:
		return outputComparisonMarkdown(out, result)
	default:
		outputComparisonText(out, result)
		return nil
	}
}

// hostOf extracts the lower-cased host name of a URL or bare host.
func hostOf(arg string) (string, error) {
	u, err := url.Parse(normalizeTarget(arg))
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", config.ErrInvalidTarget, arg)
	}
	return strings.ToLower(u.Hostname()), nil
}

// listAuditHistory prints stored audits, newest first.
func listAuditHistory(ctx context.Context, out io.Writer, db *database.AuditDB, host string, limit int) error {
	records, err := db.ListAudits(ctx, host, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No audits found in the history database.")
		fmt.Fprintln(out, "\nUse 'siteaudit scan <url>' to audit a site.")
		return nil
	}

	if host != "" {
		fmt.Fprintf(out, "Audit history for %s (%d audits):\n\n", host, len(records))
	} else {
		fmt.Fprintf(out, "Audit history (%d audits):\n\n", len(records))
	}
	fmt.Fprintf(out, "  %-8s  %-19s  %-30s  %-12s  %s\n", "ID", "Date", "Host", "Score", "Findings")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 90))
	for _, rec := range records {
		fmt.Fprintf(out, "  %-8s  %-19s  %-30s  %-12s  %s\n",
			shortID(rec.ID),
			rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(rec.Host, 30),
			fmt.Sprintf("%.1f (%s)", rec.Scores.Overall, rec.Scores.Grade),
			formatRiskSummary(rec.FindingsBySeverity),
		)
	}

	fmt.Fprintln(out, "\nUse 'siteaudit compare <url>' to compare the latest two audits.")
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// formatRiskSummary formats severity counts as "C:1 H:2 ...".
func formatRiskSummary(counts map[model.Severity]int) string {
	var parts []string
	for _, sev := range []model.Severity{
		model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow, model.SeverityInfo,
	} {
		if v := counts[sev]; v > 0 {
			parts = append(parts, fmt.Sprintf("%c:%d", sev.String()[0], v))
		}
	}
	if len(parts) == 0 {
		return noFindingsMessage
	}
	return strings.Join(parts, " ")
}

// compareLatest compares the two newest audits of host.
func compareLatest(ctx context.Context, db *database.AuditDB, host string) (*ComparisonResult, error) {
	reports, err := db.GetLatestAudits(ctx, host, 2)
	if err != nil {
		return nil, err
	}
	if len(reports) < 2 {
		return nil, fmt.Errorf("%w for %s (found %d)", ErrNotEnoughAudits, host, len(reports))
	}
	return compareReports(reports[1], reports[0]), nil
}

// ComparisonResult holds the result of comparing two audits of one host.
type ComparisonResult struct {
	// Host is the audited host.
	Host string `json:"host"`

	// Previous describes the older audit.
	Previous AuditSnapshot `json:"previous"`

	// Current describes the newer audit.
	Current AuditSnapshot `json:"current"`

	// ScoreDelta is current minus previous for every score.
	ScoreDelta ScoreDelta `json:"score_delta"`

	// NewFindings appear only in the current audit.
	NewFindings []model.Finding `json:"new_findings,omitempty"`

	// ResolvedFindings appear only in the previous audit.
	ResolvedFindings []model.Finding `json:"resolved_findings,omitempty"`

	// UnchangedCount is the number of findings present in both audits.
	UnchangedCount int `json:"unchanged_count"`

	// RiskChange summarizes the change in finding severities.
	RiskChange RiskChange `json:"risk_change"`
}

// AuditSnapshot is the part of an audit shown in a comparison.
type AuditSnapshot struct {
	ID            string       `json:"id"`
	URL           string       `json:"url"`
	Timestamp     time.Time    `json:"timestamp"`
	Scores        model.Scores `json:"scores"`
	TotalFindings int          `json:"total_findings"`
	CriticalCount int          `json:"critical_count"`
	HighCount     int          `json:"high_count"`
	MediumCount   int          `json:"medium_count"`
	LowCount      int          `json:"low_count"`
	InfoCount     int          `json:"info_count"`
}

// ScoreDelta holds score differences between two audits.
type ScoreDelta struct {
	Performance   float64 `json:"performance"`
	Accessibility float64 `json:"accessibility"`
	Security      float64 `json:"security"`
	Overall       float64 `json:"overall"`
}

// RiskChange describes the change in risk between audits.
type RiskChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	CriticalDelta int `json:"critical_delta"`
	HighDelta     int `json:"high_delta"`
	MediumDelta   int `json:"medium_delta"`
	LowDelta      int `json:"low_delta"`
	InfoDelta     int `json:"info_delta"`
}

func newSnapshot(r *model.AuditReport) AuditSnapshot {
	s := r.Summary
	return AuditSnapshot{
		ID:            r.ID,
		URL:           r.URL,
		Timestamp:     r.Timestamp,
		Scores:        r.Scores,
		TotalFindings: s.TotalFindings(),
		CriticalCount: s.CriticalCount,
		HighCount:     s.HighCount,
		MediumCount:   s.MediumCount,
		LowCount:      s.LowCount,
		InfoCount:     s.InfoCount,
	}
}

// compareReports diffs two audits. Findings are matched by Finding.Key.
func compareReports(previous, current *model.AuditReport) *ComparisonResult {
	result := &ComparisonResult{
		Host:     current.Host,
		Previous: newSnapshot(previous),
		Current:  newSnapshot(current),
		ScoreDelta: ScoreDelta{
			Performance:   current.Scores.Performance - previous.Scores.Performance,
			Accessibility: current.Scores.Accessibility - previous.Scores.Accessibility,
			Security:      current.Scores.Security - previous.Scores.Security,
			Overall:       current.Scores.Overall - previous.Scores.Overall,
		},
	}

	previousFindings := make(map[string]model.Finding)
	for _, f := range previous.Summary.Findings {
		previousFindings[f.Key()] = f
	}
	currentFindings := make(map[string]model.Finding)
	for _, f := range current.Summary.Findings {
		currentFindings[f.Key()] = f
	}

	for key, f := range currentFindings {
		if _, ok := previousFindings[key]; !ok {
			result.NewFindings = append(result.NewFindings, f)
		}
	}
	for key, f := range previousFindings {
		if _, ok := currentFindings[key]; ok {
			result.UnchangedCount++
		} else {
			result.ResolvedFindings = append(result.ResolvedFindings, f)
		}
	}
	slices.SortFunc(result.NewFindings, compareFindings)
	slices.SortFunc(result.ResolvedFindings, compareFindings)

	result.RiskChange = calculateRiskChange(result.Previous, result.Current)
	return result
}

// compareFindings orders by severity, most severe first, then by key.
func compareFindings(a, b model.Finding) int {
	if c := cmp.Compare(b.Severity, a.Severity); c != 0 {
		return c
	}
	return cmp.Compare(a.Key(), b.Key())
}

// calculateRiskChange weighs each severity with Severity.Weight.
func calculateRiskChange(previous, current AuditSnapshot) RiskChange {
	change := RiskChange{
		CriticalDelta: current.CriticalCount - previous.CriticalCount,
		HighDelta:     current.HighCount - previous.HighCount,
		MediumDelta:   current.MediumCount - previous.MediumCount,
		LowDelta:      current.LowCount - previous.LowCount,
		InfoDelta:     current.InfoCount - previous.InfoCount,
	}

	prevRisk, curRisk := riskScore(previous), riskScore(current)
	switch {
	case curRisk < prevRisk:
		change.Direction = riskDirectionImproved
	case curRisk > prevRisk:
		change.Direction = riskDirectionWorsened
	default:
		change.Direction = riskDirectionUnchanged
	}
	return change
}

func riskScore(s AuditSnapshot) int {
	return s.CriticalCount*model.SeverityCritical.Weight() +
		s.HighCount*model.SeverityHigh.Weight() +
		s.MediumCount*model.SeverityMedium.Weight() +
		s.LowCount*model.SeverityLow.Weight() +
		s.InfoCount*model.SeverityInfo.Weight()
}

func outputComparisonJSON(out io.Writer, result *ComparisonResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// severityRows returns label, previous, current and delta per severity.
func severityRows(result *ComparisonResult) [][]string {
	p, c, d := result.Previous, result.Current, result.RiskChange
	row := func(label string, prev, cur, delta int) []string {
		return []string{label, strconv.Itoa(prev), strconv.Itoa(cur), formatDelta(delta)}
	}
	return [][]string{
		row("Critical", p.CriticalCount, c.CriticalCount, d.CriticalDelta),
		row("High", p.HighCount, c.HighCount, d.HighDelta),
		row("Medium", p.MediumCount, c.MediumCount, d.MediumDelta),
		row("Low", p.LowCount, c.LowCount, d.LowDelta),
		row("Info", p.InfoCount, c.InfoCount, d.InfoDelta),
		row("Total", p.TotalFindings, c.TotalFindings, c.TotalFindings-p.TotalFindings),
	}
}

// scoreRows returns label, previous, current and delta per score.
func scoreRows(result *ComparisonResult) [][]string {
	p, c, d := result.Previous.Scores, result.Current.Scores, result.ScoreDelta
	row := func(label string, prev, cur, delta float64) []string {
		return []string{label, fmt.Sprintf("%.1f", prev), fmt.Sprintf("%.1f", cur), formatScoreDelta(delta)}
	}
	return [][]string{
		row("Performance", p.Performance, c.Performance, d.Performance),
		row("Accessibility", p.Accessibility, c.Accessibility, d.Accessibility),
		row("Security", p.Security, c.Security, d.Security),
		row("Overall", p.Overall, c.Overall, d.Overall),
		{"Grade", p.Grade, c.Grade, "-"},
	}
}

func outputComparisonMarkdown(out io.Writer, result *ComparisonResult) error {
	md := markdown.NewMarkdown(out)

	md.H1("Audit Comparison: " + result.Host)
	md.PlainText("")
	md.PlainTextf("**Risk Status:** %s", formatRiskDirection(result.RiskChange.Direction))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Audit", "Date", "URL"},
		Rows: [][]string{
			{"Previous", result.Previous.Timestamp.Format("2006-01-02 15:04"), result.Previous.URL},
			{"Current", result.Current.Timestamp.Format("2006-01-02 15:04"), result.Current.URL},
		},
	})
	md.PlainText("")

	md.H2("Scores")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Score", "Previous", "Current", "Change"},
		Rows:   scoreRows(result),
	})
	md.PlainText("")

	md.H2("Findings")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Previous", "Current", "Change"},
		Rows:   severityRows(result),
	})
	md.PlainText("")

	if len(result.NewFindings) > 0 {
		md.H2(fmt.Sprintf("New Findings (%d)", len(result.NewFindings)))
		md.PlainText("")
		items := make([]string, len(result.NewFindings))
		for i, f := range result.NewFindings {
			items[i] = fmt.Sprintf("**[%s]** %s: %s", f.SeverityText, f.Title, f.Value)
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if len(result.ResolvedFindings) > 0 {
		md.H2(fmt.Sprintf("Resolved Findings (%d)", len(result.ResolvedFindings)))
		md.PlainText("")
		items := make([]string, len(result.ResolvedFindings))
		for i, f := range result.ResolvedFindings {
			items[i] = fmt.Sprintf("~~**[%s]** %s: %s~~", f.SeverityText, f.Title, f.Value)
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if result.UnchangedCount > 0 {
		md.HorizontalRule()
		md.PlainText("")
		md.PlainTextf("*%d findings unchanged*", result.UnchangedCount)
	}

	return md.Build()
}

func outputComparisonText(out io.Writer, result *ComparisonResult) {
	fmt.Fprintf(out, "Audit Comparison: %s\n", result.Host)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nRisk Status: %s\n", formatRiskDirection(result.RiskChange.Direction))
	fmt.Fprintf(out, "\nPrevious audit: %s\n", result.Previous.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Current audit:  %s\n", result.Current.Timestamp.Local().Format("2006-01-02 15:04:05"))

	printTable := func(title, column string, rows [][]string) {
		fmt.Fprintf(out, "\n%s:\n", title)
		fmt.Fprintf(out, "  %-14s  %-10s  %-10s  %-10s\n", column, "Previous", "Current", "Change")
		fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
		for _, r := range rows {
			fmt.Fprintf(out, "  %-14s  %-10s  %-10s  %-10s\n", r[0], r[1], r[2], r[3])
		}
	}
	printTable("Scores", "Score", scoreRows(result))
	printTable("Findings", "Severity", severityRows(result))

	if len(result.NewFindings) > 0 {
		fmt.Fprintf(out, "\nNew Findings (%d):\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Fprintf(out, "  [+] [%s] %s: %s\n", f.SeverityText, f.Title, f.Value)
			if f.Location != "" {
				fmt.Fprintf(out, "      Location: %s\n", f.Location)
			}
		}
	}

	if len(result.ResolvedFindings) > 0 {
		fmt.Fprintf(out, "\nResolved Findings (%d):\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Fprintf(out, "  [-] [%s] %s: %s\n", f.SeverityText, f.Title, f.Value)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d findings\n", result.UnchangedCount)
	}
}

func formatRiskDirection(direction string) string {
	switch direction {
	case riskDirectionImproved:
		return "IMPROVED (risk decreased)"
	case riskDirectionWorsened:
		return "WORSENED (risk increased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a count change with its sign.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

func formatScoreDelta(delta float64) string {
	switch {
	case math.Abs(delta) < 0.05:
		return "0.0"
	case delta > 0:
		return fmt.Sprintf("+%.1f", delta)
	default:
		return fmt.Sprintf("%.1f", delta)
	}
}
