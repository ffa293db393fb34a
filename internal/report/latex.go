package report

import (
	_ "embed"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strings"
	"text/template"

	"github.com/nao1215/siteaudit/internal/locale"
	"github.com/nao1215/siteaudit/internal/model"
)

//go:embed templates/report.tex.tmpl
var latexTemplate string

// slowLoadSeconds is the load time the assessment line calls too slow.
const slowLoadSeconds = 2.0

const (
	maxTitleRunes       = 50
	maxHeaderValueRunes = 80
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// urlEscaper prepares a URL for \url inside a macro argument.
var urlEscaper = strings.NewReplacer(`%`, `\%`, `#`, `\#`, `{`, `%7B`, `}`, `%7D`)

// EscapeLaTeX escapes the characters LaTeX treats specially.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

// LaTeXWriter outputs reports as a LaTeX article ready for pdflatex.
type LaTeXWriter struct {
	baseWriter
}

// NewLaTeXWriter creates a LaTeXWriter that outputs to the given writer.
func NewLaTeXWriter(output io.Writer) *LaTeXWriter {
	return &LaTeXWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the report document.
func (w *LaTeXWriter) Write(report *model.AuditReport) (int, error) {
	p := locale.NewPrinter(report.Language)
	tmpl, err := template.New("report").
		Delims("<<", ">>").
		Funcs(latexFuncs(p)).
		Parse(latexTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing latex template: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, newLatexView(report, p)); err != nil {
		return 0, fmt.Errorf("rendering latex template: %w", err)
	}
	return w.output.Write([]byte(sb.String()))
}

func latexFuncs(p *locale.Printer) template.FuncMap {
	mark := func(ok bool) string {
		if ok {
			return `\passmark{}`
		}
		return `\failmark{}`
	}
	return template.FuncMap{
		"esc": EscapeLaTeX,
		"url": urlEscaper.Replace,
		"t": func(key string, args ...any) string {
			return EscapeLaTeX(p.T(locale.Key(key), args...))
		},
		"pct": func(v float64) int {
			return int(math.Round(v))
		},
		"yesno": func(v bool) string {
			return mark(v) + " " + EscapeLaTeX(p.YesNo(v))
		},
		"presence": func(value string) string {
			if isPresent(value) {
				return mark(true) + " " + EscapeLaTeX(p.T(locale.Present))
			}
			return mark(false) + " " + EscapeLaTeX(p.T(locale.Absent))
		},
	}
}

type latexCount struct {
	Name  string
	Count int
}

type latexHeader struct {
	Name    string
	Value   string
	Present bool
}

type latexLink struct {
	URL      string
	Status   string
	Referrer string
}

type latexImage struct {
	URL     string
	Summary string
}

type latexPriority struct {
	Key   string
	Items []string
}

// latexView is the template input: the report plus values the template
// language cannot derive on its own.
type latexView struct {
	R      *model.AuditReport
	Babel  string
	Date   string
	Scores struct {
		Overall       int
		Performance   int
		Accessibility int
		Security      int
	}
	Title          string
	DNS            string
	CertDays       string
	SlowLoad       bool
	LabeledPercent float64
	AltPercent     float64
	Severities     []latexCount
	Formats        []latexCount
	Headings       []latexCount
	Landmarks      []latexCount
	Headers        []latexHeader
	Broken         []latexLink
	ExifImages     []latexImage
	Priorities     []latexPriority
}

func newLatexView(report *model.AuditReport, p *locale.Printer) latexView {
	v := latexView{
		R:        report,
		Babel:    "english",
		Date:     report.Timestamp.Format("2006-01-02 15:04"),
		Title:    truncateString(orMissing(p, report.Performance.SEO.Title), maxTitleRunes),
		SlowLoad: report.Performance.Loading.TotalLoadTime > slowLoadSeconds,
	}
	if p.Lang() == locale.Polish {
		v.Babel = "polish"
	}

	s := report.Scores
	v.Scores.Overall = int(math.Round(s.Overall))
	v.Scores.Performance = int(math.Round(s.Performance))
	v.Scores.Accessibility = int(math.Round(s.Accessibility))
	v.Scores.Security = int(math.Round(s.Security))

	if dns := report.Performance.Loading.DNSLookupTime; dns != nil {
		v.DNS = fmt.Sprintf("%.2f", *dns)
	}
	if days := report.Security.SSLDaysToExpiry; days != nil {
		v.CertDays = EscapeLaTeX(p.T(locale.Days, *days))
	}

	forms := report.Accessibility.Forms
	v.LabeledPercent = float64(forms.InputsWithLabels) / float64(max(forms.TotalInputs, 1)) * 100
	alt := report.Accessibility.ScreenReader.Images
	v.AltPercent = float64(alt.WithAlt) / float64(max(alt.Total, 1)) * 100

	sum := report.Summary
	counts := []int{sum.CriticalCount, sum.HighCount, sum.MediumCount, sum.LowCount, sum.InfoCount}
	for i, sev := range severities {
		v.Severities = append(v.Severities, latexCount{Name: sev.String(), Count: counts[i]})
	}

	v.Formats = sortedCounts(report.Performance.Resources.ImageFormats, strings.ToUpper)
	v.Landmarks = sortedCounts(report.Accessibility.SemanticStructure.HTML5Landmarks, nil)
	for _, level := range headingLevels {
		if h := report.Accessibility.SemanticStructure.Headings[level]; h.Count > 0 {
			v.Headings = append(v.Headings, latexCount{Name: strings.ToUpper(level), Count: h.Count})
		}
	}

	for _, name := range model.SecurityHeaderNames {
		value := report.Security.Headers[name]
		v.Headers = append(v.Headers, latexHeader{
			Name:    name,
			Value:   truncateString(value, maxHeaderValueRunes),
			Present: isPresent(value),
		})
	}

	for _, page := range report.BrokenLinks() {
		status := page.Error
		if status == "" {
			status = fmt.Sprint(page.StatusCode)
		}
		v.Broken = append(v.Broken, latexLink{URL: page.URL, Status: status, Referrer: page.ReferencedBy})
	}

	for _, img := range report.Images.Images {
		if img.HasMetadata() {
			v.ExifImages = append(v.ExifImages, latexImage{URL: img.URL, Summary: exifSummary(img)})
		}
	}

	keys := map[model.Priority]locale.Key{
		model.PriorityCritical:  locale.LatexCriticalIssues,
		model.PriorityImportant: locale.LatexImportant,
		model.PriorityMinor:     locale.LatexMinor,
	}
	for _, priority := range model.Priorities {
		v.Priorities = append(v.Priorities, latexPriority{
			Key:   string(keys[priority]),
			Items: report.Recommendations.ByPriority(priority),
		})
	}
	return v
}

// sortedCounts returns the non-zero entries of counts in key order,
// optionally renaming each key.
func sortedCounts(counts map[string]int, rename func(string) string) []latexCount {
	var out []latexCount
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		if counts[k] == 0 {
			continue
		}
		name := k
		if rename != nil {
			name = rename(k)
		}
		out = append(out, latexCount{Name: name, Count: counts[k]})
	}
	return out
}
