package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/siteaudit/internal/model"
)

// ErrUnknownFormat is returned for an output format that has no writer.
var ErrUnknownFormat = errors.New("unknown report format")

// Format names an output format.
type Format string

// Supported output formats.
const (
	FormatSimple   Format = "simple"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatLaTeX    Format = "latex"
)

// Formats lists the supported formats in the order they are written.
var Formats = []Format{FormatSimple, FormatJSON, FormatMarkdown, FormatLaTeX}

// ParseFormat converts a flag value into a Format. "text", "md" and "tex"
// are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "text", "txt", "":
		return FormatSimple, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Writer defines the interface for report output.
// Implementations write audit reports in various formats.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.AuditReport) (int, error)
}

// NewWriter returns the Writer for format writing to output.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatSimple:
		return NewSimpleWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatLaTeX:
		return NewLaTeXWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.AuditReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// fileTimeLayout is the timestamp part of report file names.
const fileTimeLayout = "20060102_150405"

// fileIDLength is how much of the audit ID goes into a file name. Audits of
// one host finishing in the same second still get distinct files.
const fileIDLength = 8

// FileName returns the file name a report of the given format is saved under,
// e.g. comprehensive_report_example.com_20250101_120000_1f0c2a9b.json.
func FileName(format Format, host, auditID string, at time.Time) string {
	host = strings.NewReplacer(":", "_", "/", "_").Replace(host)
	stamp := at.Format(fileTimeLayout)
	if id := auditID[:min(len(auditID), fileIDLength)]; id != "" {
		stamp += "_" + id
	}
	switch format {
	case FormatJSON:
		return fmt.Sprintf("comprehensive_report_%s_%s.json", host, stamp)
	case FormatLaTeX:
		return fmt.Sprintf("raport_latex_%s_%s.tex", host, stamp)
	case FormatMarkdown:
		return fmt.Sprintf("report_%s_%s.md", host, stamp)
	default:
		return fmt.Sprintf("report_%s_%s.txt", host, stamp)
	}
}

// WriteFile saves the report in format under dir and returns the file path.
// The directory is created when missing.
func WriteFile(dir string, format Format, report *model.AuditReport) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(format, report.Host, report.ID, report.Timestamp))
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}

	w, err := NewWriter(format, f)
	if err != nil {
		_ = f.Close()
		return "", err
	}
	if _, err := w.Write(report); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing %s report: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing report file: %w", err)
	}
	return path, nil
}
