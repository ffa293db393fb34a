package report

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nao1215/siteaudit/internal/locale"
	"github.com/nao1215/siteaudit/internal/model"
)

// severities lists severity levels from most to least urgent.
var severities = []model.Severity{
	model.SeverityCritical,
	model.SeverityHigh,
	model.SeverityMedium,
	model.SeverityLow,
	model.SeverityInfo,
}

var headingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// formatCounts renders a count map as "a: 1, b: 2" in key order.
func formatCounts(counts map[string]int) string {
	parts := make([]string, 0, len(counts))
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		if counts[k] == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}

func isPresent(value string) bool {
	return value != "" && value != model.Missing
}

// presence returns the localized present or absent label.
func presence(p *locale.Printer, value string) string {
	if isPresent(value) {
		return checkMark + " " + p.T(locale.Present)
	}
	return crossMark + " " + p.T(locale.Absent)
}

// orMissing returns value or the localized absent label.
func orMissing(p *locale.Printer, value string) string {
	if isPresent(value) {
		return value
	}
	return p.T(locale.Absent)
}

func exifSummary(img model.ImageExif) string {
	var parts []string
	if img.HasGPS {
		parts = append(parts, "GPS")
	}
	if img.SerialNumber != "" {
		parts = append(parts, "serial "+img.SerialNumber)
	}
	if img.Author != "" {
		parts = append(parts, "author "+img.Author)
	}
	if img.Camera != "" {
		parts = append(parts, img.Camera)
	}
	if img.Software != "" {
		parts = append(parts, img.Software)
	}
	return strings.Join(parts, ", ")
}

func priorityIcon(p model.Priority) string {
	switch p {
	case model.PriorityCritical:
		return "🔴"
	case model.PriorityImportant:
		return "🟡"
	default:
		return "🟢"
	}
}

func priorityKey(p model.Priority) locale.Key {
	switch p {
	case model.PriorityCritical:
		return locale.PriorityCritical
	case model.PriorityImportant:
		return locale.PriorityImportant
	default:
		return locale.PriorityMinor
	}
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
