package audit

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/nao1215/siteaudit/internal/model"
)

// MinContrastRatio is the WCAG AA minimum for normal text.
const MinContrastRatio = 4.5

const (
	maxContrastPairs = 10
	maxColors        = 20
)

var (
	backgroundColorPattern = regexp.MustCompile(`background(-color)?:\s*([#0-9a-zA-Z(,)\s.]+)`)
	textColorPattern       = regexp.MustCompile(`color:\s*([#0-9a-zA-Z(,)\s.]+)`)
	linkColorPatterns      = []*regexp.Regexp{
		regexp.MustCompile(`a\s*{[^}]*color:\s*([#0-9a-zA-Z(,)\s.]+)`),
		regexp.MustCompile(`a:link\s*{[^}]*color:\s*([#0-9a-zA-Z(,)\s.]+)`),
	}
	rgbPattern = regexp.MustCompile(`rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
)

// cssColors are the color values declared in a stylesheet, deduplicated in
// first-seen order.
type cssColors struct {
	background []string
	text       []string
	link       []string
}

// extractCSSColors collects background, text and link colors from css.
func extractCSSColors(css string) cssColors {
	var c cssColors
	for _, m := range backgroundColorPattern.FindAllStringSubmatch(css, -1) {
		color := strings.TrimSpace(m[2])
		if color != "" && color != "transparent" && color != "inherit" && color != "initial" {
			c.background = append(c.background, color)
		}
	}
	for _, m := range textColorPattern.FindAllStringSubmatch(css, -1) {
		if color := strings.TrimSpace(m[1]); usableColor(color) {
			c.text = append(c.text, color)
		}
	}
	for _, re := range linkColorPatterns {
		for _, m := range re.FindAllStringSubmatch(css, -1) {
			if color := strings.TrimSpace(m[1]); usableColor(color) {
				c.link = append(c.link, color)
			}
		}
	}
	c.background = dedupe(c.background)
	c.text = dedupe(c.text)
	c.link = dedupe(c.link)
	return c
}

func usableColor(color string) bool {
	return color != "" && color != "inherit" && color != "initial"
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ContrastRatio returns the WCAG contrast ratio of two CSS colors, from 1 to 21.
// Only #rrggbb, #rgb and rgb(r,g,b) are understood. Anything else counts as black.
func ContrastRatio(color1, color2 string) float64 {
	l1 := relativeLuminance(parseColor(color1))
	l2 := relativeLuminance(parseColor(color2))
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// parseColor returns the channels of a color scaled to 0..1.
func parseColor(color string) (float64, float64, float64) {
	if hex, ok := strings.CutPrefix(color, "#"); ok {
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) >= 6 {
			r, errR := strconv.ParseUint(hex[0:2], 16, 8)
			g, errG := strconv.ParseUint(hex[2:4], 16, 8)
			b, errB := strconv.ParseUint(hex[4:6], 16, 8)
			if errR == nil && errG == nil && errB == nil {
				return float64(r) / 255, float64(g) / 255, float64(b) / 255
			}
		}
		return 0, 0, 0
	}
	if m := rgbPattern.FindStringSubmatch(color); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		return float64(r) / 255, float64(g) / 255, float64(b) / 255
	}
	return 0, 0, 0
}

func relativeLuminance(r, g, b float64) float64 {
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

func linearize(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// analyzeContrast pairs every background with every text color.
func analyzeContrast(css string) model.ColorContrast {
	colors := extractCSSColors(css)
	result := model.ColorContrast{
		Issues:           []model.ContrastPair{},
		CompliantPairs:   []model.ContrastPair{},
		BackgroundColors: limit(colors.background, maxColors),
		TextColors:       limit(colors.text, maxColors),
		LinkColors:       limit(colors.link, maxColors),
	}

	for _, bg := range colors.background {
		for _, fg := range colors.text {
			pair := model.ContrastPair{
				Background: bg,
				Text:       fg,
				Ratio:      round(ContrastRatio(bg, fg), 2),
			}
			if ContrastRatio(bg, fg) < MinContrastRatio {
				result.HasIssues = true
				if len(result.Issues) < maxContrastPairs {
					result.Issues = append(result.Issues, pair)
				}
			} else if len(result.CompliantPairs) < maxContrastPairs {
				result.CompliantPairs = append(result.CompliantPairs, pair)
			}
		}
	}
	return result
}

func limit[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
