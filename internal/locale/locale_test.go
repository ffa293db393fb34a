package locale

import (
	"strings"
	"testing"
)

// TestNewPrinter tests language selection and fallback.
func TestNewPrinter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		lang     string
		expected string
	}{
		{"polish", "pl", Polish},
		{"english", "en", English},
		{"unsupported falls back", "de", Default},
		{"empty falls back", "", Default},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NewPrinter(tc.lang).Lang(); got != tc.expected {
				t.Errorf("Lang() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

// TestPrinterT tests message lookup and formatting.
func TestPrinterT(t *testing.T) {
	t.Parallel()

	pl := NewPrinter(Polish)
	en := NewPrinter(English)

	testCases := []struct {
		name     string
		printer  *Printer
		key      Key
		args     []any
		expected string
	}{
		{"polish recommendation", pl, RecImagesAlt, []any{3}, "Dodać tekst alternatywny do 3 obrazów"},
		{"english recommendation", en, RecImagesAlt, []any{3}, "Add alternative text to 3 images"},
		{"polish plain", pl, RecHTTPS, nil, "Wdrożyć HTTPS na całej stronie"},
		{"english plain", en, RecCSP, nil, "Configure a Content Security Policy"},
		{"title with url", en, ReportTitle, []any{"https://example.pl"}, "Comprehensive accessibility and performance analysis: https://example.pl"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.printer.T(tc.key, tc.args...); got != tc.expected {
				t.Errorf("T(%q) = %q, expected %q", tc.key, got, tc.expected)
			}
		})
	}
}

// TestPrinterUpper tests locale-aware upper casing of headings.
func TestPrinterUpper(t *testing.T) {
	t.Parallel()

	if got := NewPrinter(Polish).Upper(Accessibility); got != "DOSTĘPNOŚĆ" {
		t.Errorf("Upper() = %q, expected DOSTĘPNOŚĆ", got)
	}
	if got := NewPrinter(English).Upper(Security); got != "SECURITY" {
		t.Errorf("Upper() = %q, expected SECURITY", got)
	}
}

// TestPrinterNumbers tests locale-aware decimal separators.
func TestPrinterNumbers(t *testing.T) {
	t.Parallel()

	if got := NewPrinter(Polish).T(Days, 5); got != "5 dni" {
		t.Errorf("T(Days) = %q", got)
	}
	if got := NewPrinter(Polish).printer.Sprintf("%.1f", 3.5); !strings.Contains(got, "3,5") {
		t.Errorf("expected decimal comma, got %q", got)
	}
	if got := NewPrinter(English).printer.Sprintf("%.1f", 3.5); got != "3.5" {
		t.Errorf("expected decimal point, got %q", got)
	}
}

// TestCatalogComplete tests that every key has both translations.
func TestCatalogComplete(t *testing.T) {
	t.Parallel()

	seen := make(map[Key]bool, len(entries))
	for _, e := range entries {
		if seen[e.key] {
			t.Errorf("duplicate key %q", e.key)
		}
		seen[e.key] = true
		if e.pl == "" || e.en == "" {
			t.Errorf("key %q is missing a translation", e.key)
		}
		if strings.Count(e.pl, "%") != strings.Count(e.en, "%") {
			t.Errorf("key %q has mismatched verbs", e.key)
		}
	}
}

// TestYesNo tests localized booleans.
func TestYesNo(t *testing.T) {
	t.Parallel()

	if got := NewPrinter(Polish).YesNo(true); got != "Tak" {
		t.Errorf("YesNo(true) = %q", got)
	}
	if got := NewPrinter(English).YesNo(false); got != "No" {
		t.Errorf("YesNo(false) = %q", got)
	}
	if got := Languages(); len(got) != 2 || got[0] != "en" || got[1] != "pl" {
		t.Errorf("Languages() = %v", got)
	}
	if Supported("fr") || !Supported("en") {
		t.Error("Supported() mismatch")
	}
}
