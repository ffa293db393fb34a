package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// TestNewAuditReport tests the AuditReport constructor.
func TestNewAuditReport(t *testing.T) {
	t.Parallel()

	report := NewAuditReport("https://www.example.com/path?q=1", "en")

	t.Run("sets URL and host", func(t *testing.T) {
		t.Parallel()
		if report.URL != "https://www.example.com/path?q=1" {
			t.Errorf("URL = %q", report.URL)
		}
		if report.Host != "www.example.com" {
			t.Errorf("Host = %q, expected www.example.com", report.Host)
		}
	})

	t.Run("assigns an audit ID", func(t *testing.T) {
		t.Parallel()
		if len(report.ID) != 36 {
			t.Errorf("expected UUID string, got %q", report.ID)
		}
	})

	t.Run("sets timestamp", func(t *testing.T) {
		t.Parallel()
		if time.Since(report.Timestamp) > time.Second {
			t.Error("Timestamp is too old")
		}
	})

	t.Run("IDs are unique", func(t *testing.T) {
		t.Parallel()
		other := NewAuditReport("https://www.example.com", "en")
		if other.ID == report.ID {
			t.Error("expected distinct IDs")
		}
	})
}

// TestNewAuditReportInvalidURL tests that an unparsable URL is kept as host.
func TestNewAuditReportLowercasesHost(t *testing.T) {
	t.Parallel()

	report := NewAuditReport("https://WWW.Example.com/Path", "pl")
	if report.Host != "www.example.com" {
		t.Errorf("Host = %q, expected www.example.com", report.Host)
	}
	if report.URL != "https://WWW.Example.com/Path" {
		t.Errorf("URL = %q, expected the URL as given", report.URL)
	}
}

func TestNewAuditReportInvalidURL(t *testing.T) {
	t.Parallel()

	report := NewAuditReport("not a url", "pl")
	if report.Host != "not a url" {
		t.Errorf("Host = %q", report.Host)
	}
}

// TestAuditReportAddFinding tests finding aggregation and deduplication.
func TestAuditReportAddFinding(t *testing.T) {
	t.Parallel()

	report := NewAuditReport("https://example.com", "en")

	report.AddFinding(NewFinding(FindingImagesNoAlt, "Images without alt", "3", ""))
	report.AddFinding(NewFinding(FindingImagesNoAlt, "Images without alt", "3", ""))
	report.AddFinding(NewFinding(FindingExifGPS, "GPS", "https://example.com/a.jpg", ""))
	report.AddFinding(NewFinding(FindingMissingCanonical, "No canonical", "", ""))
	report.AddFinding(NewFinding(FindingNoSkipLinks, "No skip links", "", ""))
	report.AddFinding(NewFinding(FindingNoLang, "No lang", "", ""))

	s := report.Summary
	if s.TotalFindings() != 5 {
		t.Fatalf("TotalFindings() = %d, expected 5", s.TotalFindings())
	}
	if s.CriticalCount != 1 || s.HighCount != 1 || s.MediumCount != 1 || s.LowCount != 1 || s.InfoCount != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if got := len(s.GetFindingsBySeverity(SeverityHigh)); got != 1 {
		t.Errorf("GetFindingsBySeverity(HIGH) = %d, expected 1", got)
	}
	if got := len(s.GetFindingsByCategory(CategoryAccessibility)); got != 3 {
		t.Errorf("GetFindingsByCategory(accessibility) = %d, expected 3", got)
	}
	if !s.HasFindings() {
		t.Error("expected HasFindings")
	}
}

// TestAuditReportCrawledPages tests link-check bookkeeping.
func TestAuditReportCrawledPages(t *testing.T) {
	t.Parallel()

	report := NewAuditReport("https://example.com", "en")
	report.AddCrawledPage(CrawledPage{URL: "https://example.com/", StatusCode: 200})
	report.AddCrawledPage(CrawledPage{URL: "https://example.com/gone", StatusCode: 404})
	report.AddCrawledPage(CrawledPage{URL: "https://example.com/down", Error: "timeout"})

	if report.Summary.PagesChecked != 3 {
		t.Errorf("PagesChecked = %d, expected 3", report.Summary.PagesChecked)
	}
	if got := len(report.BrokenLinks()); got != 2 {
		t.Errorf("BrokenLinks() = %d, expected 2", got)
	}
}

// TestAuditReportSetError tests error recording.
func TestAuditReportSetError(t *testing.T) {
	t.Parallel()

	report := NewAuditReport("https://example.com", "en")
	report.SetError(errors.New("fetch failed"))

	if report.ErrorMessage != "fetch failed" {
		t.Errorf("ErrorMessage = %q", report.ErrorMessage)
	}

	report.SetError(nil)
	if report.Error != nil {
		t.Error("expected nil Error")
	}
}

// TestAuditReportJSONKeys tests the stable JSON layout of a report.
func TestAuditReportJSONKeys(t *testing.T) {
	t.Parallel()

	report := NewAuditReport("https://example.com", "en")
	report.Page = &Page{Raw: []byte("<html>secret body</html>")}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)

	for _, key := range []string{
		`"performance"`, `"accessibility"`, `"security"`, `"usability"`,
		`"loading"`, `"wcag_compliance"`, `"mixed_content"`, `"readability"`,
		`"scores"`, `"recommendations"`,
	} {
		if !strings.Contains(out, key) {
			t.Errorf("expected key %s in JSON", key)
		}
	}
	if strings.Contains(out, "secret body") {
		t.Error("raw body must not be serialized")
	}
}

// TestGrade tests score to letter mapping.
func TestGrade(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		score    float64
		expected string
	}{
		{100, "A"},
		{90, "A"},
		{89.9, "B"},
		{80, "B"},
		{70, "C"},
		{60, "D"},
		{59.9, "F"},
		{0, "F"},
	}

	for _, tc := range testCases {
		if got := Grade(tc.score); got != tc.expected {
			t.Errorf("Grade(%v) = %q, expected %q", tc.score, got, tc.expected)
		}
	}
}

// TestSecurityRating tests score to rating mapping.
func TestSecurityRating(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		score    int
		expected string
	}{
		{100, "Excellent"},
		{90, "Excellent"},
		{75, "Good"},
		{50, "Fair"},
		{25, "Poor"},
		{24, "Very Poor"},
	}

	for _, tc := range testCases {
		if got := SecurityRating(tc.score); got != tc.expected {
			t.Errorf("SecurityRating(%d) = %q, expected %q", tc.score, got, tc.expected)
		}
	}
}

// TestRecommendations tests priority access.
func TestRecommendations(t *testing.T) {
	t.Parallel()

	r := Recommendations{
		Critical:  []string{"a"},
		Important: []string{"b", "c"},
	}
	if r.Total() != 3 {
		t.Errorf("Total() = %d, expected 3", r.Total())
	}
	if got := r.ByPriority(PriorityImportant); len(got) != 2 {
		t.Errorf("ByPriority(important) = %v", got)
	}
	if got := r.ByPriority(PriorityMinor); got != nil {
		t.Errorf("ByPriority(minor) = %v, expected nil", got)
	}
}

// TestFormMissingLabels tests the label deficit calculation.
func TestFormMissingLabels(t *testing.T) {
	t.Parallel()

	if got := (FormAccessibility{TotalInputs: 5, InputsWithLabels: 2}).MissingLabels(); got != 3 {
		t.Errorf("MissingLabels() = %d, expected 3", got)
	}
	if got := (FormAccessibility{TotalInputs: 2, InputsWithLabels: 2}).MissingLabels(); got != 0 {
		t.Errorf("MissingLabels() = %d, expected 0", got)
	}
}
