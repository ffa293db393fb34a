package model

import "testing"

// TestSeverityString tests the String method of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityInfo, "INFO"},
		{SeverityLow, "LOW"},
		{SeverityMedium, "MEDIUM"},
		{SeverityHigh, "HIGH"},
		{SeverityCritical, "CRITICAL"},
		{Severity(999), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

// TestSeverityWeight tests the comparison risk weights.
func TestSeverityWeight(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected int
	}{
		{SeverityCritical, 100},
		{SeverityHigh, 50},
		{SeverityMedium, 10},
		{SeverityLow, 5},
		{SeverityInfo, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.severity.String(), func(t *testing.T) {
			t.Parallel()
			if got := tc.severity.Weight(); got != tc.expected {
				t.Errorf("Weight() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

// TestGetSeverity tests the GetSeverity function.
func TestGetSeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		findingType string
		expected    Severity
	}{
		// Critical findings
		{FindingExifGPS, SeverityCritical},
		{FindingCertRevoked, SeverityCritical},

		// High findings
		{FindingSlowLoad, SeverityHigh},
		{FindingImagesNoAlt, SeverityHigh},
		{FindingInputsNoLabel, SeverityHigh},
		{FindingNoViewport, SeverityHigh},

		// Medium findings
		{FindingLargePage, SeverityMedium},
		{FindingMissingTitle, SeverityMedium},
		{FindingNoLang, SeverityMedium},

		// Low findings
		{FindingImagesNoDimensions, SeverityLow},
		{FindingMissingDescription, SeverityLow},
		{FindingNoSkipLinks, SeverityLow},
		{FindingServerDisclosure, SeverityLow},

		// Info findings
		{FindingNoModernImages, SeverityInfo},
		{FindingMissingCanonical, SeverityInfo},

		// Unknown finding type defaults to Info
		{"unknown_type", SeverityInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.findingType, func(t *testing.T) {
			t.Parallel()
			result := GetSeverity(tc.findingType)
			if result != tc.expected {
				t.Errorf("GetSeverity(%q) = %v, expected %v", tc.findingType, result, tc.expected)
			}
		})
	}
}

// TestSeverityOrdering tests that severity levels are ordered correctly.
func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	ordered := []Severity{SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("expected %v < %v", ordered[i-1], ordered[i])
		}
	}
}

// TestGetFindingInfo tests the GetFindingInfo function.
func TestGetFindingInfo(t *testing.T) {
	t.Parallel()

	t.Run("returns correct info for known finding type", func(t *testing.T) {
		t.Parallel()

		info := GetFindingInfo(FindingExifGPS)

		if info.Severity != SeverityCritical {
			t.Errorf("expected SeverityCritical, got %v", info.Severity)
		}
		if info.Category != CategoryPrivacy {
			t.Errorf("expected category %q, got %q", CategoryPrivacy, info.Category)
		}
	})

	t.Run("returns default info for unknown finding type", func(t *testing.T) {
		t.Parallel()

		info := GetFindingInfo("completely_unknown_type")

		if info.Severity != SeverityInfo {
			t.Errorf("expected SeverityInfo for unknown type, got %v", info.Severity)
		}
		if info.Impact == "" || info.Recommendation == "" {
			t.Error("expected non-empty default Impact and Recommendation")
		}
	})
}

// TestFindingInfoMappingCompleteness tests that all finding types have proper info.
func TestFindingInfoMappingCompleteness(t *testing.T) {
	t.Parallel()

	for findingType, info := range findingInfoMapping {
		t.Run(findingType, func(t *testing.T) {
			t.Parallel()

			if info.Impact == "" {
				t.Errorf("finding type %q has empty Impact", findingType)
			}
			if info.Recommendation == "" {
				t.Errorf("finding type %q has empty Recommendation", findingType)
			}
			if info.Category == "" {
				t.Errorf("finding type %q has empty Category", findingType)
			}
		})
	}
}

// TestNewFinding tests that NewFinding fills metadata from the mapping.
func TestNewFinding(t *testing.T) {
	t.Parallel()

	f := NewFinding(FindingMissingSecurityHeader, "Missing header", "Content-Security-Policy", "https://example.com")

	if f.Severity != SeverityMedium {
		t.Errorf("Severity = %v, expected MEDIUM", f.Severity)
	}
	if f.SeverityText != "MEDIUM" {
		t.Errorf("SeverityText = %q, expected MEDIUM", f.SeverityText)
	}
	if f.Category != CategorySecurity {
		t.Errorf("Category = %q, expected %q", f.Category, CategorySecurity)
	}
	if f.Key() != FindingMissingSecurityHeader+"|Content-Security-Policy" {
		t.Errorf("Key() = %q", f.Key())
	}
}
