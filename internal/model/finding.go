package model

// Finding represents a single issue found during an audit.
type Finding struct {
	// Type is the finding type identifier, a key of findingInfoMapping.
	Type string `json:"type"`

	// Category groups findings in reports (performance, accessibility, ...).
	Category string `json:"category"`

	// Severity is the impact level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Impact explains who is affected and how.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Value is the offending value (header name, image URL, tag, ...).
	Value string `json:"value,omitempty"`

	// Location is where the finding was discovered.
	Location string `json:"location,omitempty"`
}

// Key identifies a finding across audits for comparison.
func (f Finding) Key() string {
	return f.Type + "|" + f.Value
}

// Summary aggregates the findings of an audit by severity.
type Summary struct {
	CriticalCount int `json:"critical_count"`
	HighCount     int `json:"high_count"`
	MediumCount   int `json:"medium_count"`
	LowCount      int `json:"low_count"`
	InfoCount     int `json:"info_count"`

	// Findings contains all findings in discovery order.
	Findings []Finding `json:"findings,omitempty"`

	// PagesChecked is the number of pages visited by the link checker.
	PagesChecked int `json:"pages_checked"`
}

// add appends f unless an equal finding (type, value, location) exists and
// updates the severity counters.
func (s *Summary) add(f Finding) bool {
	for _, existing := range s.Findings {
		if existing.Type == f.Type && existing.Value == f.Value && existing.Location == f.Location {
			return false
		}
	}

	s.Findings = append(s.Findings, f)

	switch f.Severity {
	case SeverityCritical:
		s.CriticalCount++
	case SeverityHigh:
		s.HighCount++
	case SeverityMedium:
		s.MediumCount++
	case SeverityLow:
		s.LowCount++
	case SeverityInfo:
		s.InfoCount++
	}
	return true
}

// TotalFindings returns the total number of findings.
func (s *Summary) TotalFindings() int {
	return len(s.Findings)
}

// HasFindings returns true if there are any findings.
func (s *Summary) HasFindings() bool {
	return len(s.Findings) > 0
}

// GetFindingsBySeverity returns findings filtered by severity.
func (s *Summary) GetFindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range s.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}

// GetFindingsByCategory returns findings filtered by category.
func (s *Summary) GetFindingsByCategory(category string) []Finding {
	var result []Finding
	for _, f := range s.Findings {
		if f.Category == category {
			result = append(result, f)
		}
	}
	return result
}
