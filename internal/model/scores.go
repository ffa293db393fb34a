package model

// Scores holds the computed category scores (0-100) and the weighted overall score.
type Scores struct {
	Performance   float64 `json:"performance"`
	Accessibility float64 `json:"accessibility"`
	Security      float64 `json:"security"`
	Overall       float64 `json:"overall"`
	Grade         string  `json:"grade"`
}

// Grade maps a 0-100 score to a letter.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// Priority is a recommendation group.
type Priority string

// Recommendation priorities, most urgent first.
const (
	PriorityCritical  Priority = "critical"
	PriorityImportant Priority = "important"
	PriorityMinor     Priority = "minor"
)

// Priorities lists the recommendation groups in display order.
var Priorities = []Priority{PriorityCritical, PriorityImportant, PriorityMinor}

// Recommendations groups localized advice by priority.
type Recommendations struct {
	Critical  []string `json:"critical"`
	Important []string `json:"important"`
	Minor     []string `json:"minor"`
}

// ByPriority returns the recommendations of one group.
func (r Recommendations) ByPriority(p Priority) []string {
	switch p {
	case PriorityCritical:
		return r.Critical
	case PriorityImportant:
		return r.Important
	case PriorityMinor:
		return r.Minor
	default:
		return nil
	}
}

// Total returns the number of recommendations across all groups.
func (r Recommendations) Total() int {
	return len(r.Critical) + len(r.Important) + len(r.Minor)
}
