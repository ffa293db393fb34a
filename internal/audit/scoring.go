package audit

import "github.com/nao1215/siteaudit/internal/model"

// Overall score weights.
const (
	performanceWeight   = 0.4
	accessibilityWeight = 0.4
	securityWeight      = 0.2
)

// Score computes the category scores, the weighted overall score and the grade
// from a filled report.
func Score(report *model.AuditReport) model.Scores {
	perf := performanceScore(report.Performance.Loading)
	acc := report.Accessibility.WCAG.LevelAA.Percentage
	sec := float64(report.Security.Score)

	overall := round(perf*performanceWeight+acc*accessibilityWeight+sec*securityWeight, 1)
	return model.Scores{
		Performance:   perf,
		Accessibility: acc,
		Security:      sec,
		Overall:       overall,
		Grade:         model.Grade(overall),
	}
}

// performanceScore starts at 100 and subtracts penalties for load time and
// page weight.
func performanceScore(l model.LoadingMetrics) float64 {
	score := 100.0
	switch {
	case l.TotalLoadTime > 3:
		score -= 30
	case l.TotalLoadTime > 2:
		score -= 15
	case l.TotalLoadTime > 1:
		score -= 5
	}
	switch {
	case l.ResponseSizeMB > 2:
		score -= 20
	case l.ResponseSizeMB > 1:
		score -= 10
	}
	return max(score, 0)
}
