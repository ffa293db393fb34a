package audit

import "github.com/nao1215/siteaudit/internal/model"

// Level totals and the points granted without an automated check.
const (
	wcagLevelATotal     = 10
	wcagLevelABaseline  = 6
	wcagLevelAATotal    = 15
	wcagLevelAABaseline = 2
	wcagPassRatio       = 0.8
)

// computeWCAG scores the simplified level A and AA criteria from the other
// accessibility results. Level AA starts from the level A score.
func computeWCAG(acc *model.AccessibilityReport) model.WCAGCompliance {
	a := wcagLevelABaseline
	if acc.SemanticStructure.LangAttribute != model.Missing {
		a++
	}
	if acc.ScreenReader.Images.WithoutAlt == 0 {
		a++
	}
	if !acc.SemanticStructure.HeadingHierarchyIssues {
		a++
	}
	if acc.Forms.TotalInputs > 0 && acc.Forms.InputsWithLabels == acc.Forms.TotalInputs {
		a++
	}

	aa := a + wcagLevelAABaseline
	if !acc.ColorContrast.HasIssues {
		aa++
	}
	if len(acc.KeyboardNavigation.TabindexIssues) == 0 {
		aa++
	}

	return model.WCAGCompliance{
		LevelA:  wcagLevel(a, wcagLevelATotal),
		LevelAA: wcagLevel(aa, wcagLevelAATotal),
	}
}

func wcagLevel(score, total int) model.WCAGLevel {
	return model.WCAGLevel{
		Score:      score,
		Total:      total,
		Percentage: round(float64(score)/float64(total)*100, 1),
		Passed:     float64(score) >= float64(total)*wcagPassRatio,
	}
}
