package audit

import (
	"github.com/nao1215/siteaudit/internal/locale"
	"github.com/nao1215/siteaudit/internal/model"
)

// Recommend builds the prioritized advice list for a scored report in the
// printer's language.
func Recommend(report *model.AuditReport, p *locale.Printer) model.Recommendations {
	var rec model.Recommendations
	perf := report.Performance
	acc := report.Accessibility
	sec := report.Security

	if perf.Loading.TotalLoadTime > SlowLoadSeconds {
		rec.Critical = append(rec.Critical, p.T(locale.RecSlowLoad))
	}
	if n := acc.ScreenReader.Images.WithoutAlt; n > 0 {
		rec.Critical = append(rec.Critical, p.T(locale.RecImagesAlt, n))
	}
	if n := acc.Forms.MissingLabels(); n > 0 {
		rec.Critical = append(rec.Critical, p.T(locale.RecInputLabels, n))
	}
	if n := imagesWithGPS(report.Images); n > 0 {
		rec.Critical = append(rec.Critical, p.T(locale.RecExifGPS, n))
	}

	if !sec.HTTPSEnabled {
		rec.Important = append(rec.Important, p.T(locale.RecHTTPS))
	}
	if len(acc.KeyboardNavigation.SkipLinks) == 0 {
		rec.Important = append(rec.Important, p.T(locale.RecSkipLinks))
	}
	if len(acc.KeyboardNavigation.TabindexIssues) > 0 {
		rec.Important = append(rec.Important, p.T(locale.RecTabindex))
	}
	if sec.Headers["Content-Security-Policy"] == model.Missing {
		rec.Important = append(rec.Important, p.T(locale.RecCSP))
	}
	if n := sec.MissingSecurityHeaders; n > 0 {
		rec.Important = append(rec.Important, p.T(locale.RecSecurityHeaders, n))
	}
	if n := len(report.BrokenLinks()); n > 0 {
		rec.Important = append(rec.Important, p.T(locale.RecBrokenLinks, n))
	}

	if perf.Loading.ResponseSizeMB > LargePageMB {
		rec.Minor = append(rec.Minor, p.T(locale.RecPageSize))
	}
	if n := perf.Resources.ImagesWithoutDimensions; n > 0 {
		rec.Minor = append(rec.Minor, p.T(locale.RecImageDimensions, n))
	}
	if n := acc.SemanticStructure.EmptyHeadings; n > 0 {
		rec.Minor = append(rec.Minor, p.T(locale.RecEmptyHeadings, n))
	}
	return rec
}

func imagesWithGPS(images model.ImagesReport) int {
	n := 0
	for _, img := range images.Images {
		if img.HasGPS {
			n++
		}
	}
	return n
}
