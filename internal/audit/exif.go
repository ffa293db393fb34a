package audit

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/model"
)

const (
	defaultMaxImages   = 10
	maxImageSize       = 5 * 1024 * 1024
	imageFetchParallel = 4
	dataURLLocation    = "data:URL"
)

var exifImagePattern = regexp.MustCompile(`(?i)\.(jpe?g|tiff?|heic)(?:\?[^"'\s]*)?$`)

// EXIFAnalyzer downloads published photos and reports privacy-relevant
// metadata: GPS position, device serial numbers, author, camera and software.
// Only images on the audited host and inline data: URLs are examined.
type EXIFAnalyzer struct {
	httpClient   *http.Client
	maxImages    int
	maxImageSize int64
}

// NewEXIFAnalyzer creates an EXIFAnalyzer that fetches at most maxImages images.
func NewEXIFAnalyzer(client *http.Client, maxImages int) *EXIFAnalyzer {
	if maxImages <= 0 {
		maxImages = defaultMaxImages
	}
	return &EXIFAnalyzer{
		httpClient:   client,
		maxImages:    maxImages,
		maxImageSize: maxImageSize,
	}
}

// Name returns the analyzer name.
func (a *EXIFAnalyzer) Name() string {
	return "exif"
}

// Category returns the analyzer category.
func (a *EXIFAnalyzer) Category() string {
	return model.CategoryPrivacy
}

// Analyze fetches candidate images concurrently and fills the images section.
func (a *EXIFAnalyzer) Analyze(ctx context.Context, in *Input) ([]model.Finding, error) {
	base := in.URL
	if final, err := url.Parse(in.Page.FinalURL); err == nil && final.Host != "" {
		base = final
	}
	candidates := a.candidates(in.Doc, base)

	results := make([]model.ImageExif, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imageFetchParallel)
	for i, src := range candidates {
		g.Go(func() error {
			results[i] = a.inspect(gctx, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := model.ImagesReport{Checked: len(results), Images: results}
	var findings []model.Finding
	for _, img := range results {
		if !img.HasMetadata() {
			continue
		}
		report.WithMetadata++
		findings = append(findings, exifFindings(img, in.Page.URL)...)
	}
	in.Report.Images = report
	return findings, nil
}

// candidates returns up to maxImages distinct image references eligible for
// inspection, resolved against base.
func (a *EXIFAnalyzer) candidates(doc *dom.Document, base *url.URL) []string {
	seen := map[string]bool{}
	var out []string
	for _, img := range doc.FindAll("img") {
		if len(out) == a.maxImages {
			break
		}
		src := strings.TrimSpace(dom.Attr(img, "src"))
		if src == "" {
			continue
		}
		if strings.HasPrefix(src, "data:image/") {
			if !seen[src] {
				seen[src] = true
				out = append(out, src)
			}
			continue
		}
		ref, err := url.Parse(src)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref)
		if !strings.EqualFold(abs.Hostname(), base.Hostname()) || !exifImagePattern.MatchString(abs.Path) {
			continue
		}
		if s := abs.String(); !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// inspect loads one image and extracts its metadata. Failures are recorded
// on the result rather than returned.
func (a *EXIFAnalyzer) inspect(ctx context.Context, src string) model.ImageExif {
	if strings.HasPrefix(src, "data:") {
		result := model.ImageExif{URL: dataURLLocation}
		data, err := decodeDataURL(src)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		return parseExif(data, result)
	}

	result := model.ImageExif{URL: src}
	data, err := a.download(ctx, src)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	return parseExif(data, result)
}

func (a *EXIFAnalyzer) download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > a.maxImageSize {
		return nil, fmt.Errorf("image larger than %d bytes", a.maxImageSize)
	}
	return io.ReadAll(io.LimitReader(resp.Body, a.maxImageSize))
}

func decodeDataURL(dataURL string) ([]byte, error) {
	_, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.URLEncoding.DecodeString(payload)
	}
	return data, err
}

// parseExif fills result from the EXIF block of an image. Images without
// EXIF are returned unchanged.
func parseExif(data []byte, result model.ImageExif) model.ImageExif {
	raw, err := exif.SearchAndExtractExif(data)
	if err != nil || raw == nil {
		return result
	}
	entries, _, err := exif.GetFlatExifData(raw, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	var camera []string
	for _, e := range entries {
		value := strings.TrimSpace(e.Formatted)
		switch e.TagName {
		case "GPSLatitude", "GPSLongitude":
			result.HasGPS = true
		case "SerialNumber", "CameraSerialNumber", "BodySerialNumber", "LensSerialNumber":
			if result.SerialNumber == "" {
				result.SerialNumber = value
			}
		case "Artist", "Author", "Copyright", "XPAuthor":
			if result.Author == "" {
				result.Author = value
			}
		case "Make", "Model":
			camera = append(camera, value)
		case "Software", "ProcessingSoftware":
			if result.Software == "" {
				result.Software = value
			}
		}
	}
	result.Camera = strings.Join(camera, " ")
	return result
}

func exifFindings(img model.ImageExif, page string) []model.Finding {
	loc := page + " -> " + img.URL
	var findings []model.Finding
	if img.HasGPS {
		findings = append(findings, model.NewFinding(model.FindingExifGPS, "GPS coordinates in image metadata", img.URL, loc))
	}
	if img.SerialNumber != "" {
		findings = append(findings, model.NewFinding(model.FindingExifSerial, "Device serial number in image metadata", img.URL, loc))
	}
	if img.Author != "" {
		findings = append(findings, model.NewFinding(model.FindingExifAuthor, "Author in image metadata", img.URL, loc))
	}
	if img.Camera != "" {
		findings = append(findings, model.NewFinding(model.FindingExifCamera, "Camera model in image metadata", img.URL, loc))
	}
	if img.Software != "" {
		findings = append(findings, model.NewFinding(model.FindingExifSoftware, "Editing software in image metadata", img.URL, loc))
	}
	return findings
}
