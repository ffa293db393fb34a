package audit

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/fetch"
	"github.com/nao1215/siteaudit/internal/model"
)

const (
	maxVectorsPerAttribute = 5
	maxMixedPerTag         = 3
	valueLimit             = 100
)

// Security score deductions: points per item and the cap per class.
const (
	headerDeduction    = 10
	headerDeductionCap = 40
	noHTTPSDeduction   = 50
	sslDeduction       = 10
	sslDeductionCap    = 30
	xssDeduction       = 5
	xssDeductionCap    = 25
	mixedDeduction     = 3
	mixedDeductionCap  = 15
	formDeduction      = 10
	formDeductionCap   = 30
	maxSecurityScore   = 100
)

// Issue texts recorded in the report.
const (
	sslNotEnabledIssue    = "HTTPS not enabled"
	sslErrorIssuePrefix   = "Error analyzing SSL: "
	formHTTPActionIssue   = "Form submits to HTTP URL"
	formNoActionIssue     = "Form on non-HTTPS page without specific action"
	formNoCSRFIssue       = "No CSRF protection detected"
	formAutocompleteIssue = "Password fields without autocomplete=off"
)

var (
	riskyAttributes = []string{"onclick", "onload", "onmouseover", "onerror", "onkeyup", "onsubmit"}

	javascriptHrefPattern = regexp.MustCompile(`(?i)^javascript:`)
	insecureURLPattern    = regexp.MustCompile(`(?i)^http://`)
	styleURLPattern       = regexp.MustCompile(`(?i)url\(\s*['"]?(http://[^'")]+)['"]?\s*\)`)
	csrfNamePattern       = regexp.MustCompile(`(?i)csrf|token|_token|xsrf`)

	mixedContentSources = []struct{ tag, attr string }{
		{"img", "src"},
		{"script", "src"},
		{"link", "href"},
		{"iframe", "src"},
		{"object", "data"},
		{"source", "src"},
		{"audio", "src"},
		{"video", "src"},
	}
)

// SecurityAnalyzer checks response headers, TLS, inline script risk, mixed
// content and forms, and computes the security score.
type SecurityAnalyzer struct{}

// NewSecurityAnalyzer creates a new SecurityAnalyzer.
func NewSecurityAnalyzer() *SecurityAnalyzer {
	return &SecurityAnalyzer{}
}

// Name returns the analyzer name.
func (a *SecurityAnalyzer) Name() string {
	return "security"
}

// Category returns the analyzer category.
func (a *SecurityAnalyzer) Category() string {
	return model.CategorySecurity
}

// Analyze fills the security report. SSLError may already be set by the TLS
// inspection step and is preserved.
func (a *SecurityAnalyzer) Analyze(_ context.Context, in *Input) ([]model.Finding, error) {
	sec := &in.Report.Security

	checkSecurityHeaders(sec, in.Page.Headers)
	checkTLS(sec, in.HTTPS(), in.TLS)
	checkContentSecurity(sec, in.Doc)
	checkMixedContent(sec, in.Doc, in.HTTPS())
	checkFormSecurity(sec, in.Doc, in.HTTPS())
	checkServerDisclosure(sec, in.Page.Headers)
	scoreSecurity(sec)

	return securityFindings(sec, in.Page.URL), nil
}

func checkSecurityHeaders(sec *model.SecurityReport, headers http.Header) {
	sec.Headers = make(map[string]string, len(model.SecurityHeaderNames))
	sec.MissingSecurityHeaders, sec.PresentSecurityHeaders = 0, 0

	for _, name := range model.SecurityHeaderNames {
		value, ok := headerValue(headers, name)
		if !ok && name == "Permissions-Policy" {
			value, ok = headerValue(headers, "Feature-Policy")
		}
		if !ok {
			value = model.Missing
			sec.MissingSecurityHeaders++
		} else {
			sec.PresentSecurityHeaders++
		}
		sec.Headers[name] = value
	}
	sec.SecurityHeadersPercentage = percent(sec.PresentSecurityHeaders, len(model.SecurityHeaderNames))
}

// headerValue distinguishes a header sent with an empty value from an absent one.
func headerValue(headers http.Header, name string) (string, bool) {
	values := headers.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return strings.Join(values, ", "), true
}

func checkTLS(sec *model.SecurityReport, https bool, info *model.TLSInfo) {
	sec.HTTPSEnabled = https
	sec.SSLIssues = []string{}

	switch {
	case !https:
		sec.SSLIssues = []string{sslNotEnabledIssue}
	case sec.SSLError != "":
		sec.SSLIssues = []string{sslErrorIssuePrefix + sec.SSLError}
	case info != nil:
		sec.SSLCertificate = info.Certificate
		days := info.DaysToExpiry
		sec.SSLDaysToExpiry = &days
		sec.SSLExpiresSoon = info.ExpiresSoon
		sec.SSLProtocolVersion = info.ProtocolVersion
		sec.OCSPStapled = info.OCSPStapled
		sec.OCSPStatus = info.OCSPStatus
		sec.SSLIssues = append(sec.SSLIssues, info.Issues...)
	}
}

func checkContentSecurity(sec *model.SecurityReport, doc *dom.Document) {
	scripts := inlineScripts(doc)
	sec.InlineScripts = len(scripts)
	sec.HasUnsafeInline = false
	for _, s := range scripts {
		if strings.Contains(dom.Text(s), "javascript:") {
			sec.HasUnsafeInline = true
			break
		}
	}

	all := doc.FindAll()
	sec.PotentialXSSVectors = []model.XSSVector{}
	for _, attr := range riskyAttributes {
		for _, el := range limit(dom.WithAttr(all, attr), maxVectorsPerAttribute) {
			sec.PotentialXSSVectors = append(sec.PotentialXSSVectors, model.XSSVector{
				Element:   el.Data,
				Attribute: attr,
				Value:     dom.Truncate(dom.Attr(el, attr), valueLimit),
			})
		}
	}

	jsLinks := 0
	for _, a := range doc.FindAll("a") {
		href := dom.Attr(a, "href")
		if jsLinks == maxVectorsPerAttribute || !javascriptHrefPattern.MatchString(href) {
			continue
		}
		jsLinks++
		sec.PotentialXSSVectors = append(sec.PotentialXSSVectors, model.XSSVector{
			Element:   "a",
			Attribute: "href",
			Value:     dom.Truncate(href, valueLimit),
		})
	}
	sec.XSSRisk = len(sec.PotentialXSSVectors) > 0
}

func checkMixedContent(sec *model.SecurityReport, doc *dom.Document, https bool) {
	if !https {
		sec.MixedContent = model.MixedContent{Status: model.MixedContentNotApplicable}
		return
	}

	var items []model.MixedContentItem
	for _, src := range mixedContentSources {
		found := 0
		for _, el := range doc.FindAll(src.tag) {
			value := dom.Attr(el, src.attr)
			if found == maxMixedPerTag || !insecureURLPattern.MatchString(value) {
				continue
			}
			found++
			items = append(items, model.MixedContentItem{
				Tag:       src.tag,
				Attribute: src.attr,
				URL:       dom.Truncate(value, valueLimit),
			})
		}
	}
	for _, style := range doc.FindAll("style") {
		for _, m := range limit(styleURLPattern.FindAllStringSubmatch(dom.Text(style), -1), maxMixedPerTag) {
			items = append(items, model.MixedContentItem{
				Tag:       "style",
				Attribute: "url()",
				URL:       dom.Truncate(m[1], valueLimit),
			})
		}
	}

	status := model.MixedContentNone
	if len(items) > 0 {
		status = model.MixedContentFound
	}
	sec.MixedContent = model.MixedContent{Status: status, Items: items, Count: len(items)}
}

func checkFormSecurity(sec *model.SecurityReport, doc *dom.Document, https bool) {
	forms := doc.FindAll("form")
	fs := model.FormSecurity{Total: len(forms), InsecureForms: []model.InsecureForm{}}

	for _, form := range forms {
		var issues []string
		action := dom.Attr(form, "action")

		switch {
		case action != "" && strings.HasPrefix(action, "http:"):
			issues = append(issues, formHTTPActionIssue)
		case action == "" && !https:
			issues = append(issues, formNoActionIssue)
		default:
			fs.WithHTTPS++
		}

		if hasCSRFToken(form) {
			fs.WithCSRFProtection++
		} else {
			issues = append(issues, formNoCSRFIssue)
		}

		passwords := 0
		passwordsOff := 0
		for _, input := range dom.Descendants(form, "input") {
			if dom.AttrEquals(input, "type", "password") {
				passwords++
				if dom.Attr(input, "autocomplete") == "off" {
					passwordsOff++
				}
			}
		}
		switch {
		case dom.Attr(form, "autocomplete") == "off" || (passwords > 0 && passwordsOff == passwords):
			fs.WithAutocompleteOff++
		case passwords > 0:
			issues = append(issues, formAutocompleteIssue)
		}

		if len(issues) > 0 {
			method := "GET"
			if dom.HasAttr(form, "method") {
				method = dom.Attr(form, "method")
			}
			fs.InsecureForms = append(fs.InsecureForms, model.InsecureForm{
				Action: action,
				Method: method,
				Issues: issues,
			})
		}
	}
	sec.Forms = fs
}

func hasCSRFToken(form *html.Node) bool {
	for _, input := range dom.Descendants(form, "input") {
		if dom.AttrEquals(input, "type", "hidden") && csrfNamePattern.MatchString(dom.Attr(input, "name")) {
			return true
		}
	}
	return false
}

// scoreSecurity starts from 100 and subtracts capped deductions per problem class.
func scoreSecurity(sec *model.SecurityReport) {
	score := maxSecurityScore
	deductions := []string{}
	deduct := func(label string, points int) {
		score -= points
		deductions = append(deductions, fmt.Sprintf("%s: -%d", label, points))
	}

	if sec.MissingSecurityHeaders > 0 {
		deduct("Missing security headers", min(sec.MissingSecurityHeaders*headerDeduction, headerDeductionCap))
	}
	if !sec.HTTPSEnabled {
		deduct("No HTTPS", noHTTPSDeduction)
	}
	if n := len(sec.SSLIssues); n > 0 {
		deduct("SSL issues", min(n*sslDeduction, sslDeductionCap))
	}
	if n := len(sec.PotentialXSSVectors); n > 0 {
		deduct("Potential XSS vectors", min(n*xssDeduction, xssDeductionCap))
	}
	if n := sec.MixedContent.Count; n > 0 {
		deduct("Mixed content", min(n*mixedDeduction, mixedDeductionCap))
	}
	if n := len(sec.Forms.InsecureForms); n > 0 {
		deduct("Insecure forms", min(n*formDeduction, formDeductionCap))
	}

	sec.Score = max(0, score)
	sec.MaxScore = maxSecurityScore
	sec.Deductions = deductions
	sec.Rating = model.SecurityRating(score)
}

func securityFindings(sec *model.SecurityReport, loc string) []model.Finding {
	var findings []model.Finding
	add := func(findingType, title, value string) {
		findings = append(findings, model.NewFinding(findingType, title, value, loc))
	}

	for _, name := range model.SecurityHeaderNames {
		if sec.Headers[name] == model.Missing {
			add(model.FindingMissingSecurityHeader, "Missing security header", name)
		}
	}
	if !sec.HTTPSEnabled {
		add(model.FindingNoHTTPS, "HTTPS not enabled", "")
	}
	if sec.SSLError != "" {
		add(model.FindingTLSError, "TLS inspection failed", sec.SSLError)
	}
	if sec.SSLExpiresSoon && sec.SSLDaysToExpiry != nil {
		add(model.FindingCertExpiresSoon, "Certificate expires soon", fmt.Sprintf("%d days", *sec.SSLDaysToExpiry))
	}
	if sec.OCSPStatus == fetch.OCSPRevoked {
		add(model.FindingCertRevoked, "Certificate revoked", "OCSP")
	}
	for _, v := range sec.PotentialXSSVectors {
		add(model.FindingXSSVector, "Inline script vector", fmt.Sprintf("<%s %s=%q>", v.Element, v.Attribute, v.Value))
	}
	for _, item := range sec.MixedContent.Items {
		add(model.FindingMixedContent, "Mixed content", item.URL)
	}
	for _, d := range sec.ServerDisclosure {
		add(model.FindingServerDisclosure, d.Header+" discloses server software", d.Value)
	}
	for _, form := range sec.Forms.InsecureForms {
		add(model.FindingInsecureForm, "Insecure form", fmt.Sprintf("%s %s: %s", form.Method, form.Action, strings.Join(form.Issues, "; ")))
	}
	return findings
}
