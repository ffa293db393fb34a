package audit

import (
	"net/http"
	"regexp"

	"github.com/nao1215/siteaudit/internal/dom"
	"github.com/nao1215/siteaudit/internal/model"
)

// technologyHeaders always name the backend stack when present.
var technologyHeaders = []string{
	"X-Powered-By",
	"X-AspNet-Version",
	"X-AspNetMvc-Version",
	"X-Generator",
}

// serverDetailPattern matches a version number or an operating system in a
// Server header, e.g. "Apache/2.4.41 (Ubuntu)". A bare "nginx" does not match.
var serverDetailPattern = regexp.MustCompile(`(?i)/\s*\d|\((?:ubuntu|debian|centos|red hat|fedora|win32|win64|unix)`)

// checkServerDisclosure records headers that reveal server software details.
func checkServerDisclosure(sec *model.SecurityReport, headers http.Header) {
	sec.ServerDisclosure = nil

	if server, ok := headerValue(headers, "Server"); ok && serverDetailPattern.MatchString(server) {
		sec.ServerDisclosure = append(sec.ServerDisclosure, model.HeaderDisclosure{
			Header: "Server",
			Value:  dom.Truncate(server, valueLimit),
		})
	}
	for _, name := range technologyHeaders {
		if value, ok := headerValue(headers, name); ok && value != "" {
			sec.ServerDisclosure = append(sec.ServerDisclosure, model.HeaderDisclosure{
				Header: name,
				Value:  dom.Truncate(value, valueLimit),
			})
		}
	}
}
