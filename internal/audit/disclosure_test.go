package audit

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/siteaudit/internal/model"
)

func TestCheckServerDisclosure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		want    []model.HeaderDisclosure
	}{
		{
			name:    "no headers",
			headers: map[string]string{},
		},
		{
			name:    "bare server name",
			headers: map[string]string{"Server": "nginx"},
		},
		{
			name:    "server version",
			headers: map[string]string{"Server": "nginx/1.18.0"},
			want:    []model.HeaderDisclosure{{Header: "Server", Value: "nginx/1.18.0"}},
		},
		{
			name:    "operating system",
			headers: map[string]string{"Server": "Apache (Debian)"},
			want:    []model.HeaderDisclosure{{Header: "Server", Value: "Apache (Debian)"}},
		},
		{
			name: "technology headers",
			headers: map[string]string{
				"Server":           "Microsoft-IIS/10.0",
				"X-Powered-By":     "PHP/7.4.3",
				"X-AspNet-Version": "4.0.30319",
			},
			want: []model.HeaderDisclosure{
				{Header: "Server", Value: "Microsoft-IIS/10.0"},
				{Header: "X-Powered-By", Value: "PHP/7.4.3"},
				{Header: "X-AspNet-Version", Value: "4.0.30319"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headers := http.Header{}
			for k, v := range tt.headers {
				headers.Set(k, v)
			}
			var sec model.SecurityReport
			checkServerDisclosure(&sec, headers)
			if diff := cmp.Diff(tt.want, sec.ServerDisclosure); diff != "" {
				t.Errorf("disclosure mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestServerDisclosureFinding(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("X-Powered-By", "WordPress")
	sec := model.SecurityReport{HTTPSEnabled: true}
	checkServerDisclosure(&sec, headers)

	findings := securityFindings(&sec, "https://example.com/")
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Type != model.FindingServerDisclosure || f.Severity != model.SeverityLow || f.Value != "WordPress" {
		t.Errorf("unexpected finding %+v", f)
	}
}
