package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/nao1215/siteaudit/internal/config"
	"github.com/nao1215/siteaudit/internal/model"
)

const testPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Municipal Office</title>
  <meta name="description" content="Opening hours and contact details of the municipal office.">
</head>
<body>
  <header><nav><a href="/">Home</a> <a href="/contact">Contact</a></nav></header>
  <main>
    <h1>Municipal Office</h1>
    <img src="/logo.png" alt="Office logo">
    <form action="/search"><label for="q">Search</label><input id="q" name="q"></form>
  </main>
  <footer>tel. +48 62 765 43 21</footer>
</body>
</html>`

// newTestSite serves testPage at / and 404 everywhere else.
func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Frame-Options", "DENY")
		_, _ = io.WriteString(w, testPage)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// runCLI executes the root command and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()
	if cmd.Use != "scan [url...]" {
		t.Errorf("unexpected use %q", cmd.Use)
	}

	tests := []struct {
		flag      string
		shorthand string
		def       string
	}{
		{flag: "list", shorthand: "L", def: ""},
		{flag: "timeout", shorthand: "t", def: config.DefaultTimeout.String()},
		{flag: "tls-timeout", def: config.DefaultTLSTimeout.String()},
		{flag: "user-agent", shorthand: "u", def: config.DefaultUserAgent},
		{flag: "depth", shorthand: "d", def: "0"},
		{flag: "max-pages", shorthand: "p", def: "20"},
		{flag: "concurrency", shorthand: "b", def: "2"},
		{flag: "format", shorthand: "f", def: config.FormatSimple},
		{flag: "lang", def: config.DefaultLanguage},
		{flag: "output-dir", shorthand: "o", def: ""},
		{flag: "config", shorthand: "c", def: ""},
		{flag: "tor", def: "false"},
		{flag: "tor-timeout", shorthand: "T", def: config.DefaultTorStartupTimeout.String()},
		{flag: "proxy", def: ""},
		{flag: "no-images", def: "false"},
		{flag: "no-save", def: "false"},
		{flag: "db-dir", def: ""},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup(tt.flag)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.flag)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.def {
				t.Errorf("expected default %q, got %q", tt.def, flag.DefValue)
			}
		})
	}
}

// parsedScanCmd returns a scan command with args parsed, as cobra does
// before calling RunE.
func parsedScanCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := NewScanCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	return cmd
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	emptyConfig := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(emptyConfig, []byte("sites: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cmd := parsedScanCmd(t, "-c", emptyConfig, "example.com")
		cfg, err := buildConfig(cmd, cmd.Flags().Args())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"https://example.com"}, cfg.Targets); diff != "" {
			t.Errorf("targets mismatch (-want +got):\n%s", diff)
		}
		if cfg.Format != config.FormatSimple || !cfg.CheckImages || !cfg.SaveToDB {
			t.Errorf("unexpected defaults: format=%q images=%v save=%v", cfg.Format, cfg.CheckImages, cfg.SaveToDB)
		}
	})

	t.Run("flags", func(t *testing.T) {
		t.Parallel()
		dbDir := t.TempDir()
		cmd := parsedScanCmd(t,
			"-c", emptyConfig,
			"--timeout", "5s",
			"--depth", "2",
			"--max-pages", "7",
			"--concurrency", "4",
			"--format", "md",
			"--lang", "en",
			"--no-images",
			"--no-save",
			"--db-dir", dbDir,
			"--proxy", "socks5://127.0.0.1:9050",
			"https://a.example/", "http://b.example/x",
		)
		cfg, err := buildConfig(cmd, cmd.Flags().Args())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := struct {
			Timeout     time.Duration
			Depth       int
			MaxPages    int
			Concurrency int
			Format      string
			Language    string
			CheckImages bool
			SaveToDB    bool
			DBDir       string
			ProxyURL    string
			Targets     []string
		}{
			cfg.Timeout, cfg.CrawlDepth, cfg.MaxPages, cfg.Concurrency, cfg.Format, cfg.Language,
			cfg.CheckImages, cfg.SaveToDB, cfg.DBDir, cfg.ProxyURL, cfg.Targets,
		}
		want := got
		want.Timeout = 5 * time.Second
		want.Depth = 2
		want.MaxPages = 7
		want.Concurrency = 4
		want.Format = config.FormatMarkdown
		want.Language = "en"
		want.CheckImages = false
		want.SaveToDB = false
		want.DBDir = dbDir
		want.ProxyURL = "socks5://127.0.0.1:9050"
		want.Targets = []string{"https://a.example/", "http://b.example/x"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})

	t.Run("target list", func(t *testing.T) {
		t.Parallel()
		list := filepath.Join(t.TempDir(), "sites.txt")
		content := "# municipal sites\nhttps://www.kalisz.pl\n\n  www.gniezno.eu  \n"
		if err := os.WriteFile(list, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		cmd := parsedScanCmd(t, "-c", emptyConfig, "--list", list, "https://www.poznan.pl")
		cfg, err := buildConfig(cmd, cmd.Flags().Args())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"https://www.poznan.pl", "https://www.kalisz.pl", "https://www.gniezno.eu"}
		if diff := cmp.Diff(want, cfg.Targets); diff != "" {
			t.Errorf("targets mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing list file", func(t *testing.T) {
		t.Parallel()
		cmd := parsedScanCmd(t, "-c", emptyConfig, "--list", filepath.Join(t.TempDir(), "none.txt"))
		if _, err := buildConfig(cmd, nil); err == nil {
			t.Error("expected error for missing list file")
		}
	})

	t.Run("missing explicit config", func(t *testing.T) {
		t.Parallel()
		cmd := parsedScanCmd(t, "-c", filepath.Join(t.TempDir(), "none.yaml"), "example.com")
		_, err := buildConfig(cmd, cmd.Flags().Args())
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("site config file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".siteaudit.yaml")
		content := `defaults:
  language: en
sites:
  www.kalisz.pl:
    depth: 3
    cookie: "session=abc"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		cmd := parsedScanCmd(t, "-c", path, "https://www.kalisz.pl")
		cfg, err := buildConfig(cmd, cmd.Flags().Args())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		site := cfg.SiteConfigs.GetSiteConfig("www.kalisz.pl")
		if site.Depth != 3 || site.Cookie != "session=abc" || site.Language != "en" {
			t.Errorf("unexpected site config: %+v", site)
		}
	})
}

func TestBuildConfigEnvPrecedence(t *testing.T) {
	t.Setenv("SITEAUDIT_TIMEOUT", "9s")
	t.Setenv("SITEAUDIT_LANG", "en")

	emptyConfig := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(emptyConfig, []byte("sites: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := parsedScanCmd(t, "-c", emptyConfig, "example.com")
	cfg, err := buildConfig(cmd, cmd.Flags().Args())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != 9*time.Second || cfg.Language != "en" {
		t.Errorf("environment ignored: timeout=%s lang=%s", cfg.Timeout, cfg.Language)
	}

	cmd = parsedScanCmd(t, "-c", emptyConfig, "--timeout", "3s", "--lang", "pl", "example.com")
	cfg, err = buildConfig(cmd, cmd.Flags().Args())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != 3*time.Second || cfg.Language != "pl" {
		t.Errorf("flags must win over environment: timeout=%s lang=%s", cfg.Timeout, cfg.Language)
	}
}

func TestNormalizeTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "example.com", want: "https://example.com"},
		{in: "  example.com/path ", want: "https://example.com/path"},
		{in: "http://example.com", want: "http://example.com"},
		{in: "ftp://example.com", want: "ftp://example.com"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := normalizeTarget(tt.in); got != tt.want {
			t.Errorf("normalizeTarget(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScanRunSiteSettings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SiteConfigs = &config.File{
		Defaults: config.SiteConfig{Language: "pl"},
		Sites: map[string]config.SiteConfig{
			"*.example.org": {Language: "en", Depth: 2},
		},
	}
	logger := slog.New(slog.DiscardHandler)

	t.Run("site language applies", func(t *testing.T) {
		t.Parallel()
		run := &scanRun{cfg: cfg, logger: logger}
		if got := run.newReport("https://www.example.org/").Language; got != "en" {
			t.Errorf("expected site language en, got %q", got)
		}
		if got := run.newReport("https://example.com/").Language; got != "pl" {
			t.Errorf("expected default language pl, got %q", got)
		}
	})

	t.Run("locked language wins", func(t *testing.T) {
		t.Parallel()
		run := &scanRun{cfg: cfg, logger: logger, langLocked: true}
		if got := run.newReport("https://www.example.org/").Language; got != cfg.Language {
			t.Errorf("expected flag language %q, got %q", cfg.Language, got)
		}
	})

	t.Run("pipeline steps", func(t *testing.T) {
		t.Parallel()
		run := &scanRun{cfg: cfg, logger: logger}
		p, err := run.newPipeline("https://www.example.org/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"fetch", "tls", "crawl", "analyze", "score"}
		if diff := cmp.Diff(want, p.StepNames()); diff != "" {
			t.Errorf("steps mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRunScanJSON(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t)
	out, err := runCLI(t, "scan", "--format", "json", "--lang", "en", "--no-images", "--no-save", srv.URL+"/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var report model.AuditReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not a JSON report: %v\n%s", err, out)
	}
	if report.URL != srv.URL+"/" {
		t.Errorf("expected URL %s, got %s", srv.URL+"/", report.URL)
	}
	if report.Language != "en" {
		t.Errorf("expected language en, got %q", report.Language)
	}
	if report.Performance.SEO.Title != "Municipal Office" {
		t.Errorf("expected page title, got %q", report.Performance.SEO.Title)
	}
	if report.Scores.Grade == "" {
		t.Error("expected a grade")
	}
	if report.Security.HTTPSEnabled {
		t.Error("plain http must not count as https")
	}
}

func TestRunScanSavesHistoryAndFiles(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t)
	dbDir := t.TempDir()
	outDir := t.TempDir()

	for range 2 {
		out, err := runCLI(t, "scan", "--db-dir", dbDir, "--no-images", "-f", "markdown", "-o", outDir, srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Raport zapisano:") {
			t.Errorf("expected saved message, got %q", out)
		}
	}

	files, err := filepath.Glob(filepath.Join(outDir, "report_127.0.0.1_*.md"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected one markdown report file per scan, got %v", files)
	}

	out, err := runCLI(t, "compare", "--db-dir", dbDir, srv.URL)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, "Audit Comparison: 127.0.0.1") {
		t.Errorf("unexpected compare output:\n%s", out)
	}
	if !strings.Contains(out, "UNCHANGED") {
		t.Errorf("identical audits must compare as unchanged:\n%s", out)
	}
}

func TestRunScanFailures(t *testing.T) {
	t.Parallel()

	t.Run("page not found", func(t *testing.T) {
		t.Parallel()
		srv := newTestSite(t)
		out, err := runCLI(t, "scan", "--no-save", "--no-images", srv.URL+"/missing")
		if !errors.Is(err, errAuditsFailed) {
			t.Fatalf("expected errAuditsFailed, got %v", err)
		}
		if !strings.Contains(out, "❌") {
			t.Errorf("expected the failure in the report, got %q", out)
		}
	})

	t.Run("no targets", func(t *testing.T) {
		t.Parallel()
		cfgPath := filepath.Join(t.TempDir(), "empty.yaml")
		if err := os.WriteFile(cfgPath, []byte("sites: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := runCLI(t, "scan", "-c", cfgPath)
		if !errors.Is(err, config.ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("onion without tor", func(t *testing.T) {
		t.Parallel()
		_, err := runCLI(t, "scan", "--no-save", "http://duckduckgogg42xjoc72x3sjasowoarfbgcmvfimaftt6twagswzczad.onion/")
		if !errors.Is(err, config.ErrOnionWithoutTor) {
			t.Errorf("expected ErrOnionWithoutTor, got %v", err)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()
		_, err := runCLI(t, "scan", "--no-save", "-f", "pdf", "https://example.com")
		if !errors.Is(err, config.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})
}
