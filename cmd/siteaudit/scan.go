package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/siteaudit/internal/config"
	"github.com/nao1215/siteaudit/internal/database"
	"github.com/nao1215/siteaudit/internal/fetch"
	"github.com/nao1215/siteaudit/internal/locale"
	"github.com/nao1215/siteaudit/internal/log"
	"github.com/nao1215/siteaudit/internal/model"
	"github.com/nao1215/siteaudit/internal/pipeline"
	"github.com/nao1215/siteaudit/internal/report"
)

// errAuditsFailed is returned when the page of at least one target could not be fetched.
var errAuditsFailed = errors.New("audit failed")

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Audit one or more web pages",
		Long: `Scan fetches each URL, analyzes the page and prints a report.

Each audit covers:
- Performance (load time, page weight, resources, SEO, mobile readiness)
- Accessibility (WCAG 2.1 A/AA checks, contrast, forms, landmarks)
- Security (HTTPS, certificate, security headers, mixed content, forms)
- Usability (navigation, search, contact information)

With --depth the audit also checks links on the same site, and image
metadata (GPS position, camera serial numbers) is inspected unless
--no-images is given. Results are stored in the history database used by
'siteaudit compare'.

Examples:
  # Audit a single page and print a Polish console report
  siteaudit scan https://www.example.com

  # English JSON report
  siteaudit scan --lang en --format json https://www.example.com

  # Several sites, three at a time, with LaTeX reports saved to ./reports
  siteaudit scan -b 3 -f latex -o reports https://a.example https://b.example

  # Targets from a file, one URL per line
  siteaudit scan --list sites.txt

  # Check links two levels deep
  siteaudit scan -d 2 https://www.example.com

  # Audit an onion service through an embedded Tor daemon
  siteaudit scan --tor http://<address>.onion`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	cmd.Flags().StringP("list", "L", "", "Read target URLs from a file, one per line")

	// Request flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Timeout for each request")
	cmd.Flags().Duration("tls-timeout", config.DefaultTLSTimeout, "Timeout for the certificate inspection")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent, "User-Agent header sent with every request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize, "Maximum response body size in bytes")

	// Crawl flags
	cmd.Flags().IntP("depth", "d", config.DefaultCrawlDepth, "Link-check depth (0 audits only the given page)")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages, "Maximum number of pages to link-check per target")
	cmd.Flags().Duration("crawl-delay", config.DefaultCrawlDelay, "Delay between link-check requests")
	cmd.Flags().Bool("no-images", false, "Skip the image metadata checks")
	cmd.Flags().Int("max-images", config.DefaultMaxImages, "Maximum number of images inspected per target")

	// Batch flags
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency, "Number of concurrent audits")

	// Proxy flags
	cmd.Flags().String("proxy", "", "Proxy URL for all requests (http, https or socks5)")
	cmd.Flags().Bool("tor", false, "Start an embedded Tor daemon and audit through it")
	cmd.Flags().DurationP("tor-timeout", "T", config.DefaultTorStartupTimeout, "Timeout for embedded Tor startup")

	// Report flags
	cmd.Flags().StringP("format", "f", config.FormatSimple, "Report format: simple, json, markdown or latex")
	cmd.Flags().String("lang", config.DefaultLanguage, "Report language: pl or en")
	cmd.Flags().StringP("output-dir", "o", "", "Save reports as files in this directory instead of printing them")

	// Configuration and history
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .siteaudit.yaml in current or home directory)")
	cmd.Flags().Bool("no-save", false, "Do not store the audits in the history database")
	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data directory)")

	return cmd
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	run := &scanRun{
		cfg:         cfg,
		logger:      logger,
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		langLocked:  cmd.Flags().Changed("lang") || envIsSet("LANG"),
		depthLocked: cmd.Flags().Changed("depth"),
	}
	return run.execute(ctx)
}

// buildConfig layers defaults, SITEAUDIT_* variables and changed flags, then
// loads the site configuration file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	var noImages, noSave bool
	err := errors.Join(
		durationFlag(cmd, "timeout", &cfg.Timeout),
		durationFlag(cmd, "tls-timeout", &cfg.TLSTimeout),
		stringFlag(cmd, "user-agent", &cfg.UserAgent),
		int64Flag(cmd, "max-body-size", &cfg.MaxBodySize),
		intFlag(cmd, "depth", &cfg.CrawlDepth),
		intFlag(cmd, "max-pages", &cfg.MaxPages),
		durationFlag(cmd, "crawl-delay", &cfg.CrawlDelay),
		boolFlag(cmd, "no-images", &noImages),
		intFlag(cmd, "max-images", &cfg.MaxImages),
		intFlag(cmd, "concurrency", &cfg.Concurrency),
		stringFlag(cmd, "proxy", &cfg.ProxyURL),
		boolFlag(cmd, "tor", &cfg.UseTor),
		durationFlag(cmd, "tor-timeout", &cfg.TorStartupTimeout),
		stringFlag(cmd, "format", &cfg.Format),
		stringFlag(cmd, "lang", &cfg.Language),
		stringFlag(cmd, "output-dir", &cfg.OutputDir),
		stringFlag(cmd, "config", &cfg.ConfigFilePath),
		boolFlag(cmd, "no-save", &noSave),
		stringFlag(cmd, "db-dir", &cfg.DBDir),
		boolFlag(cmd, "verbose", &cfg.Verbose),
	)
	if err != nil {
		return nil, err
	}
	cfg.CheckImages = !noImages
	cfg.SaveToDB = !noSave

	if format, err := report.ParseFormat(cfg.Format); err == nil {
		cfg.Format = string(format)
	}

	// An explicit --config must exist; the default locations are optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{Sites: make(map[string]config.SiteConfig)}
	}

	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}
	targets := slices.Clone(args)
	if listPath != "" {
		listed, err := readTargetList(listPath)
		if err != nil {
			return nil, err
		}
		targets = append(targets, listed...)
	}
	for _, target := range targets {
		cfg.Targets = append(cfg.Targets, normalizeTarget(target))
	}

	return cfg, nil
}

func stringFlag(cmd *cobra.Command, name string, dst *string) error {
	return setFlag(cmd, name, dst, cmd.Flags().GetString)
}

func intFlag(cmd *cobra.Command, name string, dst *int) error {
	return setFlag(cmd, name, dst, cmd.Flags().GetInt)
}

func int64Flag(cmd *cobra.Command, name string, dst *int64) error {
	return setFlag(cmd, name, dst, cmd.Flags().GetInt64)
}

func boolFlag(cmd *cobra.Command, name string, dst *bool) error {
	return setFlag(cmd, name, dst, cmd.Flags().GetBool)
}

func durationFlag(cmd *cobra.Command, name string, dst *time.Duration) error {
	return setFlag(cmd, name, dst, cmd.Flags().GetDuration)
}

// setFlag copies a flag into dst only when the user set it, so environment
// values survive flag defaults.
func setFlag[T any](cmd *cobra.Command, name string, dst *T, get func(string) (T, error)) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := get(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func envIsSet(name string) bool {
	_, ok := os.LookupEnv(config.EnvPrefix + name)
	return ok
}

// readTargetList reads one URL per line. Blank lines and lines starting with
// '#' are skipped.
func readTargetList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided list file
	if err != nil {
		return nil, fmt.Errorf("failed to open target list: %w", err)
	}
	defer f.Close()

	var targets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read target list: %w", err)
	}
	return targets, nil
}

// normalizeTarget adds https:// to a bare host name.
func normalizeTarget(target string) string {
	target = strings.TrimSpace(target)
	if target != "" && !strings.Contains(target, "://") {
		return "https://" + target
	}
	return target
}

// scanRun holds everything one scan invocation shares between targets.
type scanRun struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer

	// langLocked and depthLocked are set when a flag or the environment
	// fixed the value, so per-site settings must not override it.
	langLocked  bool
	depthLocked bool

	db         *database.AuditDB
	clientOpts []fetch.Option
}

func (r *scanRun) execute(ctx context.Context) error {
	cfg := r.cfg
	r.logger.Info("starting scan",
		"targets", len(cfg.Targets),
		"concurrency", cfg.Concurrency,
		"format", cfg.Format,
		"tor", cfg.UseTor,
		"saveToDB", cfg.SaveToDB,
	)

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		r.db = db
		r.logger.Debug("database opened", "path", db.Path())
	}

	r.clientOpts = []fetch.Option{
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	}
	if cfg.ProxyURL != "" {
		r.clientOpts = append(r.clientOpts, fetch.WithProxy(cfg.ProxyURL))
	}

	if cfg.UseTor {
		embeddedTor, err := r.startEmbeddedTor(ctx)
		if err != nil {
			return err
		}
		defer func() {
			r.logger.Info("stopping embedded Tor daemon...")
			if err := embeddedTor.Stop(); err != nil {
				r.logger.Error("failed to stop embedded Tor", "error", err)
			}
		}()
	}

	start := time.Now()
	bp := pipeline.NewBatchProcessor(
		r.newPipeline,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(r.logger),
		pipeline.WithReportBuilder(r.newReport),
	)
	reports, batchErr := bp.ProcessBatch(ctx, cfg.Targets)
	r.logger.Info("scan finished", "elapsed", time.Since(start).Round(time.Millisecond))

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var failed int
	for _, rep := range reports {
		// A report without a page never got past the fetch step.
		if rep.Page == nil {
			failed++
		}
		if err := r.outputReport(format, rep); err != nil {
			return err
		}
	}

	if batchErr != nil {
		return batchErr
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d targets", errAuditsFailed, failed, len(reports))
	}
	return nil
}

// siteConfig returns the merged site settings for target.
func (r *scanRun) siteConfig(target string) config.SiteConfig {
	if r.cfg.SiteConfigs == nil {
		return config.SiteConfig{}
	}
	u, err := url.Parse(target)
	if err != nil {
		return r.cfg.SiteConfigs.Defaults
	}
	return r.cfg.SiteConfigs.GetSiteConfig(strings.ToLower(u.Hostname()))
}

// newReport creates the empty report of target in the site's language.
func (r *scanRun) newReport(target string) *model.AuditReport {
	lang := r.cfg.Language
	if site := r.siteConfig(target); !r.langLocked && site.Language != "" {
		lang = site.Language
	}
	return model.NewAuditReport(target, lang)
}

// newPipeline builds the audit pipeline of target with its own HTTP client,
// so per-site cookies and headers never leak to other targets.
func (r *scanRun) newPipeline(target string) (*pipeline.Pipeline, error) {
	site := r.siteConfig(target)

	opts := append(slices.Clone(r.clientOpts), fetch.WithCookie(site.Cookie), fetch.WithHeaders(site.Headers))
	client, err := fetch.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	depth := r.cfg.CrawlDepth
	if !r.depthLocked && site.Depth > 0 {
		depth = site.Depth
	}

	configOpts := []pipeline.DefaultOption{
		pipeline.WithCrawl(depth, r.cfg.MaxPages),
		pipeline.WithCrawlDelay(r.cfg.CrawlDelay),
		pipeline.WithCrawlPatterns(site.IgnorePatterns, site.FollowPatterns),
		pipeline.WithTLSTimeout(r.cfg.TLSTimeout),
		pipeline.WithImages(r.cfg.CheckImages, r.cfg.MaxImages),
	}
	if r.db != nil {
		configOpts = append(configOpts, pipeline.WithStore(r.db))
	}

	return pipeline.DefaultPipeline(client,
		[]pipeline.Option{
			pipeline.WithLogger(r.logger.With("url", target)),
			pipeline.WithContinueOnError(true),
		},
		configOpts...,
	), nil
}

// outputReport prints rep, or saves it under the output directory.
func (r *scanRun) outputReport(format report.Format, rep *model.AuditReport) error {
	if r.cfg.OutputDir == "" {
		w, err := report.NewWriter(format, r.out)
		if err != nil {
			return err
		}
		_, err = w.Write(rep)
		return err
	}

	path, err := report.WriteFile(r.cfg.OutputDir, format, rep)
	if err != nil {
		return err
	}
	p := locale.NewPrinter(rep.Language)
	fmt.Fprintln(r.out, p.T(locale.ReportSaved, path))
	return nil
}

// startEmbeddedTor starts the Tor daemon and routes every client through it.
func (r *scanRun) startEmbeddedTor(ctx context.Context) (*fetch.EmbeddedTor, error) {
	fmt.Fprintln(r.errOut, "Starting embedded Tor daemon...")
	fmt.Fprintf(r.errOut, "This may take 1-3 minutes while Tor bootstraps and connects to the network.\n\n")

	embeddedTor := fetch.NewEmbeddedTor(fetch.WithStartupTimeout(r.cfg.TorStartupTimeout))
	if err := embeddedTor.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start embedded Tor: %w", err)
	}

	opt, err := embeddedTor.ClientOption()
	if err != nil {
		_ = embeddedTor.Stop() //nolint:errcheck // best effort cleanup
		return nil, err
	}
	r.clientOpts = append(r.clientOpts, opt)

	r.logger.Info("embedded Tor daemon started",
		"socksAddr", embeddedTor.SocksAddr(),
		"controlAddr", embeddedTor.ControlAddr(),
	)
	return embeddedTor, nil
}
