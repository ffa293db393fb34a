package config

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "siteaudit"

	// DefaultTimeout matches the request timeout most page audit tools use
	// for a single document fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultTLSTimeout bounds the separate TLS handshake used for
	// certificate inspection.
	DefaultTLSTimeout = 10 * time.Second

	// DefaultUserAgent is a desktop Chrome string. Some sites serve reduced
	// markup to unknown agents, which would skew the audit.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultConcurrency is the number of targets audited at once in batch mode.
	DefaultConcurrency = 2

	// DefaultCrawlDepth of 0 audits only the given page.
	DefaultCrawlDepth = 0

	// DefaultMaxPages caps how many pages the link checker visits per target.
	DefaultMaxPages = 20

	// DefaultCrawlDelay is the politeness delay between crawl requests.
	DefaultCrawlDelay = 250 * time.Millisecond

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultMaxImages is how many images the metadata analyzer downloads.
	DefaultMaxImages = 10

	// DefaultTorStartupTimeout is the maximum time to wait for the embedded
	// Tor daemon to bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute

	// DefaultLanguage is the report language.
	DefaultLanguage = "pl"
)

// Output formats accepted by --format.
const (
	FormatSimple   = "simple"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatLaTeX    = "latex"
)

// SupportedFormats lists every value accepted by --format.
var SupportedFormats = []string{FormatSimple, FormatJSON, FormatMarkdown, FormatLaTeX}

// SupportedLanguages lists every report language.
var SupportedLanguages = []string{"pl", "en"}

// Config holds all configuration options for siteaudit.
// It is populated from defaults, the environment and CLI flags, then passed
// through the application explicitly.
type Config struct {
	// Targets is the list of URLs to audit.
	Targets []string

	// Timeout is the HTTP request timeout for a single fetch.
	Timeout time.Duration

	// TLSTimeout is the dial timeout for certificate inspection.
	TLSTimeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Format selects the report writer. One of SupportedFormats.
	Format string

	// Language selects the report and recommendation language.
	Language string

	// OutputDir, when set, receives timestamped report files instead of stdout.
	OutputDir string

	// Concurrency is the number of targets audited in parallel.
	Concurrency int

	// CrawlDepth is the link-check depth. 0 audits only the target page.
	CrawlDepth int

	// MaxPages caps the number of pages visited by the link checker.
	MaxPages int

	// CrawlDelay is the delay between link-check requests.
	CrawlDelay time.Duration

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64

	// CheckImages enables downloading images for metadata inspection.
	CheckImages bool

	// MaxImages caps the images downloaded per target.
	MaxImages int

	// ProxyURL routes every request through a proxy, e.g. socks5://127.0.0.1:9050.
	ProxyURL string

	// UseTor starts an embedded Tor daemon and audits through it.
	UseTor bool

	// TorStartupTimeout is the bootstrap limit for the embedded Tor daemon.
	TorStartupTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit path to the YAML configuration file.
	ConfigFilePath string

	// SiteConfigs holds per-site settings loaded from the configuration file.
	SiteConfigs *File

	// DBDir is the directory of the audit history database.
	DBDir string

	// SaveToDB stores each audit in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:           DefaultTimeout,
		TLSTimeout:        DefaultTLSTimeout,
		UserAgent:         DefaultUserAgent,
		Format:            FormatSimple,
		Language:          DefaultLanguage,
		Concurrency:       DefaultConcurrency,
		CrawlDepth:        DefaultCrawlDepth,
		MaxPages:          DefaultMaxPages,
		CrawlDelay:        DefaultCrawlDelay,
		MaxBodySize:       DefaultMaxBodySize,
		CheckImages:       true,
		MaxImages:         DefaultMaxImages,
		TorStartupTimeout: DefaultTorStartupTimeout,
		DBDir:             XDGDataDir(),
		SaveToDB:          true,
	}
}

// XDGDataDir returns the XDG data directory for siteaudit.
// On Linux: ~/.local/share/siteaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for siteaudit.
// On Linux: ~/.config/siteaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	for _, target := range c.Targets {
		if err := ValidateTarget(target); err != nil {
			return err
		}
		if err := c.validateOnion(target); err != nil {
			return err
		}
	}

	if c.Timeout <= 0 || c.TLSTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if !slices.Contains(SupportedFormats, c.Format) {
		return ErrInvalidFormat
	}

	if !slices.Contains(SupportedLanguages, c.Language) {
		return ErrUnsupportedLanguage
	}

	if c.CrawlDepth < 0 || c.MaxPages < 0 {
		return ErrInvalidCrawlDepth
	}

	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.UseTor && c.ProxyURL != "" {
		return ErrConflictingProxy
	}

	return nil
}

// ValidateTarget reports whether target is an absolute http(s) URL.
func ValidateTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return ErrInvalidTarget
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidTarget
	}
	return nil
}

// validateOnion rejects malformed onion targets and onion targets that
// would be resolved without Tor.
func (c *Config) validateOnion(target string) error {
	u, err := url.Parse(target)
	if err != nil || !IsOnionHost(u.Hostname()) {
		return nil
	}
	if err := ValidateOnionHost(u.Hostname()); err != nil {
		return err
	}
	if !c.UseTor && !strings.HasPrefix(c.ProxyURL, "socks5") {
		return ErrOnionWithoutTor
	}
	return nil
}
