package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/net/publicsuffix"

	"github.com/nao1215/siteaudit/internal/config"
	"github.com/nao1215/siteaudit/internal/model"
)

// maxRedirects matches the limit browsers apply before giving up.
const maxRedirects = 10

// Client fetches audited pages.
// It wraps an http.Client with a User-Agent, a timeout, a body size cap and
// optional cookie and header injection. Traffic goes direct unless a proxy URL
// or a SOCKS address (embedded Tor) is configured.
type Client struct {
	httpClient  *http.Client
	dialer      proxy.ContextDialer
	userAgent   string
	timeout     time.Duration
	maxBodySize int64
	cookie      string
	headers     map[string]string
	rootCAs     *x509.CertPool

	// remoteDNS is true when a SOCKS proxy resolves names, so local DNS timing
	// would measure a lookup the audit never used.
	remoteDNS bool
	proxyURL  *url.URL
}

// Option configures a Client.
type Option func(*Client) error

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		c.timeout = timeout
		return nil
	}
}

// WithMaxBodySize caps the number of body bytes read per response.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) error {
		c.maxBodySize = size
		return nil
	}
}

// WithCookie adds a raw cookie string (e.g. "session=abc") to every request.
func WithCookie(cookie string) Option {
	return func(c *Client) error {
		c.cookie = cookie
		return nil
	}
}

// WithHeaders adds custom headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) error {
		c.headers = headers
		return nil
	}
}

// WithRootCAs replaces the system roots used to verify server certificates.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(c *Client) error {
		c.rootCAs = pool
		return nil
	}
}

// WithProxy routes traffic through an http(s) or socks5(h) proxy URL.
// An empty string leaves the client direct.
func WithProxy(rawURL string) Option {
	return func(c *Client) error {
		if rawURL == "" {
			return nil
		}
		u, err := url.Parse(rawURL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidProxyURL, rawURL)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			c.proxyURL = u
			return nil
		case "socks5", "socks5h":
			d, err := proxy.FromURL(u, proxy.Direct)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidProxyURL, err)
			}
			c.dialer = asContextDialer(d)
			c.remoteDNS = true
			return nil
		default:
			return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidProxyURL, u.Scheme)
		}
	}
}

// WithSOCKSAddr routes traffic through a SOCKS5 proxy at host:port without
// authentication, e.g. the embedded Tor daemon.
func WithSOCKSAddr(addr string) Option {
	return func(c *Client) error {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidProxyURL, addr)
		}
		d, err := proxy.SOCKS5("tcp", addr, nil, proxy.Direct)
		if err != nil {
			return fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		c.dialer = asContextDialer(d)
		c.remoteDNS = true
		return nil
	}
}

// NewClient creates a Client. It does not touch the network.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		userAgent:   config.DefaultUserAgent,
		timeout:     config.DefaultTimeout,
		maxBodySize: config.DefaultMaxBodySize,
		dialer:      &net.Dialer{Timeout: config.DefaultTLSTimeout},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	transport := &http.Transport{
		DialContext:         c.dialer.DialContext,
		TLSClientConfig:     &tls.Config{RootCAs: c.rootCAs, MinVersion: tls.VersionTLS10}, //nolint:gosec // audits report old protocol versions instead of refusing them
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: config.DefaultTLSTimeout,
	}
	if c.proxyURL != nil {
		transport.Proxy = http.ProxyURL(c.proxyURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	var rt http.RoundTripper = transport
	if c.cookie != "" || len(c.headers) > 0 {
		rt = &headerInjectingTransport{base: transport, cookie: c.cookie, headers: c.headers}
	}

	c.httpClient = &http.Client{
		Transport: rt,
		Timeout:   c.timeout,
		Jar:       jar,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
	return c, nil
}

// HTTPClient returns the underlying client, shared with the crawler and the
// image fetcher so that cookies and proxy settings apply everywhere.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// UserAgent returns the configured User-Agent.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// Fetch downloads target and measures how long the request and body read took.
func (c *Client) Fetch(ctx context.Context, target string) (*model.Page, error) {
	u, err := ValidateURL(target)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrFetchFailed, err)
	}
	total := time.Since(start)

	page := &model.Page{
		URL:         target,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		Headers:     resp.Header.Clone(),
		ContentType: resp.Header.Get("Content-Type"),
		Raw:         body,
		FetchedAt:   time.Now(),
		Timing: model.Timing{
			TotalLoadSeconds: Round(total.Seconds(), 2),
		},
	}
	if int64(len(body)) > c.maxBodySize {
		page.Raw = body[:c.maxBodySize]
		page.Truncated = true
	}
	if resp.TLS != nil {
		page.TLSVersion = TLSVersionName(resp.TLS.Version)
	}
	page.ComputeHash()

	if dns := c.LookupDNS(ctx, u.Hostname()); dns != nil {
		page.Timing.DNSLookupMs = dns
		rt := Round(page.Timing.TotalLoadSeconds-*dns/1000, 2)
		page.Timing.ResponseSeconds = &rt
	}
	return page, nil
}

// LookupDNS resolves host and returns the elapsed time in milliseconds,
// rounded to 2 decimals. It returns nil when resolution fails or when a SOCKS
// proxy resolves names remotely.
func (c *Client) LookupDNS(ctx context.Context, host string) *float64 {
	if c.remoteDNS || host == "" {
		return nil
	}
	start := time.Now()
	if _, err := net.DefaultResolver.LookupHost(ctx, host); err != nil {
		return nil
	}
	ms := Round(float64(time.Since(start).Microseconds())/1000, 2)
	return &ms
}

// ValidateURL parses target and rejects anything but absolute http(s) URLs.
func ValidateURL(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrFetchFailed, target)
	}
	return u, nil
}

// Round rounds v to the given number of decimals, half away from zero.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// asContextDialer adapts dialers that predate context support.
func asContextDialer(d proxy.Dialer) proxy.ContextDialer {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd
	}
	return contextDialer{d}
}

type contextDialer struct {
	proxy.Dialer
}

func (d contextDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	type dialResult struct {
		conn net.Conn
		err  error
	}
	resultCh := make(chan dialResult, 1)
	go func() {
		conn, err := d.Dial(network, address)
		resultCh <- dialResult{conn, err}
	}()

	select {
	case result := <-resultCh:
		return result.conn, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// headerInjectingTransport wraps an http.RoundTripper to inject
// custom headers and cookies into every request, including redirects.
type headerInjectingTransport struct {
	base    http.RoundTripper
	cookie  string
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.cookie != "" {
		if existing := clone.Header.Get("Cookie"); existing != "" {
			clone.Header.Set("Cookie", existing+"; "+t.cookie)
		} else {
			clone.Header.Set("Cookie", t.cookie)
		}
	}

	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}
