package fetch

import "errors"

// Fetch errors.
// Callers distinguish configuration mistakes from network failures with errors.Is.
var (
	// ErrInvalidProxyURL is returned when the proxy URL cannot be parsed or uses
	// a scheme other than http, https, socks5 or socks5h.
	ErrInvalidProxyURL = errors.New("invalid proxy URL")

	// ErrUnsupportedScheme is returned when the target is not an http(s) URL.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme: only http and https are allowed")

	// ErrFetchFailed wraps transport-level failures (DNS, connect, TLS, timeout).
	ErrFetchFailed = errors.New("fetch failed")

	// ErrTLSInspection wraps failures of the dedicated TLS handshake.
	ErrTLSInspection = errors.New("TLS inspection failed")

	// ErrTorNotRunning is returned when a client is requested from a stopped daemon.
	ErrTorNotRunning = errors.New("embedded Tor daemon is not running")
)
