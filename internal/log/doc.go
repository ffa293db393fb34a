// Package log provides secure logging built on top of log/slog.
//
// The SecureHandler masks sensitive values before they reach the output:
//   - HTTP headers such as Authorization, Cookie and Set-Cookie
//   - values that look like bearer tokens, JWTs or long API keys
//   - user:password credentials embedded in proxy or target URLs
//
// Site configurations may carry session cookies and custom auth headers for
// audits behind a login, so even verbose output is masked.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("fetching page", "url", target, "cookie", siteCfg.Cookie)
//	slog.SetDefault(logger)
package log
