package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoTarget is returned when no URL was given on the command line or in a list file.
	ErrNoTarget = errors.New("no target specified: provide a URL or use --list")

	// ErrInvalidTarget is returned when a target is not an absolute http(s) URL.
	ErrInvalidTarget = errors.New("invalid target: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidFormat is returned for an unknown --format value.
	ErrInvalidFormat = errors.New("invalid format: must be one of simple, json, markdown, latex")

	// ErrUnsupportedLanguage is returned for a report language without a catalog.
	ErrUnsupportedLanguage = errors.New("unsupported language: must be pl or en")

	// ErrInvalidCrawlDepth is returned when crawl depth or max pages is negative.
	ErrInvalidCrawlDepth = errors.New("invalid crawl limits: depth and max pages must be non-negative")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingProxy is returned when both --tor and --proxy are given.
	ErrConflictingProxy = errors.New("conflicting proxy settings: --tor and --proxy cannot be used together")

	// ErrInvalidOnionAddress is returned for a .onion host that is not a valid v3 address.
	ErrInvalidOnionAddress = errors.New("invalid onion address: must be a v3 address")

	// ErrOnionWithoutTor is returned when a .onion target is audited without --tor or a SOCKS proxy.
	ErrOnionWithoutTor = errors.New("onion targets require --tor or a socks5 --proxy")
)
