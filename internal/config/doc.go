// Package config provides configuration structures and utilities for siteaudit.
// It holds the audit options assembled from defaults, SITEAUDIT_* environment
// variables and CLI flags, plus per-site settings read from .siteaudit.yaml.
package config
