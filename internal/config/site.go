package config

import "strings"

// SiteConfig holds settings for a single audited host.
type SiteConfig struct {
	// Cookie is sent with every request to this site, e.g. "session=abc".
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are extra HTTP headers for requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Language overrides the report language for this site.
	Language string `yaml:"language,omitempty"`

	// Depth overrides the global link-check depth. Zero keeps the global value.
	Depth int `yaml:"depth,omitempty"`

	// IgnorePatterns are path globs skipped by the link checker.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// FollowPatterns restrict the link checker to matching paths.
	FollowPatterns []string `yaml:"followPatterns,omitempty"`
}

// File represents the structure of the .siteaudit.yaml configuration file.
type File struct {
	// Sites maps host names to their configuration. A key of the form
	// "*.example.com" matches every subdomain of example.com.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults apply to every site unless overridden.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for host merged over the defaults.
// An exact host entry wins over a wildcard entry.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := cf.Defaults
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = make(map[string]string, len(cf.Defaults.Headers))
		for k, v := range cf.Defaults.Headers {
			result.Headers[k] = v
		}
	}

	siteConfig, ok := cf.Sites[host]
	if !ok {
		siteConfig, ok = cf.matchWildcard(host)
	}
	if !ok {
		return result
	}

	if siteConfig.Cookie != "" {
		result.Cookie = siteConfig.Cookie
	}
	if siteConfig.Language != "" {
		result.Language = siteConfig.Language
	}
	if siteConfig.Depth != 0 {
		result.Depth = siteConfig.Depth
	}
	if len(siteConfig.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		for k, v := range siteConfig.Headers {
			result.Headers[k] = v
		}
	}
	if len(siteConfig.IgnorePatterns) > 0 {
		result.IgnorePatterns = siteConfig.IgnorePatterns
	}
	if len(siteConfig.FollowPatterns) > 0 {
		result.FollowPatterns = siteConfig.FollowPatterns
	}

	return result
}

// matchWildcard finds the longest "*.suffix" key matching host.
func (cf *File) matchWildcard(host string) (SiteConfig, bool) {
	var (
		best    SiteConfig
		bestLen int
		found   bool
	)
	for key, sc := range cf.Sites {
		suffix, ok := strings.CutPrefix(key, "*.")
		if !ok {
			continue
		}
		if host != suffix && !strings.HasSuffix(host, "."+suffix) {
			continue
		}
		if len(suffix) > bestLen {
			best, bestLen, found = sc, len(suffix), true
		}
	}
	return best, found
}
