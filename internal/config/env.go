package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read by ApplyEnv.
const EnvPrefix = "SITEAUDIT_"

// envOverrides mirrors the Config fields that can be set from the environment.
// Pointer fields stay nil when the variable is unset.
type envOverrides struct {
	Timeout     *time.Duration `env:"TIMEOUT"`
	UserAgent   *string        `env:"USER_AGENT"`
	Format      *string        `env:"FORMAT"`
	Language    *string        `env:"LANG"`
	Proxy       *string        `env:"PROXY"`
	DBDir       *string        `env:"DB_DIR"`
	Concurrency *int           `env:"CONCURRENCY"`
}

// ApplyEnv overrides c with SITEAUDIT_* environment variables.
// It is applied after defaults and before CLI flags.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if o.Timeout != nil {
		c.Timeout = *o.Timeout
	}
	if o.UserAgent != nil {
		c.UserAgent = *o.UserAgent
	}
	if o.Format != nil {
		c.Format = *o.Format
	}
	if o.Language != nil {
		c.Language = *o.Language
	}
	if o.Proxy != nil {
		c.ProxyURL = *o.Proxy
	}
	if o.DBDir != nil {
		c.DBDir = *o.DBDir
	}
	if o.Concurrency != nil {
		c.Concurrency = *o.Concurrency
	}

	return nil
}
