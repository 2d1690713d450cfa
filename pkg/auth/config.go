package auth

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds OpenID Connect bearer token verification settings.
type Config struct {
	Enabled       bool   `toml:"enabled"`
	IssuerURL     string `toml:"issuer_url"`
	ClientID      string `toml:"client_id"`
	IdentityClaim string `toml:"identity_claim"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled       string
	IssuerURL     string
	ClientID      string
	IdentityClaim string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Enabled can only be switched on.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.IssuerURL != "" {
		c.IssuerURL = overlay.IssuerURL
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.IdentityClaim != "" {
		c.IdentityClaim = overlay.IdentityClaim
	}
}

func (c *Config) loadDefaults() {
	if c.IdentityClaim == "" {
		c.IdentityClaim = "preferred_username"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.IssuerURL != "" {
		if v := os.Getenv(env.IssuerURL); v != "" {
			c.IssuerURL = v
		}
	}
	if env.ClientID != "" {
		if v := os.Getenv(env.ClientID); v != "" {
			c.ClientID = v
		}
	}
	if env.IdentityClaim != "" {
		if v := os.Getenv(env.IdentityClaim); v != "" {
			c.IdentityClaim = v
		}
	}
}

func (c *Config) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.IssuerURL == "" {
		return fmt.Errorf("issuer_url required when enabled")
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required when enabled")
	}
	return nil
}
