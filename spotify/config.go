//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Configuration loading from the environment and .env files.
//

package spotify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
)

const (
	DefaultAPIURL = "https://api.spotify.com/v1/"
	DefaultDaemon = "spotifyd"
)

// ErrMissingCredential is returned when CLIENT_ID or CLIENT_SECRET is unset or empty.
var ErrMissingCredential = errors.New("missing credential")

// Config holds the settings read from the environment.
type Config struct {
	ClientID     string `envconfig:"CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"CLIENT_SECRET" required:"true"`

	TokenURL string `envconfig:"SPOTIFY_TOKEN_URL"`
	APIURL   string `envconfig:"SPOTIFY_API_URL"`
	Daemon   string `envconfig:"SPOTIFY_DAEMON"`
}

// ConfigError reports an invalid or incomplete configuration.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LoadConfig reads the configuration from the process environment. Variables
// from the given dotenv files (or ./.env when none are given) are loaded
// first without overriding anything already set; missing files are ignored.
func LoadConfig(envFiles ...string) (Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		// envconfig reports a missing required key before anything else
		if strings.Contains(err.Error(), "required key") {
			return Config{}, &ConfigError{Err: fmt.Errorf("%w: %v", ErrMissingCredential, err)}
		}
		return Config{}, &ConfigError{Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Validate checks that both client credentials are present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return &ConfigError{Field: "CLIENT_ID", Err: ErrMissingCredential}
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return &ConfigError{Field: "CLIENT_SECRET", Err: ErrMissingCredential}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.TokenURL == "" {
		c.TokenURL = spotifyauth.TokenURL
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if !strings.HasSuffix(c.APIURL, "/") {
		c.APIURL += "/"
	}
	if c.Daemon == "" {
		c.Daemon = DefaultDaemon
	}
}
