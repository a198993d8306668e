package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// Defaults.
const (
	DefaultAPIURL    = "https://api.github.com"
	DefaultUserAgent = "randywick/gita"
	DefaultBranch    = "main"
	DefaultLogLevel  = "info"
	DefaultPath      = "~/.config/gita/config.toml"
)

// LogLevels lists the accepted log level names.
var LogLevels = []string{"error", "warn", "info", "verbose", "debug", "silly"}

type Config struct {
	Token         string // GITA_GITHUB_API_KEY (optional, empty = unauthenticated)
	APIURL        string // GITA_API_URL (default "https://api.github.com")
	UserAgent     string // GITA_USER_AGENT (default "randywick/gita")
	DefaultBranch string // GITA_DEFAULT_BRANCH (default "main")
	LogLevel      string // LOG_LEVEL (default "info")
}

// fileConfig is the on-disk TOML layout.
type fileConfig struct {
	Token         string `toml:"token"`
	APIURL        string `toml:"api_url"`
	UserAgent     string `toml:"user_agent"`
	DefaultBranch string `toml:"default_branch"`
	LogLevel      string `toml:"log_level"`
}

// Load builds the configuration from defaults, then the TOML file at path
// (a missing file is not an error; "~" is expanded), then the environment.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	c := &Config{
		APIURL:        DefaultAPIURL,
		UserAgent:     DefaultUserAgent,
		DefaultBranch: DefaultBranch,
		LogLevel:      DefaultLogLevel,
	}

	if path != "" {
		if err := c.mergeFile(path); err != nil {
			return nil, err
		}
	}

	c.Token = envOrDefault("GITA_GITHUB_API_KEY", c.Token)
	c.APIURL = envOrDefault("GITA_API_URL", c.APIURL)
	c.UserAgent = envOrDefault("GITA_USER_AGENT", c.UserAgent)
	c.DefaultBranch = envOrDefault("GITA_DEFAULT_BRANCH", c.DefaultBranch)
	c.LogLevel = strings.ToLower(envOrDefault("LOG_LEVEL", c.LogLevel))

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) mergeFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config path %q: %w", path, err)
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(expanded, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", expanded, err)
	}

	if fc.Token != "" {
		c.Token = fc.Token
	}
	if fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if fc.UserAgent != "" {
		c.UserAgent = fc.UserAgent
	}
	if fc.DefaultBranch != "" {
		c.DefaultBranch = fc.DefaultBranch
	}
	if fc.LogLevel != "" {
		c.LogLevel = strings.ToLower(fc.LogLevel)
	}
	return nil
}

// Validate checks the API URL and log level.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api url: %w", err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("api url %q: must be an absolute http(s) URL", c.APIURL)
	}
	if c.DefaultBranch == "" {
		return fmt.Errorf("default branch must not be empty")
	}
	for _, l := range LogLevels {
		if c.LogLevel == l {
			return nil
		}
	}
	return fmt.Errorf("log level %q: must be one of %s", c.LogLevel, strings.Join(LogLevels, ", "))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
