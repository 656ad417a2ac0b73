// Package config loads the deployment configuration: which bucket the site
// publishes to, how syncs behave, and how the periodic refresh function is
// wired. The provisioning pipeline owns resource creation ordering (log group
// before function, bucket before objects, function before schedule); this
// config only names the resources.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete sitesync configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Sync    SyncConfig    `yaml:"sync"`
	Data    DataConfig    `yaml:"data"`
	Refresh RefreshConfig `yaml:"refresh"`
}

// SiteConfig names the local source tree and the website namespace.
type SiteConfig struct {
	Root   string `yaml:"root"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// SyncConfig configures sync behavior.
type SyncConfig struct {
	Delete             bool     `yaml:"delete"`
	Excludes           []string `yaml:"excludes"`
	Concurrency        int      `yaml:"concurrency"`
	DefaultContentType string   `yaml:"default_content_type"`
	SniffUnknown       bool     `yaml:"sniff_unknown"`
}

// DataConfig names the object the refresh function rewrites. It lives outside
// the synced tree, which is why delete mode defaults to off.
type DataConfig struct {
	Bucket string `yaml:"bucket"`
	Key    string `yaml:"key"`
}

// RefreshConfig describes the deployed refresh function and its static
// environment.
type RefreshConfig struct {
	Function            string  `yaml:"function"`
	Schedule            string  `yaml:"schedule"`
	WebsiteKey          string  `yaml:"website_key"`
	RequestDelaySeconds float64 `yaml:"request_delay_seconds"`
	LogLevel            string  `yaml:"log_level"`
}

// Default returns the configuration the deployment ships with.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Root:   "./site",
			Bucket: "www.wkncstats.xyz",
		},
		Sync: SyncConfig{
			Concurrency: 32,
		},
		Data: DataConfig{
			Bucket: "wknc-stats-data",
			Key:    "data/spins.json",
		},
		Refresh: RefreshConfig{
			Function:            "wknc-stats-update-lambda",
			Schedule:            "rate(6 hours)",
			WebsiteKey:          "index.html",
			RequestDelaySeconds: 3,
			LogLevel:            "INFO",
		},
	}
}

// Load reads and parses the configuration file, expanding environment
// variables in the path and in string values, and fills unset fields from
// Default.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.expandEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandEnv expands environment variables in all string fields.
func (c *Config) expandEnv() {
	c.Site.Root = os.ExpandEnv(c.Site.Root)
	c.Site.Bucket = os.ExpandEnv(c.Site.Bucket)
	c.Site.Prefix = os.ExpandEnv(c.Site.Prefix)
	c.Sync.DefaultContentType = os.ExpandEnv(c.Sync.DefaultContentType)
	c.Data.Bucket = os.ExpandEnv(c.Data.Bucket)
	c.Data.Key = os.ExpandEnv(c.Data.Key)
	c.Refresh.Function = os.ExpandEnv(c.Refresh.Function)
	c.Refresh.WebsiteKey = os.ExpandEnv(c.Refresh.WebsiteKey)
	c.Refresh.LogLevel = os.ExpandEnv(c.Refresh.LogLevel)
}

func (c *Config) validate() error {
	if c.Site.Root == "" {
		return fmt.Errorf("site.root is required")
	}
	if c.Site.Bucket == "" {
		return fmt.Errorf("site.bucket is required")
	}
	if c.Sync.Concurrency < 0 {
		return fmt.Errorf("sync.concurrency must not be negative")
	}
	return nil
}

// FunctionEnv renders the refresh function's static environment, the contract
// between this deployment and the function's code.
func (c *Config) FunctionEnv() map[string]string {
	return map[string]string{
		"DATA_BUCKET":           c.Data.Bucket,
		"DATA_KEY":              c.Data.Key,
		"WEBSITE_BUCKET":        c.Site.Bucket,
		"WEBSITE_KEY":           c.Refresh.WebsiteKey,
		"REQUEST_DELAY_SECONDS": fmt.Sprintf("%g", c.Refresh.RequestDelaySeconds),
		"LOG_LEVEL":             c.Refresh.LogLevel,
	}
}
