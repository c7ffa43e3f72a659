// Package config provides configuration management.
//
// Configuration is read from an HCL (.hcl) or JSON (.json) file and then
// overridden by NETBACK_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/kelseyhightower/envconfig"

	"freight-netback/internal/errors"
	"freight-netback/internal/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "NETBACK"

// Country ordering policies for the country dropdown
const (
	CountryOrderSorted    = "sorted"
	CountryOrderFirstSeen = "first_seen"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `hcl:"version,optional" json:"version" yaml:"version" ignored:"true"`

	// Dataset locates the fixed rate table
	Dataset *DatasetConfig `hcl:"dataset,block" json:"dataset" yaml:"dataset" envconfig:"DATASET"`

	// Netback contains calculator defaults
	Netback *NetbackConfig `hcl:"netback,block" json:"netback" yaml:"netback" envconfig:"CALC"`

	// Catalog contains dropdown ordering settings
	Catalog *CatalogConfig `hcl:"catalog,block" json:"catalog" yaml:"catalog" envconfig:"CATALOG"`

	// Output contains output configuration
	Output *OutputConfig `hcl:"output,block" json:"output" yaml:"output" envconfig:"OUTPUT"`

	// Server contains HTTP server configuration
	Server *ServerConfig `hcl:"server,block" json:"server" yaml:"server" envconfig:"SERVER"`

	// Logging contains logging configuration
	Logging *logging.Config `hcl:"logging,block" json:"logging" yaml:"logging" envconfig:"LOG"`
}

// DatasetConfig points at the rate table loaded at startup
type DatasetConfig struct {
	// Path is a CSV or XLSX file; empty means the table must be uploaded
	Path string `hcl:"path,optional" json:"path" yaml:"path" split_words:"true"`

	// Sheet selects the worksheet of an XLSX file (default: first sheet)
	Sheet string `hcl:"sheet,optional" json:"sheet" yaml:"sheet" split_words:"true"`
}

// NetbackConfig contains calculator defaults
type NetbackConfig struct {
	// LocalRate is subtracted from every netback when the caller gives none
	LocalRate float64 `hcl:"local_rate,optional" json:"local_rate" yaml:"local_rate" split_words:"true"`
}

// CatalogConfig contains dropdown ordering settings
type CatalogConfig struct {
	// CountryOrder is "sorted" or "first_seen"
	CountryOrder string `hcl:"country_order,optional" json:"country_order" yaml:"country_order" split_words:"true"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Format is the default output format (cli, json, yaml, markdown)
	Format string `hcl:"format,optional" json:"format" yaml:"format" split_words:"true"`

	// NoColor disables terminal styling
	NoColor bool `hcl:"no_color,optional" json:"no_color" yaml:"no_color" split_words:"true"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `hcl:"addr,optional" json:"addr" yaml:"addr" split_words:"true"`

	// MaxUploadMB caps uploaded dataset size
	MaxUploadMB int `hcl:"max_upload_mb,optional" json:"max_upload_mb" yaml:"max_upload_mb" split_words:"true"`

	// MaxSessions caps live sessions; the oldest is evicted past it
	MaxSessions int `hcl:"max_sessions,optional" json:"max_sessions" yaml:"max_sessions" split_words:"true"`

	// AllowedOrigins for CORS
	AllowedOrigins []string `hcl:"allowed_origins,optional" json:"allowed_origins" yaml:"allowed_origins" split_words:"true"`

	// ShutdownTimeout is a Go duration string
	ShutdownTimeout string `hcl:"shutdown_timeout,optional" json:"shutdown_timeout" yaml:"shutdown_timeout" split_words:"true"`
}

// ShutdownDuration parses ShutdownTimeout
func (s *ServerConfig) ShutdownDuration() time.Duration {
	d, err := time.ParseDuration(s.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// MaxUploadBytes converts MaxUploadMB to bytes
func (s *ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Dataset: &DatasetConfig{},
		Netback: &NetbackConfig{
			LocalRate: 0.02,
		},
		Catalog: &CatalogConfig{
			CountryOrder: CountryOrderSorted,
		},
		Output: &OutputConfig{
			Format: "cli",
		},
		Server: &ServerConfig{
			Addr:            ":8080",
			MaxUploadMB:     10,
			MaxSessions:     64,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: "10s",
		},
		Logging: func() *logging.Config { c := logging.DefaultConfig(); return &c }(),
	}
}

// Load loads configuration from a file and the environment.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
				return nil, errors.Config(fmt.Sprintf("failed to decode %s", path), err)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Config(fmt.Sprintf("failed to stat %s", path), err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Config("failed to apply environment overrides", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration source without touching the environment.
// The filename extension selects HCL or JSON syntax.
func Parse(filename string, src []byte) (*Config, error) {
	cfg := Default()
	if err := hclsimple.Decode(filename, src, nil, cfg); err != nil {
		return nil, errors.Config(fmt.Sprintf("failed to decode %s", filename), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the calculator or server cannot honour
func (c *Config) Validate() error {
	if c.Netback.LocalRate < 0 {
		return errors.Config("netback.local_rate must be non-negative", nil)
	}
	switch c.Catalog.CountryOrder {
	case CountryOrderSorted, CountryOrderFirstSeen:
	default:
		return errors.Config(fmt.Sprintf("catalog.country_order %q is not one of sorted, first_seen", c.Catalog.CountryOrder), nil)
	}
	switch c.Output.Format {
	case "cli", "json", "yaml", "markdown":
	default:
		return errors.Config(fmt.Sprintf("output.format %q is not one of cli, json, yaml, markdown", c.Output.Format), nil)
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.Config("server.max_upload_mb must be positive", nil)
	}
	if c.Server.MaxSessions <= 0 {
		return errors.Config("server.max_sessions must be positive", nil)
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return errors.Config("server.shutdown_timeout is not a duration", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.Config("invalid logging block", err)
	}
	return nil
}

// Save saves configuration to a file as JSON, which Load reads back
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
