package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/luckyjian/clusterctl/internal/output"
)

// Config holds all tool-wide configuration. The PostgreSQL password is absent;
// it is read from CLUSTERCTL_PG_PASSWORD at connection time.
type Config struct {
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
	Admin  AdminConfig  `json:"admin" yaml:"admin" mapstructure:"admin"`
	PG     PGConfig     `json:"pg" yaml:"pg" mapstructure:"pg"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	Format string `json:"format" yaml:"format" mapstructure:"format"`
	Color  bool   `json:"color" yaml:"color" mapstructure:"color"`
}

// AdminConfig selects where SPU groups are read from.
type AdminConfig struct {
	Source   string        `json:"source" yaml:"source" mapstructure:"source"`
	Endpoint string        `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`
	Registry string        `json:"registry" yaml:"registry" mapstructure:"registry"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// MarshalJSON writes Timeout as a duration string ("10s"), matching the YAML form.
func (a AdminConfig) MarshalJSON() ([]byte, error) {
	type plain AdminConfig
	return json.Marshal(struct {
		plain
		Timeout string `json:"timeout"`
	}{plain: plain(a), Timeout: a.Timeout.String()})
}

// PGConfig holds PostgreSQL connection parameters for the postgres source.
type PGConfig struct {
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Port     int    `json:"port" yaml:"port" mapstructure:"port"`
	User     string `json:"user" yaml:"user" mapstructure:"user"`
	Database string `json:"database" yaml:"database" mapstructure:"database"`
	SSLMode  string `json:"sslmode" yaml:"sslmode" mapstructure:"sslmode"`
}

// LogConfig holds optional log file settings.
type LogConfig struct {
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// Load reads configuration from an optional file and environment variables.
// When cfgFile is empty, only defaults and environment variables are used.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("output.color", true)
	v.SetDefault("admin.source", DefaultAdminSource)
	v.SetDefault("admin.timeout", DefaultAdminTimeout)
	v.SetDefault("pg.port", DefaultPGPort)
	v.SetDefault("pg.sslmode", DefaultSSLMode)
	v.SetDefault("pg.user", DefaultPGUser)
	v.SetDefault("pg.database", DefaultPGDatabase)

	// CLUSTERCTL_ADMIN_SOURCE → admin.source, and so on.
	v.SetEnvPrefix("CLUSTERCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings so nested keys resolve even without a config file.
	envBindings := map[string]string{
		"output.format":  "CLUSTERCTL_OUTPUT_FORMAT",
		"output.color":   "CLUSTERCTL_OUTPUT_COLOR",
		"admin.source":   "CLUSTERCTL_ADMIN_SOURCE",
		"admin.endpoint": "CLUSTERCTL_ADMIN_ENDPOINT",
		"admin.registry": "CLUSTERCTL_ADMIN_REGISTRY",
		"admin.timeout":  "CLUSTERCTL_ADMIN_TIMEOUT",
		"pg.host":        "CLUSTERCTL_PG_HOST",
		"pg.port":        "CLUSTERCTL_PG_PORT",
		"pg.user":        "CLUSTERCTL_PG_USER",
		"pg.database":    "CLUSTERCTL_PG_DATABASE",
		"pg.sslmode":     "CLUSTERCTL_PG_SSLMODE",
		"log.file":       "CLUSTERCTL_LOG_FILE",
	}
	for key, envVar := range envBindings {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", envVar, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// OutputType returns the configured default output type.
func (c *Config) OutputType() (output.OutputType, error) {
	return output.ParseOutputType(c.Output.Format)
}

// Validate checks that the configuration is semantically correct.
func (c *Config) Validate() error {
	if _, err := c.OutputType(); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if !validSources[c.Admin.Source] {
		return fmt.Errorf(
			"invalid admin source %q: must be one of registry, http, postgres",
			c.Admin.Source,
		)
	}
	switch c.Admin.Source {
	case SourceHTTP:
		if c.Admin.Endpoint == "" {
			return fmt.Errorf("admin.endpoint is required for the http source")
		}
	case SourcePostgres:
		if c.PG.Host == "" {
			return fmt.Errorf("pg.host is required for the postgres source")
		}
		if c.PG.Port <= 0 || c.PG.Port > 65535 {
			return fmt.Errorf("invalid pg.port %d: must be between 1 and 65535", c.PG.Port)
		}
	}
	return nil
}
