package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/luckyjian/clusterctl/internal/config"
	"github.com/luckyjian/clusterctl/internal/output"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("expected table output, got %q", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("expected color enabled by default")
	}
	if cfg.Admin.Source != config.SourceRegistry {
		t.Errorf("expected registry source, got %q", cfg.Admin.Source)
	}
	if cfg.Admin.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Admin.Timeout)
	}
	if cfg.PG.Port != 5432 {
		t.Errorf("expected pg port 5432, got %d", cfg.PG.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CLUSTERCTL_OUTPUT_FORMAT", "yaml")
	t.Setenv("CLUSTERCTL_ADMIN_SOURCE", "http")
	t.Setenv("CLUSTERCTL_ADMIN_ENDPOINT", "http://sc:9003")
	t.Setenv("CLUSTERCTL_ADMIN_TIMEOUT", "3s")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	mode, err := cfg.OutputType()
	if err != nil {
		t.Fatal(err)
	}
	if mode != output.OutputYAML {
		t.Errorf("expected yaml, got %q", mode)
	}
	if cfg.Admin.Source != config.SourceHTTP || cfg.Admin.Endpoint != "http://sc:9003" {
		t.Errorf("unexpected admin config: %+v", cfg.Admin)
	}
	if cfg.Admin.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.Admin.Timeout)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "output:\n  format: json\n  color: false\nadmin:\n  source: postgres\npg:\n  host: db.internal\n  port: 6432\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if cfg.PG.Host != "db.internal" || cfg.PG.Port != 6432 {
		t.Errorf("unexpected pg config: %+v", cfg.PG)
	}
	if cfg.PG.User != "postgres" {
		t.Errorf("expected default pg user, got %q", cfg.PG.User)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			Output: config.OutputConfig{Format: "table"},
			Admin:  config.AdminConfig{Source: config.SourceRegistry},
			PG:     config.PGConfig{Port: 5432},
		}
	}

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad format", func(c *config.Config) { c.Output.Format = "xml" }},
		{"bad source", func(c *config.Config) { c.Admin.Source = "etcd" }},
		{"http without endpoint", func(c *config.Config) { c.Admin.Source = config.SourceHTTP }},
		{"postgres without host", func(c *config.Config) { c.Admin.Source = config.SourcePostgres }},
		{"postgres bad port", func(c *config.Config) {
			c.Admin.Source = config.SourcePostgres
			c.PG.Host = "db"
			c.PG.Port = 70000
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := base().Validate(); err != nil {
		t.Errorf("base config should be valid: %v", err)
	}
}

func TestAdminConfig_JSONTimeout(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var parsed struct {
		Admin map[string]interface{} `json:"admin"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if parsed.Admin["timeout"] != "10s" {
		t.Errorf("expected timeout \"10s\", got %v", parsed.Admin["timeout"])
	}
	if parsed.Admin["source"] != config.SourceRegistry {
		t.Errorf("expected other admin fields kept, got %v", parsed.Admin)
	}
}
