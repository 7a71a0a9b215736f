package config

import "time"

const (
	DefaultConfigPath   = "~/.clusterctl/config.yaml"
	DefaultOutputFormat = "table"
	DefaultAdminSource  = SourceRegistry
	DefaultAdminTimeout = 10 * time.Second
	DefaultPGPort       = 5432
	DefaultSSLMode      = "prefer"
	DefaultPGUser       = "postgres"
	DefaultPGDatabase   = "clusterctl"
)

// Admin sources.
const (
	SourceRegistry = "registry"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

var validSources = map[string]bool{
	SourceRegistry: true,
	SourceHTTP:     true,
	SourcePostgres: true,
}
