// Package admin selects where SPU groups come from: the local registry file,
// a controller REST endpoint, or a PostgreSQL mirror.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/luckyjian/clusterctl/internal/cluster"
	"github.com/luckyjian/clusterctl/internal/config"
	"github.com/luckyjian/clusterctl/internal/postgres"
	"github.com/luckyjian/clusterctl/internal/scclient"
)

// ErrReadOnly is returned when a write is attempted on a source that only reads.
var ErrReadOnly = errors.New("admin source is read-only")

// Lister fetches SPU groups. An empty filter list means all groups.
type Lister interface {
	ListGroups(ctx context.Context, filters []string) ([]cluster.SpuGroup, error)
}

// Writer creates and deletes SPU groups.
type Writer interface {
	CreateGroup(ctx context.Context, g cluster.SpuGroup) error
	DeleteGroup(ctx context.Context, name string) error
}

var (
	_ Lister = (*cluster.Registry)(nil)
	_ Writer = (*cluster.Registry)(nil)
	_ Lister = (*scclient.Client)(nil)
	_ Writer = (*scclient.Client)(nil)
	_ Lister = (*postgres.GroupStore)(nil)
)

// Open returns the Lister configured in cfg and a function releasing its
// resources. The function is never nil.
func Open(ctx context.Context, cfg *config.Config) (Lister, func(), error) {
	noop := func() {}
	switch cfg.Admin.Source {
	case config.SourceRegistry, "":
		path := cfg.Admin.Registry
		if path == "" {
			p, err := cluster.DefaultRegistryPath()
			if err != nil {
				return nil, noop, err
			}
			path = p
		}
		return cluster.NewRegistry(path), noop, nil
	case config.SourceHTTP:
		if cfg.Admin.Endpoint == "" {
			return nil, noop, fmt.Errorf("admin.endpoint is required for the http source")
		}
		return scclient.NewClient(cfg.Admin.Endpoint, cfg.Admin.Timeout), noop, nil
	case config.SourcePostgres:
		conn, err := postgres.Connect(ctx, postgres.Config{
			Host:     cfg.PG.Host,
			Port:     cfg.PG.Port,
			User:     cfg.PG.User,
			Database: cfg.PG.Database,
			SSLMode:  cfg.PG.SSLMode,
		})
		if err != nil {
			return nil, noop, err
		}
		closeConn := func() { _ = conn.Close(context.Background()) }
		if err := postgres.Ping(ctx, conn); err != nil {
			closeConn()
			return nil, noop, err
		}
		return postgres.NewGroupStore(conn), closeConn, nil
	default:
		return nil, noop, fmt.Errorf("unknown admin source %q", cfg.Admin.Source)
	}
}

// AsWriter returns l as a Writer, or ErrReadOnly.
func AsWriter(l Lister) (Writer, error) {
	w, ok := l.(Writer)
	if !ok {
		return nil, ErrReadOnly
	}
	return w, nil
}
