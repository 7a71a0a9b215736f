package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/luckyjian/clusterctl/internal/cluster"
)

// Querier is the subset of *pgx.Conn used by GroupStore.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const listGroupsSQL = `SELECT name, replicas, min_id, rack, storage_log_dir, storage_size,
        COALESCE(resolution, 'Init'), reason
 FROM spu_groups`

// GroupStore reads SPU groups mirrored into a PostgreSQL table.
type GroupStore struct {
	q Querier
}

// NewGroupStore wraps q as a group source.
func NewGroupStore(q Querier) *GroupStore {
	return &GroupStore{q: q}
}

// ListGroups returns groups ordered by name, restricted to filters when given.
func (s *GroupStore) ListGroups(ctx context.Context, filters []string) ([]cluster.SpuGroup, error) {
	query := listGroupsSQL
	var args []any
	if len(filters) > 0 {
		query += " WHERE name = ANY($1)"
		args = append(args, filters)
	}
	query += " ORDER BY name"

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query spu_groups: %w", err)
	}
	defer rows.Close()

	var groups []cluster.SpuGroup
	for rows.Next() {
		var (
			g          cluster.SpuGroup
			replicas   int32
			logDir     *string
			size       *string
			resolution string
		)
		if err := rows.Scan(&g.Name, &replicas, &g.Spec.MinID, &g.Spec.SpuConfig.Rack,
			&logDir, &size, &resolution, &g.Status.Reason); err != nil {
			return nil, fmt.Errorf("scan spu_groups: %w", err)
		}
		if replicas < 0 || replicas > 65535 {
			return nil, fmt.Errorf("spu group %q: replicas %d out of range", g.Name, replicas)
		}
		g.Spec.Replicas = uint16(replicas)
		if logDir != nil || size != nil {
			g.Spec.SpuConfig.Storage = &cluster.StorageConfig{LogDir: logDir, Size: size}
		}
		g.Status.Resolution = cluster.GroupResolution(resolution)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read spu_groups: %w", err)
	}
	return groups, nil
}
