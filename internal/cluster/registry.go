package cluster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// Registry manages SPU groups persisted to a JSON file. It is the local
// stand-in for a controller and serves both reads and writes.
type Registry struct {
	path string
}

// DefaultRegistryPath returns ~/.clusterctl/spu-groups.json.
func DefaultRegistryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".clusterctl", "spu-groups.json"), nil
}

// NewRegistry creates a Registry backed by the given file path. The parent
// directory is created on first write.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Path returns the backing file.
func (r *Registry) Path() string {
	return r.path
}

// Add inserts or overwrites a group (keyed by Name).
func (r *Registry) Add(g SpuGroup) error {
	groups, err := r.load()
	if err != nil {
		return err
	}
	groups[g.Name] = g
	return r.save(groups)
}

// Get returns the group with the given name.
func (r *Registry) Get(name string) (*SpuGroup, error) {
	groups, err := r.load()
	if err != nil {
		return nil, err
	}
	g, ok := groups[name]
	if !ok {
		return nil, fmt.Errorf("spu group %q: %w", name, ErrNotFound)
	}
	return &g, nil
}

// List returns all groups sorted by name.
func (r *Registry) List() ([]SpuGroup, error) {
	groups, err := r.load()
	if err != nil {
		return nil, err
	}
	result := make([]SpuGroup, 0, len(groups))
	for _, g := range groups {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Remove deletes the group with the given name.
func (r *Registry) Remove(name string) error {
	groups, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := groups[name]; !ok {
		return fmt.Errorf("spu group %q: %w", name, ErrNotFound)
	}
	delete(groups, name)
	return r.save(groups)
}

// ListGroups returns the groups whose names are in filters, or every group
// when filters is empty. Unknown names are skipped.
func (r *Registry) ListGroups(_ context.Context, filters []string) ([]SpuGroup, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		return all, nil
	}
	wanted := make(map[string]bool, len(filters))
	for _, f := range filters {
		wanted[f] = true
	}
	result := make([]SpuGroup, 0, len(filters))
	for _, g := range all {
		if wanted[g.Name] {
			result = append(result, g)
		}
	}
	return result, nil
}

// CreateGroup validates g and stores it with an Init status. Existing names
// are rejected.
func (r *Registry) CreateGroup(_ context.Context, g SpuGroup) error {
	if err := g.Validate(); err != nil {
		return err
	}
	groups, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := groups[g.Name]; ok {
		return fmt.Errorf("spu group %q: %w", g.Name, ErrExists)
	}
	g.Status = SpuGroupStatus{Resolution: ResolutionInit}
	groups[g.Name] = g
	return r.save(groups)
}

// DeleteGroup removes the named group.
func (r *Registry) DeleteGroup(_ context.Context, name string) error {
	return r.Remove(name)
}

// load reads the registry file and returns a name-to-group map.
// If the file does not exist an empty map is returned.
func (r *Registry) load() (map[string]SpuGroup, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return make(map[string]SpuGroup), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", r.path, err)
	}
	if len(data) == 0 {
		return make(map[string]SpuGroup), nil
	}
	var groups map[string]SpuGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", r.path, err)
	}
	if groups == nil {
		groups = make(map[string]SpuGroup)
	}
	return groups, nil
}

// save writes the map to a temp file next to the registry and renames it into place.
func (r *Registry) save(groups map[string]SpuGroup) error {
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write registry %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("write registry %s: %w", r.path, err)
	}
	return nil
}
