package cluster_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/luckyjian/clusterctl/internal/cluster"
)

func newTestRegistry(t *testing.T) *cluster.Registry {
	t.Helper()
	dir := t.TempDir()
	return cluster.NewRegistry(filepath.Join(dir, "state", "spu-groups.json"))
}

func strPtr(s string) *string { return &s }

func testGroup(name string, replicas uint16, minID int32) cluster.SpuGroup {
	return cluster.SpuGroup{
		Name: name,
		Spec: cluster.SpuGroupSpec{
			Replicas: replicas,
			MinID:    minID,
			SpuConfig: cluster.SpuConfig{
				Rack: strPtr("rack-a"),
			},
		},
	}
}

func TestRegistry_AddAndGet(t *testing.T) {
	reg := newTestRegistry(t)
	if err := reg.Add(testGroup("main", 3, 0)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got, err := reg.Get("main")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Spec.Replicas != 3 {
		t.Errorf("expected 3 replicas, got %d", got.Spec.Replicas)
	}
	if got.Spec.SpuConfig.RackOrEmpty() != "rack-a" {
		t.Errorf("expected rack 'rack-a', got %q", got.Spec.SpuConfig.RackOrEmpty())
	}
}

func TestRegistry_GetNotFound(t *testing.T) {
	reg := newTestRegistry(t)
	_, err := reg.Get("nonexistent")
	if !errors.Is(err, cluster.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := newTestRegistry(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Add(testGroup(name, 1, 0)); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}
	groups, err := reg.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, g := range groups {
		if g.Name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], g.Name)
		}
	}
}

func TestRegistry_ListEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spu-groups.json")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	groups, err := cluster.NewRegistry(path).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestRegistry_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spu-groups.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := cluster.NewRegistry(path).List(); err == nil {
		t.Error("expected parse error")
	}
}

func TestRegistry_ListGroupsFilters(t *testing.T) {
	reg := newTestRegistry(t)
	for _, name := range []string{"a", "b", "c"} {
		if err := reg.Add(testGroup(name, 1, 0)); err != nil {
			t.Fatal(err)
		}
	}
	groups, err := reg.ListGroups(context.Background(), []string{"c", "a", "missing"})
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 2 || groups[0].Name != "a" || groups[1].Name != "c" {
		t.Errorf("unexpected filtered groups: %+v", groups)
	}
}

func TestRegistry_CreateAndDelete(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	if err := reg.CreateGroup(ctx, testGroup("main", 2, 100)); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	got, err := reg.Get("main")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status.Resolution != cluster.ResolutionInit {
		t.Errorf("expected Init resolution, got %q", got.Status.Resolution)
	}

	err = reg.CreateGroup(ctx, testGroup("main", 2, 100))
	if !errors.Is(err, cluster.ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}

	if err := reg.DeleteGroup(ctx, "main"); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if err := reg.DeleteGroup(ctx, "main"); !errors.Is(err, cluster.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRegistry_CreateRejectsInvalid(t *testing.T) {
	reg := newTestRegistry(t)
	if err := reg.CreateGroup(context.Background(), testGroup("Bad_Name", 1, 0)); err == nil {
		t.Error("expected validation error")
	}
	if err := reg.CreateGroup(context.Background(), testGroup("zero", 0, 0)); err == nil {
		t.Error("expected error for zero replicas")
	}
}
