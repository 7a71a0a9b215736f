package cluster

import (
	"fmt"
	"regexp"
)

const (
	DefaultLogDir      = "/var/lib/clusterctl/data"
	DefaultStorageSize = "10Gi"
)

// GroupResolution is the reconciliation state of an SPU group.
type GroupResolution string

const (
	ResolutionInit     GroupResolution = "Init"
	ResolutionInvalid  GroupResolution = "Invalid"
	ResolutionReserved GroupResolution = "Reserved"
)

// SpuGroup is a managed group of SPUs as reported by the controller.
type SpuGroup struct {
	Name   string         `json:"name"   yaml:"name"`
	Spec   SpuGroupSpec   `json:"spec"   yaml:"spec"`
	Status SpuGroupStatus `json:"status" yaml:"status"`
}

// SpuGroupSpec describes the desired shape of a group.
type SpuGroupSpec struct {
	Replicas  uint16    `json:"replicas"  yaml:"replicas"`
	MinID     int32     `json:"minId"     yaml:"minId"`
	SpuConfig SpuConfig `json:"spuConfig" yaml:"spuConfig"`
}

// SpuConfig holds per-SPU settings shared by every member of the group.
type SpuConfig struct {
	Rack    *string        `json:"rack,omitempty"    yaml:"rack,omitempty"`
	Storage *StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
}

// StorageConfig is the optional storage override of a group.
type StorageConfig struct {
	LogDir *string `json:"logDir,omitempty" yaml:"logDir,omitempty"`
	Size   *string `json:"size,omitempty"   yaml:"size,omitempty"`
}

// RealStorageConfig is StorageConfig with defaults applied.
type RealStorageConfig struct {
	LogDir string
	Size   string
}

// SpuGroupStatus is the observed state of a group.
type SpuGroupStatus struct {
	Resolution GroupResolution `json:"resolution"       yaml:"resolution"`
	Reason     *string         `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s SpuGroupStatus) String() string {
	if s.Resolution == "" {
		return string(ResolutionInit)
	}
	return string(s.Resolution)
}

// RealStorageConfig fills unset storage fields with defaults.
func (c SpuConfig) RealStorageConfig() RealStorageConfig {
	cfg := RealStorageConfig{LogDir: DefaultLogDir, Size: DefaultStorageSize}
	if c.Storage == nil {
		return cfg
	}
	if c.Storage.LogDir != nil {
		cfg.LogDir = *c.Storage.LogDir
	}
	if c.Storage.Size != nil {
		cfg.Size = *c.Storage.Size
	}
	return cfg
}

// RackOrEmpty returns the rack name, or "" when no rack is set.
func (c SpuConfig) RackOrEmpty() string {
	if c.Rack == nil {
		return ""
	}
	return *c.Rack
}

// SpuIDs returns the ids reserved by the group: MinID up to MinID+Replicas-1.
func (g SpuGroup) SpuIDs() []int32 {
	ids := make([]int32, 0, g.Spec.Replicas)
	for i := int32(0); i < int32(g.Spec.Replicas); i++ {
		ids = append(ids, g.Spec.MinID+i)
	}
	return ids
}

var groupNameRE = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// Validate checks the fields a controller would reject.
func (g SpuGroup) Validate() error {
	if len(g.Name) == 0 || len(g.Name) > 63 || !groupNameRE.MatchString(g.Name) {
		return fmt.Errorf("invalid spu group name %q: must be a lowercase DNS-1123 label", g.Name)
	}
	if g.Spec.Replicas == 0 {
		return fmt.Errorf("spu group %q: replicas must be greater than 0", g.Name)
	}
	if g.Spec.MinID < 0 {
		return fmt.Errorf("spu group %q: min id must not be negative", g.Name)
	}
	return nil
}
