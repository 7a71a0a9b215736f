package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/luckyjian/clusterctl/internal/admin"
	"github.com/luckyjian/clusterctl/internal/cluster"
	"github.com/luckyjian/clusterctl/internal/logging"
	"github.com/luckyjian/clusterctl/internal/output"
)

// ListSpuGroups renders a list of groups as one table row per group.
type ListSpuGroups []cluster.SpuGroup

// spuGroupResponseToOutput renders groups, or "no groups" when there are none.
func spuGroupResponseToOutput(out output.Terminal, groups []cluster.SpuGroup, mode output.OutputType) error {
	log := logging.GetLogger("spg")
	log.Debug().Interface("groups", groups).Msg("fetched spu groups")

	if len(groups) == 0 {
		out.Println("no groups")
		return nil
	}
	return output.RenderList(out, ListSpuGroups(groups), mode)
}

func (l ListSpuGroups) Header() output.Row {
	return output.NewRow("NAME", "REPLICAS", "MIN ID", "RACK", "SIZE", "STATUS")
}

// Errors annotates invalid groups with the controller's reason.
func (l ListSpuGroups) Errors() []string {
	errs := make([]string, len(l))
	for i, g := range l {
		if g.Status.Resolution == cluster.ResolutionInvalid && g.Status.Reason != nil {
			errs[i] = *g.Status.Reason
		}
	}
	return errs
}

func (l ListSpuGroups) Content() []output.Row {
	rows := make([]output.Row, len(l))
	for i, g := range l {
		storage := g.Spec.SpuConfig.RealStorageConfig()
		rows[i] = output.Row{
			output.NewCellAlign(g.Name, output.AlignRight),
			output.NewCellAlign(strconv.Itoa(int(g.Spec.Replicas)), output.AlignCenter),
			output.NewCellAlign(strconv.Itoa(int(g.Spec.MinID)), output.AlignRight),
			output.NewCellAlign(g.Spec.SpuConfig.RackOrEmpty(), output.AlignRight),
			output.NewCellAlign(storage.Size, output.AlignRight),
			output.NewCellAlign(g.Status.String(), output.AlignRight),
		}
	}
	return rows
}

// SpuGroupDescription is the detail view of one group: its settings as
// key/value pairs and the SPUs it reserves as a nested table.
type SpuGroupDescription struct {
	cluster.SpuGroup `json:",inline" yaml:",inline"`
}

func (d SpuGroupDescription) Label() string        { return "spu group" }
func (d SpuGroupDescription) LabelPlural() string  { return "spu groups" }
func (d SpuGroupDescription) ResourceName() string { return d.Name }

func (d SpuGroupDescription) IsOk() bool {
	return d.Status.Resolution != cluster.ResolutionInvalid
}

func (d SpuGroupDescription) ValidateError() string {
	reason := "no reason given"
	if d.Status.Reason != nil {
		reason = *d.Status.Reason
	}
	return fmt.Sprintf("%s %q is invalid: %s", d.Label(), d.Name, reason)
}

func (d SpuGroupDescription) KeyValues() []output.KeyValue {
	storage := d.Spec.SpuConfig.RealStorageConfig()
	rack := d.Spec.SpuConfig.RackOrEmpty()
	if rack == "" {
		rack = "-"
	}
	kv := []output.KeyValue{
		output.KV("Name", d.Name),
		output.KV("Replicas", strconv.Itoa(int(d.Spec.Replicas))),
		output.KV("Min ID", strconv.Itoa(int(d.Spec.MinID))),
		output.KV("Rack", rack),
		output.KV("Storage Size", storage.Size),
		output.KV("Log Dir", storage.LogDir),
		output.KV("Status", d.Status.String()),
	}
	if d.Status.Reason != nil {
		kv = append(kv, output.KV("Reason", *d.Status.Reason))
	}
	return append(kv, output.KeyOnly("SPUs"))
}

func (d SpuGroupDescription) Header() output.Row {
	return output.NewRow("SPU ID", "NAME", "RACK")
}

func (d SpuGroupDescription) Errors() []string {
	return make([]string, len(d.SpuIDs()))
}

func (d SpuGroupDescription) Content() []output.Row {
	ids := d.SpuIDs()
	rows := make([]output.Row, len(ids))
	for i, id := range ids {
		rows[i] = output.Row{
			output.NewCellAlign(strconv.Itoa(int(id)), output.AlignRight),
			output.NewCell(fmt.Sprintf("%s-%d", d.Name, i)),
			output.NewCell(d.Spec.SpuConfig.RackOrEmpty()),
		}
	}
	return rows
}

// groupDescription fetches the requested groups and renders their detail views.
type groupDescription struct {
	lister admin.Lister
	names  []string
	mode   output.OutputType
}

var _ output.RenderContext = (*groupDescription)(nil)

func (d *groupDescription) RenderOn(ctx context.Context, out output.Terminal) error {
	groups, err := d.lister.ListGroups(ctx, d.names)
	if err != nil {
		return fmt.Errorf("list spu groups: %w", err)
	}
	logger := logging.GetLogger("spg")
	logger.Debug().Int("count", len(groups)).Msg("describing spu groups")

	objects := make([]SpuGroupDescription, len(groups))
	for i, g := range groups {
		objects[i] = SpuGroupDescription{SpuGroup: g}
	}
	return output.DescribeObjects(out, objects, d.mode)
}
