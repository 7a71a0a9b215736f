package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luckyjian/clusterctl/internal/admin"
	"github.com/luckyjian/clusterctl/internal/cluster"
	"github.com/luckyjian/clusterctl/internal/config"
	"github.com/luckyjian/clusterctl/internal/logging"
	"github.com/luckyjian/clusterctl/internal/output"
)

// newGroupCmd returns the "spg" parent command with all sub-commands.
func newGroupCmd(cfg *config.Config, mode *output.OutputType) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spg",
		Aliases: []string{"spu-group"},
		Short:   "Manage SPU groups (list, describe, create, delete)",
	}
	cmd.AddCommand(
		newGroupListCmd(cfg, mode),
		newGroupDescribeCmd(cfg, mode),
		newGroupCreateCmd(cfg, mode),
		newGroupDeleteCmd(cfg, mode),
	)
	return cmd
}

func newGroupListCmd(cfg *config.Config, mode *output.OutputType) *cobra.Command {
	return &cobra.Command{
		Use:   "list [NAME...]",
		Short: "List SPU groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()

			lister, release, err := admin.Open(ctx, cfg)
			defer release()
			if err != nil {
				return writeFailure(cmd, *mode, "spg list", err)
			}

			groups, err := lister.ListGroups(ctx, args)
			if err != nil {
				return writeFailure(cmd, *mode, "spg list", err)
			}
			if err := spuGroupResponseToOutput(newStream(cmd, cfg), groups, *mode); err != nil {
				return writeFailure(cmd, *mode, "spg list", err)
			}
			return nil
		},
	}
}

func newGroupDescribeCmd(cfg *config.Config, mode *output.OutputType) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [NAME...]",
		Short: "Show SPU group details and the SPUs each group reserves",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()

			lister, release, err := admin.Open(ctx, cfg)
			defer release()
			if err != nil {
				return writeFailure(cmd, *mode, "spg describe", err)
			}

			rc := &groupDescription{lister: lister, names: args, mode: *mode}
			if err := rc.RenderOn(ctx, newStream(cmd, cfg)); err != nil {
				return writeFailure(cmd, *mode, "spg describe", err)
			}
			return nil
		},
	}
}

func newGroupCreateCmd(cfg *config.Config, mode *output.OutputType) *cobra.Command {
	var (
		name        string
		replicas    uint16
		minID       int32
		rack        string
		storageSize string
		logDir      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a managed SPU group",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := cluster.SpuGroup{
				Name: name,
				Spec: cluster.SpuGroupSpec{Replicas: replicas, MinID: minID},
			}
			if rack != "" {
				g.Spec.SpuConfig.Rack = &rack
			}
			if storageSize != "" || logDir != "" {
				storage := &cluster.StorageConfig{}
				if storageSize != "" {
					storage.Size = &storageSize
				}
				if logDir != "" {
					storage.LogDir = &logDir
				}
				g.Spec.SpuConfig.Storage = storage
			}

			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()

			lister, release, err := admin.Open(ctx, cfg)
			defer release()
			if err != nil {
				return writeFailure(cmd, *mode, "spg create", err)
			}
			w, err := admin.AsWriter(lister)
			if err != nil {
				return writeFailure(cmd, *mode, "spg create", err)
			}

			log := logging.GetLogger("spg")
			done := logging.LogOperationStart(log, "spg create")
			log.Info().Str("name", name).Uint16("replicas", replicas).Int32("min_id", minID).Msg("creating spu group")
			if err := w.CreateGroup(ctx, g); err != nil {
				return writeFailure(cmd, *mode, "spg create", err)
			}
			done()
			g.Status = cluster.SpuGroupStatus{Resolution: cluster.ResolutionInit}
			return writeSuccess(newStream(cmd, cfg), *mode, "spg create",
				fmt.Sprintf("spu group %q created", name), g)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "SPU group name (required)")
	cmd.Flags().Uint16Var(&replicas, "replicas", 1, "Number of SPUs in the group")
	cmd.Flags().Int32Var(&minID, "min-id", 0, "First SPU id reserved by the group")
	cmd.Flags().StringVar(&rack, "rack", "", "Rack assigned to every SPU in the group")
	cmd.Flags().StringVar(&storageSize, "storage-size", "", "Storage size per SPU (default "+cluster.DefaultStorageSize+")")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "Log directory per SPU (default "+cluster.DefaultLogDir+")")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newGroupDeleteCmd(cfg *config.Config, mode *output.OutputType) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a managed SPU group",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()

			lister, release, err := admin.Open(ctx, cfg)
			defer release()
			if err != nil {
				return writeFailure(cmd, *mode, "spg delete", err)
			}
			w, err := admin.AsWriter(lister)
			if err != nil {
				return writeFailure(cmd, *mode, "spg delete", err)
			}

			done := logging.LogOperationStart(logging.GetLogger("spg"), "spg delete")
			if err := w.DeleteGroup(ctx, name); err != nil {
				return writeFailure(cmd, *mode, "spg delete", err)
			}
			done()
			return writeSuccess(newStream(cmd, cfg), *mode, "spg delete",
				fmt.Sprintf("spu group %q deleted", name), map[string]string{"name": name})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "SPU group name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
