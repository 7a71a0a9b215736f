package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luckyjian/clusterctl/internal/config"
	"github.com/luckyjian/clusterctl/internal/output"
)

// newConfigCmd returns the "config" parent command.
func newConfigCmd(cfg *config.Config, mode *output.OutputType) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect clusterctl configuration",
	}
	cmd.AddCommand(newConfigShowCmd(cfg, mode))
	return cmd
}

// newConfigShowCmd implements "config show": the effective settings after
// defaults, the config file and CLUSTERCTL_* variables are merged.
func newConfigShowCmd(cfg *config.Config, mode *output.OutputType) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newStream(cmd, cfg)
			if mode.IsTable() {
				output.RenderKeyValues(out, configView{cfg: cfg})
				return nil
			}
			st, _ := mode.SerializeType()
			if err := output.RenderSerde(out, cfg, st); err != nil {
				return writeFailure(cmd, *mode, "config show", err)
			}
			return nil
		},
	}
}

// configView lists configuration keys with their values. Unset optional keys
// are shown without a value.
type configView struct {
	cfg *config.Config
}

func (v configView) KeyValues() []output.KeyValue {
	c := v.cfg
	kv := []output.KeyValue{
		output.KV("output.format", c.Output.Format),
		output.KV("output.color", strconv.FormatBool(c.Output.Color)),
		output.KV("admin.source", c.Admin.Source),
		optional("admin.endpoint", c.Admin.Endpoint),
		optional("admin.registry", c.Admin.Registry),
		output.KV("admin.timeout", c.Admin.Timeout.String()),
	}
	if c.Admin.Source == config.SourcePostgres {
		kv = append(kv,
			optional("pg.host", c.PG.Host),
			output.KV("pg.port", strconv.Itoa(c.PG.Port)),
			output.KV("pg.user", c.PG.User),
			output.KV("pg.database", c.PG.Database),
			output.KV("pg.sslmode", c.PG.SSLMode),
		)
	}
	return append(kv, optional("log.file", c.Log.File))
}

func optional(key, value string) output.KeyValue {
	if value == "" {
		return output.KeyOnly(key)
	}
	return output.KV(key, value)
}
