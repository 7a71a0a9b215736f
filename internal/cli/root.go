package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luckyjian/clusterctl/internal/config"
	"github.com/luckyjian/clusterctl/internal/logging"
	"github.com/luckyjian/clusterctl/internal/output"
)

// NewRootCmd builds and returns the root cobra.Command for the clusterctl CLI.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		mode    = output.DefaultOutputType()
		verbose int
		noColor bool
	)
	closeLog := func() {}

	// cfg is a shared pointer populated in PersistentPreRunE before any
	// subcommand runs, so environment variables and the config file are loaded.
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:   "clusterctl",
		Short: "Inspect and manage streaming cluster SPU groups",
		Long: "clusterctl lists, describes, creates and deletes managed SPU groups. " +
			"Every read command renders as a table (default), yaml or json.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			*cfg = *loaded
			if !cmd.Flags().Changed("output") {
				mode, _ = cfg.OutputType()
			}
			if noColor {
				cfg.Output.Color = false
			}
			closeLog = logging.Setup(cmd.ErrOrStderr(), verbose, cfg.Log.File)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLog()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path (e.g. "+config.DefaultConfigPath+")")
	root.PersistentFlags().VarP(&mode, "output", "O", "Output format: table|yaml|json")
	root.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Increase log verbosity (repeatable)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newGroupCmd(cfg, &mode),
		newConfigCmd(cfg, &mode),
	)

	return root
}

// Execute runs the root command under ctx and exits with code 1 on error.
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		}
		os.Exit(1)
	}
}

// reportedError marks an error already written to stderr by writeFailure.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// newStream returns the stdout sink shared by every render call of a command.
func newStream(cmd *cobra.Command, cfg *config.Config) *output.Stream {
	return output.NewStream(cmd.OutOrStdout(), output.WithColor(cfg.Output.Color))
}

// commandContext bounds admin calls by the configured timeout.
func commandContext(cmd *cobra.Command, cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout := cfg.Admin.Timeout
	if timeout <= 0 {
		timeout = config.DefaultAdminTimeout
	}
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// writeFailure reports err on stderr: a Failure envelope in yaml/json mode,
// a plain "Error:" line in table mode.
func writeFailure(cmd *cobra.Command, mode output.OutputType, command string, err error) error {
	errOut := output.NewStream(cmd.ErrOrStderr(), output.WithColor(false))
	if st, ok := mode.SerializeType(); ok {
		if renderErr := output.RenderSerde(errOut, output.Failure(command, err), st); renderErr == nil {
			return &reportedError{err: err}
		}
	}
	errOut.Println("Error: " + err.Error())
	return &reportedError{err: err}
}

// writeSuccess reports the result of a mutating command.
func writeSuccess(out *output.Stream, mode output.OutputType, command, message string, data interface{}) error {
	st, ok := mode.SerializeType()
	if !ok {
		out.Println(message)
		return nil
	}
	return output.RenderSerde(out, output.Success(command, data), st)
}
