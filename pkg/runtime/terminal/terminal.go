package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/commerce-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/commerce-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/commerce-atlas/pkg/store/source"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	globals *commands.Globals
	output  io.Writer
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	// Sources defaults to every supported source kind.
	Sources source.Registry
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		globals: &commands.Globals{Sources: opts.Sources},
		output:  opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Commerce dashboard over order, payment and seller extracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)
	cli.globals.Bind(cmd)

	reporters := map[string]commands.ReportHandler{
		"table": export.NewReporter(cli.output),
		"plain": NewReporter(cli.output),
	}

	cmd.AddCommand(commands.NewReportCmd(cli.globals, reporters))
	cmd.AddCommand(commands.NewChartsCmd(cli.globals))
	cmd.AddCommand(commands.NewImportCmd(cli.globals))
	cmd.AddCommand(commands.NewProfilesCmd(cli.globals))

	return cmd
}
