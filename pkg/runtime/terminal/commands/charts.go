package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ChartsCmd struct {
	globals *Globals
	period  periodFlags
	outDir  string
}

func NewChartsCmd(globals *Globals) *cobra.Command {
	cc := &ChartsCmd{globals: globals}
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Render every dashboard summary as a PNG chart",
		RunE:  cc.run,
	}

	cc.period.bind(cmd)
	cmd.Flags().StringVarP(&cc.outDir, "out", "o", "charts", "Directory to write the charts to")

	return cmd
}

func (cc *ChartsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	a, err := cc.globals.load(ctx)
	if err != nil {
		return err
	}
	d, err := cc.period.build(ctx, a)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cc.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, name := range domain.SummaryNames {
		path := filepath.Join(cc.outDir, string(name)+".png")
		if err := cc.write(path, name, a.Charts.Render, d); err != nil {
			if errors.Is(err, domain.ErrEmptyRange) {
				logger.Warn().Str("chart", string(name)).Msg("no data in period, chart skipped")
				continue
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

type renderFunc func(w io.Writer, name domain.SummaryName, d *domain.Dashboard) error

func (cc *ChartsCmd) write(path string, name domain.SummaryName, render renderFunc, d *domain.Dashboard) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := render(f, name, d); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
