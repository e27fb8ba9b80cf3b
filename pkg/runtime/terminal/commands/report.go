package commands

import (
	"fmt"

	"github.com/de-tools/commerce-atlas/pkg/adapters"
	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

// ReportHandler renders a report.
type ReportHandler interface {
	Handle(report *domain.Report) error
}

type ReportCmd struct {
	globals   *Globals
	period    periodFlags
	format    string
	reporters map[string]ReportHandler
}

func NewReportCmd(globals *Globals, reporters map[string]ReportHandler) *cobra.Command {
	rc := &ReportCmd{globals: globals, reporters: reporters}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard summaries for a period",
		RunE:  rc.run,
	}

	rc.period.bind(cmd)
	cmd.Flags().StringVar(&rc.format, "format", "table", "Output format (table, plain)")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	reporter, ok := rc.reporters[rc.format]
	if !ok {
		return fmt.Errorf("unsupported format %q", rc.format)
	}

	ctx := cmd.Context()
	a, err := rc.globals.load(ctx)
	if err != nil {
		return err
	}

	d, err := rc.period.build(ctx, a)
	if err != nil {
		return err
	}

	report := adapters.MapDashboardToReport(d, a.Config.Dashboard.TopStates, a.Formatter.Format)
	return reporter.Handle(report)
}
