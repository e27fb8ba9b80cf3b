package commands

import (
	"fmt"

	"github.com/de-tools/commerce-atlas/pkg/runtime/app"
	"github.com/de-tools/commerce-atlas/pkg/store/duckdb"
	"github.com/de-tools/commerce-atlas/pkg/store/duckdb/extract"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	globals *Globals
	dbPath  string
}

func NewImportCmd(globals *Globals) *cobra.Command {
	ic := &ImportCmd{globals: globals}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Snapshot the selected dataset into a local DuckDB file",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.dbPath, "db", "commerce-atlas.db", "DuckDB file to write")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := ic.globals.config()
	if err != nil {
		return err
	}
	profile, err := app.ResolveProfile(ctx, cfg, ic.globals.options())
	if err != nil {
		return err
	}
	dataset, err := app.LoadDataset(ctx, profile, ic.globals.Sources)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ic.dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close DuckDB")
		}
	}()

	store, err := extract.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create extract store: %w", err)
	}
	if err := store.Import(ctx, dataset); err != nil {
		return fmt.Errorf("failed to import %s: %w", profile, err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, s := range stats {
		line := fmt.Sprintf("%-10s %8d rows", s.Table, s.RecordsCount)
		if s.FirstRecordTime != nil && s.LastRecordTime != nil {
			line += fmt.Sprintf("  %s .. %s", s.FirstRecordTime.Format("2006-01-02"), s.LastRecordTime.Format("2006-01-02"))
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
