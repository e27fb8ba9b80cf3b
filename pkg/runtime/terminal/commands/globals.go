package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/runtime/app"
	"github.com/de-tools/commerce-atlas/pkg/services/config"
	"github.com/de-tools/commerce-atlas/pkg/store/source"
	"github.com/spf13/cobra"
)

// Globals holds the persistent flags shared by every command.
type Globals struct {
	ConfigPath   string
	ProfilesPath string
	Profile      string
	Sources      source.Registry
}

func (g *Globals) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&g.ConfigPath, "config", "c", "", "Path to the config file")
	cmd.PersistentFlags().StringVar(&g.ProfilesPath, "profiles", "", "Path to the dataset profiles file (default is $HOME/.atlasprofiles)")
	cmd.PersistentFlags().StringVarP(&g.Profile, "profile", "p", "", "Dataset profile to load")
}

func (g *Globals) options() app.Options {
	return app.Options{
		ConfigPath:   g.ConfigPath,
		ProfilesPath: g.ProfilesPath,
		Profile:      g.Profile,
		Sources:      g.Sources,
	}
}

func (g *Globals) config() (*config.Config, error) {
	return config.LoadConfig(g.ConfigPath)
}

// load builds the application around the selected dataset.
func (g *Globals) load(ctx context.Context) (*app.App, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, err
	}
	return app.Load(ctx, cfg, g.options())
}

// periodFlags adds --start and --end to cmd.
type periodFlags struct {
	start string
	end   string
}

func (p *periodFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.start, "start", "", "First day (YYYY-MM-DD, default is the first day with data)")
	cmd.Flags().StringVar(&p.end, "end", "", "Last day, inclusive (YYYY-MM-DD, default is the last day with data)")
}

func (p *periodFlags) build(ctx context.Context, a *app.App) (*domain.Dashboard, error) {
	period, err := a.Dashboard.ResolvePeriod(p.start, p.end)
	if err != nil {
		return nil, fmt.Errorf("invalid --start/--end: %w", err)
	}
	return a.Dashboard.Build(ctx, period), nil
}
