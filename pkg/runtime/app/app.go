// Package app wires configuration, the dataset source and the dashboard
// service for the binaries.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/runtime/charts"
	"github.com/de-tools/commerce-atlas/pkg/services/config"
	"github.com/de-tools/commerce-atlas/pkg/services/currency"
	"github.com/de-tools/commerce-atlas/pkg/services/dashboard"
	"github.com/de-tools/commerce-atlas/pkg/store/blob"
	"github.com/de-tools/commerce-atlas/pkg/store/source"
	"github.com/rs/zerolog"
)

type Options struct {
	// ConfigPath is an optional viper config file.
	ConfigPath string
	// ProfilesPath overrides profiles.path from the config.
	ProfilesPath string
	// Profile overrides profiles.default from the config.
	Profile string
	// Sources defaults to source.NewDefaultRegistry.
	Sources source.Registry
}

type App struct {
	Config    *config.Config
	Profile   domain.DatasetProfile
	Dataset   *domain.Dataset
	Formatter currency.Formatter
	Dashboard dashboard.Service
	Charts    charts.Renderer
}

// NewLogger builds the process logger at the given level.
func NewLogger(w io.Writer, level string) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stdout
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// ResolveProfile reads the dataset profile selected by opts and cfg.
func ResolveProfile(ctx context.Context, cfg *config.Config, opts Options) (domain.DatasetProfile, error) {
	path := cfg.Profiles.Path
	if opts.ProfilesPath != "" {
		path = opts.ProfilesPath
	}
	name := cfg.Profiles.Default
	if opts.Profile != "" {
		name = opts.Profile
	}

	registry, err := config.NewRegistry(path)
	if err != nil {
		return domain.DatasetProfile{}, fmt.Errorf("failed to create profile registry: %w", err)
	}
	return registry.GetProfile(ctx, name)
}

// LoadDataset loads the profile's extracts once.
func LoadDataset(ctx context.Context, profile domain.DatasetProfile, sources source.Registry) (*domain.Dataset, error) {
	if sources == nil {
		sources = source.NewDefaultRegistry(blob.NewOpener(nil))
	}
	loader, err := sources.Create(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create loader: %w", err)
	}
	dataset, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", profile, err)
	}
	return dataset, nil
}

// Load reads configuration, loads the selected dataset and builds the
// services around it.
func Load(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := zerolog.Ctx(ctx)

	profile, err := ResolveProfile(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("profile", profile.String()).Msg("using dataset profile")

	dataset, err := LoadDataset(ctx, profile, opts.Sources)
	if err != nil {
		return nil, err
	}

	formatter, err := currency.NewFormatter(cfg.Dashboard.Currency, cfg.Dashboard.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to create currency formatter: %w", err)
	}

	return &App{
		Config:    cfg,
		Profile:   profile,
		Dataset:   dataset,
		Formatter: formatter,
		Dashboard: dashboard.NewService(dataset, formatter, dashboard.Settings{
			FillGaps: cfg.Dashboard.FillGaps,
		}),
		Charts: charts.NewRenderer(charts.Settings{
			TopStates: cfg.Dashboard.TopStates,
		}),
	}, nil
}
