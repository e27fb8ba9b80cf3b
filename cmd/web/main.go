package main

import (
	"fmt"
	"os"

	"github.com/de-tools/commerce-atlas/pkg/runtime/app"
	"github.com/de-tools/commerce-atlas/pkg/server"
	"github.com/de-tools/commerce-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var opts app.Options

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Commerce Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "",
		"Path to the config file (defaults and ATLAS_* environment variables apply)")
	rootCmd.Flags().StringVar(&opts.ProfilesPath, "profiles", "",
		"Path to the dataset profiles file (default is $HOME/.atlasprofiles)")
	rootCmd.Flags().StringVarP(&opts.Profile, "profile", "p", "",
		"Dataset profile to serve (default is profiles.default)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, err := app.NewLogger(os.Stdout, cfg.Log.Level)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	a, err := app.Load(ctx, cfg, opts)
	if err != nil {
		return err
	}

	period, ok := a.Dashboard.Bounds()
	logger.Info().
		Str("profile", a.Profile.String()).
		Int("orders", len(a.Dataset.Orders)).
		Int("payments", len(a.Dataset.Payments)).
		Int("sellers", len(a.Dataset.Sellers)).
		Bool("has_data", ok).
		Str("period", period.String()).
		Msg("dataset ready")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Dashboard: a.Dashboard,
			Charts:    a.Charts,
			Metrics:   registry,
		},
	})

	return api.Start()
}
