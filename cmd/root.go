package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/metal-toolbox/fleetdash/internal/app"
	"github.com/metal-toolbox/fleetdash/internal/ingest"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/store"
	"github.com/metal-toolbox/fleetdash/internal/summary"
)

const defaultConfigFile = ".fleetdash.yml"

var (
	cfgFile   string
	logLevel  int
	storeKind string
)

var rootCmd = &cobra.Command{
	Use:   "fleetdash",
	Short: "Classify, value and summarize the managed device fleet from platform CSV exports",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// configFile returns the --config flag value, or ~/.fleetdash.yml when that file exists.
func configFile() string {
	if cfgFile != "" {
		return cfgFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	path := filepath.Join(home, defaultConfigFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	return path
}

func newApp(appKind model.AppKind) *app.App {
	fleetdash, err := app.New(appKind, model.StoreKind(storeKind), configFile(), logLevel)
	if err != nil {
		log.Fatal(err)
	}

	return fleetdash
}

func newRepository(ctx context.Context, fleetdash *app.App) store.Repository {
	repository, err := store.NewRepository(ctx, fleetdash.Config, fleetdash.Logger)
	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	return repository
}

func newMerger(fleetdash *app.App, opts ...ingest.Option) *ingest.Merger {
	opts = append([]ingest.Option{
		ingest.WithPolicy(fleetdash.Config.Policy),
		ingest.WithValuation(fleetdash.Config.Valuation),
		ingest.WithProvisioners(fleetdash.Config.Provisioners...),
		ingest.WithConcurrency(fleetdash.Config.Concurrency),
	}, opts...)

	return ingest.NewMerger(fleetdash.Logger, opts...)
}

func summaryOptions(config *app.Configuration) summary.Options {
	return summary.Options{
		ExcludeRetired:      config.ExcludeRetired,
		ReplacementUnitCost: config.ReplacementUnitCost,
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default is $HOME/"+defaultConfigFile+")")
	rootCmd.PersistentFlags().IntVar(&logLevel, "log-level", model.LogLevelInfo, "set logging level - 0 - info, 1 - debug, 2 - trace")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "state store for exports and retired devices - 'memory', 'directory' or 'nats', overrides store_kind")
}
