package cmd

import (
	"context"
	"time"

	"github.com/equinix-labs/otel-init-go/otelinit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/metal-toolbox/fleetdash/internal/api"
	"github.com/metal-toolbox/fleetdash/internal/ingest"
	"github.com/metal-toolbox/fleetdash/internal/metrics"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/store"
	"github.com/metal-toolbox/fleetdash/internal/version"
)

var cmdServe = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fleet dashboard API",
	Run: func(cmd *cobra.Command, _ []string) {
		runServer(cmd.Context())
	},
}

var (
	listenAddress   string
	refreshInterval time.Duration
)

func runServer(ctx context.Context) {
	fleetdash := newApp(model.AppKindServer)

	// serve metrics endpoint
	metrics.ListenAndServe(fleetdash.Config.MetricsAddress, fleetdash.Logger)
	version.ExportBuildInfoMetric()

	ctx, otelShutdown := otelinit.InitOpenTelemetry(ctx, model.AppName)
	defer otelShutdown(ctx)

	// Setup cancel context with cancel func.
	ctx, cancelFunc := context.WithCancel(ctx)

	// routine listens for termination signal and cancels the context
	go func() {
		<-fleetdash.TermCh
		fleetdash.Logger.Info("got TERM signal, exiting...")
		cancelFunc()
	}()

	repository := newRepository(ctx, fleetdash)
	defer repository.Close()

	if refreshInterval > 0 && len(fleetdash.Config.Sources) > 0 {
		fleetdash.SyncWG.Add(1)

		go func() {
			defer fleetdash.SyncWG.Done()
			refreshLoop(ctx, repository, fleetdash.Config.Sources, fleetdash.Logger)
		}()
	}

	addr := fleetdash.Config.ListenAddress
	if listenAddress != "" {
		addr = listenAddress
	}

	server := api.New(
		repository,
		newMerger(fleetdash, ingest.WithCache(ingest.NewCache(fleetdash.Config.MergeCacheTTL))),
		fleetdash.Logger,
		api.WithSummaryOptions(summaryOptions(fleetdash.Config)),
	)

	if err := server.ListenAndServe(ctx, addr); err != nil {
		fleetdash.Logger.Fatal(err)
	}

	cancelFunc()
	fleetdash.SyncWG.Wait()
}

// refreshLoop stores fresh downloads of the configured sources every refreshInterval until ctx is done.
func refreshLoop(ctx context.Context, repository store.Repository, sources map[string]string, logger *logrus.Logger) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		if err := refreshSources(ctx, repository, sources, logger); err != nil {
			logger.WithError(err).Warn("source refresh incomplete")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func init() {
	cmdServe.PersistentFlags().StringVar(&listenAddress, "listen", "", "API listen address, overrides listen_address")
	cmdServe.PersistentFlags().DurationVar(&refreshInterval, "refresh-interval", 0, "download the configured source URLs at this interval, disabled when zero")

	rootCmd.AddCommand(cmdServe)
}
