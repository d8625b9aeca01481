package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

var cmdRetire = &cobra.Command{
	Use:   "retire <device-id>...",
	Short: "Flag devices as retired",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setRetired(cmd.Context(), args, true)
	},
}

var cmdUnretire = &cobra.Command{
	Use:   "unretire <device-id>...",
	Short: "Clear the retired flag of devices",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setRetired(cmd.Context(), args, false)
	},
}

func setRetired(ctx context.Context, ids []string, retired bool) {
	fleetdash := newApp(model.AppKindClient)

	repository := newRepository(ctx, fleetdash)
	defer repository.Close()

	for _, id := range ids {
		var err error
		if retired {
			err = repository.Retire(ctx, id)
		} else {
			err = repository.Unretire(ctx, id)
		}

		if err != nil {
			fleetdash.Logger.WithField("id", id).Fatal(err)
		}

		fleetdash.Logger.WithField("id", id).WithField("retired", retired).Info("device updated")
	}
}

func init() {
	rootCmd.AddCommand(cmdRetire)
	rootCmd.AddCommand(cmdUnretire)
}
