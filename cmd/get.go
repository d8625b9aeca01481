package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/summary"
)

var cmdGet = &cobra.Command{
	Use:   "get",
	Short: "get resources [device|sources|retired]",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var cmdGetDevice = &cobra.Command{
	Use:   "device <device-id>",
	Short: "Get the merged and classified attributes of a device by ID or serial number",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		getDevice(cmd.Context(), args[0])
	},
}

func getDevice(ctx context.Context, deviceID string) {
	fleetdash := newApp(model.AppKindClient)

	repository := newRepository(ctx, fleetdash)
	defer repository.Close()

	result, err := newMerger(fleetdash).MergeFrom(ctx, repository, time.Now())
	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	device, found := summary.Find(result.Devices, deviceID)
	if !found {
		fleetdash.Logger.Info("device not found: " + deviceID)
		return
	}

	spew.Dump(device)
}

var cmdGetSources = &cobra.Command{
	Use:   "sources",
	Short: "List the stored CSV exports",
	Run: func(cmd *cobra.Command, _ []string) {
		getSources(cmd.Context())
	},
}

func getSources(ctx context.Context) {
	fleetdash := newApp(model.AppKindClient)

	repository := newRepository(ctx, fleetdash)
	defer repository.Close()

	sources, err := repository.Sources(ctx)
	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	for _, s := range sources {
		fmt.Printf("%s\t%s\t%d bytes\t%s\t%s\n", s.Kind, s.UpdatedAt.Format(time.RFC3339), len(s.Data), s.Checksum, s.Origin)
	}
}

var cmdGetRetired = &cobra.Command{
	Use:   "retired",
	Short: "List the retired device IDs",
	Run: func(cmd *cobra.Command, _ []string) {
		getRetired(cmd.Context())
	},
}

func getRetired(ctx context.Context) {
	fleetdash := newApp(model.AppKindClient)

	repository := newRepository(ctx, fleetdash)
	defer repository.Close()

	ids, err := repository.RetiredIDs(ctx)
	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	for _, id := range ids {
		fmt.Println(id)
	}
}

func init() {
	rootCmd.AddCommand(cmdGet)

	cmdGet.AddCommand(cmdGetDevice)
	cmdGet.AddCommand(cmdGetSources)
	cmdGet.AddCommand(cmdGetRetired)
}
