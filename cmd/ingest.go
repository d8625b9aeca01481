package cmd

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/metal-toolbox/fleetdash/internal/download"
	"github.com/metal-toolbox/fleetdash/internal/ingest"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/store"
	"github.com/metal-toolbox/fleetdash/types"
)

type ingestFlags struct {
	source   string
	file     string
	url      string
	checksum string
	all      bool
}

var (
	ingestFlagSet = &ingestFlags{}

	ErrIngestParams = errors.New("invalid ingest parameters")
)

var cmdIngest = &cobra.Command{
	Use:   "ingest --source <kind> --file <path> | --url <url> | --all",
	Short: "Store a Jamf, Intune, users, CoreView or Qualys CSV export",
	Run: func(cmd *cobra.Command, _ []string) {
		runIngest(cmd.Context())
	},
}

func runIngest(ctx context.Context) {
	fleetdash := newApp(model.AppKindClient)

	repository := newRepository(ctx, fleetdash)
	defer repository.Close()

	if ingestFlagSet.all {
		if err := refreshSources(ctx, repository, fleetdash.Config.Sources, fleetdash.Logger); err != nil {
			fleetdash.Logger.Fatal(err)
		}

		return
	}

	kind, ok := model.ParseSourceKind(ingestFlagSet.source)
	if !ok {
		fleetdash.Logger.Fatal(errors.Wrap(ErrIngestParams, "unknown --source: "+ingestFlagSet.source))
	}

	var (
		data   []byte
		origin string
		err    error
	)

	switch {
	case ingestFlagSet.file != "" && ingestFlagSet.url != "":
		fleetdash.Logger.Fatal(errors.Wrap(ErrIngestParams, "expected one of --file or --url"))
	case ingestFlagSet.file != "":
		origin = ingestFlagSet.file
		data, err = os.ReadFile(ingestFlagSet.file)
	case ingestFlagSet.url != "":
		origin = ingestFlagSet.url
		data, err = download.FromURL(ctx, ingestFlagSet.url)
	default:
		fleetdash.Logger.Fatal(errors.Wrap(ErrIngestParams, "expected one of --file, --url or --all"))
	}

	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	if err := storeExport(ctx, repository, kind, origin, data, ingestFlagSet.checksum, fleetdash.Logger); err != nil {
		fleetdash.Logger.Fatal(err)
	}
}

// storeExport validates an export and stores it as the current export of its kind.
func storeExport(ctx context.Context, repository store.Repository, kind model.SourceKind, origin string, data []byte, checksum string, logger *logrus.Logger) error {
	if checksum != "" {
		if err := download.ChecksumValidate(data, checksum); err != nil {
			return err
		}
	}

	if err := ingest.Validate(kind, data); err != nil {
		return errors.Wrap(err, string(kind))
	}

	v := &types.SourceValue{
		UpdatedAt:  time.Now(),
		Kind:       string(kind),
		Checksum:   download.Checksum(data),
		Origin:     origin,
		Data:       data,
		MsgVersion: types.Version,
	}

	if err := repository.PutSource(ctx, v); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"kind":     kind,
		"origin":   origin,
		"bytes":    len(data),
		"checksum": v.Checksum,
	}).Info("export stored")

	return nil
}

// refreshSources downloads and stores every configured source URL.
//
// A failing source does not stop the others, the first error is returned once all were tried.
func refreshSources(ctx context.Context, repository store.Repository, sources map[string]string, logger *logrus.Logger) error {
	var first error

	for _, kind := range model.SourceKinds() {
		url, exists := sources[string(kind)]
		if !exists {
			continue
		}

		data, err := download.FromURL(ctx, url)
		if err == nil {
			err = storeExport(ctx, repository, kind, url, data, "", logger)
		}

		if err != nil {
			logger.WithError(err).WithField("kind", kind).Warn("source refresh failed")

			if first == nil {
				first = err
			}
		}
	}

	return first
}

func init() {
	cmdIngest.PersistentFlags().StringVar(&ingestFlagSet.source, "source", "", "export kind - 'jamf', 'intune', 'users', 'coreview' or 'qualys'")
	cmdIngest.PersistentFlags().StringVar(&ingestFlagSet.file, "file", "", "CSV export file")
	cmdIngest.PersistentFlags().StringVar(&ingestFlagSet.url, "url", "", "CSV export URL")
	cmdIngest.PersistentFlags().StringVar(&ingestFlagSet.checksum, "checksum", "", "expected export checksum - <md5sum|sha256>:<hex>, a bare hex value is an md5sum")
	cmdIngest.PersistentFlags().BoolVar(&ingestFlagSet.all, "all", false, "download and store every source URL listed in the configuration")

	if err := cmdIngest.RegisterFlagCompletionFunc("source", sourceKindCompletion); err != nil {
		log.Fatal(err)
	}

	rootCmd.AddCommand(cmdIngest)
}

func sourceKindCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	kinds := []string{}
	for _, k := range model.SourceKinds() {
		kinds = append(kinds, string(k))
	}

	return kinds, cobra.ShellCompDirectiveNoFileComp
}
