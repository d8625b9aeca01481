package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/metal-toolbox/fleetdash/internal/download"
	"github.com/metal-toolbox/fleetdash/internal/ingest"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/summary"
	"github.com/metal-toolbox/fleetdash/types"
)

type reportFlags struct {
	view           string
	search         string
	owner          string
	limit          int
	excludeRetired bool
	json           bool
	exports        map[string]string
}

var (
	reportFlagSet = &reportFlags{}
)

var cmdReport = &cobra.Command{
	Use:   "report [--view <view>] [--search <text>] [--owner <text>] [--export <kind>=<file>] [--json]",
	Short: "Merge the stored exports and print the fleet summary and device table",
	Run: func(cmd *cobra.Command, _ []string) {
		runReport(cmd.Context())
	},
}

// report is the JSON form of the report command output.
type report struct {
	GeneratedAt time.Time                            `json:"generatedAt"`
	View        summary.View                         `json:"view"`
	Summary     model.Summary                        `json:"summary"`
	Rows        map[model.SourceKind]ingest.RowCount `json:"rows"`
	Warnings    []string                             `json:"warnings,omitempty"`
	Devices     []model.Device                       `json:"devices"`
}

func runReport(ctx context.Context) {
	fleetdash := newApp(model.AppKindClient)

	view, err := summary.ParseView(reportFlagSet.view)
	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	repository := newRepository(ctx, fleetdash)
	defer repository.Close()

	sources, err := repository.Sources(ctx)
	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	sources, err = withExportFiles(sources, reportFlagSet.exports)
	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	retired, err := repository.RetiredIDs(ctx)
	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	result, err := newMerger(fleetdash).Merge(ctx, sources, retired, time.Now())
	if err != nil {
		fleetdash.Logger.Fatal(err)
	}

	opts := summaryOptions(fleetdash.Config)
	if reportFlagSet.excludeRetired {
		opts.ExcludeRetired = true
	}

	filter := summary.Filter{
		View:           view,
		Search:         reportFlagSet.search,
		Owner:          reportFlagSet.owner,
		ExcludeRetired: opts.ExcludeRetired,
		Limit:          reportFlagSet.limit,
	}

	out := &report{
		GeneratedAt: result.GeneratedAt,
		View:        view,
		Summary:     summary.Summarize(result.Devices, opts),
		Rows:        result.Rows,
		Warnings:    result.Warnings,
		Devices:     filter.Apply(result.Devices),
	}

	if reportFlagSet.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(out); err != nil {
			fleetdash.Logger.Fatal(err)
		}

		return
	}

	if err := printReport(os.Stdout, out); err != nil {
		fleetdash.Logger.Fatal(err)
	}
}

// withExportFiles replaces the stored exports with the files given by kind.
func withExportFiles(stored []*types.SourceValue, files map[string]string) ([]*types.SourceValue, error) {
	if len(files) == 0 {
		return stored, nil
	}

	byKind := map[model.SourceKind]*types.SourceValue{}
	for _, s := range stored {
		byKind[model.SourceKind(s.Kind)] = s
	}

	for k, path := range files {
		kind, ok := model.ParseSourceKind(k)
		if !ok {
			return nil, errors.Wrap(ErrIngestParams, "unknown --export kind: "+k)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		byKind[kind] = &types.SourceValue{
			UpdatedAt:  time.Now(),
			Kind:       string(kind),
			Checksum:   download.Checksum(data),
			Origin:     path,
			Data:       data,
			MsgVersion: types.Version,
		}
	}

	merged := []*types.SourceValue{}

	for _, kind := range model.SourceKinds() {
		if s, exists := byKind[kind]; exists {
			merged = append(merged, s)
		}
	}

	return merged, nil
}

func printReport(w io.Writer, r *report) error {
	s := r.Summary

	fmt.Fprintf(w, "fleet as of %s\n\n", r.GeneratedAt.Format(time.RFC1123))
	fmt.Fprintf(w, "devices: %d (active %d, retired %d)\n", s.TotalDevices, s.ActiveDevices, s.RetiredCount)
	fmt.Fprintf(w, "status: critical %d, warning %d, good %d, inactive %d, unknown %d\n",
		s.CriticalCount, s.WarningCount, s.GoodCount, s.InactiveCount, s.UnknownCount)
	fmt.Fprintf(w, "average age: %.1f years, out of date OS: %d\n", s.AverageAge, s.OutOfDateDevices)
	fmt.Fprintf(w, "estimated value: $%.0f, replacement: %d devices, budget $%.0f\n",
		s.TotalEstimatedValue, s.DevicesNeedingReplacement, s.ReplacementBudget)

	if s.DevicesWithQualysData != nil {
		truRisk := "-"
		if s.AverageTruRiskScore != nil {
			truRisk = fmt.Sprint(*s.AverageTruRiskScore)
		}

		fmt.Fprintf(w, "scanned: %d, vulnerabilities: %d (critical %d), average TruRisk: %s\n",
			*s.DevicesWithQualysData, *s.TotalVulnerabilities, *s.CriticalVulnerabilities, truRisk)
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	fmt.Fprintf(w, "\n%s view: %d devices\n", r.View, len(r.Devices))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSOURCE\tMODEL\tOS\tOWNER\tAGE\tSTATUS\tREASONS")

	for i := range r.Devices {
		d := &r.Devices[i]

		age := "-"
		if d.AgeKnown() {
			age = fmt.Sprintf("%.1f", d.AgeInYears)
		}

		status := string(d.Status)
		if d.IsRetired {
			status += " (retired)"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\t%s\t%s\t%s\n",
			d.Name, d.Source, d.FriendlyModel, d.OSType, d.OSVersion, d.Owner, age, status,
			strings.Join(d.StatusReasons, "; "),
		)
	}

	return tw.Flush()
}

func init() {
	views := []string{}
	for _, v := range summary.Views() {
		views = append(views, string(v))
	}

	cmdReport.PersistentFlags().StringVar(&reportFlagSet.view, "view", "", "device table view - "+strings.Join(views, ", "))
	cmdReport.PersistentFlags().StringVar(&reportFlagSet.search, "search", "", "match name, owner, serial, department or model")
	cmdReport.PersistentFlags().StringVar(&reportFlagSet.owner, "owner", "", "match owner name or email")
	cmdReport.PersistentFlags().IntVar(&reportFlagSet.limit, "limit", 0, "maximum number of devices listed, zero lists all")
	cmdReport.PersistentFlags().BoolVar(&reportFlagSet.excludeRetired, "exclude-retired", false, "leave retired devices out of the summary and table")
	cmdReport.PersistentFlags().BoolVar(&reportFlagSet.json, "json", false, "print the report as JSON")
	cmdReport.PersistentFlags().StringToStringVar(&reportFlagSet.exports, "export", nil, "use a local CSV export instead of the stored one - <kind>=<file>")

	rootCmd.AddCommand(cmdReport)
}
