package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

const (
	MetricsEndpoint = "0.0.0.0:9090"
)

var (
	DevicesByStatus    *prometheus.GaugeVec
	DevicesByActivity  *prometheus.GaugeVec
	DevicesBySource    *prometheus.GaugeVec
	DevicesReplacement prometheus.Gauge
	DevicesRetired     prometheus.Gauge

	IngestRowsCounter   *prometheus.CounterVec
	MergeRunTimeSummary *prometheus.SummaryVec
	APIRequestsCounter  *prometheus.CounterVec

	DownloadBytes          *prometheus.CounterVec
	DownloadRunTimeSummary *prometheus.SummaryVec

	StoreQueryErrorCount *prometheus.CounterVec
)

func init() {
	DevicesByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fleetdash_devices_by_status",
			Help: "A gauge metric of the number of devices per lifecycle status in the last merge",
		},
		[]string{"status"},
	)

	DevicesByActivity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fleetdash_devices_by_activity",
			Help: "A gauge metric of the number of active and inactive devices in the last merge",
		},
		[]string{"activity"},
	)

	DevicesBySource = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fleetdash_devices_by_source",
			Help: "A gauge metric of the number of devices per management platform in the last merge",
		},
		[]string{"source"},
	)

	DevicesReplacement = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fleetdash_devices_replacement_recommended",
			Help: "A gauge metric of the number of devices inside the replacement cycle window",
		},
	)

	DevicesRetired = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fleetdash_devices_retired",
			Help: "A gauge metric of the number of devices flagged as retired",
		},
	)

	IngestRowsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetdash_ingest_rows",
			Help: "A counter metric to measure the total count of CSV rows ingested, accepted and skipped",
		},
		[]string{"source", "outcome"}, // outcome is accepted/skipped
	)

	MergeRunTimeSummary = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "fleetdash_merge_duration_seconds",
			Help: "A summary metric to measure the total time spent merging and classifying the fleet",
		},
		[]string{"state"},
	)

	APIRequestsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetdash_api_requests",
			Help: "A counter metric to measure the total count of API requests by route and response code",
		},
		[]string{"route", "code"},
	)

	DownloadBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetdash_download_bytes",
			Help: "A counter metric to measure CSV exports downloaded in bytes",
		},
		[]string{"host"},
	)

	DownloadRunTimeSummary = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "fleetdash_download_duration_seconds",
			Help: "A summary metric to measure the time spent downloading CSV exports",
		},
		[]string{"host"},
	)

	StoreQueryErrorCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetdash_store_query_error_count",
			Help: "A counter metric to measure the total count of errors querying the state store.",
		},
		[]string{"storeKind"},
	)
}

// ObserveFleet sets the fleet gauges from a merged device set.
func ObserveFleet(devices []model.Device) {
	statuses := map[model.Status]int{}
	activity := map[model.Activity]int{}
	sources := map[model.Source]int{}

	var replacement, retired int

	for i := range devices {
		statuses[devices[i].Status]++
		activity[devices[i].ActivityStatus]++
		sources[devices[i].Source]++

		if devices[i].ReplacementRecommended {
			replacement++
		}

		if devices[i].IsRetired {
			retired++
		}
	}

	for _, s := range model.Statuses() {
		DevicesByStatus.WithLabelValues(string(s)).Set(float64(statuses[s]))
	}

	for _, a := range []model.Activity{model.ActivityActive, model.ActivityInactive} {
		DevicesByActivity.WithLabelValues(string(a)).Set(float64(activity[a]))
	}

	for _, s := range []model.Source{model.SourceJamf, model.SourceIntune} {
		DevicesBySource.WithLabelValues(string(s)).Set(float64(sources[s]))
	}

	DevicesReplacement.Set(float64(replacement))
	DevicesRetired.Set(float64(retired))
}

// ListenAndServe exposes prometheus metrics as /metrics on addr, MetricsEndpoint when addr is empty.
func ListenAndServe(addr string, logger *logrus.Logger) {
	if addr == "" {
		addr = MetricsEndpoint
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		server := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 2 * time.Second, // nolint:gomnd // time duration value is clear as is.
		}

		if err := server.ListenAndServe(); err != nil {
			logger.WithError(err).Warn("metrics endpoint returned")
		}
	}()
}
