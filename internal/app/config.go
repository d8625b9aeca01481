package app

import (
	"os"
	"strings"
	"time"

	"github.com/jeremywohl/flatten"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/fleetdash/internal/classify"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/valuation"
)

const (
	WorkerConcurrency         = 4
	defaultNatsConnectTimeout = 60 * time.Second
	defaultNatsBucket         = model.AppName
	defaultListenAddress      = "0.0.0.0:8080"
	defaultMetricsAddress     = "0.0.0.0:9090"
	defaultMergeCacheTTL      = 30 * time.Second
)

var (
	ErrConfig = errors.New("configuration error")
)

// Configuration holds application configuration read from a YAML or set by env variables.
//
// nolint:govet // prefer readability over field alignment optimization for this case.
type Configuration struct {
	// LogLevel is the app verbose logging level.
	// one of - info, debug, trace
	LogLevel string `mapstructure:"log_level"`

	// AppKind is the application kind - server / client
	AppKind model.AppKind `mapstructure:"app_kind"`

	// ListenAddress is the API listen address.
	ListenAddress string `mapstructure:"listen_address"`

	// MetricsAddress is the prometheus /metrics listen address.
	MetricsAddress string `mapstructure:"metrics_address"`

	// Concurrency is the number of devices classified in parallel.
	Concurrency int `mapstructure:"concurrency"`

	// MergeCacheTTL is how long the API serves a merge of unchanged exports, zero merges on every request.
	MergeCacheTTL time.Duration `mapstructure:"merge_cache_ttl"`

	// StoreKind selects where CSV exports and retired flags are persisted - one of memory, directory, nats
	StoreKind model.StoreKind `mapstructure:"store_kind"`

	// StoreDirectory is required when StoreKind is set to directory.
	StoreDirectory string `mapstructure:"store_directory"`

	// NatsOptions is required when StoreKind is set to nats.
	NatsOptions *NatsOptions `mapstructure:"nats"`

	// Sources maps a CSV export kind to the URL it is fetched from.
	Sources map[string]string `mapstructure:"sources"`

	// Provisioners are the directory accounts used to enroll devices, their devices belong to IT.
	Provisioners []string `mapstructure:"provisioners"`

	// ExcludeRetired drops retired devices from views and summaries.
	ExcludeRetired bool `mapstructure:"exclude_retired"`

	// ReplacementUnitCost is the budgeted cost of a single device replacement.
	ReplacementUnitCost float64 `mapstructure:"replacement_unit_cost"`

	Policy    classify.Policy    `mapstructure:"policy"`
	Valuation valuation.Schedule `mapstructure:"valuation"`
}

// NatsOptions defines the NATS JetStream connection parameters.
type NatsOptions struct {
	URL            string        `mapstructure:"url"`
	CredsFile      string        `mapstructure:"creds_file"`
	Bucket         string        `mapstructure:"bucket"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Replicas       int           `mapstructure:"replicas"`
}

// LoadConfiguration loads application configuration
//
// Reads in the cfgFile when available and overrides from environment variables.
func (a *App) LoadConfiguration(cfgFile string, storeKind model.StoreKind) error {
	a.v.SetConfigType("yaml")
	a.v.SetEnvPrefix(model.AppName)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	// these are initialized here so viper can read in configuration from env vars
	// once https://github.com/spf13/viper/pull/1429 is merged, this can go.
	a.Config.NatsOptions = &NatsOptions{}

	if cfgFile != "" {
		fh, err := os.Open(cfgFile)
		if err != nil {
			return errors.Wrap(ErrConfig, err.Error())
		}
		defer fh.Close()

		if err = a.v.ReadConfig(fh); err != nil {
			return errors.Wrap(ErrConfig, "ReadConfig error:"+err.Error())
		}
	}

	a.v.SetDefault("log_level", "info")
	a.v.SetDefault("listen_address", defaultListenAddress)
	a.v.SetDefault("metrics_address", defaultMetricsAddress)
	a.v.SetDefault("concurrency", WorkerConcurrency)
	a.v.SetDefault("merge_cache_ttl", defaultMergeCacheTTL)
	a.v.SetDefault("store_kind", string(model.StoreKindMemory))

	if err := a.envBindVars(); err != nil {
		return errors.Wrap(ErrConfig, "env var bind error:"+err.Error())
	}

	if err := a.v.Unmarshal(a.Config); err != nil {
		return errors.Wrap(ErrConfig, "Unmarshal error: "+err.Error())
	}

	// the command line flag takes precedence over the configuration file.
	if storeKind != "" {
		a.Config.StoreKind = storeKind
	}

	return a.Config.validate()
}

// envBindVars binds environment variables to the struct
// without a configuration file being unmarshalled,
// this is a workaround for a viper bug,
//
// This can be replaced by the solution in https://github.com/spf13/viper/pull/1429
// once that PR is merged.
func (a *App) envBindVars() error {
	envKeysMap := map[string]interface{}{}
	if err := mapstructure.Decode(a.Config, &envKeysMap); err != nil {
		return err
	}

	// Flatten nested conf map
	flat, err := flatten.Flatten(envKeysMap, "", flatten.DotStyle)
	if err != nil {
		return errors.Wrap(err, "Unable to flatten config")
	}

	for k := range flat {
		if err := a.v.BindEnv(k); err != nil {
			return errors.Wrap(ErrConfig, "env var bind error: "+err.Error())
		}
	}

	return nil
}

// nolint:gocyclo // parameter validation is cyclomatic
func (c *Configuration) validate() error {
	if !slices.Contains(model.StoreKinds(), c.StoreKind) {
		return errors.Wrap(ErrConfig, "unsupported store_kind: "+string(c.StoreKind))
	}

	if c.Concurrency < 1 {
		c.Concurrency = WorkerConcurrency
	}

	if c.MergeCacheTTL < 0 {
		return errors.Wrap(ErrConfig, "merge_cache_ttl must not be negative")
	}

	if c.ReplacementUnitCost < 0 {
		return errors.Wrap(ErrConfig, "replacement_unit_cost must not be negative")
	}

	for kind, url := range c.Sources {
		if _, ok := model.ParseSourceKind(kind); !ok {
			return errors.Wrap(ErrConfig, "unknown source kind: "+kind)
		}

		if url == "" {
			return errors.Wrap(ErrConfig, "empty URL for source: "+kind)
		}
	}

	switch c.StoreKind {
	case model.StoreKindDirectory:
		if c.StoreDirectory == "" {
			return errors.Wrap(ErrConfig, "missing parameter: store_directory")
		}
	case model.StoreKindNATS:
		return c.NatsOptions.validate()
	}

	return nil
}

func (n *NatsOptions) validate() error {
	if n == nil || n.URL == "" {
		return errors.Wrap(ErrConfig, "missing parameter: nats.url")
	}

	if n.Bucket == "" {
		n.Bucket = defaultNatsBucket
	}

	if n.ConnectTimeout == 0 {
		n.ConnectTimeout = defaultNatsConnectTimeout
	}

	if n.Replicas < 1 {
		n.Replicas = 1
	}

	return nil
}
