package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

func newTestApp() *App {
	return &App{v: viper.New(), Config: &Configuration{}}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "fleetdash.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(body), 0o600))

	return cfgFile
}

func TestLoadConfigurationFile(t *testing.T) {
	cfgFile := writeConfig(t, `
log_level: debug
listen_address: 127.0.0.1:8181
store_kind: directory
store_directory: /var/lib/fleetdash
replacement_unit_cost: 1800
exclude_retired: true
provisioners:
  - itprovision
sources:
  jamf: https://jamf.example.com/export.csv
  qualys: https://qualys.example.com/export.csv
policy:
  inactive_after_days: 45
  critical_age: 4
  os_policies:
    - os_type: macOS
      unsupported_below: "13"
      aging_below: "14"
valuation:
  useful_life: 5
  default_msrp: 1200
`)

	a := newTestApp()
	err := a.LoadConfiguration(cfgFile, "")
	require.NoError(t, err)

	assert.Equal(t, "debug", a.Config.LogLevel)
	assert.Equal(t, "127.0.0.1:8181", a.Config.ListenAddress)
	assert.Equal(t, defaultMetricsAddress, a.Config.MetricsAddress)
	assert.Equal(t, model.StoreKindDirectory, a.Config.StoreKind)
	assert.Equal(t, "/var/lib/fleetdash", a.Config.StoreDirectory)
	assert.Equal(t, WorkerConcurrency, a.Config.Concurrency)
	assert.Equal(t, 1800.0, a.Config.ReplacementUnitCost)
	assert.True(t, a.Config.ExcludeRetired)
	assert.Equal(t, []string{"itprovision"}, a.Config.Provisioners)
	assert.Len(t, a.Config.Sources, 2)
	assert.Equal(t, "https://jamf.example.com/export.csv", a.Config.Sources["jamf"])

	assert.Equal(t, 45, a.Config.Policy.InactiveAfterDays)
	assert.Equal(t, 4.0, a.Config.Policy.CriticalAge)
	require.Len(t, a.Config.Policy.OSRules, 1)
	assert.Equal(t, model.OSTypeMacOS, a.Config.Policy.OSRules[0].OSType)
	assert.Equal(t, "13", a.Config.Policy.OSRules[0].UnsupportedBelow)

	assert.Equal(t, 5.0, a.Config.Valuation.UsefulLife)
	assert.Equal(t, 1200.0, a.Config.Valuation.DefaultMSRP)
}

func TestLoadConfigurationEnv(t *testing.T) {
	t.Setenv("FLEETDASH_NATS_URL", "nats://127.0.0.1:4222")
	t.Setenv("FLEETDASH_LISTEN_ADDRESS", "0.0.0.0:9000")

	a := newTestApp()
	err := a.LoadConfiguration("", model.StoreKindNATS)
	require.NoError(t, err)

	assert.Equal(t, model.StoreKindNATS, a.Config.StoreKind)
	assert.Equal(t, "0.0.0.0:9000", a.Config.ListenAddress)
	assert.Equal(t, "nats://127.0.0.1:4222", a.Config.NatsOptions.URL)
	assert.Equal(t, defaultNatsBucket, a.Config.NatsOptions.Bucket)
	assert.Equal(t, defaultNatsConnectTimeout, a.Config.NatsOptions.ConnectTimeout)
	assert.Equal(t, 1, a.Config.NatsOptions.Replicas)
}

func TestLoadConfigurationFlagOverridesFile(t *testing.T) {
	cfgFile := writeConfig(t, `
store_kind: directory
store_directory: /tmp/fleetdash
nats:
  url: nats://nats:4222
  connect_timeout: 5s
`)

	a := newTestApp()
	err := a.LoadConfiguration(cfgFile, model.StoreKindNATS)
	require.NoError(t, err)

	assert.Equal(t, model.StoreKindNATS, a.Config.StoreKind)
	assert.Equal(t, 5*time.Second, a.Config.NatsOptions.ConnectTimeout)
}

func TestLoadConfigurationErrors(t *testing.T) {
	tests := []struct {
		name      string
		config    string
		storeKind model.StoreKind
	}{
		{
			"unsupported store kind",
			"store_kind: postgres\n",
			"",
		},
		{
			"directory store without a directory",
			"store_kind: directory\n",
			"",
		},
		{
			"nats store without a url",
			"log_level: info\n",
			model.StoreKindNATS,
		},
		{
			"unknown source kind",
			"sources:\n  snipeit: https://example.com/export.csv\n",
			"",
		},
		{
			"negative replacement cost",
			"replacement_unit_cost: -1\n",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp()
			err := a.LoadConfiguration(writeConfig(t, tt.config), tt.storeKind)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}

	t.Run("missing config file", func(t *testing.T) {
		a := newTestApp()
		err := a.LoadConfiguration(filepath.Join(t.TempDir(), "absent.yml"), "")
		assert.ErrorIs(t, err, ErrConfig)
	})
}

func TestLevelFromConfig(t *testing.T) {
	assert.Equal(t, model.LogLevelDebug, levelFromConfig("DEBUG"))
	assert.Equal(t, model.LogLevelTrace, levelFromConfig("trace"))
	assert.Equal(t, model.LogLevelInfo, levelFromConfig(""))
}
