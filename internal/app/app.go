package app

import (
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	runtime "github.com/banzaicloud/logrus-runtime-formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

// App holds attributes for the fleetdash application
type App struct {
	// Viper loads configuration parameters.
	v *viper.Viper
	// Sync waitgroup to wait for running go routines on termination.
	SyncWG *sync.WaitGroup
	// fleetdash configuration.
	Config *Configuration
	// TermCh is the channel to terminate the app based on a signal
	TermCh chan os.Signal
	// Logger is the app logger
	Logger *logrus.Logger
}

// New returns returns a new instance of the fleetdash app
func New(appKind model.AppKind, storeKind model.StoreKind, cfgFile string, loglevel int) (*App, error) {
	app := &App{
		v:      viper.New(),
		Config: &Configuration{AppKind: appKind},
		SyncWG: &sync.WaitGroup{},
		Logger: logrus.New(),
		TermCh: make(chan os.Signal, 1),
	}

	if err := app.LoadConfiguration(cfgFile, storeKind); err != nil {
		return nil, err
	}

	// the --log-level flag wins over the configured log_level
	if loglevel == model.LogLevelInfo {
		loglevel = levelFromConfig(app.Config.LogLevel)
	}

	// set log level, format
	switch loglevel {
	case model.LogLevelDebug:
		app.Logger.Level = logrus.DebugLevel
	case model.LogLevelTrace:
		app.Logger.Level = logrus.TraceLevel
	default:
		app.Logger.Level = logrus.InfoLevel
	}

	app.Logger.SetFormatter(
		&runtime.Formatter{ChildFormatter: &logrus.JSONFormatter{}},
	)

	// register for SIGINT, SIGTERM
	signal.Notify(app.TermCh, syscall.SIGINT, syscall.SIGTERM)

	return app, nil
}

func levelFromConfig(level string) int {
	switch strings.ToLower(level) {
	case "debug":
		return model.LogLevelDebug
	case "trace":
		return model.LogLevelTrace
	default:
		return model.LogLevelInfo
	}
}
