// Package api serves the device dashboard JSON API.
package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/metal-toolbox/fleetdash/internal/ingest"
	"github.com/metal-toolbox/fleetdash/internal/metrics"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/store"
	"github.com/metal-toolbox/fleetdash/internal/summary"
)

const (
	pkgName = "internal/api"

	PathPrefix = "/api/v1"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// maxUploadBytes caps an uploaded CSV export.
var maxUploadBytes int64 = 256 << 20

// Server serves the dashboard API over the exports held in the repository.
//
// The device set is merged from the stored exports on every request that reads it.
type Server struct {
	repo    store.Repository
	merger  *ingest.Merger
	logger  *logrus.Logger
	summary summary.Options
	now     func() time.Time

	// assetsMu serializes loaner and inventory read-modify-write requests.
	assetsMu sync.Mutex
}

// Option sets a Server parameter.
type Option func(*Server)

// WithSummaryOptions sets the defaults applied to summaries, charts and device lists.
func WithSummaryOptions(opts summary.Options) Option {
	return func(s *Server) { s.summary = opts }
}

// WithClock sets the time source devices are classified against.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(repo store.Repository, merger *ingest.Merger, logger *logrus.Logger, opts ...Option) *Server {
	s := &Server{
		repo:   repo,
		merger: merger,
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, s.instrument)

	r.Get("/healthz", s.healthz)

	r.Route(PathPrefix, func(r chi.Router) {
		r.Get("/devices", s.listDevices)
		r.Get("/devices/{id}", s.getDevice)
		r.Get("/summary", s.getSummary)
		r.Get("/charts", s.listCharts)
		r.Get("/charts/{chart}", s.getChart)
		r.Get("/merge", s.getMerge)

		r.Get("/sources", s.listSources)
		r.Get("/sources/{kind}", s.getSource)
		r.Put("/sources/{kind}", s.putSource)
		r.Delete("/sources/{kind}", s.deleteSource)

		r.Get("/retired", s.listRetired)
		r.Put("/retired/{id}", s.retire)
		r.Delete("/retired/{id}", s.unretire)

		r.Route("/loaners", func(r chi.Router) {
			r.Get("/", s.listLoaners)
			r.Post("/", s.createLoaner)
			r.Get("/summary", s.getLoanerSummary)
			r.Get("/{id}", s.getLoaner)
			r.Put("/{id}", s.updateLoaner)
			r.Delete("/{id}", s.deleteLoaner)
			r.Post("/{id}/checkout", s.checkoutLoaner)
			r.Post("/{id}/return", s.returnLoaner)
			r.Get("/{id}/history", s.listLoans)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", s.listInventory)
			r.Post("/", s.createInventoryItem)
			r.Get("/summary", s.getInventorySummary)
			r.Get("/{id}", s.getInventoryItem)
			r.Put("/{id}", s.updateInventoryItem)
			r.Delete("/{id}", s.deleteInventoryItem)
		})
	})

	return r
}

// Handler returns the traced API handler.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.Routes(), model.AppName)
}

// ListenAndServe serves the API on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.WithField("address", addr).Info("serving API")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}
}

// instrument counts and logs every request by its route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		startTS := time.Now()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		trace.SpanFromContext(r.Context()).SetAttributes(
			attribute.String("http.route", route),
			attribute.String("request.id", middleware.GetReqID(r.Context())),
		)

		metrics.APIRequestsCounter.WithLabelValues(route, strconv.Itoa(status)).Inc()

		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"route":    route,
			"status":   status,
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(startTS).String(),
		}).Debug("request served")
	})
}
