package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/metal-toolbox/fleetdash/internal/assets"
	"github.com/metal-toolbox/fleetdash/internal/download"
	"github.com/metal-toolbox/fleetdash/internal/ingest"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/store"
	"github.com/metal-toolbox/fleetdash/internal/summary"
	"github.com/metal-toolbox/fleetdash/types"
)

const (
	// ChecksumHeader optionally carries the <digest>:<hex> checksum of an uploaded export.
	ChecksumHeader = "X-Checksum"
	// OriginHeader optionally names where an uploaded export came from.
	OriginHeader = "X-Source-Origin"

	originUpload = "upload"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrBadExport  = errors.New("export rejected")
)

// ErrorResponse is the body of every non 2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DeviceList is the response of the device listing.
type DeviceList struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	View        summary.View   `json:"view"`
	Total       int            `json:"total"`
	Devices     []model.Device `json:"devices"`
}

// MergeStatus reports the outcome of merging the stored exports.
type MergeStatus struct {
	ID          string                               `json:"id"`
	GeneratedAt time.Time                            `json:"generatedAt"`
	Devices     int                                  `json:"devices"`
	Rows        map[model.SourceKind]ingest.RowCount `json:"rows"`
	Warnings    []string                             `json:"warnings"`
}

// SourceInfo describes a stored export without its content.
type SourceInfo struct {
	Kind      string    `json:"kind"`
	UpdatedAt time.Time `json:"updatedAt"`
	Checksum  string    `json:"checksum,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	Size      int       `json:"size"`
}

// RetiredList is the response of the retired device listing.
type RetiredList struct {
	Retired []string `json:"retired"`
}

func sourceInfo(v *types.SourceValue) SourceInfo {
	return SourceInfo{
		Kind:      v.Kind,
		UpdatedAt: v.UpdatedAt,
		Checksum:  v.Checksum,
		Origin:    v.Origin,
		Size:      len(v.Data),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, summary.ErrUnknownChart),
		errors.Is(err, ingest.ErrUnknownSource):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, summary.ErrUnknownView):
		return http.StatusBadRequest
	case errors.Is(err, ErrBadExport),
		errors.Is(err, ingest.ErrCSV),
		errors.Is(err, ingest.ErrCSVHeader),
		errors.Is(err, download.ErrChecksum),
		errors.Is(err, download.ErrFormat),
		errors.Is(err, assets.ErrInvalidAsset):
		return http.StatusUnprocessableEntity
	case errors.Is(err, assets.ErrLoanerState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// merge returns the device set merged from the stored exports as of now.
func (s *Server) merge(r *http.Request) (*ingest.Result, error) {
	ctx, span := otel.Tracer(pkgName).Start(r.Context(), "Server.merge")
	defer span.End()

	result, err := s.merger.MergeFrom(ctx, s.repo, s.now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("merge.devices", len(result.Devices)))

	return result, nil
}

// excludeRetired returns the exclude_retired query parameter, the server default when absent.
func (s *Server) excludeRetired(r *http.Request) (bool, error) {
	param := r.URL.Query().Get("exclude_retired")
	if param == "" {
		return s.summary.ExcludeRetired, nil
	}

	v, err := strconv.ParseBool(param)
	if err != nil {
		return false, errors.Wrap(ErrBadRequest, "exclude_retired: "+param)
	}

	return v, nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listDevices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	view, err := summary.ParseView(query.Get("view"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	excludeRetired, err := s.excludeRetired(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	limit := 0
	if param := query.Get("limit"); param != "" {
		limit, err = strconv.Atoi(param)
		if err != nil || limit < 0 {
			s.writeError(w, r, errors.Wrap(ErrBadRequest, "limit: "+param))
			return
		}
	}

	result, err := s.merge(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	devices := summary.Filter{
		View:           view,
		Search:         query.Get("search"),
		Owner:          query.Get("owner"),
		ExcludeRetired: excludeRetired,
	}.Apply(result.Devices)

	total := len(devices)
	if limit > 0 && limit < total {
		devices = devices[:limit]
	}

	writeJSON(w, http.StatusOK, DeviceList{
		GeneratedAt: result.GeneratedAt,
		View:        view,
		Total:       total,
		Devices:     devices,
	})
}

func (s *Server) getDevice(w http.ResponseWriter, r *http.Request) {
	id, err := deviceIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.merge(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	device, found := summary.Find(result.Devices, id)
	if !found {
		s.writeError(w, r, errors.Wrap(store.ErrNotFound, "device: "+id))
		return
	}

	writeJSON(w, http.StatusOK, device)
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	excludeRetired, err := s.excludeRetired(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.merge(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.summary
	opts.ExcludeRetired = excludeRetired

	writeJSON(w, http.StatusOK, summary.Summarize(result.Devices, opts))
}

func (s *Server) listCharts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, summary.ChartNames())
}

func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	excludeRetired, err := s.excludeRetired(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.merge(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	devices := summary.Filter{View: summary.ViewAll, ExcludeRetired: excludeRetired}.Apply(result.Devices)

	charts := summary.Charts{Now: result.GeneratedAt, ReplacementUnitCost: s.summary.ReplacementUnitCost}

	series, err := charts.Chart(chi.URLParam(r, "chart"), devices)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, series)
}

func (s *Server) getMerge(w http.ResponseWriter, r *http.Request) {
	result, err := s.merge(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	writeJSON(w, http.StatusOK, MergeStatus{
		ID:          result.ID.String(),
		GeneratedAt: result.GeneratedAt,
		Devices:     len(result.Devices),
		Rows:        result.Rows,
		Warnings:    warnings,
	})
}

func sourceKindParam(r *http.Request) (model.SourceKind, error) {
	param := chi.URLParam(r, "kind")

	kind, ok := model.ParseSourceKind(param)
	if !ok {
		return "", errors.Wrap(ingest.ErrUnknownSource, param)
	}

	return kind, nil
}

func (s *Server) listSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.repo.Sources(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	infos := make([]SourceInfo, 0, len(sources))
	for _, v := range sources {
		infos = append(infos, sourceInfo(v))
	}

	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) getSource(w http.ResponseWriter, r *http.Request) {
	kind, err := sourceKindParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err := s.repo.Source(r.Context(), kind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Last-Modified", v.UpdatedAt.UTC().Format(http.TimeFormat))

	if v.Checksum != "" {
		w.Header().Set(ChecksumHeader, v.Checksum)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(v.Data)
}

// putSource stores an uploaded export after checking it can be merged.
func (s *Server) putSource(w http.ResponseWriter, r *http.Request) {
	kind, err := sourceKindParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(ErrBadRequest, err.Error()))
		return
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		s.writeError(w, r, errors.Wrap(ErrBadRequest, "empty export"))
		return
	}

	if checksum := r.Header.Get(ChecksumHeader); checksum != "" {
		if err := download.ChecksumValidate(data, checksum); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	if err := ingest.Validate(kind, data); err != nil {
		s.writeError(w, r, errors.Wrap(ErrBadExport, err.Error()))
		return
	}

	origin := r.Header.Get(OriginHeader)
	if origin == "" {
		origin = originUpload
	}

	v := &types.SourceValue{
		UpdatedAt:  s.now(),
		Kind:       string(kind),
		Checksum:   download.Checksum(data),
		Origin:     origin,
		Data:       data,
		MsgVersion: types.Version,
	}

	if err := s.repo.PutSource(r.Context(), v); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"kind":     kind,
		"bytes":    len(data),
		"checksum": v.Checksum,
	}).Info("export stored")

	writeJSON(w, http.StatusCreated, sourceInfo(v))
}

func (s *Server) deleteSource(w http.ResponseWriter, r *http.Request) {
	kind, err := sourceKindParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.DeleteSource(r.Context(), kind); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listRetired(w http.ResponseWriter, r *http.Request) {
	ids, err := s.repo.RetiredIDs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if ids == nil {
		ids = []string{}
	}

	writeJSON(w, http.StatusOK, RetiredList{Retired: ids})
}

// deviceIDParam returns the unescaped device ID path parameter.
func deviceIDParam(r *http.Request) (string, error) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		return "", errors.Wrap(ErrBadRequest, err.Error())
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.Wrap(ErrBadRequest, "empty device ID")
	}

	return id, nil
}

func (s *Server) retire(w http.ResponseWriter, r *http.Request) {
	id, err := deviceIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.Retire(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) unretire(w http.ResponseWriter, r *http.Request) {
	id, err := deviceIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.Unretire(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
