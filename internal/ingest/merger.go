package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/fleetdash/internal/catalog"
	"github.com/metal-toolbox/fleetdash/internal/classify"
	"github.com/metal-toolbox/fleetdash/internal/metrics"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/valuation"
	"github.com/metal-toolbox/fleetdash/internal/worker"
	"github.com/metal-toolbox/fleetdash/types"
)

const (
	pkgName = "internal/ingest"

	defaultConcurrency = 4
)

// Merger joins the stored exports into the classified device set.
type Merger struct {
	policy       classify.Policy
	schedule     valuation.Schedule
	provisioners []string
	concurrency  int
	cache        *Cache
	logger       *logrus.Logger
}

// Option sets a Merger parameter.
type Option func(*Merger)

func WithPolicy(p classify.Policy) Option { return func(m *Merger) { m.policy = p } }

func WithValuation(s valuation.Schedule) Option { return func(m *Merger) { m.schedule = s } }

// WithProvisioners sets the enrollment accounts whose devices are owned by IT.
func WithProvisioners(accounts ...string) Option {
	return func(m *Merger) { m.provisioners = append(m.provisioners, accounts...) }
}

// WithConcurrency sets the number of devices classified in parallel.
func WithConcurrency(n int) Option { return func(m *Merger) { m.concurrency = n } }

// WithCache sets the cache MergeFrom serves unchanged exports from.
func WithCache(c *Cache) Option { return func(m *Merger) { m.cache = c } }

// NewMerger returns a Merger with the default policy and valuation schedule.
func NewMerger(logger *logrus.Logger, opts ...Option) *Merger {
	m := &Merger{
		policy:      classify.DefaultPolicy(),
		schedule:    valuation.DefaultSchedule(),
		concurrency: defaultConcurrency,
		logger:      logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RowCount is the number of rows accepted and skipped from an export.
type RowCount struct {
	Accepted int `json:"accepted"`
	Skipped  int `json:"skipped"`
}

// Result is a merged and classified snapshot of the fleet.
type Result struct {
	ID          uuid.UUID                     `json:"id"`
	GeneratedAt time.Time                     `json:"generatedAt"`
	Devices     []model.Device                `json:"devices"`
	Rows        map[model.SourceKind]RowCount `json:"rows"`
	Warnings    []string                      `json:"warnings,omitempty"`
}

// mergeRun holds the state of a single Merge.
type mergeRun struct {
	*Merger
	result   *Result
	warnings *multierror.Error
	sources  map[model.SourceKind][]byte
	dir      *classify.Directory
	devices  []model.Device
	// index maps the uppercased device ID to its position in devices
	index map[string]int
	// ips holds the management platform reported IP address by device ID
	ips map[string]string
}

// Merge parses the exports, joins them into devices and classifies every device as of now.
//
// The merge is a full replace: the same exports, retired IDs and time always produce the same devices.
// Data quality problems never fail a merge, they are reported in Result.Warnings.
// An error is returned only when ctx is done before the devices were classified.
func (m *Merger) Merge(ctx context.Context, sources []*types.SourceValue, retired []string, now time.Time) (*Result, error) {
	ctx, span := otel.Tracer(pkgName).Start(ctx, "Merger.Merge")
	defer span.End()

	startTS := time.Now()

	r := &mergeRun{
		Merger: m,
		result: &Result{
			ID:          uuid.New(),
			GeneratedAt: now,
			Rows:        map[model.SourceKind]RowCount{},
		},
		sources: map[model.SourceKind][]byte{},
		index:   map[string]int{},
		ips:     map[string]string{},
	}

	for _, s := range sources {
		if s == nil {
			continue
		}

		kind, ok := model.ParseSourceKind(s.Kind)
		if !ok {
			r.warn(errors.Wrap(ErrUnknownSource, s.Kind))
			continue
		}

		r.sources[kind] = s.Data
	}

	r.loadDirectory()
	r.loadDevices()
	r.attachScans()
	r.markRetired(retired)

	if err := r.classify(ctx, now); err != nil {
		metrics.MergeRunTimeSummary.WithLabelValues("failed").Observe(time.Since(startTS).Seconds())
		return nil, err
	}

	slices.SortFunc(r.devices, func(a, b model.Device) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	r.result.Devices = r.devices
	if r.warnings != nil {
		for _, w := range r.warnings.Errors {
			r.result.Warnings = append(r.result.Warnings, w.Error())
		}
	}

	metrics.ObserveFleet(r.devices)
	metrics.MergeRunTimeSummary.WithLabelValues("succeeded").Observe(time.Since(startTS).Seconds())

	span.SetAttributes(
		attribute.String("merge.id", r.result.ID.String()),
		attribute.Int("merge.devices", len(r.devices)),
		attribute.Int("merge.warnings", len(r.result.Warnings)),
	)

	m.logger.WithFields(logrus.Fields{
		"mergeID":  r.result.ID.String(),
		"devices":  len(r.devices),
		"warnings": len(r.result.Warnings),
		"sources":  len(r.sources),
	}).Debug("merge complete")

	return r.result, nil
}

func (r *mergeRun) warn(err error) {
	r.warnings = multierror.Append(r.warnings, err)
}

// count records the accepted and skipped rows of an export.
func (r *mergeRun) count(kind model.SourceKind, accepted int, rowWarnings *multierror.Error, err error) {
	if err != nil {
		r.warn(errors.Wrap(err, string(kind)))
		return
	}

	skipped := 0
	if rowWarnings != nil {
		skipped = len(rowWarnings.Errors)

		for _, w := range rowWarnings.Errors {
			r.warn(errors.Wrap(w, string(kind)))
		}
	}

	r.result.Rows[kind] = RowCount{Accepted: accepted, Skipped: skipped}

	metrics.IngestRowsCounter.WithLabelValues(string(kind), "accepted").Add(float64(accepted))
	metrics.IngestRowsCounter.WithLabelValues(string(kind), "skipped").Add(float64(skipped))
}

// loadDirectory indexes the users export, then enriches it with the CoreView export.
func (r *mergeRun) loadDirectory() {
	r.dir = classify.NewDirectory()

	for _, account := range r.provisioners {
		r.dir.AddProvisioner(account)
	}

	parsers := []struct {
		kind  model.SourceKind
		parse func([]byte) ([]classify.User, *multierror.Error, error)
	}{
		{model.SourceKindUsers, parseUsers},
		{model.SourceKindCoreView, parseCoreView},
	}

	for _, p := range parsers {
		data, exists := r.sources[p.kind]
		if !exists {
			continue
		}

		users, rowWarnings, err := p.parse(data)
		r.count(p.kind, len(users), rowWarnings, err)

		for _, u := range users {
			r.dir.Add(u)
		}
	}
}

// loadDevices adds the Jamf devices then the Intune devices, duplicates are merged.
func (r *mergeRun) loadDevices() {
	for _, kind := range []model.SourceKind{model.SourceKindJamf, model.SourceKindIntune} {
		data, exists := r.sources[kind]
		if !exists {
			continue
		}

		source, _ := kind.DeviceSource()

		records, rowWarnings, err := parseDevices(source, data)
		r.count(kind, len(records), rowWarnings, err)

		for i := range records {
			r.addDevice(&records[i])
		}
	}
}

func (r *mergeRun) addDevice(rec *deviceRecord) {
	var d model.Device
	if err := copier.Copy(&d, rec); err != nil {
		r.warn(errors.Wrap(err, "device "+rec.ID))
		return
	}

	d.FriendlyModel = catalog.LookupModelName(d.Model)

	if manufacturer := catalog.ManufacturerFromModel(d.Model); manufacturer != catalog.UnknownManufacturer {
		d.Manufacturer = manufacturer
	}

	owner := r.dir.ResolveOwner(d.Name, rec.hint)
	d.Owner, d.OwnerEmail, d.ExportUser = owner.Name, owner.Email, owner.ExportUser

	if owner.Department != "" {
		d.Department = owner.Department
	}

	if rec.ipAddress != "" {
		r.ips[d.ID] = rec.ipAddress
	}

	key := strings.ToUpper(d.ID)

	if idx, exists := r.index[key]; exists {
		r.devices[idx] = mergeDuplicate(r.devices[idx], d)
		return
	}

	r.index[key] = len(r.devices)
	r.devices = append(r.devices, d)
}

// mergeDuplicate returns the most recently seen of two records of the same device,
// the owner of the other record is kept as the additional owner.
func mergeDuplicate(existing, incoming model.Device) model.Device {
	winner, other := existing, incoming
	if incoming.LastSeen.After(existing.LastSeen) {
		winner, other = incoming, existing
	}

	if other.Owner != "" && other.Owner != model.Unassigned && !strings.EqualFold(other.Owner, winner.Owner) {
		winner.AdditionalOwner = other.Owner
	}

	if winner.PurchaseDate == nil {
		winner.PurchaseDate = other.PurchaseDate
	}

	if winner.EnrolledDate == nil {
		winner.EnrolledDate = other.EnrolledDate
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	fill(&winner.Processor, other.Processor)
	fill(&winner.RAM, other.RAM)
	fill(&winner.Storage, other.Storage)
	fill(&winner.Department, other.Department)
	fill(&winner.ExportUser, other.ExportUser)
	fill(&winner.Notes, other.Notes)

	return winner
}

// attachScans joins the scanned hosts to devices by serial number, then by device name.
func (r *mergeRun) attachScans() {
	data, exists := r.sources[model.SourceKindQualys]
	if !exists {
		return
	}

	hosts, rowWarnings, err := parseQualys(data)
	r.count(model.SourceKindQualys, len(hosts), rowWarnings, err)

	bySerial := map[string]int{}
	byName := map[string]int{}

	for idx := range r.devices {
		if serial := r.devices[idx].SerialNumber; serial != "" {
			bySerial[serial] = idx
		}

		byName[strings.ToLower(r.devices[idx].Name)] = idx
	}

	lookup := func(h *scanHost) (int, bool) {
		if idx, ok := bySerial[h.SerialNumber]; ok && h.SerialNumber != "" {
			return idx, true
		}

		name := strings.ToLower(h.Hostname)
		if idx, ok := byName[name]; ok && name != "" {
			return idx, true
		}

		short, _, _ := strings.Cut(name, ".")
		idx, ok := byName[short]

		return idx, ok && short != ""
	}

	joined := map[int]*scanHost{}
	unmatched := 0

	for _, h := range hosts {
		idx, ok := lookup(h)
		if !ok {
			unmatched++
			continue
		}

		if existing, ok := joined[idx]; ok {
			existing.merge(h)
			continue
		}

		c := *h
		joined[idx] = &c
	}

	for idx, h := range joined {
		sec := h.security()
		if sec.IPAddress == "" {
			sec.IPAddress = r.ips[r.devices[idx].ID]
		}

		r.devices[idx].Security = sec
	}

	if unmatched > 0 {
		r.warn(fmt.Errorf("qualys: %d scanned hosts matched no device", unmatched))
	}
}

// markRetired flags devices whose ID or serial number was retired.
func (r *mergeRun) markRetired(retired []string) {
	set := make(map[string]struct{}, len(retired))
	for _, id := range retired {
		set[strings.ToUpper(strings.TrimSpace(id))] = struct{}{}
	}

	for idx := range r.devices {
		d := &r.devices[idx]

		_, byID := set[strings.ToUpper(d.ID)]
		_, bySerial := set[d.SerialNumber]

		d.IsRetired = byID || (bySerial && d.SerialNumber != "")
	}
}

// classify computes the classification and value of every device on the worker pool.
func (r *mergeRun) classify(ctx context.Context, now time.Time) error {
	limiter := worker.NewLimiter(r.concurrency)
	defer limiter.StopWait()

	return limiter.Each(ctx, len(r.devices), func(i int) {
		d := classify.Classify(r.devices[i], r.policy, now)

		value := r.schedule.Value(d.Model, d.FriendlyModel, d.AgeInYears)
		d.Value = &value

		r.devices[i] = d
	})
}

// Stored is the persisted state a merge reads, implemented by every store.Repository.
type Stored interface {
	Sources(ctx context.Context) ([]*types.SourceValue, error)
	RetiredIDs(ctx context.Context) ([]string, error)
}

// MergeFrom merges the exports and retired IDs currently held by st.
//
// With a cache set, the previous result is returned while the stored state is unchanged,
// callers must treat the returned result as read only.
func (m *Merger) MergeFrom(ctx context.Context, st Stored, now time.Time) (*Result, error) {
	sources, err := st.Sources(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading exports")
	}

	retired, err := st.RetiredIDs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading retired devices")
	}

	key := Fingerprint(sources, retired)
	if result, ok := m.cache.Get(key, now); ok {
		return result, nil
	}

	result, err := m.Merge(ctx, sources, retired, now)
	if err != nil {
		return nil, err
	}

	m.cache.Put(key, result, now)

	return result, nil
}

// Validate parses an export of the given kind and returns an error when it cannot be merged.
//
// Row level problems are not errors, they are reported when the export is merged.
func Validate(kind model.SourceKind, data []byte) error {
	var err error

	switch kind {
	case model.SourceKindJamf:
		_, _, err = parseDevices(model.SourceJamf, data)
	case model.SourceKindIntune:
		_, _, err = parseDevices(model.SourceIntune, data)
	case model.SourceKindUsers:
		_, _, err = parseUsers(data)
	case model.SourceKindCoreView:
		_, _, err = parseCoreView(data)
	case model.SourceKindQualys:
		_, _, err = parseQualys(data)
	default:
		return errors.Wrap(ErrUnknownSource, string(kind))
	}

	return err
}
