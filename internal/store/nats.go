package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jpillora/backoff"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/fleetdash/internal/app"
	"github.com/metal-toolbox/fleetdash/internal/metrics"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/types"
)

const (
	connectAttempts = 5
	retiredPrefix   = "retired."
	sourcePrefix    = "source."
	sourcesSuffix   = "-sources"
	assetsSuffix    = "-assets"
)

// NATSKV persists state in NATS JetStream,
// exports are kept in an object store since they may exceed the message size limit,
// retired flags are kept in a KV bucket and asset records in a second one.
type NATSKV struct {
	assetRecords
	conn    *nats.Conn
	kv      nats.KeyValue
	assets  nats.KeyValue
	objects nats.ObjectStore
	logger  *logrus.Logger
}

// NewNATSKV connects to the NATS server and binds the buckets, creating them when missing.
func NewNATSKV(ctx context.Context, opts *app.NatsOptions, logger *logrus.Logger) (*NATSKV, error) {
	if opts == nil || opts.URL == "" {
		return nil, errors.Wrap(ErrStore, "missing parameter: nats.url")
	}

	conn, err := connectWithRetries(ctx, opts, logger, connectAttempts)
	if err != nil {
		return nil, err
	}

	s, err := NewNATSKVFromConn(conn, opts.Bucket, opts.Replicas, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

// NewNATSKVFromConn returns a NATSKV on an established connection, the connection is closed by Close.
func NewNATSKVFromConn(conn *nats.Conn, bucket string, replicas int, logger *logrus.Logger) (*NATSKV, error) {
	if bucket == "" {
		bucket = model.AppName
	}

	if replicas < 1 {
		replicas = 1
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, errors.Wrap(ErrStore, "JetStream: "+err.Error())
	}

	kv, err := js.KeyValue(bucket)
	if err != nil {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "fleetdash retired devices",
			Replicas:    replicas,
		})
		if err != nil {
			return nil, errors.Wrap(ErrStore, "KV bucket: "+err.Error())
		}
	}

	objects, err := js.ObjectStore(bucket + sourcesSuffix)
	if err != nil {
		objects, err = js.CreateObjectStore(&nats.ObjectStoreConfig{
			Bucket:      bucket + sourcesSuffix,
			Description: "fleetdash CSV exports",
			Replicas:    replicas,
		})
		if err != nil {
			return nil, errors.Wrap(ErrStore, "object store: "+err.Error())
		}
	}

	assets, err := js.KeyValue(bucket + assetsSuffix)
	if err != nil {
		assets, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket + assetsSuffix,
			Description: "fleetdash loaners and inventory",
			Replicas:    replicas,
		})
		if err != nil {
			return nil, errors.Wrap(ErrStore, "assets KV bucket: "+err.Error())
		}
	}

	s := &NATSKV{conn: conn, kv: kv, assets: assets, objects: objects, logger: logger}
	s.assetRecords = assetRecords{records: s}

	return s, nil
}

// connect to the NATS server, re-trying tries times with exponential backoff
func connectWithRetries(ctx context.Context, opts *app.NatsOptions, logger *logrus.Logger, tries int) (*nats.Conn, error) {
	// nolint:gomnd // time duration definitions are clear as is.
	delay := &backoff.Backoff{
		Min:    1 * time.Second,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	natsOpts := []nats.Option{nats.Name(model.AppName)}

	if opts.ConnectTimeout > 0 {
		natsOpts = append(natsOpts, nats.Timeout(opts.ConnectTimeout))
	}

	if opts.CredsFile != "" {
		natsOpts = append(natsOpts, nats.UserCredentials(opts.CredsFile))
	}

	for attempts := 1; ; attempts++ {
		conn, err := nats.Connect(opts.URL, natsOpts...)
		if err == nil {
			return conn, nil
		}

		attemptstr := fmt.Sprintf("%d/%d", attempts, tries)

		logger.WithFields(
			logrus.Fields{
				"attempt": attemptstr,
				"err":     err,
			}).Debug("nats connect error")

		if attempts >= tries {
			return nil, errors.Wrapf(ErrStore, "nats connect attempts: %s, last error: %s", attemptstr, err.Error())
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ErrStore, ctx.Err().Error())
		case <-time.After(delay.Duration()):
		}
	}
}

func (s *NATSKV) PutSource(ctx context.Context, source *types.SourceValue) error {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.PutSource")
	defer span.End()

	kind, err := sourceKind(source)
	if err != nil {
		return err
	}

	if source.UpdatedAt.IsZero() {
		source.UpdatedAt = time.Now()
	}

	if _, err := s.objects.PutBytes(sourcePrefix+string(kind), source.MustBytes()); err != nil {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	s.logger.WithFields(logrus.Fields{"kind": kind, "bytes": len(source.Data)}).Debug("source stored")

	return nil
}

func (s *NATSKV) Source(ctx context.Context, kind model.SourceKind) (*types.SourceValue, error) {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.Source")
	defer span.End()

	data, err := s.objects.GetBytes(sourcePrefix + string(kind))
	if err != nil {
		if errors.Is(err, nats.ErrObjectNotFound) {
			return nil, errors.Wrap(ErrNotFound, "source: "+string(kind))
		}

		s.queryError()

		return nil, errors.Wrap(ErrStore, err.Error())
	}

	v := &types.SourceValue{}
	if err := json.Unmarshal(data, v); err != nil {
		s.queryError()
		return nil, errors.Wrap(ErrStore, "source value: "+err.Error())
	}

	return v, nil
}

func (s *NATSKV) Sources(ctx context.Context) ([]*types.SourceValue, error) {
	infos, err := s.objects.List()
	if err != nil {
		if errors.Is(err, nats.ErrNoObjectsFound) {
			return []*types.SourceValue{}, nil
		}

		s.queryError()

		return nil, errors.Wrap(ErrStore, err.Error())
	}

	kinds := []model.SourceKind{}

	for _, info := range infos {
		if info.Deleted || !strings.HasPrefix(info.Name, sourcePrefix) {
			continue
		}

		kinds = append(kinds, model.SourceKind(strings.TrimPrefix(info.Name, sourcePrefix)))
	}

	return collectSources(ctx, s, kinds)
}

func (s *NATSKV) DeleteSource(ctx context.Context, kind model.SourceKind) error {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.DeleteSource")
	defer span.End()

	if err := s.objects.Delete(sourcePrefix + string(kind)); err != nil && !errors.Is(err, nats.ErrObjectNotFound) {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	return nil
}

func (s *NATSKV) Retire(ctx context.Context, deviceID string) error {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.Retire")
	defer span.End()

	if deviceID == "" {
		return errors.Wrap(ErrStore, "empty device ID")
	}

	value := &types.RetiredValue{RetiredAt: time.Now().UTC(), DeviceID: deviceID}

	if _, err := s.kv.Create(retiredKey(deviceID), value.MustBytes()); err != nil {
		if errors.Is(err, nats.ErrKeyExists) {
			return nil
		}

		s.queryError()

		return errors.Wrap(ErrStore, err.Error())
	}

	return nil
}

func (s *NATSKV) Unretire(ctx context.Context, deviceID string) error {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.Unretire")
	defer span.End()

	key := retiredKey(deviceID)

	if _, err := s.kv.Get(key); err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return errors.Wrap(ErrNotFound, "retired device: "+deviceID)
		}

		s.queryError()

		return errors.Wrap(ErrStore, err.Error())
	}

	if err := s.kv.Delete(key); err != nil {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	return nil
}

func (s *NATSKV) RetiredIDs(ctx context.Context) ([]string, error) {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.RetiredIDs")
	defer span.End()

	keys, err := s.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return []string{}, nil
		}

		s.queryError()

		return nil, errors.Wrap(ErrStore, err.Error())
	}

	ids := make([]string, 0, len(keys))

	for _, key := range keys {
		id, ok := deviceIDFromKey(key)
		if !ok {
			s.logger.WithField("key", key).Warn("skipped malformed retired key")
			continue
		}

		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids, nil
}

func (s *NATSKV) putRecord(ctx context.Context, collection, id string, data []byte) error {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.putRecord")
	defer span.End()

	if _, err := s.assets.Put(collection+"."+recordKey(id), data); err != nil {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	return nil
}

func (s *NATSKV) getRecord(ctx context.Context, collection, id string) ([]byte, error) {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.getRecord")
	defer span.End()

	entry, err := s.assets.Get(collection + "." + recordKey(id))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, notFound(collection, id)
		}

		s.queryError()

		return nil, errors.Wrap(ErrStore, err.Error())
	}

	return entry.Value(), nil
}

func (s *NATSKV) listRecords(ctx context.Context, collection string) ([][]byte, error) {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.listRecords")
	defer span.End()

	keys, err := s.assets.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return [][]byte{}, nil
		}

		s.queryError()

		return nil, errors.Wrap(ErrStore, err.Error())
	}

	out := [][]byte{}

	for _, key := range keys {
		if !strings.HasPrefix(key, collection+".") {
			continue
		}

		entry, err := s.assets.Get(key)
		if err != nil {
			// deleted since listed
			if errors.Is(err, nats.ErrKeyNotFound) {
				continue
			}

			s.queryError()

			return nil, errors.Wrap(ErrStore, err.Error())
		}

		out = append(out, entry.Value())
	}

	return out, nil
}

func (s *NATSKV) deleteRecord(ctx context.Context, collection, id string) error {
	_, span := otel.Tracer(pkgName).Start(ctx, "NATSKV.deleteRecord")
	defer span.End()

	key := collection + "." + recordKey(id)

	if _, err := s.assets.Get(key); err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return notFound(collection, id)
		}

		s.queryError()

		return errors.Wrap(ErrStore, err.Error())
	}

	if err := s.assets.Delete(key); err != nil {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	return nil
}

func (s *NATSKV) Close() error {
	s.conn.Close()
	return nil
}

func (s *NATSKV) queryError() {
	metrics.StoreQueryErrorCount.WithLabelValues(string(model.StoreKindNATS)).Inc()
}

// retiredKey encodes the device ID since serials may hold characters not valid in a KV key.
func retiredKey(deviceID string) string {
	return retiredPrefix + recordKey(deviceID)
}

func deviceIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, retiredPrefix) {
		return "", false
	}

	id, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(key, retiredPrefix))
	if err != nil {
		return "", false
	}

	return string(id), true
}
