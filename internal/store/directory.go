package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"

	"github.com/metal-toolbox/fleetdash/internal/metrics"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/types"
)

const (
	manifestFile = "manifest.yaml"
)

// DirectoryStore keeps each export as a CSV file in a directory,
// the export metadata and retired flags are tracked in a YAML manifest next to them.
// Loaners, loans and inventory items are kept as one JSON file per record in a
// subdirectory per collection.
type DirectoryStore struct {
	assetRecords
	mu       sync.Mutex
	dir      string
	logger   *logrus.Logger
	manifest manifest
}

type manifest struct {
	Sources map[string]manifestSource `yaml:"sources"`
	Retired map[string]time.Time      `yaml:"retired"`
}

type manifestSource struct {
	File      string    `yaml:"file"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Checksum  string    `yaml:"checksum,omitempty"`
	Origin    string    `yaml:"origin,omitempty"`
}

// NewDirectoryStore returns a DirectoryStore rooted at dir, the directory is created when missing.
func NewDirectoryStore(dir string, logger *logrus.Logger) (*DirectoryStore, error) {
	if dir == "" {
		return nil, errors.Wrap(ErrStore, "empty store directory")
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrap(ErrStore, err.Error())
	}

	s := &DirectoryStore{
		dir:    dir,
		logger: logger,
		manifest: manifest{
			Sources: map[string]manifestSource{},
			Retired: map[string]time.Time{},
		},
	}

	s.assetRecords = assetRecords{records: s}

	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, errors.Wrap(ErrStore, err.Error())
	}

	if err := yaml.Unmarshal(data, &s.manifest); err != nil {
		return nil, errors.Wrap(ErrStore, "manifest: "+err.Error())
	}

	if s.manifest.Sources == nil {
		s.manifest.Sources = map[string]manifestSource{}
	}

	if s.manifest.Retired == nil {
		s.manifest.Retired = map[string]time.Time{}
	}

	return s, nil
}

func (s *DirectoryStore) PutSource(_ context.Context, source *types.SourceValue) error {
	kind, err := sourceKind(source)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if source.UpdatedAt.IsZero() {
		source.UpdatedAt = time.Now()
	}

	file := string(kind) + ".csv"
	if err := s.writeFile(file, source.Data); err != nil {
		return err
	}

	s.manifest.Sources[string(kind)] = manifestSource{
		File:      file,
		UpdatedAt: source.UpdatedAt,
		Checksum:  source.Checksum,
		Origin:    source.Origin,
	}

	s.logger.WithFields(logrus.Fields{"kind": kind, "bytes": len(source.Data)}).Debug("source stored")

	return s.writeManifest()
}

func (s *DirectoryStore) Source(_ context.Context, kind model.SourceKind) (*types.SourceValue, error) {
	s.mu.Lock()
	entry, exists := s.manifest.Sources[string(kind)]
	s.mu.Unlock()

	if !exists {
		return nil, errors.Wrap(ErrNotFound, "source: "+string(kind))
	}

	data, err := os.ReadFile(filepath.Join(s.dir, entry.File))
	if err != nil {
		s.queryError()
		return nil, errors.Wrap(ErrStore, err.Error())
	}

	return &types.SourceValue{
		UpdatedAt:  entry.UpdatedAt,
		Kind:       string(kind),
		Checksum:   entry.Checksum,
		Origin:     entry.Origin,
		Data:       data,
		MsgVersion: types.Version,
	}, nil
}

func (s *DirectoryStore) Sources(ctx context.Context) ([]*types.SourceValue, error) {
	s.mu.Lock()
	kinds := []model.SourceKind{}
	for k := range s.manifest.Sources {
		kinds = append(kinds, model.SourceKind(k))
	}
	s.mu.Unlock()

	return collectSources(ctx, s, kinds)
}

func (s *DirectoryStore) DeleteSource(_ context.Context, kind model.SourceKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.manifest.Sources[string(kind)]
	if !exists {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, entry.File)); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	delete(s.manifest.Sources, string(kind))

	return s.writeManifest()
}

func (s *DirectoryStore) Retire(_ context.Context, deviceID string) error {
	if deviceID == "" {
		return errors.Wrap(ErrStore, "empty device ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.manifest.Retired[deviceID]; exists {
		return nil
	}

	s.manifest.Retired[deviceID] = time.Now().UTC()

	return s.writeManifest()
}

func (s *DirectoryStore) Unretire(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.manifest.Retired[deviceID]; !exists {
		return errors.Wrap(ErrNotFound, "retired device: "+deviceID)
	}

	delete(s.manifest.Retired, deviceID)

	return s.writeManifest()
}

func (s *DirectoryStore) RetiredIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := maps.Keys(s.manifest.Retired)
	slices.Sort(ids)

	return ids, nil
}

func (s *DirectoryStore) Close() error { return nil }

func (s *DirectoryStore) writeManifest() error {
	data, err := yaml.Marshal(&s.manifest)
	if err != nil {
		return errors.Wrap(ErrStore, "manifest: "+err.Error())
	}

	return s.writeFile(manifestFile, data)
}

func recordFile(collection, id string) string {
	return filepath.Join(collection, recordKey(id)+".json")
}

func (s *DirectoryStore) putRecord(_ context.Context, collection, id string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(s.dir, collection), 0o750); err != nil {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	return s.writeFile(recordFile(collection, id), data)
}

func (s *DirectoryStore) getRecord(_ context.Context, collection, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, recordFile(collection, id)))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, notFound(collection, id)
	case err != nil:
		s.queryError()
		return nil, errors.Wrap(ErrStore, err.Error())
	}

	return data, nil
}

func (s *DirectoryStore) listRecords(_ context.Context, collection string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(s.dir, collection, "*.json"))
	if err != nil {
		return nil, errors.Wrap(ErrStore, err.Error())
	}

	out := make([][]byte, 0, len(files))

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			s.queryError()
			return nil, errors.Wrap(ErrStore, err.Error())
		}

		out = append(out, data)
	}

	return out, nil
}

func (s *DirectoryStore) deleteRecord(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, recordFile(collection, id)))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return notFound(collection, id)
	case err != nil:
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	return nil
}

// writeFile replaces name in the store directory through a rename so readers never see a partial file.
func (s *DirectoryStore) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Join(s.dir, filepath.Dir(name)), "."+filepath.Base(name)+".*")
	if err != nil {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.queryError()

		return errors.Wrap(ErrStore, err.Error())
	}

	if err := tmp.Close(); err != nil {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		s.queryError()
		return errors.Wrap(ErrStore, err.Error())
	}

	return nil
}

func (s *DirectoryStore) queryError() {
	metrics.StoreQueryErrorCount.WithLabelValues(string(model.StoreKindDirectory)).Inc()
}
