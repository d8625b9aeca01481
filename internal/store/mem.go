package store

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/types"
)

// MemStore keeps the exports and asset records in process memory, state is lost on restart.
type MemStore struct {
	assetRecords
	mu *sync.RWMutex

	// sources is a map of source kinds to exports
	sources map[model.SourceKind]types.SourceValue
	// retired is a map of retired device IDs to the time they were retired
	retired map[string]time.Time
	// collections is a map of collection names to encoded asset records by ID
	collections map[string]map[string][]byte
}

func NewMemStore() *MemStore {
	s := &MemStore{
		sources: map[model.SourceKind]types.SourceValue{},
		retired: map[string]time.Time{},
		mu:      &sync.RWMutex{},

		collections: map[string]map[string][]byte{},
	}

	s.assetRecords = assetRecords{records: s}

	return s
}

func (c *MemStore) PutSource(_ context.Context, source *types.SourceValue) error {
	kind, err := sourceKind(source)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v := *source
	v.Data = slices.Clone(source.Data)

	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = time.Now()
	}

	c.sources[kind] = v

	return nil
}

func (c *MemStore) Source(_ context.Context, kind model.SourceKind) (*types.SourceValue, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, exists := c.sources[kind]
	if !exists {
		return nil, errors.Wrap(ErrNotFound, "source: "+string(kind))
	}

	v.Data = slices.Clone(v.Data)

	return &v, nil
}

func (c *MemStore) Sources(ctx context.Context) ([]*types.SourceValue, error) {
	c.mu.RLock()
	kinds := maps.Keys(c.sources)
	c.mu.RUnlock()

	return collectSources(ctx, c, kinds)
}

func (c *MemStore) DeleteSource(_ context.Context, kind model.SourceKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.sources, kind)

	return nil
}

func (c *MemStore) Retire(_ context.Context, deviceID string) error {
	if deviceID == "" {
		return errors.Wrap(ErrStore, "empty device ID")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.retired[deviceID]; !exists {
		c.retired[deviceID] = time.Now()
	}

	return nil
}

func (c *MemStore) Unretire(_ context.Context, deviceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.retired[deviceID]; !exists {
		return errors.Wrap(ErrNotFound, "retired device: "+deviceID)
	}

	delete(c.retired, deviceID)

	return nil
}

func (c *MemStore) RetiredIDs(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := maps.Keys(c.retired)
	slices.Sort(ids)

	return ids, nil
}

func (c *MemStore) Close() error { return nil }

func (c *MemStore) putRecord(_ context.Context, collection, id string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.collections[collection] == nil {
		c.collections[collection] = map[string][]byte{}
	}

	c.collections[collection][id] = slices.Clone(data)

	return nil
}

func (c *MemStore) getRecord(_ context.Context, collection, id string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, exists := c.collections[collection][id]
	if !exists {
		return nil, notFound(collection, id)
	}

	return slices.Clone(data), nil
}

func (c *MemStore) listRecords(_ context.Context, collection string) ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([][]byte, 0, len(c.collections[collection]))
	for _, data := range c.collections[collection] {
		out = append(out, slices.Clone(data))
	}

	return out, nil
}

func (c *MemStore) deleteRecord(_ context.Context, collection, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.collections[collection][id]; !exists {
		return notFound(collection, id)
	}

	delete(c.collections[collection], id)

	return nil
}

func sourceKind(source *types.SourceValue) (model.SourceKind, error) {
	if source == nil {
		return "", errors.Wrap(ErrStore, "nil source")
	}

	kind, ok := model.ParseSourceKind(source.Kind)
	if !ok {
		return "", errors.Wrap(ErrStore, "unknown source kind: "+source.Kind)
	}

	source.Kind = string(kind)

	return kind, nil
}

// collectSources returns the stored exports of kinds in merge order.
func collectSources(ctx context.Context, r Repository, kinds []model.SourceKind) ([]*types.SourceValue, error) {
	sources := []*types.SourceValue{}

	for _, kind := range model.SourceKinds() {
		if !slices.Contains(kinds, kind) {
			continue
		}

		v, err := r.Source(ctx, kind)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}

			return nil, err
		}

		sources = append(sources, v)
	}

	return sources, nil
}
