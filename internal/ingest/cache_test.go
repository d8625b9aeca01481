package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metal-toolbox/fleetdash/internal/fixtures"
	"github.com/metal-toolbox/fleetdash/internal/store"
	"github.com/metal-toolbox/fleetdash/types"
)

func TestFingerprint(t *testing.T) {
	sources := fixtures.NewSources()
	want := Fingerprint(sources, fixtures.RetiredIDs)

	reversed := append(sources[:0:0], sources...)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	assert.Equal(t, want, Fingerprint(reversed, []string{fixtures.RetiredIDs[1], fixtures.RetiredIDs[0]}), "order")

	// upload metadata does not change the inputs
	touched := fixtures.NewSources()
	touched[0].UpdatedAt = fixtures.Now.Add(time.Hour)
	touched[0].Origin = "https://example.com/jamf.csv"
	assert.Equal(t, want, Fingerprint(touched, fixtures.RetiredIDs), "metadata")

	changed := fixtures.NewSources()
	changed[0].Data = append(changed[0].Data, []byte("EXTRA,,,,,,,,,,,,,,,,106\n")...)
	assert.NotEqual(t, want, Fingerprint(changed, fixtures.RetiredIDs), "data")

	assert.NotEqual(t, want, Fingerprint(sources, fixtures.RetiredIDs[:1]), "retired")
	assert.NotEqual(t, want, Fingerprint(sources[1:], fixtures.RetiredIDs), "dropped export")

	withNil := append([]*types.SourceValue{nil}, fixtures.NewSources()...)
	assert.NotPanics(t, func() { Fingerprint(withNil, fixtures.RetiredIDs) })
	assert.Equal(t, want, Fingerprint(withNil, fixtures.RetiredIDs), "nil source")
	assert.Equal(t, Fingerprint(nil, nil), Fingerprint([]*types.SourceValue{nil}, nil), "only nil")
}

func TestCache(t *testing.T) {
	result := &Result{GeneratedAt: fixtures.Now}

	cases := []struct {
		name string
		ttl  time.Duration
		key  string
		at   time.Time
		hit  bool
	}{
		{"hit", time.Minute, "a", fixtures.Now.Add(30 * time.Second), true},
		{"expired", time.Minute, "a", fixtures.Now.Add(time.Minute), false},
		{"other key", time.Minute, "b", fixtures.Now, false},
		{"clock moved back", time.Minute, "a", fixtures.Now.Add(-time.Second), false},
		{"disabled", 0, "a", fixtures.Now, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCache(tc.ttl)
			c.Put("a", result, fixtures.Now)

			got, ok := c.Get(tc.key, tc.at)
			assert.Equal(t, tc.hit, ok)

			if tc.hit {
				assert.Same(t, result, got)
			}
		})
	}

	c := NewCache(time.Minute)
	c.Put("a", result, fixtures.Now)
	c.Purge()

	_, ok := c.Get("a", fixtures.Now)
	assert.False(t, ok, "purged")

	var nilCache *Cache

	nilCache.Put("a", result, fixtures.Now)
	_, ok = nilCache.Get("a", fixtures.Now)
	assert.False(t, ok, "nil cache")
}

// storedWithNil serves a nil export next to the stored ones.
type storedWithNil struct {
	*store.MemStore
}

func (s storedWithNil) Sources(ctx context.Context) ([]*types.SourceValue, error) {
	sources, err := s.MemStore.Sources(ctx)
	if err != nil {
		return nil, err
	}

	return append(sources, nil), nil
}

func TestMergeFromNilSource(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemStore()

	for _, s := range fixtures.NewSources() {
		require.NoError(t, repo.PutSource(ctx, s))
	}

	m := NewMerger(logrus.New(), WithProvisioners(fixtures.Provisioners...), WithCache(NewCache(time.Minute)))

	got, err := m.MergeFrom(ctx, storedWithNil{repo}, fixtures.Now)
	require.NoError(t, err)
	assert.Len(t, got.Devices, 6)
}

func TestMergeFromCached(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemStore()

	for _, s := range fixtures.NewSources() {
		require.NoError(t, repo.PutSource(ctx, s))
	}

	logger := logrus.New()
	logger.Level = logrus.ErrorLevel

	m := NewMerger(logger, WithProvisioners(fixtures.Provisioners...), WithCache(NewCache(time.Minute)))

	first, err := m.MergeFrom(ctx, repo, fixtures.Now)
	require.NoError(t, err)

	second, err := m.MergeFrom(ctx, repo, fixtures.Now.Add(10*time.Second))
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, repo.Retire(ctx, "C02GOOD001"))

	third, err := m.MergeFrom(ctx, repo, fixtures.Now.Add(20*time.Second))
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.True(t, deviceByName(t, third.Devices, "FBS-abc1d-MBA-2025").IsRetired)

	fourth, err := m.MergeFrom(ctx, repo, fixtures.Now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.NotSame(t, third, fourth)
}
