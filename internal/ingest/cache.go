package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/fleetdash/types"
)

// Cache holds the result of the last merge of a set of stored exports.
//
// An entry is served while the exports and retired IDs are unchanged and it is younger than the TTL.
type Cache struct {
	mu  *sync.RWMutex
	ttl time.Duration

	key     string
	expires time.Time
	result  *Result
}

// NewCache returns a Cache, a zero ttl disables caching.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, mu: &sync.RWMutex{}}
}

// Fingerprint identifies the merge inputs, the order of sources and retired IDs does not matter.
// Nil sources are skipped as Merge skips them.
func Fingerprint(sources []*types.SourceValue, retired []string) string {
	parts := make([]string, 0, len(sources))

	for _, s := range sources {
		if s == nil {
			continue
		}

		sum := sha256.Sum256(s.Data)
		parts = append(parts, s.Kind+":"+hex.EncodeToString(sum[:]))
	}

	slices.Sort(parts)

	ids := slices.Clone(retired)
	slices.Sort(ids)

	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p + "\n"))
	}

	h.Write([]byte("retired\n"))

	for _, id := range ids {
		h.Write([]byte(id + "\n"))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for key when it has not expired at now.
func (c *Cache) Get(key string, now time.Time) (*Result, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.result == nil || c.key != key || !now.Before(c.expires) || now.Before(c.result.GeneratedAt) {
		return nil, false
	}

	return c.result, true
}

// Put replaces the cached result.
func (c *Cache) Put(key string, result *Result, now time.Time) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.result = result
	c.expires = now.Add(c.ttl)
}

// Purge drops the cached result.
func (c *Cache) Purge() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = ""
	c.result = nil
}
