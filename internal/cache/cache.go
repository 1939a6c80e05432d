// Package cache provides the in-process read-through cache tiers fronting
// the Postgres store. A tier is a sharded TTL cache holding serialized
// snapshots; entries expire on their own and are never explicitly
// invalidated, so concurrent writers racing to populate the same key are a
// benign last-writer-wins duplicate computation. There is deliberately no
// single-flight coalescing.
package cache

import (
	"fmt"
	"time"

	"github.com/viccon/sturdyc"
	"github.com/vmihailenco/msgpack/v5"
)

// Tier TTLs. Entity reads share one window, assembled exports a coarser one;
// the two tiers can diverge in staleness.
const (
	EntityTTL = 15 * time.Minute
	ExportTTL = time.Hour
)

const evictionPercentage = 10

// formatVersion prefixes every stored blob. Entries written by an older
// build with a different payload schema decode as a miss and are re-fetched,
// which keeps cached snapshots readable across rolling deploys.
const formatVersion byte = 0x01

// Cache is one tier: a sharded in-memory store with a fixed TTL holding
// versioned msgpack blobs. Safe for concurrent use.
type Cache struct {
	client *sturdyc.Client[[]byte]
	ttl    time.Duration
}

// New creates a tier with the given capacity, shard count and TTL.
func New(capacity, numShards int, ttl time.Duration) *Cache {
	return &Cache{
		client: sturdyc.New[[]byte](capacity, numShards, ttl, evictionPercentage),
		ttl:    ttl,
	}
}

// TTL returns the tier's fixed expiry window.
func (c *Cache) TTL() time.Duration { return c.ttl }

// GetRaw returns the stored blob for key, without the version prefix.
func (c *Cache) GetRaw(key string) ([]byte, bool) {
	blob, ok := c.client.Get(key)
	if !ok || len(blob) == 0 || blob[0] != formatVersion {
		return nil, false
	}
	return blob[1:], true
}

// SetRaw stores a pre-serialized payload under key.
func (c *Cache) SetRaw(key string, payload []byte) error {
	blob := make([]byte, 0, len(payload)+1)
	blob = append(blob, formatVersion)
	blob = append(blob, payload...)
	c.client.Set(key, blob)
	return nil
}

// Delete removes a key. The read paths never call this; it exists for tests
// and operational tooling.
func (c *Cache) Delete(key string) { c.client.Delete(key) }

// Size returns the number of live entries across all shards.
func (c *Cache) Size() int { return c.client.Size() }

// Lookup decodes the cached value for key into T. A missing key, a stale
// format version, or a payload that no longer matches T's schema all count
// as a miss.
func Lookup[T any](c *Cache, key string) (T, bool) {
	var v T
	payload, ok := c.GetRaw(key)
	if !ok {
		return v, false
	}
	if err := msgpack.Unmarshal(payload, &v); err != nil {
		return v, false
	}
	return v, true
}

// Put encodes v and stores it under key with the tier's TTL.
func Put[T any](c *Cache, key string, v T) error {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache put %s: %w", key, err)
	}
	return c.SetRaw(key, payload)
}
