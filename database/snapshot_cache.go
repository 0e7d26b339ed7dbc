package database

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"stocksmart/models"
)

// Snapshot is an immutable set of sale records loaded at one point in time.
// Callers must not modify Records.
type Snapshot struct {
	Records  []models.SaleRecord
	Version  uint64
	LoadedAt time.Time
}

// SnapshotCache keeps the last snapshot loaded per scope. A refresh replaces the
// cached snapshot and never touches one already handed out.
type SnapshotCache struct {
	source SaleRecordSource
	ttl    time.Duration
	now    func() time.Time

	group   singleflight.Group
	mu      sync.Mutex
	version uint64
	epoch   uint64
	gens    map[string]uint64
	entries map[string]*Snapshot
}

// NewSnapshotCache caches snapshots from source for ttl. A zero ttl disables caching.
func NewSnapshotCache(source SaleRecordSource, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		gens:    make(map[string]uint64),
		entries: make(map[string]*Snapshot),
	}
}

// Get returns the cached snapshot for scope, loading a fresh one when it is
// missing or expired. Concurrent loads of the same scope are shared and are not
// cancelled by any single caller's context. A load that overlaps an
// invalidation is returned to its callers but not cached.
func (c *SnapshotCache) Get(ctx context.Context, scope models.SnapshotScope) (*Snapshot, error) {
	key := scope.Key()
	if snap := c.cached(key); snap != nil {
		return snap, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		epoch, gen := c.generation(key)
		records, err := c.source.LoadSaleRecords(loadCtx, scope)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.version++
		snap := &Snapshot{Records: records, Version: c.version, LoadedAt: c.now()}
		if c.epoch != epoch || c.gens[key] != gen {
			log.Printf("[SNAPSHOT] %s was invalidated while loading, not caching version %d", key, snap.Version)
			return snap, nil
		}
		c.entries[key] = snap
		log.Printf("[SNAPSHOT] loaded %d sale records for %s (version %d)", len(records), key, snap.Version)
		return snap, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *SnapshotCache) generation(key string) (uint64, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen, ok := c.gens[key]
	if !ok {
		c.gens[key] = 0
	}
	return c.epoch, gen
}

func (c *SnapshotCache) cached(key string) *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.entries[key]
	if !ok || c.ttl <= 0 || c.now().Sub(snap.LoadedAt) >= c.ttl {
		return nil
	}
	return snap
}

// Invalidate drops the cached snapshot of scope. Later calls to Get start a
// new load instead of joining one already running.
func (c *SnapshotCache) Invalidate(scope models.SnapshotScope) {
	key := scope.Key()
	c.mu.Lock()
	c.gens[key]++
	delete(c.entries, key)
	c.mu.Unlock()
	c.group.Forget(key)
}

// InvalidateAll drops every cached snapshot.
func (c *SnapshotCache) InvalidateAll() {
	c.mu.Lock()
	c.epoch++
	keys := make([]string, 0, len(c.gens))
	for key := range c.gens {
		keys = append(keys, key)
	}
	c.entries = make(map[string]*Snapshot)
	c.mu.Unlock()
	for _, key := range keys {
		c.group.Forget(key)
	}
}
