package snapshotcache

import (
	"sync"
	"time"

	"github.com/skrillsdev/skrills/internal/skillindex"
)

// RebuildFunc performs a full rescan of every configured root and returns
// the records that make up a fresh snapshot.
type RebuildFunc func() ([]skillindex.SkillMeta, []RootFingerprint, error)

// Cache serves a Snapshot bounded by a TTL, rebuilding on demand with a
// single-flight guard.
type Cache struct {
	ttl     time.Duration
	rebuild RebuildFunc
	seed    *Seed

	mu       sync.Mutex
	current  *Snapshot
	pending  chan struct{} // non-nil while a rebuild is in flight
	dirty    bool          // watch-driven invalidation flag
}

// New constructs a Cache with the given TTL and rebuild function. If seed is
// non-nil, its persisted snapshot is loaded on first Get.
func New(ttl time.Duration, rebuild RebuildFunc, seed *Seed) *Cache {
	return &Cache{ttl: ttl, rebuild: rebuild, seed: seed}
}

// Get returns the current snapshot, rebuilding first if it is absent, stale,
// or has been marked dirty by Refresh or MarkDirty.
func (c *Cache) Get() (*Snapshot, error) {
	c.mu.Lock()
	if c.current == nil && c.seed != nil {
		if s, ok := c.seed.Load(); ok {
			c.current = s
		}
	}

	fresh := c.current != nil && !c.dirty && time.Since(c.current.TakenAt) <= c.ttl
	if fresh {
		snap := c.current
		c.mu.Unlock()
		return snap, nil
	}

	if c.pending != nil {
		wait := c.pending
		c.mu.Unlock()
		<-wait
		c.mu.Lock()
		snap := c.current
		c.mu.Unlock()
		return snap, nil
	}

	done := make(chan struct{})
	c.pending = done
	c.mu.Unlock()

	skills, roots, err := c.rebuild()

	c.mu.Lock()
	defer func() {
		close(done)
		c.mu.Unlock()
	}()
	c.pending = nil

	if err != nil {
		return c.current, err
	}

	// A rebuild yielding zero skills when a previous non-empty snapshot
	// exists keeps the previous snapshot rather than replacing it — a
	// transient discovery failure should never blank out a warm cache.
	if len(skills) == 0 && !c.current.Empty() {
		c.dirty = false
		return c.current, nil
	}

	snap := &Snapshot{TakenAt: time.Now(), Roots: roots, Skills: skills}
	buildIndexes(snap)
	c.current = snap
	c.dirty = false

	if c.seed != nil {
		_ = c.seed.Save(snap) // best-effort; a failed seed write never fails Get
	}

	return snap, nil
}

// Refresh forces the next Get to rebuild, regardless of TTL.
func (c *Cache) Refresh() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

// MarkDirty is the watch-driven invalidation entry point (watch.go); it
// collapses any number of filesystem events into a single pending flag.
func (c *Cache) MarkDirty() {
	c.Refresh()
}
