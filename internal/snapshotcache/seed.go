package snapshotcache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/skrillsdev/skrills/internal/skrillserr"
)

// Seed persists a Snapshot to disk so a cold start can serve a stale-but-
// present view before its first rebuild completes. Grounded on the
// teacher's Cache.Write atomic-directory-plus-marshal idiom
// (HartBrook-staghorn/internal/cache/cache.go), generalized to whole-
// snapshot JSON and an atomic rename.
type Seed struct {
	Path string
}

// NewSeed returns a Seed rooted at path (typically skills-cache.json,
// overridable via SKRILLS_CACHE_PATH).
func NewSeed(path string) *Seed {
	return &Seed{Path: path}
}

// Load reads a previously persisted snapshot. A missing or corrupt seed is
// not an error to the caller: corruption degrades to a cold start
// (CodeSnapshotCorrupt, "treated as cold start").
func (s *Seed) Load() (*Snapshot, bool) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		_ = skrillserr.SnapshotCorrupt(err)
		return nil, false
	}

	buildIndexes(&snap)
	return &snap, true
}

// Save atomically persists snap to disk (temp file + rename).
func (s *Seed) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to marshal snapshot seed", "", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to create cache directory", "", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-cache-*")
	if err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to create temp seed file", "", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to write snapshot seed", "", err)
	}
	if err := tmp.Close(); err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to close temp seed file", "", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		return skrillserr.Wrap(skrillserr.CodeIO, "failed to publish snapshot seed", "", err)
	}
	return nil
}

// DefaultPath resolves the seed path: SKRILLS_CACHE_PATH when set, else
// <home>/skills-cache.json.
func DefaultPath(home string) string {
	if p := os.Getenv("SKRILLS_CACHE_PATH"); p != "" {
		return p
	}
	return filepath.Join(home, "skills-cache.json")
}
