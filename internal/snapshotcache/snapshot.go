// Package snapshotcache provides a TTL-bounded, watch-invalidated view over
// the skill index, rebuilding at most once at a time under load. Grounded
// on the teacher's cache.Cache directory-backed read/write idiom
// (HartBrook-staghorn/internal/cache/cache.go), generalized from a
// per-repo content cache to a single in-memory snapshot of the whole index.
package snapshotcache

import (
	"time"

	"github.com/skrillsdev/skrills/internal/skillindex"
)

// RootFingerprint records a root's directory and the source tag it was
// scanned under, for cold-start seed verification.
type RootFingerprint struct {
	Source string `json:"source"`
	Dir    string `json:"dir"`
}

// Snapshot is an immutable, point-in-time view of the discovered skill set.
// New snapshots are never mutated in place — only replaced wholesale.
type Snapshot struct {
	TakenAt time.Time                `json:"taken_at"`
	Roots   []RootFingerprint        `json:"roots"`
	Skills  []skillindex.SkillMeta   `json:"skills"`
	ByName  map[string][]int         `json:"-"`
	ByHash  map[string][]int         `json:"-"`
}

// Empty reports whether the snapshot carries no skills.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Skills) == 0
}

// buildIndexes populates ByName/ByHash from Skills.
func buildIndexes(s *Snapshot) {
	s.ByName = make(map[string][]int, len(s.Skills))
	s.ByHash = make(map[string][]int, len(s.Skills))
	for i, m := range s.Skills {
		s.ByName[m.Name] = append(s.ByName[m.Name], i)
		s.ByHash[m.ContentHash] = append(s.ByHash[m.ContentHash], i)
	}
}

// Best returns the highest-priority (lowest PriorityRank) record for name,
// or false if name isn't present.
func (s *Snapshot) Best(name string) (skillindex.SkillMeta, bool) {
	idxs, ok := s.ByName[name]
	if !ok || len(idxs) == 0 {
		return skillindex.SkillMeta{}, false
	}
	best := s.Skills[idxs[0]]
	for _, i := range idxs[1:] {
		if s.Skills[i].PriorityRank < best.PriorityRank {
			best = s.Skills[i]
		}
	}
	return best, true
}
