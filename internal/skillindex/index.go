package skillindex

import (
	"github.com/skrillsdev/skrills/internal/skillsource"
)

// Build discovers, ranks, and pins skills across every root, producing the
// ordered record list a Snapshot is built from. Per-root discovery errors
// that are not "directory missing" are returned immediately; frontmatter
// parse errors are already collected onto individual records by Walk.
func Build(roots []Root, priority []skillsource.Source, pinned map[string]bool) ([]SkillMeta, error) {
	var all []SkillMeta
	for _, root := range roots {
		metas, err := Walk(root)
		if err != nil {
			return nil, err
		}
		all = append(all, metas...)
	}

	all = Rank(all, priority)

	for i := range all {
		all[i].Pinned = pinned[all[i].Name]
	}

	return all, nil
}
