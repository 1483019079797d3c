package skillindex

import (
	"sort"

	"github.com/skrillsdev/skrills/internal/skillsource"
)

// Rank assigns an ascending PriorityRank to each record in metas by
// (source_rank, relative_path), breaking remaining ties by source_path, per
// so PriorityRank strictly orders every record, even across equal source ranks.
// metas is sorted in place and returned for convenience.
func Rank(metas []SkillMeta, priority []skillsource.Source) []SkillMeta {
	sort.SliceStable(metas, func(i, j int) bool {
		ri := skillsource.Rank(metas[i].Source, priority)
		rj := skillsource.Rank(metas[j].Source, priority)
		if ri != rj {
			return ri < rj
		}
		if metas[i].RelativePath != metas[j].RelativePath {
			return metas[i].RelativePath < metas[j].RelativePath
		}
		return metas[i].SourcePath < metas[j].SourcePath
	})

	for i := range metas {
		metas[i].PriorityRank = i
	}
	return metas
}
