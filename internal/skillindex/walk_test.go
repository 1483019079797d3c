package skillindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrillsdev/skrills/internal/skillsource"
)

func writeSkill(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestWalk_StrictSource(t *testing.T) {
	base := t.TempDir()
	skillDir := filepath.Join(base, "skills", "reviewer")
	writeSkill(t, skillDir, "SKILL.md", "---\nname: reviewer\ndescription: reviews code\n---\n\nDo the review.\n")

	// non-SKILL.md file in a strict root must be ignored.
	writeSkill(t, skillDir, "NOTES.md", "# not a skill\n")

	metas, err := Walk(Root{Source: skillsource.Codex, Dir: base})
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "reviewer", metas[0].Name)
	assert.Equal(t, "reviews code", metas[0].Description)
	assert.Contains(t, metas[0].ContentHash, "sha256:")
}

func TestWalk_PermissiveSource(t *testing.T) {
	base := t.TempDir()
	skillDir := filepath.Join(base, "skills")
	writeSkill(t, skillDir, "triage.md", "---\nname: triage\ndescription: triages bugs\n---\n\nBody.\n")

	metas, err := Walk(Root{Source: skillsource.Claude, Dir: base})
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "triage", metas[0].Name)
}

func TestWalk_DerivesNameFromStemWhenFrontmatterOmitsIt(t *testing.T) {
	base := t.TempDir()
	skillDir := filepath.Join(base, "skills")
	writeSkill(t, skillDir, "anonymous.md", "no frontmatter here\n")

	metas, err := Walk(Root{Source: skillsource.Claude, Dir: base})
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "anonymous", metas[0].Name)
	assert.NoError(t, metas[0].Diagnostic)
}

func TestWalk_SkipsHiddenEntries(t *testing.T) {
	base := t.TempDir()
	skillDir := filepath.Join(base, "skills")
	writeSkill(t, filepath.Join(skillDir, ".hidden"), "SKILL.md", "---\nname: hidden\n---\n")

	metas, err := Walk(Root{Source: skillsource.Codex, Dir: base})
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestWalk_MissingRootIsNotAnError(t *testing.T) {
	metas, err := Walk(Root{Source: skillsource.Codex, Dir: filepath.Join(t.TempDir(), "absent")})
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestRank_OrdersBySourceThenRelativePath(t *testing.T) {
	metas := []SkillMeta{
		{Name: "b", Source: skillsource.Claude, RelativePath: "b.md", SourcePath: "/claude/b.md"},
		{Name: "a", Source: skillsource.Codex, RelativePath: "a/SKILL.md", SourcePath: "/codex/a/SKILL.md"},
		{Name: "z", Source: skillsource.Codex, RelativePath: "z/SKILL.md", SourcePath: "/codex/z/SKILL.md"},
	}

	ranked := Rank(metas, skillsource.DefaultPriority)

	assert.Equal(t, "a", ranked[0].Name)
	assert.Equal(t, 0, ranked[0].PriorityRank)
	assert.Equal(t, "z", ranked[1].Name)
	assert.Equal(t, "b", ranked[2].Name)
}

func TestBuild_AppliesPins(t *testing.T) {
	base := t.TempDir()
	skillDir := filepath.Join(base, "skills", "reviewer")
	writeSkill(t, skillDir, "SKILL.md", "---\nname: reviewer\n---\n")

	roots := []Root{{Source: skillsource.Codex, Dir: base}}
	metas, err := Build(roots, skillsource.DefaultPriority, map[string]bool{"reviewer": true})
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.True(t, metas[0].Pinned)
}
