package validator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrillsdev/skrills/internal/skillindex"
)

func TestCheck_StrictTargetRequiresNameAndDescription(t *testing.T) {
	issues := Check(skillindex.SkillMeta{}, TargetCodex)
	kinds := kindsOf(issues)
	assert.Contains(t, kinds, KindMissingName)
	assert.Contains(t, kinds, KindMissingDescription)
}

func TestCheck_PermissiveTargetAllowsMissingFields(t *testing.T) {
	issues := Check(skillindex.SkillMeta{}, TargetClaude)
	assert.Empty(t, issues)
}

func TestCheck_NameAndDescriptionTooLong(t *testing.T) {
	meta := skillindex.SkillMeta{
		Name:        string(make([]byte, 101)),
		Description: string(make([]byte, 501)),
	}
	issues := Check(meta, TargetClaude)
	kinds := kindsOf(issues)
	assert.Contains(t, kinds, KindNameTooLong)
	assert.Contains(t, kinds, KindDescriptionTooLong)
}

func TestCheck_CopilotContentTooLarge(t *testing.T) {
	meta := skillindex.SkillMeta{Name: "a", Description: "b", ByteLen: 40_000}
	issues := Check(meta, TargetCopilot)
	require.Len(t, issues, 1)
	assert.Equal(t, KindContentTooLarge, issues[0].Kind)
	assert.Equal(t, LevelWarning, issues[0].Level)
}

func TestCheck_DiagnosticShortCircuitsOtherRules(t *testing.T) {
	meta := skillindex.SkillMeta{Diagnostic: assert.AnError}
	issues := Check(meta, TargetCodex)
	require.Len(t, issues, 1)
	assert.Equal(t, KindInvalidFrontmatter, issues[0].Kind)
}

func TestAutofix_SynthesizesMissingFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviewer.md")
	require.NoError(t, os.WriteFile(path, []byte("This explains what the skill does.\n\nMore body text.\n"), 0o644))

	fixed, err := Autofix(path, nil, FixOptions{})
	require.NoError(t, err)
	assert.Contains(t, fixed, KindMissingName)
	assert.Contains(t, fixed, KindMissingDescription)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("---\n")))
	assert.Contains(t, string(out), "name: reviewer")
	assert.Contains(t, string(out), "This explains what the skill does.")
}

func TestAutofix_BackupWritesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviewer.md")
	original := "---\nname: reviewer\n---\n\nbody\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	issues := []Issue{{Kind: KindMissingDescription, Level: LevelError}}
	_, err := Autofix(path, issues, FixOptions{Backup: true})
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))
}

func TestTruncate_AppendsEllipsisOnlyWhenShortened(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
}

func kindsOf(issues []Issue) []Kind {
	out := make([]Kind, len(issues))
	for i, iss := range issues {
		out[i] = iss.Kind
	}
	return out
}
