package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrillsdev/skrills/internal/adapter"
	"github.com/skrillsdev/skrills/internal/adapter/claudeagent"
	"github.com/skrillsdev/skrills/internal/adapter/codexagent"
	"github.com/skrillsdev/skrills/internal/adapter/copilotagent"
)

func writeSkillFile(t *testing.T, root, name, content string) {
	t.Helper()
	skillsDir := filepath.Join(root, "skills")
	require.NoError(t, os.MkdirAll(skillsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillsDir, name+".md"), []byte(content), 0o644))
}

func TestRun_CreatesNewSkillsOnTarget(t *testing.T) {
	srcRoot := t.TempDir()
	writeSkillFile(t, srcRoot, "reviewer", "---\nname: reviewer\ndescription: reviews code\n---\n\nbody\n")

	src := claudeagent.New(srcRoot)
	dst := claudeagent.New(t.TempDir())

	report, err := Run(src, dst, Selection{Skills: true}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 0, report.Updated)

	targetSkills, err := dst.ReadSkills()
	require.NoError(t, err)
	require.Len(t, targetSkills, 1)
	assert.Equal(t, "reviewer", targetSkills[0].Name)
}

func TestRun_SkipsWhenContentHashMatches(t *testing.T) {
	srcRoot := t.TempDir()
	writeSkillFile(t, srcRoot, "reviewer", "---\nname: reviewer\ndescription: reviews code\n---\n\nbody\n")

	src := claudeagent.New(srcRoot)
	dst := claudeagent.New(t.TempDir())

	_, err := Run(src, dst, Selection{Skills: true}, DefaultOptions())
	require.NoError(t, err)

	report, err := Run(src, dst, Selection{Skills: true}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 0, report.Updated)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "hash-equal", report.Skipped[0].Reason)
}

func TestRun_DryRunPlansWithoutWriting(t *testing.T) {
	srcRoot := t.TempDir()
	writeSkillFile(t, srcRoot, "reviewer", "---\nname: reviewer\ndescription: reviews code\n---\n\nbody\n")

	src := claudeagent.New(srcRoot)
	dst := claudeagent.New(t.TempDir())

	opts := DefaultOptions()
	opts.DryRun = true
	report, err := Run(src, dst, Selection{Skills: true}, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	targetSkills, err := dst.ReadSkills()
	require.NoError(t, err)
	assert.Empty(t, targetSkills)
}

func TestRun_SkipsExistingCommandsWhenRequested(t *testing.T) {
	src := claudeagent.New(t.TempDir())
	dst := claudeagent.New(t.TempDir())

	require.NoError(t, dst.WriteCommands([]adapter.Command{{Name: "deploy", Content: []byte("old\n")}}))
	require.NoError(t, src.WriteCommands([]adapter.Command{{Name: "deploy", Content: []byte("new\n")}}))

	opts := DefaultOptions()
	opts.SkipExistingCommands = true
	report, err := Run(src, dst, Selection{Commands: true}, opts)
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "skip-existing-commands", report.Skipped[0].Reason)
}

func TestRun_ConflictSkipLeavesTargetUnchanged(t *testing.T) {
	src := claudeagent.New(t.TempDir())
	dst := claudeagent.New(t.TempDir())

	require.NoError(t, dst.WriteCommands([]adapter.Command{{Name: "deploy", Content: []byte("old\n")}}))
	require.NoError(t, src.WriteCommands([]adapter.Command{{Name: "deploy", Content: []byte("new\n")}}))

	opts := Options{Conflict: ConflictSkip}
	report, err := Run(src, dst, Selection{Commands: true}, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Updated)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "conflict-skip", report.Skipped[0].Reason)
}

func TestSyncAll_ReportsEveryTargetWithoutFailures(t *testing.T) {
	srcRoot := t.TempDir()
	writeSkillFile(t, srcRoot, "reviewer", "---\nname: reviewer\ndescription: reviews code\n---\n\nbody\n")
	src := claudeagent.New(srcRoot)

	targets := []adapter.AgentAdapter{
		codexagent.New(t.TempDir()),
		copilotagent.New(t.TempDir()),
	}

	reports := SyncAll(src, targets, Selection{Skills: true}, DefaultOptions())
	require.Len(t, reports, 2)
	for _, r := range reports {
		assert.Empty(t, r.Failed)
	}
}

func TestSyncMcpServers_FiltersHTTPTransportForStdioOnlyTarget(t *testing.T) {
	src := claudeagent.New(t.TempDir())
	require.NoError(t, src.WriteMcpServers([]adapter.McpServer{
		{Name: "search", Transport: adapter.HTTPTransport{URL: "https://example.test/mcp"}},
	}))

	dst := codexagent.New(t.TempDir())
	report, err := Run(src, dst, Selection{McpServers: true}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "search", report.Skipped[0].Name)

	servers, err := dst.ReadMcpServers()
	require.NoError(t, err)
	assert.Empty(t, servers)
}
