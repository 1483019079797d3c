package claudeagent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrillsdev/skrills/internal/adapter"
	"github.com/skrillsdev/skrills/internal/skillindex"
)

func TestReadWriteMcpServers_PreservesOtherSettingsKeys(t *testing.T) {
	root := t.TempDir()
	settingsPath := filepath.Join(root, "settings.json")
	require.NoError(t, os.WriteFile(settingsPath, []byte(`{"theme":"dark"}`), 0o644))

	a := New(root)
	err := a.WriteMcpServers([]adapter.McpServer{
		{Name: "search", Transport: adapter.StdioTransport{Command: "mcp-search"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(settingsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme"`)
	assert.Contains(t, string(data), `"mcpServers"`)

	servers, err := a.ReadMcpServers()
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "search", servers[0].Name)
}

func TestWritePreferences_SetsModelAndKeepsExtras(t *testing.T) {
	root := t.TempDir()
	a := New(root)

	model := "claude-sonnet"
	err := a.WritePreferences(adapter.Preferences{Model: &model, Extras: map[string]any{"theme": "dark"}})
	require.NoError(t, err)

	prefs, err := a.ReadPreferences()
	require.NoError(t, err)
	require.NotNil(t, prefs.Model)
	assert.Equal(t, model, *prefs.Model)
	assert.Equal(t, "dark", prefs.Extras["theme"])
}

func TestWriteSkills_SanitizesNameAndWritesUnderSkillsDir(t *testing.T) {
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "source.md")
	require.NoError(t, os.WriteFile(srcPath, []byte("---\nname: reviewer\n---\n\nbody\n"), 0o644))

	root := t.TempDir()
	a := New(root)

	err := a.WriteSkills([]skillindex.SkillMeta{{Name: "reviewer", SourcePath: srcPath}})
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(root, "skills", "reviewer.md"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "body")
}
