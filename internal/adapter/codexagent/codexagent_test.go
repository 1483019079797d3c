package codexagent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrillsdev/skrills/internal/adapter"
)

func TestReadWriteMcpServers_RoundTripsThroughConfigToml(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.toml"), []byte("model = \"gpt-5-codex\"\n"), 0o644))

	a := New(root)
	err := a.WriteMcpServers([]adapter.McpServer{
		{Name: "fs", Transport: adapter.StdioTransport{Command: "mcp-fs", Args: []string{"--root", "."}}},
	})
	require.NoError(t, err)

	prefs, err := a.ReadPreferences()
	require.NoError(t, err)
	require.NotNil(t, prefs.Model)
	assert.Equal(t, "gpt-5-codex", *prefs.Model)

	servers, err := a.ReadMcpServers()
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "fs", servers[0].Name)
	stdio, ok := servers[0].Transport.(adapter.StdioTransport)
	require.True(t, ok)
	assert.Equal(t, "mcp-fs", stdio.Command)
}

func TestWriteCommands_WritesUnderPromptsDir(t *testing.T) {
	root := t.TempDir()
	a := New(root)

	err := a.WriteCommands([]adapter.Command{{Name: "ship-it", Content: []byte("do the thing\n")}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "prompts", "ship-it.md"))
	require.NoError(t, err)
	assert.Equal(t, "do the thing\n", string(data))
}
