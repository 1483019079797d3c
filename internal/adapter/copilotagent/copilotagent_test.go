package copilotagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrillsdev/skrills/internal/adapter"
)

func TestReadWriteCommands_AlwaysUnsupported(t *testing.T) {
	a := New(t.TempDir())

	_, err := a.ReadCommands()
	assert.Error(t, err)

	err = a.WriteCommands([]adapter.Command{{Name: "x"}})
	assert.Error(t, err)
}

func TestWriteMcpServers_RoundTripsThroughMcpConfigJSON(t *testing.T) {
	a := New(t.TempDir())

	err := a.WriteMcpServers([]adapter.McpServer{
		{Name: "search", Transport: adapter.HTTPTransport{URL: "https://example.test/mcp"}},
	})
	require.NoError(t, err)

	servers, err := a.ReadMcpServers()
	require.NoError(t, err)
	require.Len(t, servers, 1)
	http, ok := servers[0].Transport.(adapter.HTTPTransport)
	require.True(t, ok)
	assert.Equal(t, "https://example.test/mcp", http.URL)
}
