package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNodeID(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		wantID int
		wantOK bool
	}{
		{"valid node URI", "kgtool://graph/nodes/3", 3, true},
		{"zero id", "kgtool://graph/nodes/0", 0, true},
		{"invalid prefix", "file://graph/nodes/3", 0, false},
		{"not a number", "kgtool://graph/nodes/abc", 0, false},
		{"negative", "kgtool://graph/nodes/-1", 0, false},
		{"empty URI", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := extractNodeID(tt.uri)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleGraphResource(t *testing.T) {
	ctx := context.Background()

	t.Run("no graph returns not found", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)

		_, err = server.handleGraphResource(ctx, makeReadResourceRequest("kgtool://graph"))

		require.Error(t, err)
	})

	t.Run("returns node-link JSON", func(t *testing.T) {
		ports := newTestPorts()
		require.NoError(t, ports.GraphStore.Save(ctx, testGraph()))
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleGraphResource(ctx, makeReadResourceRequest("kgtool://graph"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"links"`)
		assert.Contains(t, result.Contents[0].Text, `"title": "Frontend"`)
	})
}

func TestServer_handleNodeResource(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid URI returns not found", func(t *testing.T) {
		ports := newTestPorts()
		require.NoError(t, ports.GraphStore.Save(ctx, testGraph()))
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleNodeResource(ctx, makeReadResourceRequest("kgtool://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("unknown node returns not found", func(t *testing.T) {
		ports := newTestPorts()
		require.NoError(t, ports.GraphStore.Save(ctx, testGraph()))
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleNodeResource(ctx, makeReadResourceRequest("kgtool://graph/nodes/9"))

		require.Error(t, err)
	})

	t.Run("renders node markdown", func(t *testing.T) {
		ports := newTestPorts()
		require.NoError(t, ports.GraphStore.Save(ctx, testGraph()))
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleNodeResource(ctx, makeReadResourceRequest("kgtool://graph/nodes/1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "# Backend\n\n**Tags:** backend\n\n**Keywords:** go\n\n**Keyphrases:** \n\n---\n\nGo services.",
			result.Contents[0].Text)
	})
}
