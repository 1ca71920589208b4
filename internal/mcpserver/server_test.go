package mcpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/format"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/logger"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/raindrop"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/tools"
)

func connect(t *testing.T) (*mcp.ClientSession, *atomic.Int32) {
	t.Helper()
	calls := new(atomic.Int32)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/v1/tags":
			_, _ = io.WriteString(w, `{"result":true,"items":[{"_id":"golang","count":3}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":false,"errorMessage":"not found"}`)
		}
	}))
	t.Cleanup(api.Close)

	client := raindrop.New(api.URL+"/rest/v1", raindrop.StaticToken("t"), api.Client())
	d := tools.NewDispatcher(tools.NewCatalog(), client, format.New(time.UTC), logger.Nop())
	srv := New(d, "test", logger.Nop())

	ctx := context.Background()
	serverT, clientT := mcp.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverT)
	assert.NilError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	c := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	cs, err := c.Connect(ctx, clientT, nil)
	assert.NilError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs, calls
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	assert.Assert(t, is.Len(res.Content, 1))
	tc, ok := res.Content[0].(*mcp.TextContent)
	assert.Assert(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func TestListTools(t *testing.T) {
	cs, _ := connect(t)

	res, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	assert.NilError(t, err)
	assert.Assert(t, is.Len(res.Tools, 16))

	// the SDK lists tools by name, not in catalog order
	var got []string
	for _, tool := range res.Tools {
		got = append(got, tool.Name)
		assert.Assert(t, tool.InputSchema != nil, tool.Name)
		assert.Assert(t, tool.Description != "", tool.Name)
	}
	var want []string
	for _, desc := range tools.NewCatalog().Tools() {
		want = append(want, desc.Name)
	}
	sort.Strings(got)
	sort.Strings(want)
	assert.DeepEqual(t, got, want)
}

func TestCallTool(t *testing.T) {
	cs, calls := connect(t)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list-tags",
		Arguments: map[string]any{},
	})
	assert.NilError(t, err)
	assert.Assert(t, !res.IsError)
	assert.Equal(t, text(t, res), "Found 1 tags:\n\nTag: golang\nCount: 3 bookmarks\n---")
	assert.Equal(t, calls.Load(), int32(1))
}

func TestCallToolErrorsStayInBand(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		want     string
		apiCalls int32
	}{
		{
			name: "validation",
			tool: "merge-tags",
			args: map[string]any{"tags": []string{"go"}, "newName": "golang"},
			want: "Invalid arguments: tags:",
		},
		{
			name:     "remote",
			tool:     "get-collection",
			args:     map[string]any{"collectionId": 7},
			want:     "Raindrop API error: Not Found",
			apiCalls: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, calls := connect(t)
			res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: tt.tool, Arguments: tt.args})
			assert.NilError(t, err)
			assert.Assert(t, res.IsError)
			assert.Assert(t, is.Contains(text(t, res), tt.want))
			assert.Equal(t, calls.Load(), tt.apiCalls)
		})
	}
}
