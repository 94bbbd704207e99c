package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"banctl/internal/admin"
	"banctl/internal/datastore"
	"banctl/internal/directory"
	"banctl/internal/logging"
	"banctl/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, store.ViolationStore) {
	t.Helper()

	db, err := datastore.Open(filepath.Join(t.TempDir(), "banctl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger, _ := logging.NewTestLogger()
	users := directory.NewSQLiteDirectory(db)
	bans := store.NewSQLiteStore(db)

	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &directory.User{ID: "u1", Email: "alice@example.com"}))
	require.NoError(t, bans.Put(ctx, store.Record{
		Namespace: store.NamespaceBans,
		Key:       "u1",
		Reason:    "spam",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	return NewServer(admin.NewService(users, bans, logger), logger), bans
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestUnbanToolClearsBanEntry(t *testing.T) {
	server, bans := newTestServer(t)

	result, err := server.handleUnban(context.Background(),
		toolRequest("unban_user", map[string]any{"email": "alice@example.com"}))

	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		ClearedKey string `json:"cleared_key"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &payload))
	assert.Equal(t, "u1", payload.ClearedKey)

	_, err = bans.Get(context.Background(), store.NamespaceBans, "u1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUnbanToolMissingEmailIsToolError(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleUnban(context.Background(),
		toolRequest("unban_user", map[string]any{}))

	require.NoError(t, err, "domain failures must not become protocol errors")
	assert.True(t, result.IsError)
}

func TestUnbanToolUnknownUserIsToolError(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleUnban(context.Background(),
		toolRequest("unban_user", map[string]any{"email": "nobody@example.com"}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestBanToolWritesRecord(t *testing.T) {
	server, bans := newTestServer(t)
	ctx := context.Background()

	result, err := server.handleBan(ctx, toolRequest("ban_user", map[string]any{
		"email":    "alice@example.com",
		"duration": "30m",
		"reason":   "abuse",
	}))

	require.NoError(t, err)
	require.False(t, result.IsError)

	rec, err := bans.Get(ctx, store.NamespaceBans, "u1")
	require.NoError(t, err)
	assert.Equal(t, "abuse", rec.Reason)
	assert.False(t, rec.Permanent())
}

func TestBanToolRejectsMalformedDuration(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleBan(context.Background(), toolRequest("ban_user", map[string]any{
		"email":    "alice@example.com",
		"duration": "half an hour",
	}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestStatusToolReportsBan(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleStatus(context.Background(),
		toolRequest("ban_status", map[string]any{"email": "alice@example.com"}))

	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Banned bool `json:"banned"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &payload))
	assert.True(t, payload.Banned)
}

func TestListToolReturnsPaginationMetadata(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleList(context.Background(),
		toolRequest("list_bans", map[string]any{"page": 1, "page_size": 10}))

	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Records    []store.Record `json:"records"`
		Pagination struct {
			Page       int `json:"page"`
			PageSize   int `json:"page_size"`
			TotalItems int `json:"total_items"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &payload))
	assert.Len(t, payload.Records, 1)
	assert.Equal(t, 1, payload.Pagination.Page)
	assert.Equal(t, 10, payload.Pagination.PageSize)
	assert.Equal(t, 1, payload.Pagination.TotalItems)
	assert.Equal(t, 1, payload.Pagination.TotalPages)
}

func TestListToolRejectsUnknownNamespace(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleList(context.Background(),
		toolRequest("list_bans", map[string]any{"namespace": "nonsense"}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestNamespacesResource(t *testing.T) {
	server, _ := newTestServer(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "config://violation_namespaces"

	contents, err := server.handleNamespacesResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)

	var namespaces []string
	require.NoError(t, json.Unmarshal([]byte(text.Text), &namespaces))
	assert.Contains(t, namespaces, "bans")
}
