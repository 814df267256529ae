package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grinfi/grinfi-mcp/internal/grinfi"
)

// fakeUpstream is a recording Grinfi API stub: it captures the last request
// and answers with a canned status and payload.
type fakeUpstream struct {
	status  int
	payload string

	method string
	path   string
	query  url.Values
	body   []byte
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.method = r.Method
	f.path = r.URL.Path
	f.query = r.URL.Query()
	f.body, _ = io.ReadAll(r.Body)
	if f.status == 0 {
		f.status = http.StatusOK
	}
	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.payload))
}

// newToolServer wires a Server to the fake upstream.
func newToolServer(t *testing.T, up *fakeUpstream) *Server {
	t.Helper()
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)
	crm, err := grinfi.New("test-token",
		grinfi.WithBaseURL(srv.URL),
		grinfi.WithLimiter(grinfi.NewLimiter(grinfi.TierBoost, 1000, 0)),
	)
	require.NoError(t, err)
	return New(crm)
}

// resJSON decodes the text payload of a tool result as JSON.
func resJSON(t *testing.T, res *mcplib.CallToolResult) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(resText(t, res)), &m))
	return m
}

// ─── contacts ─────────────────────────────────────────────────────────────────

func TestHandleSearchContacts(t *testing.T) {
	up := &fakeUpstream{payload: `{"data":[{"uuid":"u1","name":"Ann","linkedin":"ann-doe"}],"total":1}`}
	s := newToolServer(t, up)

	res, err := s.handleSearchContacts(context.Background(), toolReq(map[string]any{
		"search":   "ann",
		"list_id":  "l1",
		"per_page": float64(10),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, http.MethodGet, up.method)
	assert.Equal(t, "/api/v1/leads", up.path)
	assert.Equal(t, "ann", up.query.Get("filter[q]"))
	assert.Equal(t, "l1", up.query.Get("filter[list_id]"))
	assert.Equal(t, "10", up.query.Get("per_page"))

	out := resJSON(t, res)
	assert.Equal(t, float64(1), out["total"])
	contact := out["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "https://app.grinfi.io/crm/contacts/u1", contact["_grinfi_contact_url"])
	assert.Equal(t, "https://www.linkedin.com/in/ann-doe", contact["_linkedin_url"])
}

func TestHandleGetContact(t *testing.T) {
	up := &fakeUpstream{payload: `{"uuid":"u1","name":"Ann","tags":["warm"]}`}
	s := newToolServer(t, up)

	res, err := s.handleGetContact(context.Background(), toolReq(map[string]any{"uuid": "u1"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "/api/v1/leads/u1", up.path)

	out := resJSON(t, res)
	assert.Equal(t, "Ann", out["name"])
	assert.Equal(t, "https://app.grinfi.io/crm/contacts/u1", out["_grinfi_contact_url"])
}

func TestHandleGetContact_missingUUID(t *testing.T) {
	s := newToolServer(t, &fakeUpstream{})
	res, err := s.handleGetContact(context.Background(), toolReq(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resText(t, res), "uuid is required")
}

func TestHandleCreateContact(t *testing.T) {
	up := &fakeUpstream{payload: `{"uuid":"new-1","name":"Ann"}`}
	s := newToolServer(t, up)

	res, err := s.handleCreateContact(context.Background(), toolReq(map[string]any{
		"name":    "Ann",
		"email":   "ann@example.com",
		"list_id": "l1",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, http.MethodPost, up.method)
	assert.Equal(t, "/api/v1/leads", up.path)
	// Unset optional fields must be omitted from the body.
	assert.JSONEq(t, `{"name":"Ann","email":"ann@example.com","list_id":"l1"}`, string(up.body))
}

func TestHandleCreateContact_requiresNameOrEmail(t *testing.T) {
	s := newToolServer(t, &fakeUpstream{})
	res, err := s.handleCreateContact(context.Background(), toolReq(map[string]any{
		"company": "Acme",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resText(t, res), "name or email is required")
}

func TestHandleUpdateContact(t *testing.T) {
	up := &fakeUpstream{payload: `{"uuid":"u1","position":"CTO"}`}
	s := newToolServer(t, up)

	res, err := s.handleUpdateContact(context.Background(), toolReq(map[string]any{
		"uuid":     "u1",
		"position": "CTO",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, http.MethodPatch, up.method)
	assert.Equal(t, "/api/v1/leads/u1", up.path)
	assert.JSONEq(t, `{"position":"CTO"}`, string(up.body))
}

func TestHandleDeleteContact_noContent(t *testing.T) {
	up := &fakeUpstream{status: http.StatusNoContent}
	s := newToolServer(t, up)

	res, err := s.handleDeleteContact(context.Background(), toolReq(map[string]any{"uuid": "u1"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, http.MethodDelete, up.method)
	assert.Equal(t, "/api/v1/leads/u1", up.path)

	out := resJSON(t, res)
	assert.Equal(t, true, out["success"])
}

func TestHandleAddTagsToContact(t *testing.T) {
	up := &fakeUpstream{payload: `{"tags":["warm","q3"]}`}
	s := newToolServer(t, up)

	res, err := s.handleAddTagsToContact(context.Background(), toolReq(map[string]any{
		"uuid": "u1",
		"tags": []any{"warm", "q3"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "/api/v1/leads/u1/tags", up.path)
	assert.JSONEq(t, `{"tags":["warm","q3"]}`, string(up.body))
}

func TestHandleAddTagsToContact_emptyTags(t *testing.T) {
	s := newToolServer(t, &fakeUpstream{})
	res, err := s.handleAddTagsToContact(context.Background(), toolReq(map[string]any{
		"uuid": "u1",
		"tags": []any{},
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resText(t, res), "tags is required")
}

func TestHandleMoveContactToStage(t *testing.T) {
	up := &fakeUpstream{payload: `{"uuid":"u1","stage_id":"st-2"}`}
	s := newToolServer(t, up)

	res, err := s.handleMoveContactToStage(context.Background(), toolReq(map[string]any{
		"uuid":     "u1",
		"stage_id": "st-2",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, http.MethodPut, up.method)
	assert.Equal(t, "/api/v1/leads/u1/stage", up.path)
	assert.JSONEq(t, `{"stage_id":"st-2"}`, string(up.body))
}

// ─── lists ────────────────────────────────────────────────────────────────────

func TestHandleAddContactsToList(t *testing.T) {
	up := &fakeUpstream{payload: `{"added":2}`}
	s := newToolServer(t, up)

	res, err := s.handleAddContactsToList(context.Background(), toolReq(map[string]any{
		"list_id":    "l1",
		"lead_uuids": []any{"u1", "u2"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, http.MethodPost, up.method)
	assert.Equal(t, "/api/v1/lists/l1/leads", up.path)
	assert.JSONEq(t, `{"lead_uuids":["u1","u2"]}`, string(up.body))
}

func TestHandleRemoveContactsFromList(t *testing.T) {
	up := &fakeUpstream{payload: `{"removed":1}`}
	s := newToolServer(t, up)

	res, err := s.handleRemoveContactsFromList(context.Background(), toolReq(map[string]any{
		"list_id":    "l1",
		"lead_uuids": []any{"u1"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, http.MethodDelete, up.method)
	assert.Equal(t, "/api/v1/lists/l1/leads", up.path)
	assert.JSONEq(t, `{"lead_uuids":["u1"]}`, string(up.body))
}

// ─── unibox ───────────────────────────────────────────────────────────────────

func TestHandleSendMessage(t *testing.T) {
	up := &fakeUpstream{payload: `{"id":"m1","status":"queued"}`}
	s := newToolServer(t, up)

	res, err := s.handleSendMessage(context.Background(), toolReq(map[string]any{
		"lead_uuid":         "u1",
		"sender_profile_id": "sp1",
		"text":              "hello there",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, http.MethodPost, up.method)
	assert.Equal(t, "/api/v1/unibox/messages", up.path)
	// channel and subject were not provided and must not be in the body.
	assert.JSONEq(t, `{"lead_uuid":"u1","sender_profile_id":"sp1","text":"hello there"}`, string(up.body))
}

func TestHandleSendMessage_missingText(t *testing.T) {
	s := newToolServer(t, &fakeUpstream{})
	res, err := s.handleSendMessage(context.Background(), toolReq(map[string]any{
		"lead_uuid":         "u1",
		"sender_profile_id": "sp1",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resText(t, res), "text is required")
}

func TestHandleGetUnreadConversations_empty(t *testing.T) {
	up := &fakeUpstream{payload: `{"data":[],"total":0}`}
	s := newToolServer(t, up)

	res, err := s.handleGetUnreadConversations(context.Background(), toolReq(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := resJSON(t, res)
	assert.Equal(t, float64(0), out["total_unread"])
	assert.NotEmpty(t, out["note"])
}

// ─── account ──────────────────────────────────────────────────────────────────

func TestHandleGetSenderProfiles(t *testing.T) {
	up := &fakeUpstream{payload: `{"data":[{"id":"sp1","provider":"linkedin"}]}`}
	s := newToolServer(t, up)

	res, err := s.handleGetSenderProfiles(context.Background(), toolReq(map[string]any{
		"provider": "linkedin",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "/api/v1/senders", up.path)
	assert.Equal(t, "linkedin", up.query.Get("filter[provider]"))
}

func TestHandleCreateWebhook(t *testing.T) {
	up := &fakeUpstream{payload: `{"id":"wh1"}`}
	s := newToolServer(t, up)

	res, err := s.handleCreateWebhook(context.Background(), toolReq(map[string]any{
		"url":    "https://example.com/hook",
		"events": []any{"lead.replied"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "/api/v1/webhooks", up.path)
	assert.JSONEq(t, `{"url":"https://example.com/hook","events":["lead.replied"]}`, string(up.body))
}

// ─── error propagation ────────────────────────────────────────────────────────

func TestHandlers_upstreamErrorSurfaced(t *testing.T) {
	up := &fakeUpstream{status: http.StatusNotFound, payload: `{"error":"lead not found"}`}
	s := newToolServer(t, up)

	res, err := s.handleGetContact(context.Background(), toolReq(map[string]any{"uuid": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	text := resText(t, res)
	assert.Contains(t, text, "get_contact")
	assert.Contains(t, text, "404")
	assert.Contains(t, text, "lead not found")
}
