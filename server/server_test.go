package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/trailhead/store"
	"github.com/nathoo/trailhead/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

// failingStore is a store whose backend is down.
type failingStore struct{}

var errDown = errors.New("connection refused")

func (failingStore) Get(context.Context) (types.GameState, error) {
	return types.GameState{}, errDown
}

func (failingStore) Replace(context.Context, types.GameState) (types.GameState, error) {
	return types.GameState{}, errDown
}

func (failingStore) Ping(context.Context) error { return errDown }
func (failingStore) Close() error               { return nil }

func newTestServer(s store.Store) http.Handler {
	return NewMux(s, testLogger())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGame_GetInitialState(t *testing.T) {
	h := newTestServer(store.NewMemoryStore(store.DefaultState()))

	rec := do(t, h, http.MethodGet, "/game", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"player_name":"Adventurer","current_location":"Home"}`, rec.Body.String())
}

func TestGame_PostThenGet(t *testing.T) {
	h := newTestServer(store.NewMemoryStore(store.DefaultState()))
	doc := `{"player_name":"Bob","current_location":"Forest"}`

	rec := do(t, h, http.MethodPost, "/game", doc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, doc, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/game", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, doc, rec.Body.String())
}

func TestGame_PostInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"garbage", "not json"},
		{"empty", ""},
		{"truncated", `{"player_name":"Bob"`},
		{"wrong type", `{"player_name":42,"current_location":"Forest"}`},
		{"missing field", `{"player_name":"Bob"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore(store.DefaultState())
			h := newTestServer(s)

			rec := do(t, h, http.MethodPost, "/game", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Invalid JSON in request body"}`, rec.Body.String())

			got, err := s.Get(context.Background())
			require.NoError(t, err)
			assert.Equal(t, store.DefaultState(), got, "state must be untouched")
		})
	}
}

func TestGame_MethodNotAllowed(t *testing.T) {
	h := newTestServer(store.NewMemoryStore(store.DefaultState()))

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		rec := do(t, h, method, "/game", "")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "Method not allowed")
	}
}

func TestGame_StoreFailure(t *testing.T) {
	h := newTestServer(failingStore{})

	rec := do(t, h, http.MethodGet, "/game", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, h, http.MethodPost, "/game", `{"player_name":"Bob","current_location":"Forest"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIndex(t *testing.T) {
	h := newTestServer(store.NewMemoryStore(store.DefaultState()))

	rec := do(t, h, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<title>Trailhead</title>")
}

func TestIndex_MethodNotAllowed(t *testing.T) {
	h := newTestServer(store.NewMemoryStore(store.DefaultState()))

	rec := do(t, h, http.MethodPost, "/", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnknownPath(t *testing.T) {
	h := newTestServer(store.NewMemoryStore(store.DefaultState()))

	rec := do(t, h, http.MethodGet, "/nowhere", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name           string
		store          store.Store
		expectedStatus int
		expectedHealth string
		expectedStore  string
	}{
		{
			name:           "healthy",
			store:          store.NewMemoryStore(store.DefaultState()),
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedStore:  "healthy",
		},
		{
			name:           "store down",
			store:          failingStore{},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "degraded",
			expectedStore:  "unhealthy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(tt.store), http.MethodGet, "/health", "")

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedHealth, resp.Status)
			assert.Equal(t, tt.expectedStore, resp.Components["store"])
			assert.Equal(t, "trailhead-state", resp.Service)
		})
	}
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	h := newTestServer(store.NewMemoryStore(store.DefaultState()))

	rec := do(t, h, http.MethodGet, "/game", "")

	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "request ID %q should be a UUID", id)
}

func TestRequestLogger_KeepsClientRequestID(t *testing.T) {
	h := newTestServer(store.NewMemoryStore(store.DefaultState()))

	req := httptest.NewRequest(http.MethodGet, "/game", nil)
	req.Header.Set(RequestIDHeader, "client-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "client-42", rec.Header().Get(RequestIDHeader))
}

func TestRequestLogger_LogsStatus(t *testing.T) {
	var buf strings.Builder
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := NewMux(store.NewMemoryStore(store.DefaultState()), log)

	do(t, h, http.MethodDelete, "/game", "")

	out := buf.String()
	assert.Contains(t, out, "method=DELETE")
	assert.Contains(t, out, "path=/game")
	assert.Contains(t, out, "status=405")
	assert.Contains(t, out, "request_id=")
}

func TestGame_StoreFailureLogsError(t *testing.T) {
	var buf strings.Builder
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := NewMux(failingStore{}, log)

	do(t, h, http.MethodGet, "/game", "")

	out := buf.String()
	assert.Contains(t, out, `msg="Failed to read game state"`)
	assert.Contains(t, out, `error="connection refused"`)
	assert.Contains(t, out, "request_id=")
}
