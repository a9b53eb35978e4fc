package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pondevelopment/harkje/pkg/chart"
	"github.com/pondevelopment/harkje/pkg/pipeline"
	"github.com/pondevelopment/harkje/pkg/store"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	snaps map[string]store.Snapshot
}

func newMemStore() *memStore {
	return &memStore{snaps: make(map[string]store.Snapshot)}
}

func (m *memStore) Save(_ context.Context, snap store.Snapshot) error {
	m.snaps[snap.ID] = snap
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (store.Snapshot, error) {
	snap, ok := m.snaps[id]
	if !ok {
		return store.Snapshot{}, store.ErrNotFound
	}
	return snap, nil
}

func (m *memStore) List(_ context.Context) ([]store.Snapshot, error) {
	out := make([]store.Snapshot, 0, len(m.snaps))
	for _, snap := range m.snaps {
		out = append(out, snap)
	}
	return out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.snaps[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.snaps, id)
	return nil
}

func newTestServer(opts ...Option) *Server {
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	return New(runner, opts...)
}

func validChartJSON() string {
	return `{"records":[
		{"id":"ceo","name":"Eva","title":"CEO","department":"Executive"},
		{"id":"cto","parent_id":"ceo","name":"Tom","department":"Engineering"},
		{"id":"cfo","parent_id":"ceo","name":"Fien","department":"Finance"}
	]}`
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a generated X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "trace-42" {
		t.Errorf("X-Request-ID = %q, want trace-42", got)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	body := `{"chart":` + validChartJSON() + `,"options":{"aspect_ratio":1.6}}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/api/layout", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	l, err := chart.UnmarshalLayout(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("response should be a valid layout: %v", err)
	}
	if len(l.Cards) != 3 {
		t.Errorf("cards = %d, want 3", len(l.Cards))
	}
	if l.AspectRatio != 1.6 {
		t.Errorf("aspect ratio = %v, want 1.6", l.AspectRatio)
	}
}

func TestLayoutEndpointInvalidHierarchy(t *testing.T) {
	body := `{"chart":{"records":[{"id":"a","parent_id":"ghost"}]}}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/api/layout", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body should be JSON: %v", err)
	}
	if resp.Error.Code != "INVALID_HIERARCHY" {
		t.Errorf("error code = %q, want INVALID_HIERARCHY", resp.Error.Code)
	}
}

func TestLayoutEndpointInvalidAspectRatio(t *testing.T) {
	body := `{"chart":` + validChartJSON() + `,"options":{"aspect_ratio":-1}}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/api/layout", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body should be JSON: %v", err)
	}
	if resp.Error.Code != "INVALID_ASPECT_RATIO" {
		t.Errorf("error code = %q, want INVALID_ASPECT_RATIO", resp.Error.Code)
	}
}

func TestLayoutEndpointRejectsUnknownFields(t *testing.T) {
	body := `{"chart":` + validChartJSON() + `,"bogus":true}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/api/layout", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRenderEndpointSVG(t *testing.T) {
	body := `{"chart":` + validChartJSON() + `,"options":{"formats":["svg"]}}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/api/render", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", got)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("body should be an SVG document")
	}
}

func TestRenderEndpointInvalidFormat(t *testing.T) {
	body := `{"chart":` + validChartJSON() + `,"options":{"formats":["gif"]}}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/api/render", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChartsWithoutStore(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodGet, "/api/charts/", "")
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}

func TestChartsCRUD(t *testing.T) {
	srv := newTestServer(WithStore(newMemStore()))

	// Save
	body := `{"name":"Acme","chart":` + validChartJSON() + `}`
	rec := doRequest(t, srv, http.MethodPut, "/api/charts/acme", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var saved store.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("save response: %v", err)
	}
	if saved.ID != "acme" || saved.Name != "Acme" {
		t.Errorf("saved = %+v", saved)
	}
	if saved.UpdatedAt.IsZero() {
		t.Error("save should stamp UpdatedAt")
	}

	// Get
	rec = doRequest(t, srv, http.MethodGet, "/api/charts/acme", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got store.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("get response: %v", err)
	}
	if len(got.Chart.Records) != 3 {
		t.Errorf("records = %d, want 3", len(got.Chart.Records))
	}

	// List
	rec = doRequest(t, srv, http.MethodGet, "/api/charts/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var snaps []store.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snaps); err != nil {
		t.Fatalf("list response: %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("list = %d snapshots, want 1", len(snaps))
	}

	// Delete
	rec = doRequest(t, srv, http.MethodDelete, "/api/charts/acme", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}

	// Get after delete
	rec = doRequest(t, srv, http.MethodGet, "/api/charts/acme", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body: %v", err)
	}
	if resp.Error.Code != "CHART_NOT_FOUND" {
		t.Errorf("error code = %q, want CHART_NOT_FOUND", resp.Error.Code)
	}
}

func TestSaveChartInvalidID(t *testing.T) {
	srv := newTestServer(WithStore(newMemStore()))
	body := `{"chart":` + validChartJSON() + `}`
	rec := doRequest(t, srv, http.MethodPut, "/api/charts/bad%20id", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSaveChartInvalidHierarchy(t *testing.T) {
	srv := newTestServer(WithStore(newMemStore()))
	body := `{"chart":{"records":[{"id":"a","parent_id":"a"}]}}`
	rec := doRequest(t, srv, http.MethodPut, "/api/charts/acme", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteMissingChart(t *testing.T) {
	srv := newTestServer(WithStore(newMemStore()))
	rec := doRequest(t, srv, http.MethodDelete, "/api/charts/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
