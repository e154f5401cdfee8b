package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/arxlib/searchd/internal/domain"
	domdoc "github.com/arxlib/searchd/internal/domain/document"
	"github.com/arxlib/searchd/internal/index"
	documentuc "github.com/arxlib/searchd/internal/usecase/document"
	healthuc "github.com/arxlib/searchd/internal/usecase/health"
	searchuc "github.com/arxlib/searchd/internal/usecase/search"
)

type mockSearchRepo struct {
	calls int
	set   domdoc.Set
	err   error
}

func (m *mockSearchRepo) Search(_ context.Context, _ *index.Compiled) (domdoc.Set, error) {
	m.calls++
	return m.set, m.err
}

type mockDocumentRepo struct {
	doc     domdoc.Document
	added   *domdoc.Document
	bulked  []domdoc.Document
	getErr  error
	addErr  error
	bulkErr error
}

func (m *mockDocumentRepo) Get(_ context.Context, _ string) (domdoc.Document, error) {
	return m.doc, m.getErr
}

func (m *mockDocumentRepo) Add(_ context.Context, doc *domdoc.Document) error {
	m.added = doc
	return m.addErr
}

func (m *mockDocumentRepo) BulkAdd(_ context.Context, docs []domdoc.Document) error {
	m.bulked = docs
	return m.bulkErr
}

type fakeProbe struct {
	available bool
}

func (f *fakeProbe) ClusterAvailable(_ context.Context) bool { return f.available }

type serverMocks struct {
	search *mockSearchRepo
	docs   *mockDocumentRepo
	probe  *fakeProbe
}

func newTestServer() (http.Handler, *serverMocks) {
	m := &serverMocks{
		search: &mockSearchRepo{set: domdoc.Set{Results: []domdoc.Document{}}},
		docs:   &mockDocumentRepo{},
		probe:  &fakeProbe{available: true},
	}
	s := NewServer(
		searchuc.New(m.search),
		documentuc.New(m.docs),
		healthuc.New(m.probe),
		zap.NewNop(),
	)
	return s.Routes(), m
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestSearch_Simple(t *testing.T) {
	h, m := newTestServer()
	m.search.set = domdoc.Set{
		Count: 2,
		Results: []domdoc.Document{
			{PaperID: "2301.00001", Title: "Muon pairs", Score: 7.5},
			{PaperID: "2301.00002", Title: "Gluon fusion", Score: 3.25},
		},
	}

	rec := doJSON(t, h, http.MethodPost, "/api/v1/search", `{"simple":{"value":"muon"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp struct {
		Count   int64 `json:"count"`
		Results []struct {
			PaperID string  `json:"paper_id"`
			Score   float64 `json:"score"`
		} `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Results) != 2 {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Results[0].Score != 7.5 {
		t.Errorf("score = %v, want 7.5", resp.Results[0].Score)
	}
}

func TestSearch_Advanced(t *testing.T) {
	h, m := newTestServer()

	body := `{
		"advanced": {
			"terms": [
				{"operator": "", "field": "title", "term": "muon"},
				{"operator": "OR", "field": "title", "term": "gluon"}
			],
			"date_range": {"start_date": "2006-02-05T00:00:00Z"},
			"primary_classification": [{"group": "cs"}]
		},
		"page": 1,
		"page_size": 25
	}`
	rec := doJSON(t, h, http.MethodPost, "/api/v1/search", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if m.search.calls != 1 {
		t.Errorf("repo calls = %d, want 1", m.search.calls)
	}
}

func TestSearch_PagePastCeiling(t *testing.T) {
	h, m := newTestServer()

	body := `{"simple":{"value":"muon"},"page":999999,"page_size":25}`
	rec := doJSON(t, h, http.MethodPost, "/api/v1/search", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != codeOutsideAllowedRange {
		t.Errorf("code = %q, want %q", e.Code, codeOutsideAllowedRange)
	}
	if m.search.calls != 0 {
		t.Errorf("repo calls = %d, want 0: the guard fires before the backend", m.search.calls)
	}
}

func TestSearch_InvalidOperator(t *testing.T) {
	h, _ := newTestServer()

	body := `{"advanced":{"terms":[
		{"operator": "", "field": "title", "term": "a"},
		{"operator": "XOR", "field": "title", "term": "b"}
	]}}`
	rec := doJSON(t, h, http.MethodPost, "/api/v1/search", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != codeInvalidQuery {
		t.Errorf("code = %q, want %q", e.Code, codeInvalidQuery)
	}
}

func TestSearch_NeitherKindSet(t *testing.T) {
	h, _ := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/search", `{"page":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != codeInvalidQuery {
		t.Errorf("code = %q, want %q", e.Code, codeInvalidQuery)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	h, _ := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/search", `{"simple":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != codeBadRequest {
		t.Errorf("code = %q, want %q", e.Code, codeBadRequest)
	}
}

func TestSearch_BackendUnavailable(t *testing.T) {
	h, m := newTestServer()
	m.search.err = domain.ErrIndexConnection

	rec := doJSON(t, h, http.MethodPost, "/api/v1/search", `{"simple":{"value":"muon"}}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != codeIndexUnavailable {
		t.Errorf("code = %q, want %q", e.Code, codeIndexUnavailable)
	}
}

func TestGetDocument(t *testing.T) {
	h, m := newTestServer()
	m.docs.doc = domdoc.Document{ID: "2301.00001", PaperID: "2301.00001", Title: "Muon pairs", Score: 1.0}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/2301.00001", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var doc struct {
		PaperID string `json:"paper_id"`
		Title   string `json:"title"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Title != "Muon pairs" {
		t.Errorf("title = %q", doc.Title)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	h, m := newTestServer()
	m.docs.getErr = domain.ErrDocumentNotFound

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/missing", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != codeDocumentNotFound {
		t.Errorf("code = %q, want %q", e.Code, codeDocumentNotFound)
	}
}

func TestAddDocument_PathIDFallback(t *testing.T) {
	h, m := newTestServer()

	rec := doJSON(t, h, http.MethodPut, "/api/v1/documents/2301.00001",
		`{"paper_id":"2301.00001","title":"Muon pairs"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if m.docs.added == nil {
		t.Fatal("document not added")
	}
	if m.docs.added.ID != "2301.00001" {
		t.Errorf("id = %q, want path id filled in", m.docs.added.ID)
	}
}

func TestBulkAddDocuments(t *testing.T) {
	h, m := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/documents/bulk",
		`{"documents":[{"paper_id":"a","title":"A"},{"paper_id":"b","title":"B"}]}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if len(m.docs.bulked) != 2 {
		t.Errorf("bulked = %d docs, want 2", len(m.docs.bulked))
	}
}

func TestBulkAddDocuments_EmptyBatch(t *testing.T) {
	h, _ := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/documents/bulk", `{"documents":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		available  bool
		wantStatus int
	}{
		{"cluster up", true, http.StatusOK},
		{"cluster down", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestServer()
			m.probe.available = tt.available

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
