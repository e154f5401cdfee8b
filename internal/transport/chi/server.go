// Package chi exposes the search service over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arxlib/searchd/internal/domain"
	"github.com/arxlib/searchd/internal/metrics"
	documentuc "github.com/arxlib/searchd/internal/usecase/document"
	healthuc "github.com/arxlib/searchd/internal/usecase/health"
	searchuc "github.com/arxlib/searchd/internal/usecase/search"
)

const maxBulkSize = 500

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the search API.
type Server struct {
	search        *searchuc.Service
	documents     *documentuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	documents *documentuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		documents: documents,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrOutsideAllowedRange, http.StatusBadRequest, codeOutsideAllowedRange),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrMapping, http.StatusInternalServerError, codeMappingError),
		sentinelHandler(domain.ErrIndexing, http.StatusInternalServerError, codeIndexingError),
		sentinelHandler(domain.ErrIndexConnection, http.StatusServiceUnavailable, codeIndexUnavailable),
	}
	return s
}

// Routes registers all endpoints on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.Healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Get("/documents/{id}", s.GetDocument)
		r.Put("/documents/{id}", s.AddDocument)
		r.Post("/documents/bulk", s.BulkAddDocuments)
	})
	return r
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := req.toQuery()
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(req.kind(), "invalid").Inc()
		s.handleDomainError(w, err)
		return
	}

	set, err := s.search.Search(r.Context(), q)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(req.kind(), outcomeLabel(err)).Inc()
		s.handleDomainError(w, err)
		return
	}
	metrics.SearchesTotal.WithLabelValues(req.kind(), "ok").Inc()

	writeJSON(w, http.StatusOK, searchResponseFrom(set))
}

// GetDocument handles GET /api/v1/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := s.documents.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, hitFrom(doc))
}

// AddDocument handles PUT /api/v1/documents/{id}.
func (s *Server) AddDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var doc documentDTO
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	d := doc.toDomain()
	if d.ID == "" {
		d.ID = id
	}
	if err := s.documents.Add(r.Context(), &d); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkAddDocuments handles POST /api/v1/documents/bulk.
func (s *Server) BulkAddDocuments(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Documents) == 0 || len(req.Documents) > maxBulkSize {
		writeError(w, http.StatusBadRequest, codeBadRequest,
			"documents count must be between 1 and 500")
		return
	}

	if err := s.documents.BulkAdd(r.Context(), req.toDomain()); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Error response codes exposed to clients.
const (
	codeBadRequest          = "bad_request"
	codeInvalidQuery        = "invalid_query"
	codeOutsideAllowedRange = "outside_allowed_range"
	codeDocumentNotFound    = "document_not_found"
	codeMappingError        = "mapping_error"
	codeIndexingError       = "indexing_error"
	codeIndexUnavailable    = "index_unavailable"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrOutsideAllowedRange,
		domain.ErrDocumentNotFound,
		domain.ErrMapping,
		domain.ErrIndexing,
		domain.ErrIndexConnection,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// outcomeLabel buckets an error for the searches_total metric.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return "invalid"
	case errors.Is(err, domain.ErrOutsideAllowedRange):
		return "out_of_range"
	default:
		return "error"
	}
}
