// Package server implements the typewire HTTP API.
//
// The API stores, lists, retrieves and renders wire documents:
//
//	POST   /v1/graphs?name=...   upload a document (validated before storing)
//	GET    /v1/graphs            list stored graph metadata
//	GET    /v1/graphs/{id}       download the stored document bytes
//	DELETE /v1/graphs/{id}       remove a stored graph
//	GET    /v1/graphs/{id}/dot   render the graph as Graphviz DOT
//	GET    /v1/graphs/{id}/svg   render the graph as SVG (cached)
//	GET    /healthz              liveness probe
//
// Uploads are validated by a full decode pass: a document the codec
// rejects is never stored. Rendered SVG artifacts are cached by document
// content hash, so cache entries can never go stale.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/typewire/typewire/pkg/cache"
	"github.com/typewire/typewire/pkg/store"
)

// maxDocumentBytes bounds uploaded document size.
const maxDocumentBytes = 16 << 20

// Server holds the API's collaborators.
type Server struct {
	store  store.Store
	cache  cache.Cache
	logger *log.Logger
	ttl    time.Duration
}

// New creates a server over the given store and artifact cache. ttl
// bounds the lifetime of cached artifacts; 0 means no expiry.
func New(st store.Store, c cache.Cache, logger *log.Logger, ttl time.Duration) *Server {
	return &Server{store: st, cache: c, logger: logger, ttl: ttl}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1/graphs", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleDownload)
		r.Delete("/{id}", s.handleDelete)
		r.Get("/{id}/dot", s.handleDOT)
		r.Get("/{id}/svg", s.handleSVG)
	})

	return r
}

// logRequests logs one line per request with method, path, status and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
