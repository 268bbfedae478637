package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/typewire/typewire/pkg/cache"
	"github.com/typewire/typewire/pkg/errors"
	"github.com/typewire/typewire/pkg/observability"
	"github.com/typewire/typewire/pkg/render"
	"github.com/typewire/typewire/pkg/store"
	"github.com/typewire/typewire/pkg/typegraph"
	"github.com/typewire/typewire/pkg/wire"
)

// handleUpload validates and stores one wire document.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	start := time.Now()
	observability.Codec().OnDecodeStart(r.Context(), len(body))
	types, err := wire.Deserialize(bytes.NewReader(body))
	observability.Codec().OnDecodeComplete(r.Context(), len(types), time.Since(start), err)
	if err != nil {
		s.writeError(w, codecError(err))
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "unnamed"
	}

	g, err := s.store.Put(r.Context(), name, body, len(types))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "store graph"))
		return
	}
	observability.Store().OnPut(r.Context(), g.ID, len(body))
	writeJSON(w, http.StatusCreated, g)
}

// handleList returns metadata for all stored graphs.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	graphs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "list graphs"))
		return
	}
	if graphs == nil {
		graphs = []store.Graph{}
	}
	writeJSON(w, http.StatusOK, graphs)
}

// handleDownload returns the exact bytes that were stored.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	g, err := s.getGraph(w, r)
	if err != nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(g.Data)
}

// handleDelete removes a stored graph.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "graph %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "delete graph %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDOT renders a stored graph as Graphviz DOT.
func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	g, err := s.getGraph(w, r)
	if err != nil {
		return
	}
	types, err := s.decode(w, g)
	if err != nil {
		return
	}
	dot := render.ToDOT(types, render.Options{Detailed: r.URL.Query().Get("detailed") == "true"})
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(dot))
}

// handleSVG renders a stored graph as SVG, serving from the artifact
// cache when the document content is unchanged.
func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	g, err := s.getGraph(w, r)
	if err != nil {
		return
	}

	key := cache.ArtifactKey(g.Hash, "svg")
	if svg, hit, err := s.cache.Get(r.Context(), key); err != nil {
		s.logger.Warn("artifact cache get failed", "err", err)
	} else if hit {
		observability.Cache().OnCacheHit(r.Context(), "artifact")
		writeSVG(w, svg)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "artifact")

	types, err := s.decode(w, g)
	if err != nil {
		return
	}
	dot := render.ToDOT(types, render.Options{})
	svg, err := render.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render graph %s", g.ID))
		return
	}
	if err := s.cache.Set(r.Context(), key, svg, s.ttl); err != nil {
		s.logger.Warn("artifact cache set failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(r.Context(), "artifact", len(svg))
	}
	writeSVG(w, svg)
}

// getGraph loads the graph named by the id route parameter, writing the
// error response itself on failure.
func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) (store.Graph, error) {
	id := chi.URLParam(r, "id")
	g, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "graph %s not found", id))
		return store.Graph{}, err
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "load graph %s", id))
		return store.Graph{}, err
	}
	return g, nil
}

// decode reconstructs a stored document, writing the error response
// itself on failure. Stored documents were validated at upload, so a
// decode failure here means the store was corrupted outside the API.
func (s *Server) decode(w http.ResponseWriter, g store.Graph) ([]typegraph.TypeBase, error) {
	types, err := wire.Deserialize(bytes.NewReader(g.Data))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "stored graph %s is unreadable", g.ID))
		return nil, err
	}
	return types, nil
}

// codecError maps codec sentinels to API error codes.
func codecError(err error) error {
	switch {
	case stderrors.Is(err, wire.ErrUnsupportedVariant):
		return errors.Wrap(errors.ErrCodeUnsupportedVariant, err, "document uses an unsupported type variant")
	case stderrors.Is(err, wire.ErrMalformedDocument):
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "document is malformed")
	default:
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "document could not be decoded")
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

// writeError maps a structured error to its HTTP status and writes the
// JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDocument, errors.ErrCodeUnsupportedVariant:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}

	var body errorBody
	body.Error.Code = code
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}
