package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"audiophile/pkg/kit"
)

const maxBodyBytes = 1 << 20

// Server exposes the store over HTTP. Read handlers are public; the
// mutating handlers are mounted behind admin auth by the composition
// root.
type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) ListHandler() http.HandlerFunc   { return s.list }
func (s *Server) GetHandler() http.HandlerFunc    { return s.get }
func (s *Server) CreateHandler() http.HandlerFunc { return s.create }
func (s *Server) UpdateHandler() http.HandlerFunc { return s.update }
func (s *Server) DeleteHandler() http.HandlerFunc { return s.delete }

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.logErr("list products failed", err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
		return
	}

	p, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.logErr("get product failed", err, zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	patch, err := decodePatch(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	p, err := s.Store.Create(r.Context(), patch)
	if err != nil {
		s.logErr("create product failed", err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
		return
	}

	patch, err := decodePatch(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	p, found, err := s.Store.Update(r.Context(), id, patch)
	if err != nil {
		s.logErr("update product failed", err, zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
		return
	}

	p, found, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		s.logErr("delete product failed", err, zap.Int("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) logErr(msg string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(msg, append([]zap.Field{zap.Error(err)}, fields...)...)
	}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodePatch(w http.ResponseWriter, r *http.Request) (Patch, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		return nil, err
	}
	return patch, nil
}
