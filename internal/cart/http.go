package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"audiophile/pkg/kit"
)

const maxBodyBytes = 1 << 20

// Server fronts the cart store for the presentation layer. Every
// response is the full cart view so the header badge and sidebar can
// rerender from any mutation.
type Server struct {
	Cart *Store
	Log  *zap.Logger
}

// View carries the two state fields plus the derived read signals.
type View struct {
	Items      []Item  `json:"items"`
	IsOpen     bool    `json:"isOpen"`
	TotalItems int     `json:"totalItems"`
	Subtotal   float64 `json:"subtotal"`
}

func NewView(s State) View {
	items := s.Items
	if items == nil {
		items = []Item{}
	}
	return View{
		Items:      items,
		IsOpen:     s.IsOpen,
		TotalItems: s.TotalItems(),
		Subtotal:   s.Subtotal(),
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.get)
	r.Delete("/", s.clear)
	r.Post("/items", s.addItem)
	r.Patch("/items/{id}", s.updateQuantity)
	r.Delete("/items/{id}", s.removeItem)
	r.Post("/toggle", s.toggle)
	r.Post("/close", s.close)

	return r
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, NewView(s.Cart.State()))
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var it Item
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&it); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if it.ID <= 0 || it.Quantity <= 0 || it.Price < 0 || it.Name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid item", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, NewView(s.Cart.AddItem(it)))
}

func (s *Server) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid id", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, NewView(s.Cart.UpdateQuantity(id, req.Quantity)))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid id", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, NewView(s.Cart.RemoveItem(id)))
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, NewView(s.Cart.Clear()))
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, NewView(s.Cart.Toggle()))
}

func (s *Server) close(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, NewView(s.Cart.Close()))
}
