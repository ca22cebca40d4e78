package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"audiophile/internal/catalog"
)

// StorageKey is the fixed key the durable mirror lives under. It is the
// localStorage key the web client has always used, kept so an exported
// cart round-trips.
const StorageKey = "audiophile_cart"

// Mirror is the durable copy of the cart. Load returns the empty state
// when nothing was ever saved; any other failure is reported to the
// caller, which decides whether to surface it.
type Mirror interface {
	Load() (State, error)
	Save(State) error
}

// FileMirror keeps the mirror in a single JSON file.
type FileMirror struct {
	path string
}

func NewFileMirror(dir string) *FileMirror {
	return &FileMirror{path: filepath.Join(dir, StorageKey+".json")}
}

// storedItem tolerates the pre-migration payload where image was a bare
// string rather than the responsive-variant object.
type storedItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	Quantity int             `json:"quantity"`
	Image    json.RawMessage `json:"image"`
}

type storedState struct {
	Items  []storedItem `json:"items"`
	IsOpen bool         `json:"isOpen"`
}

// Load reads the mirror. IsOpen always comes back false so the sidebar
// never auto-opens from stale state.
func (m *FileMirror) Load() (State, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Empty(), nil
	}
	if err != nil {
		return Empty(), fmt.Errorf("read cart mirror: %w", err)
	}

	var stored storedState
	if err := json.Unmarshal(data, &stored); err != nil {
		return Empty(), fmt.Errorf("parse cart mirror: %w", err)
	}

	st := Empty()
	for _, it := range stored.Items {
		st.Items = append(st.Items, Item{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    normalizeImage(it.Image),
		})
	}
	return st, nil
}

func (m *FileMirror) Save(s State) error {
	data, err := json.Marshal(storedView(s))
	if err != nil {
		return fmt.Errorf("encode cart mirror: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write cart mirror: %w", err)
	}
	return nil
}

func storedView(s State) State {
	if s.Items == nil {
		s.Items = []Item{}
	}
	return s
}

// normalizeImage accepts either the current {mobile,tablet,desktop}
// object or the legacy plain string, which is duplicated into all three
// variants.
func normalizeImage(raw json.RawMessage) (img catalog.ImageSet) {
	if len(raw) == 0 {
		return img
	}
	if err := json.Unmarshal(raw, &img); err == nil {
		return img
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		img.Mobile = single
		img.Tablet = single
		img.Desktop = single
	}
	return img
}
