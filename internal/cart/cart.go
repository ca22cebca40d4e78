package cart

import "audiophile/internal/catalog"

// Item is one cart row. Price is the unit price snapshotted when the
// item was added; it is never re-read from the catalog.
type Item struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Price    float64          `json:"price"`
	Quantity int              `json:"quantity"`
	Image    catalog.ImageSet `json:"image"`
}

// State is the whole cart. Items keep add order; IsOpen is the sidebar
// visibility flag.
type State struct {
	Items  []Item `json:"items"`
	IsOpen bool   `json:"isOpen"`
}

func Empty() State {
	return State{Items: []Item{}}
}

func (s State) TotalItems() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

func (s State) Subtotal() float64 {
	var sum float64
	for _, it := range s.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
