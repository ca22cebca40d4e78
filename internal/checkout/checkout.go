package checkout

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"audiophile/internal/cart"
)

// Shipping is a flat fee per order, in the same currency unit as
// product prices. VAT is charged on the product subtotal only.
const (
	ShippingFee = 50
	VATRate     = 0.20
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	VAT      float64 `json:"vat"`
	Total    float64 `json:"total"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Summary is computed once per submission and returned to the caller;
// nothing about it is persisted.
type Summary struct {
	OrderNumber string       `json:"orderNumber"`
	Items       []cart.Item  `json:"items"`
	Totals
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	PaymentMethod string       `json:"paymentMethod"`
}

func Summarize(items []cart.Item) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	vat := math.Round(subtotal * VATRate)
	return Totals{
		Subtotal: subtotal,
		Shipping: ShippingFee,
		VAT:      vat,
		Total:    subtotal + ShippingFee + vat,
	}
}

// OrderNumber fabricates a fresh ORD-<millis>-<token> reference per
// submission. It is random, not sequential, and global uniqueness is
// not guaranteed.
func OrderNumber() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), token)
}
