package checkout_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audiophile/internal/cart"
	"audiophile/internal/catalog"
	"audiophile/internal/checkout"
)

func newCartStore(t *testing.T, items ...cart.Item) *cart.Store {
	t.Helper()

	s := cart.NewStore(cart.NewFileMirror(t.TempDir()), zap.NewNop())
	s.Load()
	for _, it := range items {
		s.AddItem(it)
	}
	return s
}

func validForm() map[string]any {
	return map[string]any{
		"name":          "Alexei Ward",
		"email":         "alexei@mail.com",
		"phone":         "+12025550136",
		"address":       "1137 Williams Avenue",
		"zipCode":       "10001",
		"city":          "New York",
		"country":       "United States",
		"paymentMethod": "e-money",
		"eMoneyNumber":  "238521993",
		"eMoneyPin":     "6891",
	}
}

func submit(t *testing.T, c *cart.Store, form map[string]any) (*http.Response, []byte) {
	t.Helper()

	srv := checkout.NewServer(c, zap.NewNop(), 0)
	ts := httptest.NewServer(srv.SubmitHandler())
	t.Cleanup(ts.Close)

	body, err := json.Marshal(form)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestCheckout_HappyPath(t *testing.T) {
	c := newCartStore(t,
		cart.Item{ID: 1, Name: "YX1", Price: 50, Quantity: 2, Image: catalog.ImageSet{Mobile: "m"}},
	)

	resp, raw := submit(t, c, validForm())
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", raw)

	var sum checkout.Summary
	require.NoError(t, json.Unmarshal(raw, &sum))

	assert.Regexp(t, `^ORD-`, sum.OrderNumber)
	assert.InDelta(t, 100, sum.Subtotal, 1e-9)
	assert.InDelta(t, 50, sum.Shipping, 1e-9)
	assert.InDelta(t, 20, sum.VAT, 1e-9)
	assert.InDelta(t, 170, sum.Total, 1e-9)
	assert.Equal(t, "e-Money", sum.PaymentMethod)
	assert.Equal(t, "Alexei Ward", sum.CustomerInfo.Name)
	require.Len(t, sum.Items, 1)

	// Submission does not clear the cart; the client does that on confirm.
	assert.Len(t, c.State().Items, 1)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	resp, _ := submit(t, newCartStore(t), validForm())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckout_ValidationFailures(t *testing.T) {
	c := newCartStore(t, cart.Item{ID: 1, Name: "YX1", Price: 10, Quantity: 1})

	cases := map[string]func(m map[string]any){
		"missing name":         func(m map[string]any) { delete(m, "name") },
		"bad email":            func(m map[string]any) { m["email"] = "not-an-email" },
		"short address":        func(m map[string]any) { m["address"] = "abc" },
		"unknown method":       func(m map[string]any) { m["paymentMethod"] = "wire" },
		"e-money number short": func(m map[string]any) { m["eMoneyNumber"] = "12345678" },
		"e-money pin letters":  func(m map[string]any) { m["eMoneyPin"] = "abcd" },
		"e-money missing pin":  func(m map[string]any) { m["eMoneyPin"] = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			mutate(form)

			resp, raw := submit(t, c, form)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body: %s", raw)
		})
	}
}

func TestCheckout_CashOnDeliveryNeedsNoEMoneyFields(t *testing.T) {
	c := newCartStore(t, cart.Item{ID: 1, Name: "YX1", Price: 10, Quantity: 1})

	form := validForm()
	form["paymentMethod"] = "cash-on-delivery"
	form["eMoneyNumber"] = ""
	form["eMoneyPin"] = ""

	resp, raw := submit(t, c, form)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", raw)

	var sum checkout.Summary
	require.NoError(t, json.Unmarshal(raw, &sum))
	assert.Equal(t, "Cash on Delivery", sum.PaymentMethod)
}
