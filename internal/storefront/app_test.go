package storefront_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"audiophile/internal/auth"
	"audiophile/internal/cart"
	"audiophile/internal/catalog"
	"audiophile/internal/storefront"
)

func newStorefrontTS(t *testing.T) *httptest.Server {
	t.Helper()

	admins := auth.NewStore()
	if err := admins.Seed("admin@audiophile.local", "password123"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	cartStore := cart.NewStore(cart.NewFileMirror(t.TempDir()), zap.NewNop())
	cartStore.Load()

	h := storefront.NewHandler(storefront.Deps{
		Log:      zap.NewNop(),
		Catalog:  catalog.NewMemStore(catalog.Product{ID: 1, Slug: "yx1-earphones", Name: "YX1", Category: "earphones", Price: 599}),
		Cart:     cartStore,
		Admins:   admins,
		JWT:      auth.NewTokenMaker("test-secret"),
		TokenTTL: 15 * time.Minute,
		// Registry nil: metrics off in tests.
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestStorefront_HappyPath(t *testing.T) {
	ts := newStorefrontTS(t)

	// Browsing is public.
	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/products", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status=%d", resp.StatusCode)
	}

	// Mutations are not.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/products", map[string]any{"name": "X"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create status=%d, want 401", resp.StatusCode)
	}

	// Admin login.
	resp, raw = doJSON(t, http.MethodPost, ts.URL+"/auth/login", map[string]any{
		"email":    "admin@audiophile.local",
		"password": "password123",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status=%d body=%s", resp.StatusCode, raw)
	}
	var login struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &login); err != nil {
		t.Fatalf("unmarshal login: %v", err)
	}
	authz := map[string]string{"Authorization": "Bearer " + login.AccessToken}

	// Create a product as admin; id comes from the store.
	resp, raw = doJSON(t, http.MethodPost, ts.URL+"/products", map[string]any{
		"slug": "zx9-speaker", "name": "ZX9", "category": "speakers", "price": 4500,
	}, authz)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", resp.StatusCode, raw)
	}
	var created catalog.Product
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.ID != 2 {
		t.Fatalf("created id=%d, want 2", created.ID)
	}

	// Shopper adds it to the cart twice; rows merge.
	addBody := map[string]any{
		"id": created.ID, "name": created.Name, "price": created.Price, "quantity": 1,
		"image": map[string]string{"mobile": "m", "tablet": "t", "desktop": "d"},
	}
	doJSON(t, http.MethodPost, ts.URL+"/cart/items", addBody, nil)
	resp, raw = doJSON(t, http.MethodPost, ts.URL+"/cart/items", addBody, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cart add status=%d body=%s", resp.StatusCode, raw)
	}
	var view cart.View
	if err := json.Unmarshal(raw, &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if len(view.Items) != 1 || view.TotalItems != 2 {
		t.Fatalf("view=%+v, want one merged row of quantity 2", view)
	}

	// Checkout.
	resp, raw = doJSON(t, http.MethodPost, ts.URL+"/checkout", map[string]any{
		"name": "Alexei Ward", "email": "alexei@mail.com", "phone": "+12025550136",
		"address": "1137 Williams Avenue", "zipCode": "10001", "city": "New York",
		"country": "United States", "paymentMethod": "cash-on-delivery",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkout status=%d body=%s", resp.StatusCode, raw)
	}
	var sum struct {
		OrderNumber string  `json:"orderNumber"`
		Total       float64 `json:"total"`
	}
	if err := json.Unmarshal(raw, &sum); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	// 9000 subtotal + 50 shipping + 1800 vat
	if sum.Total != 10850 {
		t.Fatalf("total=%v, want 10850", sum.Total)
	}
	if sum.OrderNumber == "" {
		t.Fatal("order number missing")
	}

	// Confirm clears the cart.
	resp, raw = doJSON(t, http.MethodDelete, ts.URL+"/cart", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("cart not cleared: %+v", view)
	}
}

func TestStorefront_AdminRoutesRejectBadTokens(t *testing.T) {
	ts := newStorefrontTS(t)

	for _, h := range []map[string]string{
		nil,
		{"Authorization": "Bearer garbage"},
		{"Authorization": "Basic abc"},
	} {
		resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/products/1", nil, h)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("headers=%v status=%d, want 401", h, resp.StatusCode)
		}
	}

	// The product is still there.
	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/products/1", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status=%d", resp.StatusCode)
	}
}

func TestStorefront_Healthz(t *testing.T) {
	ts := newStorefrontTS(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+path, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status=%d", path, resp.StatusCode)
		}
	}
}
