package gateway_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
	"MiniCart/internal/gateway"
	"MiniCart/internal/session"
	"MiniCart/pkg/kit"
)

const sessionSecret = "test-secret-test-secret-test-secret"

func newCatalogTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &catalog.Server{Store: catalog.NewMemStore(catalog.DefaultProducts()...)}

	h := catalog.NewHandler(s, kit.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "catalog",
	})

	return httptest.NewServer(h)
}

func newCartTS(t *testing.T, catalogURL string) *httptest.Server {
	t.Helper()

	h := cart.NewHandler(cart.Deps{
		Cart: &cart.Server{
			Sessions: cart.NewMemSessionStore(),
			Catalog:  cart.NewCatalogClient(catalogURL),
		},
		Sessions: &session.Server{JWT: session.NewTokenMaker(sessionSecret), TTL: time.Hour},
		HTTP:     kit.HTTPDeps{Log: zap.NewNop(), Service: "cart"},
	})

	return httptest.NewServer(h)
}

func newGatewayTS(t *testing.T, catalogURL, cartURL string, sessionLimit int) *httptest.Server {
	t.Helper()

	h, err := gateway.NewHandler(
		gateway.Deps{
			CatalogURL:   catalogURL,
			CartURL:      cartURL,
			SessionLimit: sessionLimit,
		},
		kit.HTTPDeps{
			Log:     zap.NewNop(),
			Service: "gateway",
		},
	)
	if err != nil {
		t.Fatalf("gateway.NewHandler: %v", err)
	}

	return httptest.NewServer(h)
}

func doJSON(t *testing.T, c *http.Client, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
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

	resp, err := c.Do(req)
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

func startStack(t *testing.T, sessionLimit int) *httptest.Server {
	t.Helper()

	catalogTS := newCatalogTS(t)
	t.Cleanup(catalogTS.Close)

	cartTS := newCartTS(t, catalogTS.URL)
	t.Cleanup(cartTS.Close)

	gwTS := newGatewayTS(t, catalogTS.URL, cartTS.URL, sessionLimit)
	t.Cleanup(gwTS.Close)

	return gwTS
}

func TestGateway_PublicAPI_HappyPath(t *testing.T) {
	gwTS := startStack(t, 10)
	c := &http.Client{}

	var products []catalog.Product
	{
		resp, raw := doJSON(t, c, http.MethodGet, gwTS.URL+"/products", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("products status=%d body=%s", resp.StatusCode, string(raw))
		}
		if err := json.Unmarshal(raw, &products); err != nil {
			t.Fatalf("decode products: %v", err)
		}
		if len(products) == 0 {
			t.Fatalf("expected products")
		}
	}

	var token string
	{
		resp, raw := doJSON(t, c, http.MethodPost, gwTS.URL+"/sessions", nil, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("session status=%d body=%s", resp.StatusCode, string(raw))
		}

		var sr struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(raw, &sr); err != nil {
			t.Fatalf("decode session: %v body=%s", err, string(raw))
		}
		if sr.AccessToken == "" {
			t.Fatalf("empty access_token")
		}
		token = sr.AccessToken
	}
	authz := map[string]string{"Authorization": "Bearer " + token}

	for _, pid := range []string{"p1", "p2", "p1"} {
		resp, raw := doJSON(t, c, http.MethodPost, gwTS.URL+"/cart/items", map[string]any{"product_id": pid}, authz)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add %s status=%d body=%s", pid, resp.StatusCode, string(raw))
		}
	}

	resp, raw := doJSON(t, c, http.MethodPatch, gwTS.URL+"/cart/items/p2", map[string]any{"delta": -1}, authz)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("adjust status=%d body=%s", resp.StatusCode, string(raw))
	}

	var v cart.View
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode cart: %v body=%s", err, string(raw))
	}
	if len(v.Items) != 1 || v.Items[0].ID != "p1" || v.Items[0].Quantity != 2 {
		t.Fatalf("items=%+v", v.Items)
	}
	if v.TotalCents != 3998 || v.Total != "$39.98" {
		t.Fatalf("total=%d %s", v.TotalCents, v.Total)
	}
}

func TestGateway_PublicAPI_CartRequiresSession(t *testing.T) {
	gwTS := startStack(t, 10)

	resp, raw := doJSON(t, &http.Client{}, http.MethodPost, gwTS.URL+"/cart/items", map[string]any{
		"product_id": "p1",
	}, nil)

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}
}

func TestGateway_PublicAPI_SessionRateLimit(t *testing.T) {
	gwTS := startStack(t, 2)
	c := &http.Client{}

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, c, http.MethodPost, gwTS.URL+"/sessions", nil, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("session %d status=%d", i, resp.StatusCode)
		}
	}

	resp, _ := doJSON(t, c, http.MethodPost, gwTS.URL+"/sessions", nil, nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status=%d want 429", resp.StatusCode)
	}
}

func TestGateway_ReadyAndUpstreamDown(t *testing.T) {
	catalogTS := newCatalogTS(t)
	t.Cleanup(catalogTS.Close)

	gwTS := newGatewayTS(t, catalogTS.URL, "http://127.0.0.1:1", 10)
	t.Cleanup(gwTS.Close)

	resp, _ := doJSON(t, &http.Client{}, http.MethodGet, gwTS.URL+"/readyz", nil, nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("readyz status=%d", resp.StatusCode)
	}

	resp, raw := doJSON(t, &http.Client{}, http.MethodGet, gwTS.URL+"/cart", nil, nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("cart status=%d body=%s", resp.StatusCode, string(raw))
	}
}

func TestGateway_RejectsRelativeUpstream(t *testing.T) {
	_, err := gateway.NewHandler(gateway.Deps{CatalogURL: "catalog:8082", CartURL: "http://cart"}, kit.HTTPDeps{Log: zap.NewNop()})
	if err == nil {
		t.Fatalf("expected error for relative upstream url")
	}
}
