package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

type Deps struct {
	CatalogURL string
	CartURL    string

	SessionLimit  int
	SessionWindow time.Duration
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond

	defaultSessionLimit  = 10
	defaultSessionWindow = time.Minute
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

func NewHandler(deps Deps, httpDeps kit.HTTPDeps) (http.Handler, error) {
	catalogProxy, err := NewReverseProxy(deps.CatalogURL, httpDeps.Log)
	if err != nil {
		return nil, fmt.Errorf("catalog proxy: %w", err)
	}
	cartProxy, err := NewReverseProxy(deps.CartURL, httpDeps.Log)
	if err != nil {
		return nil, fmt.Errorf("cart proxy: %w", err)
	}

	limit, window := deps.SessionLimit, deps.SessionWindow
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	if window <= 0 {
		window = defaultSessionWindow
	}
	sessionLimiter := kit.NewIPRateLimiter(limit, window)

	r := kit.NewRouter(httpDeps)

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	r.Handle("/products", catalogProxy)
	r.Handle("/products/*", catalogProxy)

	r.With(sessionLimiter.Middleware).Post("/sessions", cartProxy.ServeHTTP)

	r.Handle("/cart", cartProxy)
	r.Handle("/cart/*", cartProxy)

	return r, nil
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	upstreams := []struct{ name, url string }{
		{"catalog", deps.CatalogURL},
		{"cart", deps.CartURL},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for _, u := range upstreams {
			if err := checkReady(ctx, u.url+"/readyz"); err != nil {
				if log != nil {
					log.Warn("readyz failed: "+u.name, zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusServiceUnavailable, u.name+" not ready", nil)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	return nil
}
