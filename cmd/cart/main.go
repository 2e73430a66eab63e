package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/internal/session"
	"MiniCart/pkg/kit"
)

const minSecretLen = 32

func main() {
	service := "cart"
	log := kit.NewLogger(service, kit.Getenv("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	ctx, stop := kit.WithSignals(context.Background())
	defer stop()

	port := kit.Getenv("PORT", "8083")
	catalogURL := kit.Getenv("CATALOG_URL", "http://localhost:8082")
	sessionTTL := kit.GetenvDuration("SESSION_TTL", session.DefaultTTL)
	sweepEvery := kit.GetenvDuration("SESSION_SWEEP_INTERVAL", time.Minute)

	secret := kit.Getenv("SESSION_SECRET", "")
	if len(secret) < minSecretLen {
		log.Fatal("SESSION_SECRET is required and must be at least 32 chars")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	store := cart.NewMemSessionStore()
	metrics := cart.NewMetrics(reg, store)

	go cart.RunSweeper(ctx, store, sessionTTL, sweepEvery, metrics, log)

	h := cart.NewHandler(cart.Deps{
		Cart: &cart.Server{
			Sessions: store,
			Catalog:  cart.NewCatalogClient(catalogURL),
			Log:      log,
			Metrics:  metrics,
		},
		Sessions: &session.Server{
			Log: log,
			JWT: session.NewTokenMaker(secret),
			TTL: sessionTTL,
		},
		HTTP: kit.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       reg,
			MetricsEnabled: true,
			MetricsToken:   kit.Getenv("METRICS_TOKEN", ""),
		},
	})

	if err := kit.RunHTTPServer(ctx, ":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
