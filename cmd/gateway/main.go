package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCart/internal/gateway"
	"MiniCart/pkg/kit"
)

func main() {
	service := "gateway"
	log := kit.NewLogger(service, kit.Getenv("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	ctx, stop := kit.WithSignals(context.Background())
	defer stop()

	port := kit.Getenv("PORT", "8080")

	deps := gateway.Deps{
		CatalogURL:    kit.Getenv("CATALOG_URL", "http://catalog:8082"),
		CartURL:       kit.Getenv("CART_URL", "http://cart:8083"),
		SessionLimit:  kit.GetenvInt("SESSION_RATE_LIMIT", 10),
		SessionWindow: kit.GetenvDuration("SESSION_RATE_WINDOW", time.Minute),
	}

	reg := prometheus.NewRegistry()
	h, err := gateway.NewHandler(deps, kit.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   kit.Getenv("METRICS_TOKEN", ""),
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(ctx, ":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
