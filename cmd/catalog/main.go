package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniCart/internal/catalog"
	"MiniCart/pkg/kit"
)

func main() {
	service := "catalog"
	log := kit.NewLogger(service, kit.Getenv("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	ctx, stop := kit.WithSignals(context.Background())
	defer stop()

	port := kit.Getenv("PORT", "8082")

	store, closeStore := openStore(ctx, log)
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	h := catalog.NewHandler(&catalog.Server{Store: store, Log: log}, kit.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   kit.Getenv("METRICS_TOKEN", ""),
	})

	if err := kit.RunHTTPServer(ctx, ":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// openStore uses Postgres when CATALOG_DSN is set and the seeded memory store otherwise.
func openStore(ctx context.Context, log *zap.Logger) (catalog.Store, func()) {
	dsn := kit.Getenv("CATALOG_DSN", "")
	if dsn == "" {
		log.Info("catalog using in-memory products")
		return catalog.NewMemStore(catalog.DefaultProducts()...), func() {}
	}

	db, err := catalog.OpenPostgres(ctx, dsn)
	if err != nil {
		log.Fatal("open catalog db failed", zap.Error(err))
	}
	return catalog.NewPostgresStore(db), func() { _ = db.Close() }
}
