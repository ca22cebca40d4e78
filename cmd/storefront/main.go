package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"audiophile/internal/auth"
	"audiophile/internal/cart"
	"audiophile/internal/catalog"
	"audiophile/internal/config"
	"audiophile/internal/storefront"
	"audiophile/pkg/kit"
)

func main() {
	cfg := config.Load()

	log := kit.NewLogger("storefront", cfg.Server.Env)
	defer func() { _ = log.Sync() }()

	if cfg.Admin.Password == "" || cfg.JWT.Secret == "" {
		log.Fatal("ADMIN_PASSWORD and JWT_SECRET must be set")
	}

	admins := auth.NewStore()
	if err := admins.Seed(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}

	cartStore := cart.NewStore(cart.NewFileMirror(cfg.Cart.MirrorDir), log)
	cartStore.Load()

	deps := storefront.Deps{
		Log:      log,
		Registry: prometheus.NewRegistry(),

		Catalog: catalog.NewFileStore(cfg.Catalog.DataFile),
		Cart:    cartStore,
		Admins:  admins,
		JWT:     auth.NewTokenMaker(cfg.JWT.Secret),

		TokenTTL:        cfg.JWT.TokenTTL,
		ProcessingDelay: cfg.Checkout.ProcessingDelay,

		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	}

	h := storefront.NewHandler(deps)
	if err := kit.RunHTTPServer(":"+cfg.Server.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
