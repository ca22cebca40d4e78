package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"audiophile/internal/auth"
	"audiophile/internal/cart"
	"audiophile/internal/catalog"
	"audiophile/internal/checkout"
	"audiophile/pkg/kit"
)

const (
	service          = "storefront"
	loginLimitPerMin = 5
	limitWindow      = time.Minute
	readyTimeout     = time.Second
)

// Deps is the composition root's input: every store is constructed once
// in main and threaded through here, never looked up globally.
type Deps struct {
	Log      *zap.Logger
	Registry *prometheus.Registry

	Catalog catalog.Store
	Cart    *cart.Store
	Admins  *auth.Store
	JWT     *auth.TokenMaker

	TokenTTL        time.Duration
	ProcessingDelay time.Duration

	MetricsEnabled bool
	MetricsToken   string
}

func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if deps.Registry != nil {
		metrics := kit.NewMetrics(deps.Registry)
		r.Use(metrics.Middleware(service))

		if deps.MetricsEnabled {
			r.With(kit.MetricsAuth(deps.MetricsToken)).
				Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
		}
	}

	catalogSrv := &catalog.Server{Store: deps.Catalog, Log: deps.Log}
	cartSrv := &cart.Server{Cart: deps.Cart, Log: deps.Log}
	checkoutSrv := checkout.NewServer(deps.Cart, deps.Log, deps.ProcessingDelay)
	authSrv := &auth.Server{Log: deps.Log, Store: deps.Admins, JWT: deps.JWT, TokenTTL: deps.TokenTTL}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(deps.Catalog, deps.Log))

	loginLimiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindow)
	r.Route("/auth", func(rr chi.Router) {
		rr.With(loginLimiter.Middleware).Post("/login", authSrv.LoginHandler())
		rr.Get("/whoami", authSrv.WhoAmIHandler())
	})

	r.Route("/products", func(rr chi.Router) {
		rr.Get("/", catalogSrv.ListHandler())
		rr.Get("/{id}", catalogSrv.GetHandler())

		rr.Group(func(ar chi.Router) {
			ar.Use(auth.RequireAdmin(deps.JWT))
			ar.Post("/", catalogSrv.CreateHandler())
			ar.Put("/{id}", catalogSrv.UpdateHandler())
			ar.Delete("/{id}", catalogSrv.DeleteHandler())
		})
	})

	r.Mount("/cart", cartSrv.Routes())
	r.Post("/checkout", checkoutSrv.SubmitHandler())

	return r
}

func readyz(store catalog.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
