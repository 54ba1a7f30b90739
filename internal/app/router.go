package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pinkbella/storefront/internal/catalog"
	"github.com/pinkbella/storefront/internal/customers"
	"github.com/pinkbella/storefront/internal/orders"
	"github.com/pinkbella/storefront/internal/postal"
	"github.com/pinkbella/storefront/internal/shipping"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	CatalogHandler   *catalog.Handler
	CustomersHandler *customers.Handler
	OrdersHandler    *orders.Handler
	ShippingHandler  *shipping.Handler
	PostalHandler    *postal.Handler
}

// NewRouter constructs the chi.Router with storefront defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/products", params.CatalogHandler.MountRoutes)
	r.Route("/customers", params.CustomersHandler.MountRoutes)
	r.Route("/orders", params.OrdersHandler.MountRoutes)
	r.Route("/shipping", params.ShippingHandler.MountRoutes)
	r.Route("/postal", params.PostalHandler.MountRoutes)

	return r
}
