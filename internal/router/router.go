package router

import (
	"net/http"

	"onsen-store/internal/auth"
	"onsen-store/internal/handler"
	"onsen-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	User    *handler.UserHandler
}

// New creates the HTTP router with all routes and middleware
// configured.
func New(h Handlers, authMW *auth.Middleware, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Session)
		api.Use(authMW.Authenticate)

		api.Route("/coffees", func(c chi.Router) {
			c.Get("/", h.Product.List)
			c.Get("/featured", h.Product.GetFeatured)
			c.Get("/slug/{slug}", h.Product.GetBySlug)
			c.Get("/{id}", h.Product.GetByID)
		})

		api.Route("/cart", func(c chi.Router) {
			c.Get("/", h.Cart.Get)
			c.Post("/", h.Cart.Add)
			c.Put("/", h.Cart.Update)
			c.Delete("/", h.Cart.Clear)
			c.Delete("/{productId}", h.Cart.Remove)
		})

		api.Route("/orders", func(o chi.Router) {
			o.Group(func(g chi.Router) {
				g.Use(authMW.RequireAuth)
				g.Post("/", h.Order.Create)
				g.Get("/{id}", h.Order.GetByID)
				g.Get("/by-email/{email}", h.Order.GetByEmail)
			})

			o.Group(func(g chi.Router) {
				g.Use(authMW.RequireAdmin)
				g.Get("/", h.Order.GetAll)
				g.Put("/{id}/status", h.Order.UpdateStatus)
			})
		})

		api.Route("/users", func(u chi.Router) {
			u.Use(authMW.RequireAdmin)
			u.Get("/", h.User.List)
		})
	})

	return r
}
