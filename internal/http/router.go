package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SunnieP/analytics-training-demo/internal/analytics"
	"github.com/SunnieP/analytics-training-demo/internal/cart"
	"github.com/SunnieP/analytics-training-demo/internal/catalog"
	"github.com/SunnieP/analytics-training-demo/internal/checkout"
	"github.com/SunnieP/analytics-training-demo/internal/orders"
)

type RouterDeps struct {
	Catalog        catalog.Catalog
	Cart           *cart.Service
	Checkout       *checkout.Manager
	Orders         orders.TransactionRepository
	Sink           analytics.EventSink
	RequestTimeout time.Duration
}

func NewRouter(deps RouterDeps) *chi.Mux {
	products := NewProductHandler(deps.Catalog, deps.Sink)
	carts := NewCartHandler(deps.Catalog, deps.Cart)
	checkouts := NewCheckoutHandler(deps.Checkout)
	txns := NewOrdersHandler(deps.Orders)
	engagement := NewEngagementHandler(deps.Sink)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", products.ListProducts)
		r.Get("/products/{id}", products.GetProduct)

		r.Get("/cart", carts.GetCart)
		r.Post("/cart/items", carts.AddItem)
		r.Post("/cart/buy-now", carts.BuyNow)
		r.Delete("/cart", carts.ClearCart)

		r.Post("/checkout", checkouts.Begin)
		r.Get("/checkout/summary", checkouts.Summary)
		r.Post("/checkout/shipping", checkouts.SetShipping)
		r.Post("/checkout/back", checkouts.BackToShipping)
		r.Post("/checkout/purchase", checkouts.CompletePurchase)

		r.Get("/orders/{id}", txns.GetTransaction)

		r.Route("/track", func(r chi.Router) {
			r.Post("/newsletter", engagement.Newsletter)
			r.Post("/contact", engagement.Contact)
			r.Post("/outbound", engagement.Outbound)
			r.Post("/download", engagement.Download)
			r.Post("/cta", engagement.CTA)
			r.Post("/scroll", engagement.Scroll)
			r.Post("/scenario", engagement.Scenario)
		})
	})

	return r
}
