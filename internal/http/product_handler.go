package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SunnieP/analytics-training-demo/internal/analytics"
	"github.com/SunnieP/analytics-training-demo/internal/catalog"
)

type ProductHandler struct {
	catalog catalog.Catalog
	sink    analytics.EventSink
}

func NewProductHandler(cat catalog.Catalog, sink analytics.EventSink) *ProductHandler {
	return &ProductHandler{catalog: cat, sink: sink}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "catalog_error", "failed to list products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProduct serves the product detail page data and fires view_item.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no product with id "+id)
			return
		}
		respondError(w, http.StatusInternalServerError, "catalog_error", "failed to load product")
		return
	}

	h.sink.ProductViewed(r.Context(), analytics.ProductViewed{
		ItemID:       product.ID,
		ItemName:     product.Name,
		Price:        product.Price,
		ItemCategory: product.Category,
	})

	respondJSON(w, http.StatusOK, product)
}
