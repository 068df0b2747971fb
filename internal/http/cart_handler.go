package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SunnieP/analytics-training-demo/internal/cart"
	"github.com/SunnieP/analytics-training-demo/internal/catalog"
	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

type CartHandler struct {
	catalog catalog.Catalog
	cart    *cart.Service
}

func NewCartHandler(cat catalog.Catalog, svc *cart.Service) *CartHandler {
	return &CartHandler{catalog: cat, cart: svc}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CartItemDTO struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Price        float64 `json:"price"`
	ItemCategory string  `json:"item_category"`
	Quantity     int     `json:"quantity"`
	LineTotal    float64 `json:"line_total"`
}

type CartViewDTO struct {
	Items     []CartItemDTO `json:"items"`
	ItemCount int           `json:"item_count"`
	Subtotal  float64       `json:"subtotal"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.resolveItem(w, r)
	if !ok {
		return
	}

	c, err := h.cart.AddItem(r.Context(), sessionIDFromContext(r.Context()), item)
	if err != nil {
		handleCartError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartView(c))
}

// BuyNow models the direct purchase path: the cart is replaced with just
// this item before the client redirects to checkout.
func (h *CartHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	item, ok := h.resolveItem(w, r)
	if !ok {
		return
	}

	c, err := h.cart.ReplaceWithSingleItem(r.Context(), sessionIDFromContext(r.Context()), item)
	if err != nil {
		handleCartError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartView(c))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	items := h.cart.Snapshot(r.Context(), sessionID)

	c := &domain.Cart{SessionID: sessionID, Items: items}
	respondJSON(w, http.StatusOK, cartView(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context(), sessionIDFromContext(r.Context())); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_error", "failed to clear cart")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// resolveItem parses the request and populates the line item from the
// catalog. The client only names a product id and quantity; prices and
// categories never come from the presentation layer.
func (h *CartHandler) resolveItem(w http.ResponseWriter, r *http.Request) (domain.CartItem, bool) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return domain.CartItem{}, false
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return domain.CartItem{}, false
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no product with id "+req.ProductID)
			return domain.CartItem{}, false
		}
		respondError(w, http.StatusInternalServerError, "catalog_error", "failed to load product")
		return domain.CartItem{}, false
	}

	return domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Category:  product.Category,
		Quantity:  req.Quantity,
	}, true
}

func handleCartError(w http.ResponseWriter, err error) {
	if errors.Is(err, cart.ErrInvalidInput) {
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, "cart_error", "failed to update cart")
}

func cartView(c *domain.Cart) CartViewDTO {
	view := CartViewDTO{
		Items:     make([]CartItemDTO, 0, len(c.Items)),
		ItemCount: c.ItemCount(),
		Subtotal:  round2(c.Subtotal()),
	}
	for _, item := range c.Items {
		view.Items = append(view.Items, CartItemDTO{
			ItemID:       item.ProductID,
			ItemName:     item.Name,
			Price:        round2(item.UnitPrice),
			ItemCategory: item.Category,
			Quantity:     item.Quantity,
			LineTotal:    round2(item.UnitPrice * float64(item.Quantity)),
		})
	}
	return view
}
