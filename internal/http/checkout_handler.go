package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SunnieP/analytics-training-demo/internal/checkout"
	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

type CheckoutHandler struct {
	manager *checkout.Manager
}

func NewCheckoutHandler(m *checkout.Manager) *CheckoutHandler {
	return &CheckoutHandler{manager: m}
}

type SetShippingRequestDTO struct {
	Method string `json:"shipping_method"`
}

type PurchaseRequestDTO struct {
	PaymentMethod string `json:"payment_method"`
	PromoCode     string `json:"promo_code"`
}

type TotalsDTO struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

type CheckoutViewDTO struct {
	CurrentStep    string    `json:"current_step"`
	ShippingMethod string    `json:"shipping_method,omitempty"`
	Totals         TotalsDTO `json:"totals"`
}

type TransactionDTO struct {
	TransactionID string        `json:"transaction_id"`
	PaymentMethod string        `json:"payment_method"`
	Coupon        string        `json:"coupon,omitempty"`
	Totals        TotalsDTO     `json:"totals"`
	Items         []CartItemDTO `json:"items"`
}

func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	e, err := h.manager.Begin(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(e, r))
}

func (h *CheckoutHandler) SetShipping(w http.ResponseWriter, r *http.Request) {
	var req SetShippingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	e, err := h.manager.Engine(sessionIDFromContext(r.Context()))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	if err := e.SetShipping(r.Context(), req.Method); err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(e, r))
}

func (h *CheckoutHandler) BackToShipping(w http.ResponseWriter, r *http.Request) {
	e, err := h.manager.Engine(sessionIDFromContext(r.Context()))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	if err := e.BackToShipping(); err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(e, r))
}

func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	e, err := h.manager.Engine(sessionIDFromContext(r.Context()))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutView(e, r))
}

func (h *CheckoutHandler) CompletePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	e, err := h.manager.Engine(sessionIDFromContext(r.Context()))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	txn, err := e.CompletePurchase(r.Context(), req.PaymentMethod, req.PromoCode)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactionDTO(txn))
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
	case errors.Is(err, checkout.ErrOutOfSequence):
		respondError(w, http.StatusConflict, "out_of_sequence", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "checkout_error", "checkout operation failed")
	}
}

func checkoutView(e *checkout.Engine, r *http.Request) CheckoutViewDTO {
	state := e.State()
	return CheckoutViewDTO{
		CurrentStep:    state.CurrentStep.String(),
		ShippingMethod: string(state.ShippingMethod),
		Totals:         totalsDTO(e.Totals(r.Context())),
	}
}

func totalsDTO(t domain.Totals) TotalsDTO {
	return TotalsDTO{
		Subtotal: round2(t.Subtotal),
		Shipping: round2(t.ShippingCost),
		Tax:      round2(t.Tax),
		Discount: round2(t.Discount),
		Total:    round2(t.Total),
	}
}

func transactionDTO(txn *domain.Transaction) TransactionDTO {
	items := make([]CartItemDTO, 0, len(txn.Items))
	for _, item := range txn.Items {
		items = append(items, CartItemDTO{
			ItemID:       item.ProductID,
			ItemName:     item.Name,
			Price:        round2(item.UnitPrice),
			ItemCategory: item.Category,
			Quantity:     item.Quantity,
			LineTotal:    round2(item.UnitPrice * float64(item.Quantity)),
		})
	}
	return TransactionDTO{
		TransactionID: txn.ID,
		PaymentMethod: txn.PaymentMethod,
		Coupon:        txn.PromoCode,
		Totals:        totalsDTO(txn.Totals),
		Items:         items,
	}
}
