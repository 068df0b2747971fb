package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SunnieP/analytics-training-demo/internal/orders"
)

type OrdersHandler struct {
	txns orders.TransactionRepository
}

func NewOrdersHandler(txns orders.TransactionRepository) *OrdersHandler {
	return &OrdersHandler{txns: txns}
}

// GetTransaction backs the thank-you page: confirmation by transaction id.
func (h *OrdersHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	txn, err := h.txns.GetTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrTransactionNotFound) {
			respondError(w, http.StatusNotFound, "transaction_not_found", "no transaction with id "+id)
			return
		}
		respondError(w, http.StatusInternalServerError, "orders_error", "failed to load transaction")
		return
	}

	respondJSON(w, http.StatusOK, transactionDTO(txn))
}
