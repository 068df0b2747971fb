// Package orders archives completed purchase transactions and serves the
// confirmation page lookup.
package orders

import (
	"context"
	"errors"

	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn *domain.Transaction) error
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

var ErrTransactionNotFound = errors.New("transaction not found")
