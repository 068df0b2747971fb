package orders

import (
	"context"
	"sync"

	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

type memoryRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.Transaction
}

func NewMemoryRepository() TransactionRepository {
	return &memoryRepository{txns: make(map[string]*domain.Transaction)}
}

func (m *memoryRepository) SaveTransaction(_ context.Context, txn *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *txn
	stored.Items = append([]domain.CartItem(nil), txn.Items...)
	m.txns[txn.ID] = &stored
	return nil
}

func (m *memoryRepository) GetTransaction(_ context.Context, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txn, ok := m.txns[id]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	cp := *txn
	cp.Items = append([]domain.CartItem(nil), txn.Items...)
	return &cp, nil
}
