package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SunnieP/analytics-training-demo/internal/analytics"
	"github.com/SunnieP/analytics-training-demo/internal/cache"
	"github.com/SunnieP/analytics-training-demo/internal/domain"
	"github.com/SunnieP/analytics-training-demo/internal/repository"
)

type mockRepository struct {
	m       sync.RWMutex
	carts   map[string]*domain.Cart
	getErr  error
	saveErr error
	ops     []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{carts: make(map[string]*domain.Cart)}
}

func (m *mockRepository) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.carts[sessionID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	cp := *c
	cp.Items = c.CopyItems()
	return &cp, nil
}

func (m *mockRepository) UpsertCart(_ context.Context, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *cart
	cp.Items = cart.CopyItems()
	m.carts[cart.SessionID] = &cp
	m.ops = append(m.ops, "upsert")
	return nil
}

func (m *mockRepository) DeleteCart(_ context.Context, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.carts, sessionID)
	m.ops = append(m.ops, "delete")
	return nil
}

func (m *mockRepository) recordOp(op string) {
	m.m.Lock()
	defer m.m.Unlock()
	m.ops = append(m.ops, op)
}

func (m *mockRepository) operations() []string {
	m.m.RLock()
	defer m.m.RUnlock()
	return append([]string(nil), m.ops...)
}

// nopSink satisfies analytics.EventSink and discards everything.
type nopSink struct{}

func (nopSink) ProductViewed(context.Context, analytics.ProductViewed)               {}
func (nopSink) ItemAdded(context.Context, analytics.ItemAdded)                       {}
func (nopSink) CheckoutStarted(context.Context, analytics.CheckoutStarted)           {}
func (nopSink) ShippingInfoAdded(context.Context, analytics.ShippingInfoAdded)       {}
func (nopSink) PaymentInfoAdded(context.Context, analytics.PaymentInfoAdded)         {}
func (nopSink) PurchaseCompleted(context.Context, analytics.PurchaseCompleted)       {}
func (nopSink) NewsletterSignup(context.Context, analytics.NewsletterSignup)         {}
func (nopSink) ContactFormSubmitted(context.Context, analytics.ContactFormSubmitted) {}
func (nopSink) OutboundLinkClicked(context.Context, analytics.OutboundLinkClicked)   {}
func (nopSink) FileDownloaded(context.Context, analytics.FileDownloaded)             {}
func (nopSink) CTAClicked(context.Context, analytics.CTAClicked)                     {}
func (nopSink) ScrollDepthReached(context.Context, analytics.ScrollDepthReached)     {}
func (nopSink) ScenarioCompleted(context.Context, analytics.ScenarioCompleted)       {}

func item(id string, price float64, qty int) domain.CartItem {
	return domain.CartItem{
		ProductID: id,
		Name:      "product " + id,
		UnitPrice: price,
		Category:  "Courses",
		Quantity:  qty,
	}
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo, nil, nopSink{})
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", item("prod_001", 99.00, 2))
	require.NoError(t, err)
	c, err := sut.AddItem(ctx, "s1", item("prod_001", 99.00, 3))
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, sut.ItemCount(ctx, "s1"))
}

func TestAddItem_DistinctProductsKeepOrder(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo, nil, nopSink{})
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", item("prod_002", 49.00, 1))
	require.NoError(t, err)
	_, err = sut.AddItem(ctx, "s1", item("prod_001", 99.00, 1))
	require.NoError(t, err)
	_, err = sut.AddItem(ctx, "s1", item("prod_002", 49.00, 2))
	require.NoError(t, err)

	snapshot := sut.Snapshot(ctx, "s1")
	require.Len(t, snapshot, 2)
	assert.Equal(t, "prod_002", snapshot[0].ProductID)
	assert.Equal(t, 3, snapshot[0].Quantity)
	assert.Equal(t, "prod_001", snapshot[1].ProductID)
	assert.Equal(t, 4, sut.ItemCount(ctx, "s1"))
}

func TestAddItem_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		item domain.CartItem
	}{
		{"zero quantity", item("prod_001", 99.00, 0)},
		{"negative quantity", item("prod_001", 99.00, -1)},
		{"negative price", item("prod_001", -1.00, 1)},
		{"missing product id", item("", 99.00, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			sut := NewService(repo, nil, nopSink{})

			_, err := sut.AddItem(context.Background(), "s1", tt.item)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, sut.Snapshot(context.Background(), "s1"), "state must be unchanged")
		})
	}
}

func TestSubtotal_IndependentOfAddOrder(t *testing.T) {
	ctx := context.Background()

	first := NewService(newMockRepository(), nil, nopSink{})
	_, err := first.AddItem(ctx, "s1", item("prod_001", 99.00, 1))
	require.NoError(t, err)
	_, err = first.AddItem(ctx, "s1", item("prod_002", 49.00, 2))
	require.NoError(t, err)

	second := NewService(newMockRepository(), nil, nopSink{})
	_, err = second.AddItem(ctx, "s1", item("prod_002", 49.00, 2))
	require.NoError(t, err)
	_, err = second.AddItem(ctx, "s1", item("prod_001", 99.00, 1))
	require.NoError(t, err)

	assert.InDelta(t, 197.00, first.Subtotal(ctx, "s1"), 1e-9)
	assert.InDelta(t, first.Subtotal(ctx, "s1"), second.Subtotal(ctx, "s1"), 1e-9)
}

func TestReplaceWithSingleItem_DropsAccumulatedCart(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo, nil, nopSink{})
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", item("prod_001", 99.00, 2))
	require.NoError(t, err)
	_, err = sut.AddItem(ctx, "s1", item("prod_002", 49.00, 1))
	require.NoError(t, err)

	c, err := sut.ReplaceWithSingleItem(ctx, "s1", item("prod_006", 299.00, 1))
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "prod_006", c.Items[0].ProductID)
	assert.InDelta(t, 299.00, sut.Subtotal(ctx, "s1"), 1e-9)
}

func TestClear_EmptiesCartAndPersistedState(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo, nil, nopSink{})
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "s1", item("prod_001", 99.00, 1))
	require.NoError(t, err)

	require.NoError(t, sut.Clear(ctx, "s1"))

	assert.Empty(t, sut.Snapshot(ctx, "s1"))
	assert.Zero(t, sut.ItemCount(ctx, "s1"))
	_, err = repo.GetCart(ctx, "s1")
	assert.ErrorIs(t, err, repository.ErrCartNotFound)
}

func TestObservers_NotifiedAfterPersist(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo, nil, nopSink{})

	var counts []int
	sut.Subscribe(func(sessionID string, itemCount int) {
		repo.recordOp("notify")
		counts = append(counts, itemCount)
	})

	ctx := context.Background()
	_, err := sut.AddItem(ctx, "s1", item("prod_001", 99.00, 2))
	require.NoError(t, err)
	require.NoError(t, sut.Clear(ctx, "s1"))

	assert.Equal(t, []string{"upsert", "notify", "delete", "notify"}, repo.operations())
	assert.Equal(t, []int{2, 0}, counts)
}

func TestLoad_RestoreFailureDefaultsToEmptyCart(t *testing.T) {
	repo := newMockRepository()
	repo.getErr = errors.New("stored cart is corrupt")
	sut := NewService(repo, nil, nopSink{})

	assert.Empty(t, sut.Snapshot(context.Background(), "s1"))
	assert.Zero(t, sut.ItemCount(context.Background(), "s1"))
}

type mockCache struct {
	m    sync.RWMutex
	cart *domain.Cart
}

func (m *mockCache) Get(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return nil
}

func (m *mockCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	return nil
}

func (m *mockCache) cached() *domain.Cart {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.cart
}

func TestAddItem_InvalidatesCache(t *testing.T) {
	repo := newMockRepository()
	mc := &mockCache{cart: &domain.Cart{SessionID: "s1", Items: []domain.CartItem{item("prod_001", 99.00, 1)}}}
	sut := NewService(repo, mc, nopSink{})

	_, err := sut.AddItem(context.Background(), "s1", item("prod_002", 49.00, 1))
	require.NoError(t, err)

	assert.Nil(t, mc.cached())
}

func TestSnapshot_ServedFromCache(t *testing.T) {
	repo := newMockRepository()
	repo.getErr = errors.New("repo must not be hit on a cache hit")
	mc := &mockCache{cart: &domain.Cart{SessionID: "s1", Items: []domain.CartItem{item("prod_001", 99.00, 2)}}}
	sut := NewService(repo, mc, nopSink{})

	snapshot := sut.Snapshot(context.Background(), "s1")
	require.Len(t, snapshot, 1)
	assert.Equal(t, 2, snapshot[0].Quantity)
}

func TestRoundTrip_RestoredSnapshotMatchesOriginal(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	writer := NewService(repo, nil, nopSink{})
	_, err := writer.AddItem(ctx, "s1", item("prod_003", 79.00, 1))
	require.NoError(t, err)
	_, err = writer.AddItem(ctx, "s1", item("prod_001", 99.00, 2))
	require.NoError(t, err)
	_, err = writer.AddItem(ctx, "s1", item("prod_005", 29.00, 4))
	require.NoError(t, err)
	original := writer.Snapshot(ctx, "s1")

	// Fresh service over the same store models a page reattachment
	reader := NewService(repo, nil, nopSink{})
	restored := reader.Snapshot(ctx, "s1")

	assert.Equal(t, original, restored)
}
