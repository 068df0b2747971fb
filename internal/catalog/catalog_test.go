package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCatalog_GetProduct(t *testing.T) {
	cat := NewStaticCatalog()

	p, err := cat.GetProduct(context.Background(), "prod_001")
	require.NoError(t, err)

	assert.Equal(t, "GA4 Fundamentals Course", p.Name)
	assert.Equal(t, "Courses", p.Category)
	assert.InDelta(t, 99.00, p.Price, 1e-9)
	assert.NotEmpty(t, p.Details)
	assert.Equal(t, []string{"prod_002", "prod_004"}, p.Related)
}

func TestStaticCatalog_GetProduct_Missing(t *testing.T) {
	cat := NewStaticCatalog()

	_, err := cat.GetProduct(context.Background(), "prod_999")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestStaticCatalog_ListProducts(t *testing.T) {
	cat := NewStaticCatalog()

	products, err := cat.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)

	// Catalog order is stable
	assert.Equal(t, "prod_001", products[0].ID)
	assert.Equal(t, "prod_006", products[5].ID)
}

func TestStaticCatalog_CallersCannotMutateCatalog(t *testing.T) {
	cat := NewStaticCatalog()
	ctx := context.Background()

	p, err := cat.GetProduct(ctx, "prod_001")
	require.NoError(t, err)
	p.Price = 1.00

	again, err := cat.GetProduct(ctx, "prod_001")
	require.NoError(t, err)
	assert.InDelta(t, 99.00, again.Price, 1e-9)
}
