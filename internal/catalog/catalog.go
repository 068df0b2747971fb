// Package catalog is the read-only product lookup the cart and product
// pages are populated from. The backend never mutates it.
package catalog

import (
	"context"
	"errors"

	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

type Catalog interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

var ErrProductNotFound = errors.New("product not found")
