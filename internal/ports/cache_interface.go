package ports

import (
	"context"
	"food-inventory/internal/model"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetProduct(ctx context.Context, product *model.Product) error
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
