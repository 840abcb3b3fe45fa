package ports

import (
	"context"
	"food-inventory/internal/model"

	"github.com/jmoiron/sqlx"
)

type CategoryRepository interface {
	List(ctx context.Context, exec sqlx.ExtContext) ([]model.Category, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Category, error)
	Create(ctx context.Context, exec sqlx.ExtContext, category *model.Category) (int64, error)
	Update(ctx context.Context, exec sqlx.ExtContext, category *model.Category) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

type ProductRepository interface {
	List(ctx context.Context, exec sqlx.ExtContext) ([]model.Product, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Product, error)
	ListByCategoryIDs(ctx context.Context, exec sqlx.ExtContext, categoryIDs []int64) ([]model.Product, error)
	Create(ctx context.Context, exec sqlx.ExtContext, product *model.Product) (int64, error)
	Update(ctx context.Context, exec sqlx.ExtContext, product *model.Product) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

type StockRepository interface {
	ListInProgress(ctx context.Context, exec sqlx.ExtContext) ([]model.Stock, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Stock, error)
	Create(ctx context.Context, exec sqlx.ExtContext, stock *model.Stock) (int64, error)
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status model.StockStatus, userModification string) error
}

type HistoricalRepository interface {
	List(ctx context.Context, exec sqlx.ExtContext) ([]model.Historical, error)
	ListByStockIDs(ctx context.Context, exec sqlx.ExtContext, stockIDs []int64) ([]model.Historical, error)
	Create(ctx context.Context, exec sqlx.ExtContext, historical *model.Historical) error
}

type InventoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ProductsByCategoryIDs(ctx context.Context, categoryIDs []int64) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	ListStocks(ctx context.Context) ([]model.Stock, error)
	GetStock(ctx context.Context, id int64) (*model.Stock, error)
	AddStocks(ctx context.Context, productIDs []int64, userName string) ([]model.Stock, error)
	UpdateStock(ctx context.Context, id int64, status model.StockStatus, userName string) (*model.Stock, error)

	ListHistoricals(ctx context.Context) ([]model.Historical, error)
}
