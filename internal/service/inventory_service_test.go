package service_test

import (
	"context"
	"errors"
	"food-inventory/internal/model"
	"food-inventory/internal/service"
	pkgerrors "food-inventory/pkg/errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var inventoryNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type inventoryDeps struct {
	db          *fakeDB
	categories  *MockCategoryRepository
	products    *MockProductRepository
	stocks      *MockStockRepository
	historicals *MockHistoricalRepository
	cache       *MockCacheRepository
	svc         *service.InventoryService
}

func newInventoryDeps() *inventoryDeps {
	d := &inventoryDeps{
		db:          &fakeDB{},
		categories:  new(MockCategoryRepository),
		products:    new(MockProductRepository),
		stocks:      new(MockStockRepository),
		historicals: new(MockHistoricalRepository),
		cache:       new(MockCacheRepository),
	}
	d.svc = service.NewInventoryService(d.db, d.categories, d.products, d.stocks, d.historicals, d.cache).
		WithClock(func() time.Time { return inventoryNow })
	return d
}

func TestInventory_CategoryValidation(t *testing.T) {
	tests := []struct {
		name     string
		category *model.Category
		valid    bool
	}{
		{"nil", nil, false},
		{"короткое название", &model.Category{Name: "ab"}, false},
		{"длинное название", &model.Category{Name: strings.Repeat("a", 21)}, false},
		{"длинное описание", &model.Category{Name: "Fruits", Description: strings.Repeat("d", 251)}, false},
		{"валидная", &model.Category{Name: "Fruits", Description: "fresh"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newInventoryDeps()
			if tt.valid {
				d.categories.On("Create", mock.Anything, mock.Anything, tt.category).Return(int64(7), nil)
			}

			created, err := d.svc.CreateCategory(context.Background(), tt.category)

			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, int64(7), created.ID)
			} else {
				assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
				d.categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestInventory_ProductValidation(t *testing.T) {
	base := func() *model.Product {
		return &model.Product{Name: "Milk", DurationConservation: 5, CategoryID: 1}
	}

	tests := []struct {
		name   string
		mutate func(p *model.Product)
		valid  bool
	}{
		{"валидный", func(*model.Product) {}, true},
		{"короткое название", func(p *model.Product) { p.Name = "Mi" }, false},
		{"длинное название", func(p *model.Product) { p.Name = strings.Repeat("m", 31) }, false},
		{"срок 0 дней", func(p *model.Product) { p.DurationConservation = 0 }, false},
		{"срок 26 дней", func(p *model.Product) { p.DurationConservation = 26 }, false},
		{"срок 25 дней", func(p *model.Product) { p.DurationConservation = 25 }, true},
		{"без категории", func(p *model.Product) { p.CategoryID = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newInventoryDeps()
			product := base()
			tt.mutate(product)
			if tt.valid {
				d.products.On("Create", mock.Anything, mock.Anything, product).Return(int64(3), nil)
			}

			_, err := d.svc.CreateProduct(context.Background(), product)

			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
			}
		})
	}
}

func TestInventory_GetProductUsesCache(t *testing.T) {
	t.Run("из кэша", func(t *testing.T) {
		d := newInventoryDeps()
		d.cache.On("GetProduct", mock.Anything, int64(3)).Return(&model.Product{ID: 3, Name: "Milk"}, nil)

		product, err := d.svc.GetProduct(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "Milk", product.Name)
		d.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("промах кэша", func(t *testing.T) {
		d := newInventoryDeps()
		product := &model.Product{ID: 3, Name: "Milk"}
		d.cache.On("GetProduct", mock.Anything, int64(3)).Return(nil, nil)
		d.products.On("GetByID", mock.Anything, mock.Anything, int64(3)).Return(product, nil)
		d.cache.On("SetProduct", mock.Anything, product).Return(nil)

		got, err := d.svc.GetProduct(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, product, got)
		d.cache.AssertExpectations(t)
	})

	t.Run("Redis недоступен", func(t *testing.T) {
		d := newInventoryDeps()
		product := &model.Product{ID: 3, Name: "Milk"}
		d.cache.On("GetProduct", mock.Anything, int64(3)).Return(nil, errors.New("redis down"))
		d.products.On("GetByID", mock.Anything, mock.Anything, int64(3)).Return(product, nil)
		d.cache.On("SetProduct", mock.Anything, product).Return(errors.New("redis down"))

		got, err := d.svc.GetProduct(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, product, got)
	})
}

func TestInventory_UpdateProductEvictsCache(t *testing.T) {
	d := newInventoryDeps()
	product := &model.Product{ID: 3, Name: "Milk", DurationConservation: 5, CategoryID: 1}
	d.products.On("Update", mock.Anything, mock.Anything, product).Return(nil)
	d.cache.On("DeleteProduct", mock.Anything, int64(3)).Return(nil)
	d.products.On("Delete", mock.Anything, mock.Anything, int64(3)).Return(nil)

	require.NoError(t, d.svc.UpdateProduct(context.Background(), product))
	require.NoError(t, d.svc.DeleteProduct(context.Background(), 3))

	d.cache.AssertNumberOfCalls(t, "DeleteProduct", 2)
}

func TestInventory_ListStocks(t *testing.T) {
	d := newInventoryDeps()
	opened := inventoryNow.Add(-48 * time.Hour)
	d.stocks.On("ListInProgress", mock.Anything, mock.Anything).Return([]model.Stock{
		{ID: 1, ProductID: 3, OpeningDate: opened, DurationConservation: 5},
		{ID: 2, ProductID: 4, OpeningDate: opened, DurationConservation: 1},
	}, nil)
	d.historicals.On("ListByStockIDs", mock.Anything, mock.Anything, []int64{1, 2}).Return([]model.Historical{
		{ID: 10, StockID: 1, Action: model.HistoricalCreation},
		{ID: 11, StockID: 2, Action: model.HistoricalCreation},
		{ID: 12, StockID: 1, Action: model.HistoricalModification},
	}, nil)

	stocks, err := d.svc.ListStocks(context.Background())
	require.NoError(t, err)
	require.Len(t, stocks, 2)

	assert.Equal(t, opened.AddDate(0, 0, 5), stocks[0].ExpirationDate)
	assert.Equal(t, "3 d 0 h", stocks[0].Countdown)
	assert.Len(t, stocks[0].Historicals, 2)
	assert.Equal(t, "Expired", stocks[1].Countdown)
	assert.Len(t, stocks[1].Historicals, 1)
}

func TestInventory_AddStocks(t *testing.T) {
	t.Run("пустой список", func(t *testing.T) {
		d := newInventoryDeps()
		_, err := d.svc.AddStocks(context.Background(), nil, "alice")
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
	})

	t.Run("одна единица и одна запись истории на продукт", func(t *testing.T) {
		d := newInventoryDeps()
		d.stocks.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *model.Stock) bool {
			return s.ProductID == 3 && s.Status == model.StockInProgress && s.UserCreation == "alice" && s.OpeningDate.Equal(inventoryNow)
		})).Return(int64(100), nil)
		d.stocks.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *model.Stock) bool {
			return s.ProductID == 4
		})).Return(int64(101), nil)
		d.historicals.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(h *model.Historical) bool {
			return h.Action == model.HistoricalCreation
		})).Return(nil).Twice()
		d.cache.On("DeleteProduct", mock.Anything, int64(3)).Return(nil).Once()
		d.cache.On("DeleteProduct", mock.Anything, int64(4)).Return(nil).Once()

		stocks, err := d.svc.AddStocks(context.Background(), []int64{3, 4}, "alice")
		require.NoError(t, err)
		require.Len(t, stocks, 2)
		assert.Equal(t, int64(100), stocks[0].ID)
		assert.Equal(t, int64(101), stocks[1].Historicals[0].StockID)
		assert.Equal(t, 1, d.db.commits)
		d.historicals.AssertExpectations(t)
		d.cache.AssertExpectations(t)
	})

	t.Run("повтор продукта сбрасывает кэш один раз", func(t *testing.T) {
		d := newInventoryDeps()
		d.stocks.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(100), nil)
		d.historicals.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		d.cache.On("DeleteProduct", mock.Anything, int64(3)).Return(nil)

		stocks, err := d.svc.AddStocks(context.Background(), []int64{3, 3}, "alice")
		require.NoError(t, err)
		assert.Len(t, stocks, 2)
		d.cache.AssertNumberOfCalls(t, "DeleteProduct", 1)
	})

	t.Run("ошибка Redis не ломает добавление", func(t *testing.T) {
		d := newInventoryDeps()
		d.stocks.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(100), nil)
		d.historicals.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		d.cache.On("DeleteProduct", mock.Anything, int64(3)).Return(errors.New("redis down"))

		_, err := d.svc.AddStocks(context.Background(), []int64{3}, "alice")
		require.NoError(t, err)
	})

	t.Run("несуществующий продукт откатывает все", func(t *testing.T) {
		d := newInventoryDeps()
		d.stocks.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), pkgerrors.ErrInvalidInput)

		_, err := d.svc.AddStocks(context.Background(), []int64{99}, "alice")
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
		assert.Equal(t, 0, d.db.commits)
		d.cache.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
	})
}

func TestInventory_UpdateStock(t *testing.T) {
	t.Run("неизвестный статус", func(t *testing.T) {
		d := newInventoryDeps()
		_, err := d.svc.UpdateStock(context.Background(), 1, model.StockStatus(9), "bob")
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
	})

	t.Run("пишет Modification", func(t *testing.T) {
		d := newInventoryDeps()
		d.stocks.On("UpdateStatus", mock.Anything, mock.Anything, int64(1), model.StockConsumed, "bob").Return(nil)
		d.historicals.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(h *model.Historical) bool {
			return h.Action == model.HistoricalModification && h.StockID == 1 && h.ControleDate.Equal(inventoryNow)
		})).Return(nil)
		d.stocks.On("GetByID", mock.Anything, mock.Anything, int64(1)).
			Return(&model.Stock{ID: 1, ProductID: 3, Status: model.StockConsumed, UserModification: "bob", OpeningDate: inventoryNow, DurationConservation: 2}, nil)
		d.historicals.On("ListByStockIDs", mock.Anything, mock.Anything, []int64{1}).
			Return([]model.Historical{{StockID: 1, Action: model.HistoricalCreation}, {StockID: 1, Action: model.HistoricalModification}}, nil)
		d.cache.On("DeleteProduct", mock.Anything, int64(3)).Return(nil).Once()

		stock, err := d.svc.UpdateStock(context.Background(), 1, model.StockConsumed, "bob")
		require.NoError(t, err)
		assert.Equal(t, model.StockConsumed, stock.Status)
		assert.Equal(t, "2 d 0 h", stock.Countdown)
		assert.Len(t, stock.Historicals, 2)
		assert.Equal(t, 1, d.db.commits)
		d.cache.AssertExpectations(t)
	})

	t.Run("не найден", func(t *testing.T) {
		d := newInventoryDeps()
		d.stocks.On("UpdateStatus", mock.Anything, mock.Anything, int64(5), model.StockError, "bob").Return(pkgerrors.ErrNotFound)

		_, err := d.svc.UpdateStock(context.Background(), 5, model.StockError, "bob")
		assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
		d.cache.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
	})
}

func TestInventory_CategoryWritesEvictProducts(t *testing.T) {
	products := []model.Product{{ID: 3, CategoryID: 1}, {ID: 4, CategoryID: 1}}

	t.Run("изменение категории", func(t *testing.T) {
		d := newInventoryDeps()
		category := &model.Category{ID: 1, Name: "Dairy"}
		d.categories.On("Update", mock.Anything, mock.Anything, category).Return(nil)
		d.products.On("ListByCategoryIDs", mock.Anything, mock.Anything, []int64{1}).Return(products, nil)
		d.cache.On("DeleteProduct", mock.Anything, int64(3)).Return(nil).Once()
		d.cache.On("DeleteProduct", mock.Anything, int64(4)).Return(nil).Once()

		require.NoError(t, d.svc.UpdateCategory(context.Background(), category))
		d.cache.AssertExpectations(t)
	})

	t.Run("удаление категории", func(t *testing.T) {
		d := newInventoryDeps()
		d.products.On("ListByCategoryIDs", mock.Anything, mock.Anything, []int64{1}).Return(products, nil)
		d.categories.On("Delete", mock.Anything, mock.Anything, int64(1)).Return(nil)
		d.cache.On("DeleteProduct", mock.Anything, int64(3)).Return(nil).Once()
		d.cache.On("DeleteProduct", mock.Anything, int64(4)).Return(nil).Once()

		require.NoError(t, d.svc.DeleteCategory(context.Background(), 1))
		d.cache.AssertExpectations(t)
	})

	t.Run("категория не найдена", func(t *testing.T) {
		d := newInventoryDeps()
		d.products.On("ListByCategoryIDs", mock.Anything, mock.Anything, []int64{9}).Return([]model.Product{}, nil)
		d.categories.On("Delete", mock.Anything, mock.Anything, int64(9)).Return(pkgerrors.ErrNotFound)

		assert.ErrorIs(t, d.svc.DeleteCategory(context.Background(), 9), pkgerrors.ErrNotFound)
		d.cache.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
	})
}

func TestInventory_ProductsByCategoryIDs_Empty(t *testing.T) {
	d := newInventoryDeps()
	products, err := d.svc.ProductsByCategoryIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}
