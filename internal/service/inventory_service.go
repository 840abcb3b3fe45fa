package service

import (
	"context"
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/ports"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"
	"log"
	"time"
	"unicode/utf8"
)

const (
	maxDescriptionLength = 250
	minConservationDays  = 1
	maxConservationDays  = 25
)

type InventoryService struct {
	db                   ports.Database
	categoryRepository   ports.CategoryRepository
	productRepository    ports.ProductRepository
	stockRepository      ports.StockRepository
	historicalRepository ports.HistoricalRepository
	cacheRepository      ports.CacheRepository
	now                  func() time.Time
}

func NewInventoryService(
	db ports.Database,
	categoryRepository ports.CategoryRepository,
	productRepository ports.ProductRepository,
	stockRepository ports.StockRepository,
	historicalRepository ports.HistoricalRepository,
	cacheRepository ports.CacheRepository,
) *InventoryService {
	return &InventoryService{
		db:                   db,
		categoryRepository:   categoryRepository,
		productRepository:    productRepository,
		stockRepository:      stockRepository,
		historicalRepository: historicalRepository,
		cacheRepository:      cacheRepository,
		now:                  time.Now,
	}
}

// WithClock : подмена часов для расчета сроков хранения
func (s *InventoryService) WithClock(now func() time.Time) *InventoryService {
	s.now = now
	return s
}

func lengthBetween(value string, min, max int) bool {
	n := utf8.RuneCountInString(value)
	return n >= min && n <= max
}

func validateCategory(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("[InventoryService] категория не передана: %w", pkgerrors.ErrInvalidInput)
	}
	if !lengthBetween(category.Name, 3, 20) {
		return fmt.Errorf("[InventoryService] название категории от 3 до 20 символов: %w", pkgerrors.ErrInvalidInput)
	}
	if utf8.RuneCountInString(category.Description) > maxDescriptionLength {
		return fmt.Errorf("[InventoryService] описание не длиннее %d символов: %w", maxDescriptionLength, pkgerrors.ErrInvalidInput)
	}
	return nil
}

func validateProduct(product *model.Product) error {
	if product == nil {
		return fmt.Errorf("[InventoryService] продукт не передан: %w", pkgerrors.ErrInvalidInput)
	}
	if !lengthBetween(product.Name, 3, 30) {
		return fmt.Errorf("[InventoryService] название продукта от 3 до 30 символов: %w", pkgerrors.ErrInvalidInput)
	}
	if utf8.RuneCountInString(product.Description) > maxDescriptionLength {
		return fmt.Errorf("[InventoryService] описание не длиннее %d символов: %w", maxDescriptionLength, pkgerrors.ErrInvalidInput)
	}
	if product.DurationConservation < minConservationDays || product.DurationConservation > maxConservationDays {
		return fmt.Errorf("[InventoryService] срок хранения от %d до %d дней: %w", minConservationDays, maxConservationDays, pkgerrors.ErrInvalidInput)
	}
	if product.CategoryID <= 0 {
		return fmt.Errorf("[InventoryService] категория не указана: %w", pkgerrors.ErrInvalidInput)
	}
	return nil
}

// Категории

func (s *InventoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepository.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	return categories, nil
}

func (s *InventoryService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepository.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	return category, nil
}

func (s *InventoryService) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	id, err := s.categoryRepository.Create(ctx, s.db, category)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	category.ID = id
	return category, nil
}

func (s *InventoryService) UpdateCategory(ctx context.Context, category *model.Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	if err := s.categoryRepository.Update(ctx, s.db, category); err != nil {
		return fmt.Errorf("[InventoryService] %w", err)
	}
	s.evictProducts(ctx, s.categoryProductIDs(ctx, category.ID))
	return nil
}

// DeleteCategory : продукты категории берутся до удаления, чтобы сбросить их кэш
func (s *InventoryService) DeleteCategory(ctx context.Context, id int64) error {
	productIDs := s.categoryProductIDs(ctx, id)
	if err := s.categoryRepository.Delete(ctx, s.db, id); err != nil {
		return fmt.Errorf("[InventoryService] %w", err)
	}
	s.evictProducts(ctx, productIDs)
	return nil
}

// categoryProductIDs : в кэше продукта лежит название категории
func (s *InventoryService) categoryProductIDs(ctx context.Context, categoryID int64) []int64 {
	products, err := s.productRepository.ListByCategoryIDs(ctx, s.db, []int64{categoryID})
	if err != nil {
		log.Printf("[InventoryService] продукты категории %d не получены для сброса кэша: %v", categoryID, err)
		return nil
	}
	ids := make([]int64, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return ids
}

// Продукты

func (s *InventoryService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepository.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	return products, nil
}

// GetProduct : сначала Redis, потом БД. Ошибки кэша не мешают ответу
func (s *InventoryService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	cached, err := s.cacheRepository.GetProduct(ctx, id)
	if err == nil && cached != nil {
		return cached, nil
	}

	product, err := s.productRepository.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}

	if err := s.cacheRepository.SetProduct(ctx, product); err != nil {
		log.Printf("[InventoryService] продукт %d не закэширован: %v", id, err)
	}
	return product, nil
}

func (s *InventoryService) ProductsByCategoryIDs(ctx context.Context, categoryIDs []int64) ([]model.Product, error) {
	if len(categoryIDs) == 0 {
		return []model.Product{}, nil
	}
	products, err := s.productRepository.ListByCategoryIDs(ctx, s.db, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	return products, nil
}

func (s *InventoryService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	id, err := s.productRepository.Create(ctx, s.db, product)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	product.ID = id
	return product, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.productRepository.Update(ctx, s.db, product); err != nil {
		return fmt.Errorf("[InventoryService] %w", err)
	}
	s.evictProduct(ctx, product.ID)
	return nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepository.Delete(ctx, s.db, id); err != nil {
		return fmt.Errorf("[InventoryService] %w", err)
	}
	s.evictProduct(ctx, id)
	return nil
}

func (s *InventoryService) evictProduct(ctx context.Context, id int64) {
	if err := s.cacheRepository.DeleteProduct(ctx, id); err != nil {
		log.Printf("[InventoryService] продукт %d не удален из кэша: %v", id, err)
	}
}

// evictProducts : каждый продукт сбрасывается один раз
func (s *InventoryService) evictProducts(ctx context.Context, ids []int64) {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		s.evictProduct(ctx, id)
	}
}

// Остатки

// ListStocks : открытые единицы с датой окончания, обратным отсчетом и историей
func (s *InventoryService) ListStocks(ctx context.Context) ([]model.Stock, error) {
	stocks, err := s.stockRepository.ListInProgress(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	if len(stocks) == 0 {
		return []model.Stock{}, nil
	}

	ids := make([]int64, 0, len(stocks))
	for _, stock := range stocks {
		ids = append(ids, stock.ID)
	}
	historicals, err := s.historicalRepository.ListByStockIDs(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}

	byStock := make(map[int64][]model.Historical, len(stocks))
	for _, h := range historicals {
		byStock[h.StockID] = append(byStock[h.StockID], h)
	}

	now := s.now()
	for i := range stocks {
		stocks[i].FillExpiration(now)
		stocks[i].Historicals = byStock[stocks[i].ID]
	}
	return stocks, nil
}

func (s *InventoryService) GetStock(ctx context.Context, id int64) (*model.Stock, error) {
	stock, err := s.stockRepository.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}

	stock.Historicals, err = s.historicalRepository.ListByStockIDs(ctx, s.db, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	stock.FillExpiration(s.now())
	return stock, nil
}

// AddStocks : по одной открытой единице на каждый продукт, все в одной транзакции
func (s *InventoryService) AddStocks(ctx context.Context, productIDs []int64, userName string) ([]model.Stock, error) {
	if len(productIDs) == 0 {
		return nil, fmt.Errorf("[InventoryService] список продуктов пуст: %w", pkgerrors.ErrInvalidInput)
	}

	tx, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[InventoryService] не удалось открыть транзакцию", err)
	}
	defer rollback()

	now := s.now()
	created := make([]model.Stock, 0, len(productIDs))
	for _, productID := range productIDs {
		stock := model.Stock{
			Status:           model.StockInProgress,
			UserCreation:     userName,
			UserModification: userName,
			OpeningDate:      now,
			ProductID:        productID,
		}
		stock.ID, err = s.stockRepository.Create(ctx, tx, &stock)
		if err != nil {
			return nil, fmt.Errorf("[InventoryService] %w", err)
		}

		historical := model.Historical{ControleDate: now, Action: model.HistoricalCreation, StockID: stock.ID}
		if err := s.historicalRepository.Create(ctx, tx, &historical); err != nil {
			return nil, fmt.Errorf("[InventoryService] %w", err)
		}
		stock.Historicals = []model.Historical{historical}
		created = append(created, stock)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[InventoryService] не удалось зафиксировать транзакцию", err)
	}
	// nbProductStock в кэше продукта устарел
	s.evictProducts(ctx, productIDs)
	return created, nil
}

// UpdateStock : смена статуса пишет запись Modification в историю
func (s *InventoryService) UpdateStock(ctx context.Context, id int64, status model.StockStatus, userName string) (*model.Stock, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("[InventoryService] неизвестный статус %d: %w", int(status), pkgerrors.ErrInvalidInput)
	}

	tx, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[InventoryService] не удалось открыть транзакцию", err)
	}
	defer rollback()

	if err := s.stockRepository.UpdateStatus(ctx, tx, id, status, userName); err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	historical := model.Historical{ControleDate: s.now(), Action: model.HistoricalModification, StockID: id}
	if err := s.historicalRepository.Create(ctx, tx, &historical); err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}

	stock, err := s.stockRepository.GetByID(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	stock.Historicals, err = s.historicalRepository.ListByStockIDs(ctx, tx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[InventoryService] не удалось зафиксировать транзакцию", err)
	}
	s.evictProduct(ctx, stock.ProductID)
	stock.FillExpiration(s.now())
	return stock, nil
}

// История

func (s *InventoryService) ListHistoricals(ctx context.Context) ([]model.Historical, error) {
	historicals, err := s.historicalRepository.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("[InventoryService] %w", err)
	}
	return historicals, nil
}
