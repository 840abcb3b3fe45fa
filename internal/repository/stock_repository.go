package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"

	"github.com/jmoiron/sqlx"
)

const stockSelect = `
	SELECT s.id, s.status, s.user_creation, s.user_modification, s.opening_date, s.product_id,
		p.name AS product_name, p.duration_conservation
	FROM stocks s
	JOIN products p ON p.id = s.product_id
`

type StockRepository struct{}

func NewStockRepository() *StockRepository {
	return &StockRepository{}
}

// ListInProgress : только открытые (InProgress) единицы
func (r *StockRepository) ListInProgress(ctx context.Context, exec sqlx.ExtContext) ([]model.Stock, error) {
	query := stockSelect + ` WHERE s.status = $1 ORDER BY s.opening_date, s.id`
	var stocks []model.Stock
	if err := sqlx.SelectContext(ctx, exec, &stocks, query, model.StockInProgress); err != nil {
		return nil, util.LogError("[StockRepo] не удалось получить список", err)
	}
	return stocks, nil
}

func (r *StockRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Stock, error) {
	query := stockSelect + ` WHERE s.id = $1`
	var stock model.Stock
	err := sqlx.GetContext(ctx, exec, &stock, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[StockRepo] запись %d: %w", id, pkgerrors.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[StockRepo] не удалось получить запись", err)
	}
	return &stock, nil
}

func (r *StockRepository) Create(ctx context.Context, exec sqlx.ExtContext, stock *model.Stock) (int64, error) {
	var id int64
	query := `
		INSERT INTO stocks (status, user_creation, user_modification, opening_date, product_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := exec.QueryRowxContext(ctx, query,
		stock.Status, stock.UserCreation, stock.UserModification, stock.OpeningDate, stock.ProductID).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("[StockRepo] продукт %d не существует: %w", stock.ProductID, pkgerrors.ErrInvalidInput)
		}
		return 0, util.LogError("[StockRepo] не удалось создать запись", err)
	}
	return id, nil
}

func (r *StockRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status model.StockStatus, userModification string) error {
	query := `UPDATE stocks SET status = $2, user_modification = $3 WHERE id = $1`
	res, err := exec.ExecContext(ctx, query, id, status, userModification)
	if err != nil {
		return util.LogError("[StockRepo] не удалось обновить запись", err)
	}
	return requireAffected(res, pkgerrors.ErrNotFound)
}
