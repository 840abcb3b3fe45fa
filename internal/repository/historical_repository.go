package repository

import (
	"context"
	"food-inventory/internal/model"
	"food-inventory/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type HistoricalRepository struct{}

func NewHistoricalRepository() *HistoricalRepository {
	return &HistoricalRepository{}
}

func (r *HistoricalRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Historical, error) {
	query := `SELECT id, controle_date, action, stock_id FROM historicals ORDER BY controle_date DESC, id DESC`
	var items []model.Historical
	if err := sqlx.SelectContext(ctx, exec, &items, query); err != nil {
		return nil, util.LogError("[HistoricalRepo] не удалось получить историю", err)
	}
	return items, nil
}

func (r *HistoricalRepository) ListByStockIDs(ctx context.Context, exec sqlx.ExtContext, stockIDs []int64) ([]model.Historical, error) {
	if len(stockIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, controle_date, action, stock_id
		FROM historicals
		WHERE stock_id = ANY($1)
		ORDER BY controle_date, id
	`
	var items []model.Historical
	if err := sqlx.SelectContext(ctx, exec, &items, query, pq.Array(stockIDs)); err != nil {
		return nil, util.LogError("[HistoricalRepo] не удалось получить историю записей", err)
	}
	return items, nil
}

func (r *HistoricalRepository) Create(ctx context.Context, exec sqlx.ExtContext, historical *model.Historical) error {
	query := `INSERT INTO historicals (controle_date, action, stock_id) VALUES ($1, $2, $3)`
	if _, err := exec.ExecContext(ctx, query, historical.ControleDate, historical.Action, historical.StockID); err != nil {
		return util.LogError("[HistoricalRepo] не удалось добавить запись истории", err)
	}
	return nil
}
