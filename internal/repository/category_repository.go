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

const categorySelect = `
	SELECT c.id, c.name, c.description, COUNT(p.id) AS nb_product
	FROM categories c
	LEFT JOIN products p ON p.category_id = c.id
`

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// List : категории с количеством продуктов
func (r *CategoryRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Category, error) {
	query := categorySelect + ` GROUP BY c.id ORDER BY c.name`
	var categories []model.Category
	if err := sqlx.SelectContext(ctx, exec, &categories, query); err != nil {
		return nil, util.LogError("[CategoryRepo] не удалось получить категории", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Category, error) {
	query := categorySelect + ` WHERE c.id = $1 GROUP BY c.id`
	var category model.Category
	err := sqlx.GetContext(ctx, exec, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[CategoryRepo] категория %d: %w", id, pkgerrors.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[CategoryRepo] не удалось получить категорию", err)
	}
	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, exec sqlx.ExtContext, category *model.Category) (int64, error) {
	var id int64
	query := `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`
	if err := exec.QueryRowxContext(ctx, query, category.Name, category.Description).Scan(&id); err != nil {
		return 0, util.LogError("[CategoryRepo] не удалось создать категорию", err)
	}
	return id, nil
}

func (r *CategoryRepository) Update(ctx context.Context, exec sqlx.ExtContext, category *model.Category) error {
	query := `UPDATE categories SET name = $2, description = $3 WHERE id = $1`
	res, err := exec.ExecContext(ctx, query, category.ID, category.Name, category.Description)
	if err != nil {
		return util.LogError("[CategoryRepo] не удалось обновить категорию", err)
	}
	return requireAffected(res, pkgerrors.ErrNotFound)
}

func (r *CategoryRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return util.LogError("[CategoryRepo] не удалось удалить категорию", err)
	}
	return requireAffected(res, pkgerrors.ErrNotFound)
}
