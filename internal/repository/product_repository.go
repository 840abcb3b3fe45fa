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
	"github.com/lib/pq"
)

const (
	foreignKeyViolation = "23503"

	productSelect = `
	SELECT p.id, p.name, p.description, p.duration_conservation, p.category_id,
		c.name AS category_name,
		COUNT(s.id) FILTER (WHERE s.status = 0) AS nb_product_stock
	FROM products p
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN stocks s ON s.product_id = p.id
`
	productGroup = ` GROUP BY p.id, c.name`
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Product, error) {
	query := productSelect + productGroup + ` ORDER BY p.name`
	var products []model.Product
	if err := sqlx.SelectContext(ctx, exec, &products, query); err != nil {
		return nil, util.LogError("[ProductRepo] не удалось получить продукты", err)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Product, error) {
	query := productSelect + ` WHERE p.id = $1` + productGroup
	var product model.Product
	err := sqlx.GetContext(ctx, exec, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[ProductRepo] продукт %d: %w", id, pkgerrors.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[ProductRepo] не удалось получить продукт", err)
	}
	return &product, nil
}

// ListByCategoryIDs : продукты из любой из перечисленных категорий
func (r *ProductRepository) ListByCategoryIDs(ctx context.Context, exec sqlx.ExtContext, categoryIDs []int64) ([]model.Product, error) {
	query := productSelect + ` WHERE p.category_id = ANY($1)` + productGroup + ` ORDER BY p.name`
	var products []model.Product
	if err := sqlx.SelectContext(ctx, exec, &products, query, pq.Array(categoryIDs)); err != nil {
		return nil, util.LogError("[ProductRepo] не удалось получить продукты по категориям", err)
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, exec sqlx.ExtContext, product *model.Product) (int64, error) {
	var id int64
	query := `
		INSERT INTO products (name, description, duration_conservation, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := exec.QueryRowxContext(ctx, query,
		product.Name, product.Description, product.DurationConservation, product.CategoryID).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("[ProductRepo] категория %d не существует: %w", product.CategoryID, pkgerrors.ErrInvalidInput)
		}
		return 0, util.LogError("[ProductRepo] не удалось создать продукт", err)
	}
	return id, nil
}

func (r *ProductRepository) Update(ctx context.Context, exec sqlx.ExtContext, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, duration_conservation = $4, category_id = $5
		WHERE id = $1
	`
	res, err := exec.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.DurationConservation, product.CategoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("[ProductRepo] категория %d не существует: %w", product.CategoryID, pkgerrors.ErrInvalidInput)
		}
		return util.LogError("[ProductRepo] не удалось обновить продукт", err)
	}
	return requireAffected(res, pkgerrors.ErrNotFound)
}

func (r *ProductRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return util.LogError("[ProductRepo] не удалось удалить продукт", err)
	}
	return requireAffected(res, pkgerrors.ErrNotFound)
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
