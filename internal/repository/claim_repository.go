package repository

import (
	"context"
	"food-inventory/internal/model"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"

	"github.com/jmoiron/sqlx"
)

type ClaimRepository struct{}

func NewClaimRepository() *ClaimRepository {
	return &ClaimRepository{}
}

// GetClaims : хранимые claims пользователя в порядке добавления
func (r *ClaimRepository) GetClaims(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Claim, error) {
	query := `SELECT claim_type, claim_value FROM user_claims WHERE user_uuid = $1 ORDER BY id`
	var claims []model.Claim
	if err := sqlx.SelectContext(ctx, exec, &claims, query, userUUID); err != nil {
		return nil, util.LogError("[ClaimRepo] не удалось получить claims", err)
	}
	return claims, nil
}

func (r *ClaimRepository) AddClaim(ctx context.Context, exec sqlx.ExtContext, userUUID string, claim model.Claim) error {
	query := `INSERT INTO user_claims (user_uuid, claim_type, claim_value) VALUES ($1, $2, $3)`
	if _, err := exec.ExecContext(ctx, query, userUUID, claim.Type, claim.Value); err != nil {
		return util.LogError("[ClaimRepo] не удалось добавить claim", err)
	}
	return nil
}

// ReplaceClaim : заменяет одну запись (oldClaim -> newClaim). Если дубликатов несколько,
// меняется только самая ранняя
func (r *ClaimRepository) ReplaceClaim(ctx context.Context, exec sqlx.ExtContext, userUUID string, oldClaim, newClaim model.Claim) error {
	query := `
		UPDATE user_claims
		SET claim_type = $4, claim_value = $5
		WHERE id = (
			SELECT id FROM user_claims
			WHERE user_uuid = $1 AND claim_type = $2 AND claim_value = $3
			ORDER BY id
			LIMIT 1
		)
	`
	res, err := exec.ExecContext(ctx, query, userUUID, oldClaim.Type, oldClaim.Value, newClaim.Type, newClaim.Value)
	if err != nil {
		return util.LogError("[ClaimRepo] не удалось заменить claim", err)
	}
	return requireAffected(res, pkgerrors.ErrNotFound)
}

func (r *ClaimRepository) DeleteClaims(ctx context.Context, exec sqlx.ExtContext, userUUID string) error {
	query := `DELETE FROM user_claims WHERE user_uuid = $1`
	if _, err := exec.ExecContext(ctx, query, userUUID); err != nil {
		return util.LogError("[ClaimRepo] не удалось удалить claims", err)
	}
	return nil
}
