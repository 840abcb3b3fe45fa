package service

import (
	"context"
	"food-inventory/internal/model"
	"food-inventory/internal/ports"

	"github.com/jmoiron/sqlx"
)

// principalClaims : claims для access токена. Username и email берутся из хранилища,
// роли из членства в ролях, uid из записи пользователя. Хранимые role/uid игнорируются
func principalClaims(
	ctx context.Context,
	exec sqlx.ExtContext,
	claimRepository ports.ClaimRepository,
	roleRepository ports.RoleRepository,
	user *model.User,
) ([]model.Claim, error) {
	stored, err := claimRepository.GetClaims(ctx, exec, user.UUID)
	if err != nil {
		return nil, err
	}
	roles, err := roleRepository.GetUserRoles(ctx, exec, user.UUID)
	if err != nil {
		return nil, err
	}

	claims := []model.Claim{{Type: model.ClaimUserID, Value: user.UUID}}
	for _, c := range stored {
		if c.Type == model.ClaimRole || c.Type == model.ClaimUserID {
			continue
		}
		claims = append(claims, c)
	}
	for _, role := range roles {
		claims = append(claims, model.Claim{Type: model.ClaimRole, Value: role})
	}
	return claims, nil
}
