package service

import (
	"context"
	"errors"
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/ports"
	pkgerrors "food-inventory/pkg/errors"

	"github.com/jmoiron/sqlx"
)

// ClaimSynchronizer : держит хранимые claims Username/email в соответствии с профилем.
// Роль хранится только как членство, claim role выводится при выдаче токена
type ClaimSynchronizer struct {
	claimRepository ports.ClaimRepository
	roleRepository  ports.RoleRepository
}

func NewClaimSynchronizer(claimRepository ports.ClaimRepository, roleRepository ports.RoleRepository) *ClaimSynchronizer {
	return &ClaimSynchronizer{
		claimRepository: claimRepository,
		roleRepository:  roleRepository,
	}
}

// Sync : exec должен быть транзакцией, тогда частичный результат невозможен
func (s *ClaimSynchronizer) Sync(ctx context.Context, exec sqlx.ExtContext, userUUID string, update *model.UserUpdate) error {
	if update == nil {
		return nil
	}

	stored, err := s.claimRepository.GetClaims(ctx, exec, userUUID)
	if err != nil {
		return fmt.Errorf("[ClaimSynchronizer] ошибка чтения claims: %w", err)
	}

	for _, incoming := range []model.Claim{
		{Type: model.ClaimUsername, Value: update.UserName},
		{Type: model.ClaimEmail, Value: update.Email},
	} {
		if err := s.syncClaim(ctx, exec, userUUID, stored, incoming); err != nil {
			return err
		}
	}

	if update.Role != "" {
		if err := s.syncRole(ctx, exec, userUUID, update.Role); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClaimSynchronizer) syncClaim(ctx context.Context, exec sqlx.ExtContext, userUUID string, stored []model.Claim, incoming model.Claim) error {
	if incoming.Value == "" {
		return nil
	}

	current, ok := model.FindClaim(stored, incoming.Type)
	if ok && current == incoming.Value {
		return nil
	}

	if !ok {
		if err := s.claimRepository.AddClaim(ctx, exec, userUUID, incoming); err != nil {
			return fmt.Errorf("[ClaimSynchronizer] ошибка добавления claim %s: %w", incoming.Type, err)
		}
		return nil
	}

	old := model.Claim{Type: incoming.Type, Value: current}
	if err := s.claimRepository.ReplaceClaim(ctx, exec, userUUID, old, incoming); err != nil {
		return fmt.Errorf("[ClaimSynchronizer] ошибка замены claim %s: %w", incoming.Type, err)
	}
	return nil
}

// syncRole : пользователь покидает все роли и получает одну новую
func (s *ClaimSynchronizer) syncRole(ctx context.Context, exec sqlx.ExtContext, userUUID, role string) error {
	current, err := s.roleRepository.GetUserRoles(ctx, exec, userUUID)
	if err != nil {
		return fmt.Errorf("[ClaimSynchronizer] ошибка чтения ролей: %w", err)
	}
	if len(current) == 1 && current[0] == role {
		return nil
	}

	if err := s.roleRepository.RemoveFromRoles(ctx, exec, userUUID); err != nil {
		return fmt.Errorf("[ClaimSynchronizer] ошибка удаления ролей: %w", err)
	}
	if err := s.roleRepository.AddToRole(ctx, exec, userUUID, role); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return fmt.Errorf("[ClaimSynchronizer] неизвестная роль %q: %w", role, pkgerrors.ErrInvalidInput)
		}
		return fmt.Errorf("[ClaimSynchronizer] ошибка назначения роли: %w", err)
	}
	return nil
}
