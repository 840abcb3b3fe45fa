package service

import (
	"context"
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/ports"
	"food-inventory/internal/security"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"
)

const maxListLimit = 100

type UserService struct {
	db                ports.Database
	userRepository    ports.UserRepository
	claimRepository   ports.ClaimRepository
	roleRepository    ports.RoleRepository
	claimSynchronizer *ClaimSynchronizer
}

func NewUserService(
	db ports.Database,
	userRepository ports.UserRepository,
	claimRepository ports.ClaimRepository,
	roleRepository ports.RoleRepository,
	claimSynchronizer *ClaimSynchronizer,
) *UserService {
	return &UserService{
		db:                db,
		userRepository:    userRepository,
		claimRepository:   claimRepository,
		roleRepository:    roleRepository,
		claimSynchronizer: claimSynchronizer,
	}
}

// restrictToOwnerOrAdmin : доступ к чужому профилю только у администратора
func restrictToOwnerOrAdmin(ctx context.Context, uuid string) (*security.Principal, error) {
	principal, err := security.GetPrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}
	if !principal.IsAdmin() && principal.UserUUID != uuid {
		return nil, fmt.Errorf("[UserService] %w", pkgerrors.ErrAccessDenied)
	}
	return principal, nil
}

func (s *UserService) GetUser(ctx context.Context, uuid string) (*model.User, error) {
	if _, err := restrictToOwnerOrAdmin(ctx, uuid); err != nil {
		return nil, err
	}

	user, err := s.userRepository.FindByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	user.Roles, err = s.roleRepository.GetUserRoles(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	if _, err := security.GetPrincipalFromContext(ctx); err != nil {
		return nil, "", fmt.Errorf("[UserService] %w", err)
	}
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	users, nextCursor, err := s.userRepository.ListUsers(ctx, s.db, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("[UserService] %w", err)
	}

	uuids := make([]string, 0, len(users))
	for _, u := range users {
		uuids = append(uuids, u.UUID)
	}
	roles, err := s.roleRepository.GetRolesByUsers(ctx, s.db, uuids)
	if err != nil {
		return nil, "", fmt.Errorf("[UserService] %w", err)
	}
	for _, u := range users {
		u.Roles = roles[u.UUID]
	}

	return users, nextCursor, nil
}

// UpdateUser : обновляет профиль и синхронизирует claims в одной транзакции.
// Менять роль может только администратор
func (s *UserService) UpdateUser(ctx context.Context, uuid string, update *model.UserUpdate) (*model.User, error) {
	principal, err := restrictToOwnerOrAdmin(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if update == nil {
		return nil, fmt.Errorf("[UserService] пустое обновление: %w", pkgerrors.ErrInvalidInput)
	}
	if update.Role != "" && !principal.IsAdmin() {
		return nil, fmt.Errorf("[UserService] смена роли: %w", pkgerrors.ErrAccessDenied)
	}
	if update.UserName != "" {
		if p := userNameProblem(update.UserName); p != "" {
			return nil, fmt.Errorf("[UserService] %s: %w", p, pkgerrors.ErrInvalidInput)
		}
	}
	if update.Email != "" {
		if p := emailProblem(update.Email); p != "" {
			return nil, fmt.Errorf("[UserService] %s: %w", p, pkgerrors.ErrInvalidInput)
		}
	}

	tx, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[UserService] не удалось открыть транзакцию", err)
	}
	defer rollback()

	user, err := s.userRepository.FindByUUID(ctx, tx, uuid)
	if err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	applyUpdate(user, update)
	if err := s.userRepository.UpdateProfile(ctx, tx, user); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}
	if err := s.claimSynchronizer.Sync(ctx, tx, uuid, update); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	user.Roles, err = s.roleRepository.GetUserRoles(ctx, tx, uuid)
	if err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[UserService] не удалось зафиксировать транзакцию", err)
	}
	return user, nil
}

func applyUpdate(user *model.User, update *model.UserUpdate) {
	if update.UserName != "" {
		user.UserName = update.UserName
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
}

// DeleteUser : только администратор
func (s *UserService) DeleteUser(ctx context.Context, uuid string) error {
	principal, err := security.GetPrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("[UserService] %w", err)
	}
	if !principal.IsAdmin() {
		return fmt.Errorf("[UserService] %w", pkgerrors.ErrAccessDenied)
	}

	tx, rollback, commit, err := s.db.BeginTX(ctx)
	if err != nil {
		return util.LogError("[UserService] не удалось открыть транзакцию", err)
	}
	defer rollback()

	if err := s.claimRepository.DeleteClaims(ctx, tx, uuid); err != nil {
		return fmt.Errorf("[UserService] %w", err)
	}
	if err := s.roleRepository.RemoveFromRoles(ctx, tx, uuid); err != nil {
		return fmt.Errorf("[UserService] %w", err)
	}
	if err := s.userRepository.DeleteUser(ctx, tx, uuid); err != nil {
		return fmt.Errorf("[UserService] %w", err)
	}

	if err := commit(); err != nil {
		return util.LogError("[UserService] не удалось зафиксировать транзакцию", err)
	}
	return nil
}

// ListRoles : только администратор
func (s *UserService) ListRoles(ctx context.Context) ([]model.Role, error) {
	principal, err := security.GetPrincipalFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}
	if !principal.IsAdmin() {
		return nil, fmt.Errorf("[UserService] %w", pkgerrors.ErrAccessDenied)
	}

	roles, err := s.roleRepository.ListRoles(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}
	return roles, nil
}
