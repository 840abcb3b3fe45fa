package repository

import (
	"context"
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type RoleRepository struct{}

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{}
}

func (r *RoleRepository) ListRoles(ctx context.Context, exec sqlx.ExtContext) ([]model.Role, error) {
	var roles []model.Role
	if err := sqlx.SelectContext(ctx, exec, &roles, `SELECT id, name FROM roles ORDER BY id`); err != nil {
		return nil, util.LogError("[RoleRepo] не удалось получить роли", err)
	}
	return roles, nil
}

// GetUserRoles : имена ролей пользователя
func (r *RoleRepository) GetUserRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]string, error) {
	query := `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_uuid = $1
		ORDER BY r.name
	`
	var roles []string
	if err := sqlx.SelectContext(ctx, exec, &roles, query, userUUID); err != nil {
		return nil, util.LogError("[RoleRepo] не удалось получить роли пользователя", err)
	}
	return roles, nil
}

// GetRolesByUsers : роли сразу для нескольких пользователей (для списков)
func (r *RoleRepository) GetRolesByUsers(ctx context.Context, exec sqlx.ExtContext, userUUIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(userUUIDs))
	if len(userUUIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ur.user_uuid, r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_uuid = ANY($1)
		ORDER BY ur.user_uuid, r.name
	`
	rows, err := exec.QueryxContext(ctx, query, pq.Array(userUUIDs))
	if err != nil {
		return nil, util.LogError("[RoleRepo] не удалось получить роли пользователей", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userUUID, role string
		if err := rows.Scan(&userUUID, &role); err != nil {
			return nil, util.LogError("[RoleRepo] ошибка чтения строки", err)
		}
		result[userUUID] = append(result[userUUID], role)
	}
	if err := rows.Err(); err != nil {
		return nil, util.LogError("[RoleRepo] ошибка итерации", err)
	}
	return result, nil
}

// AddToRole : добавляет пользователя в роль по имени
func (r *RoleRepository) AddToRole(ctx context.Context, exec sqlx.ExtContext, userUUID, roleName string) error {
	query := `
		INSERT INTO user_roles (user_uuid, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT DO NOTHING
	`
	res, err := exec.ExecContext(ctx, query, userUUID, roleName)
	if err != nil {
		return util.LogError("[RoleRepo] не удалось добавить роль", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return util.LogError("[RoleRepo] не удалось получить число строк", err)
	}
	if affected == 0 {
		// либо роли нет, либо пользователь уже в ней
		var exists bool
		if err := sqlx.GetContext(ctx, exec, &exists, `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, roleName); err != nil {
			return util.LogError("[RoleRepo] ошибка проверки роли", err)
		}
		if !exists {
			return fmt.Errorf("[RoleRepo] роль %q: %w", roleName, pkgerrors.ErrNotFound)
		}
	}
	return nil
}

// RemoveFromRoles : удаляет пользователя из всех ролей
func (r *RoleRepository) RemoveFromRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM user_roles WHERE user_uuid = $1`, userUUID); err != nil {
		return util.LogError("[RoleRepo] не удалось удалить роли пользователя", err)
	}
	return nil
}
