package ports

import (
	"context"
	"food-inventory/internal/model"
	"time"

	"github.com/jmoiron/sqlx"
)

// UserRepository : хранилище учетных данных
type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
	FindByUserName(ctx context.Context, exec sqlx.ExtContext, userName string) (*model.User, error)
	ExistsByUserName(ctx context.Context, exec sqlx.ExtContext, userName string) (bool, error)
	SaveRefreshToken(ctx context.Context, exec sqlx.ExtContext, uuid, refreshToken string, expiry time.Time) error
	RotateRefreshToken(ctx context.Context, exec sqlx.ExtContext, uuid, oldToken, newToken string, now, newExpiry time.Time) (bool, error)
	UpdateProfile(ctx context.Context, exec sqlx.ExtContext, user *model.User) error
	UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid, newPasswordHash string) error
	DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error)
}

// ClaimRepository : claims пользователя (Username, email)
type ClaimRepository interface {
	GetClaims(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Claim, error)
	AddClaim(ctx context.Context, exec sqlx.ExtContext, userUUID string, claim model.Claim) error
	ReplaceClaim(ctx context.Context, exec sqlx.ExtContext, userUUID string, oldClaim, newClaim model.Claim) error
	DeleteClaims(ctx context.Context, exec sqlx.ExtContext, userUUID string) error
}

// RoleRepository : членство в ролях, единственный источник правды о ролях
type RoleRepository interface {
	ListRoles(ctx context.Context, exec sqlx.ExtContext) ([]model.Role, error)
	GetUserRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]string, error)
	GetRolesByUsers(ctx context.Context, exec sqlx.ExtContext, userUUIDs []string) (map[string][]string, error)
	AddToRole(ctx context.Context, exec sqlx.ExtContext, userUUID, roleName string) error
	RemoveFromRoles(ctx context.Context, exec sqlx.ExtContext, userUUID string) error
}

// ResetTokenRepository : одноразовые токены сброса пароля (Redis)
type ResetTokenRepository interface {
	Save(ctx context.Context, token, userUUID string, ttl time.Duration) error
	// Consume : атомарно удаляет токен, только если он выдан userUUID
	Consume(ctx context.Context, token, userUUID string) error
}

type UserService interface {
	GetUser(ctx context.Context, uuid string) (*model.User, error)
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
	UpdateUser(ctx context.Context, uuid string, update *model.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, uuid string) error
	ListRoles(ctx context.Context) ([]model.Role, error)
}

type PasswordService interface {
	UpdatePassword(ctx context.Context, uuid, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}
