package repository

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	uniqueViolation = "23505"
	checkViolation  = "23514"

	userColumns = `uuid, user_name, email, password_hash, first_name, last_name,
		refresh_token, refresh_token_expiry_time, created_at`
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// CreateUser : сохраняет нового пользователя. Нарушения ограничений возвращаются как StoreError
func (r *UserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, user_name, email, password_hash, first_name, last_name)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING uuid, user_name, email, created_at
	`

	createdUser := &model.User{}
	err := exec.QueryRowxContext(ctx, query,
		user.UUID, user.UserName, user.Email, user.PasswordHash, user.FirstName, user.LastName).
		Scan(&createdUser.UUID, &createdUser.UserName, &createdUser.Email, &createdUser.CreatedAt)

	if err != nil {
		if storeErr := storeErrorFromPQ(err); storeErr != nil {
			return nil, storeErr
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	createdUser.FirstName = user.FirstName
	createdUser.LastName = user.LastName
	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	return r.findOne(ctx, exec, "uuid", uuid)
}

// FindByEmail : ищет пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	return r.findOne(ctx, exec, "email", email)
}

// FindByUserName : ищет пользователя по имени (точное совпадение)
func (r *UserRepository) FindByUserName(ctx context.Context, exec sqlx.ExtContext, userName string) (*model.User, error) {
	return r.findOne(ctx, exec, "user_name", userName)
}

func (r *UserRepository) findOne(ctx context.Context, exec sqlx.ExtContext, column, value string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[UserRepo] поиск по %s: %w", column, pkgerrors.ErrUserNotFound)
	}
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// ExistsByUserName : проверяет, занято ли имя пользователя
func (r *UserRepository) ExistsByUserName(ctx context.Context, exec sqlx.ExtContext, userName string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE user_name = $1)`
	err := sqlx.GetContext(ctx, exec, &exists, query, userName)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// SaveRefreshToken : безусловно перезаписывает refresh токен (вход по паролю)
func (r *UserRepository) SaveRefreshToken(ctx context.Context, exec sqlx.ExtContext, uuid, refreshToken string, expiry time.Time) error {
	query := `UPDATE users SET refresh_token = $2, refresh_token_expiry_time = $3 WHERE uuid = $1`
	res, err := exec.ExecContext(ctx, query, uuid, refreshToken, expiry)
	if err != nil {
		return util.LogError("[UserRepo] не удалось сохранить refresh токен", err)
	}
	return requireAffected(res, pkgerrors.ErrUserNotFound)
}

// RotateRefreshToken : условная замена refresh токена. Запись происходит только если
// в БД все еще лежит oldToken и он не истек. false означает, что ротацию выполнил кто-то другой
func (r *UserRepository) RotateRefreshToken(ctx context.Context, exec sqlx.ExtContext, uuid, oldToken, newToken string, now, newExpiry time.Time) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token = $3, refresh_token_expiry_time = $5
		WHERE uuid = $1 AND refresh_token = $2 AND refresh_token_expiry_time > $4
	`
	res, err := exec.ExecContext(ctx, query, uuid, oldToken, newToken, now, newExpiry)
	if err != nil {
		return false, util.LogError("[UserRepo] не удалось выполнить ротацию refresh токена", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, util.LogError("[UserRepo] не удалось получить число обновленных строк", err)
	}
	return affected == 1, nil
}

// UpdateProfile : обновляет имя, email и ФИО
func (r *UserRepository) UpdateProfile(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	query := `
		UPDATE users
		SET user_name = $2, email = $3, first_name = $4, last_name = $5
		WHERE uuid = $1
	`
	res, err := exec.ExecContext(ctx, query, user.UUID, user.UserName, user.Email, user.FirstName, user.LastName)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			if pqErr.Constraint == "users_email_key" {
				return pkgerrors.ErrEmailExists
			}
			return pkgerrors.ErrUsernameExists
		}
		return util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}
	return requireAffected(res, pkgerrors.ErrUserNotFound)
}

// UpdatePassword : меняет пароль пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE uuid = $1`
	res, err := exec.ExecContext(ctx, query, uuid, newPasswordHash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пароль", err)
	}
	return requireAffected(res, pkgerrors.ErrUserNotFound)
}

// DeleteUser : удаляет пользователя по его UUID
func (r *UserRepository) DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `DELETE FROM users WHERE uuid = $1`
	res, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}
	return requireAffected(res, pkgerrors.ErrUserNotFound)
}

// ListUsers : вывод списка пользователей с keyset-пагинацией по (created_at, uuid)
func (r *UserRepository) ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM users
        WHERE (created_at, uuid) > ($1, $2)
        ORDER BY created_at ASC, uuid ASC
        LIMIT $3
    `, userColumns)

	after, afterUUID, err := decodeUserCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	var users []*model.User
	err = sqlx.SelectContext(ctx, exec, &users, query, after, afterUUID, limit+1) // +1 для проверки наличия следующей страницы
	if err != nil {
		return nil, "", util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}

	var nextCursor string
	if len(users) > limit {
		users = users[:limit]
		last := users[len(users)-1]
		nextCursor = encodeUserCursor(last.CreatedAt, last.UUID)
	}

	return users, nextCursor, nil
}

// Курсор : base64url("created_at|uuid"), непрозрачен для клиента
func encodeUserCursor(createdAt time.Time, userUUID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(createdAt.UTC().Format(time.RFC3339Nano) + "|" + userUUID))
}

func decodeUserCursor(cursor string) (time.Time, string, error) {
	if cursor == "" {
		return time.Time{}, uuid.Nil.String(), nil
	}

	invalid := fmt.Errorf("invalid cursor format: %w", pkgerrors.ErrInvalidInput)
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", invalid
	}
	createdAt, userUUID, ok := strings.Cut(string(raw), "|")
	if !ok {
		return time.Time{}, "", invalid
	}
	after, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return time.Time{}, "", invalid
	}
	id, err := uuid.Parse(userUUID)
	if err != nil {
		return time.Time{}, "", invalid
	}
	return after, id.String(), nil
}

func storeErrorFromPQ(err error) *pkgerrors.StoreError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch pqErr.Code {
	case uniqueViolation:
		switch pqErr.Constraint {
		case "users_email_key":
			return pkgerrors.NewStoreError("Email is already taken.")
		case "users_user_name_key":
			return pkgerrors.NewStoreError("Username is already taken.")
		}
		return pkgerrors.NewStoreError("Duplicate value: " + pqErr.Detail)
	case checkViolation:
		return pkgerrors.NewStoreError("Invalid value: " + pqErr.Message)
	}
	return nil
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return util.LogError("[repository] не удалось получить число обновленных строк", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
