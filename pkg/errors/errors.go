package errors

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidToken      = errors.New("invalid token")
	ErrSigningKeyMissing = errors.New("jwt signing key is not configured")
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	ErrWeakPassword      = errors.New("password does not satisfy policy")
	ErrRotationConflict  = errors.New("refresh token was rotated concurrently")
)

// StoreError : ошибки уровня хранилища при создании пользователя (дубликаты, ограничения)
type StoreError struct {
	Descriptions []string
}

func (e *StoreError) Error() string {
	return strings.Join(e.Descriptions, " ")
}

func NewStoreError(descriptions ...string) *StoreError {
	return &StoreError{Descriptions: descriptions}
}

// AsStoreError : достает StoreError из цепочки ошибок
func AsStoreError(err error) (*StoreError, bool) {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}
