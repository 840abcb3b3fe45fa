package service

import (
	"context"
	"errors"
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/notifier"
	"food-inventory/internal/ports"
	"food-inventory/internal/security"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"
	"strings"
	"time"
)

const resetTokenBytes = 32

// PasswordResetOptions : параметры писем восстановления пароля
type PasswordResetOptions struct {
	ResetURL    string
	TokenTTL    time.Duration
	SendTimeout time.Duration
}

type PasswordService struct {
	db                   ports.Database
	userRepository       ports.UserRepository
	resetTokenRepository ports.ResetTokenRepository
	notifier             ports.Notifier
	options              PasswordResetOptions
}

func NewPasswordService(
	db ports.Database,
	userRepository ports.UserRepository,
	resetTokenRepository ports.ResetTokenRepository,
	notifier ports.Notifier,
	options PasswordResetOptions,
) *PasswordService {
	return &PasswordService{
		db:                   db,
		userRepository:       userRepository,
		resetTokenRepository: resetTokenRepository,
		notifier:             notifier,
		options:              options,
	}
}

// UpdatePassword : сменить пароль может только сам пользователь
func (s *PasswordService) UpdatePassword(ctx context.Context, uuid, newPassword string) error {
	principal, err := security.GetPrincipalFromContext(ctx)
	if err != nil {
		return fmt.Errorf("[PasswordService] %w", err)
	}
	if principal.UserUUID != uuid {
		return fmt.Errorf("[PasswordService] %w", pkgerrors.ErrAccessDenied)
	}

	return s.setPassword(ctx, uuid, newPassword)
}

// ForgotPassword : для неизвестного email тоже возвращает nil
func (s *PasswordService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("[PasswordService] email не указан: %w", pkgerrors.ErrInvalidInput)
	}

	user, err := s.userRepository.FindByEmail(ctx, s.db, email)
	if errors.Is(err, pkgerrors.ErrUserNotFound) {
		return nil
	} else if err != nil {
		return fmt.Errorf("[PasswordService] %w", err)
	}

	token, err := util.GenerateURLSafeToken(resetTokenBytes)
	if err != nil {
		return err
	}
	if err := s.resetTokenRepository.Save(ctx, token, user.UUID, s.options.TokenTTL); err != nil {
		return fmt.Errorf("[PasswordService] %w", err)
	}

	notifier.SendAsync(s.notifier, model.Message{
		To:      user.Email,
		Subject: notifier.PasswordResetSubject,
		Body:    notifier.PasswordResetBody(s.options.ResetURL, user.Email, token),
	}, s.options.SendTimeout)

	return nil
}

// ResetPassword : токен одноразовый и должен принадлежать владельцу email.
// Пароль проверяется и хэшируется до использования токена, поэтому слабый пароль токен не сжигает
func (s *PasswordService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if email == "" || token == "" {
		return fmt.Errorf("[PasswordService] %w", pkgerrors.ErrInvalidInput)
	}
	// пробелы появляются, когда '+' из ссылки декодирован как форма
	token = strings.ReplaceAll(token, " ", "+")

	hash, err := hashNewPassword(newPassword)
	if err != nil {
		return err
	}

	user, err := s.userRepository.FindByEmail(ctx, s.db, email)
	if errors.Is(err, pkgerrors.ErrUserNotFound) {
		return fmt.Errorf("[PasswordService] %w", pkgerrors.ErrResetTokenInvalid)
	} else if err != nil {
		return fmt.Errorf("[PasswordService] %w", err)
	}

	if err := s.resetTokenRepository.Consume(ctx, token, user.UUID); err != nil {
		return fmt.Errorf("[PasswordService] %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, s.db, user.UUID, hash); err != nil {
		return fmt.Errorf("[PasswordService] %w", err)
	}
	return nil
}

func (s *PasswordService) setPassword(ctx context.Context, uuid, newPassword string) error {
	hash, err := hashNewPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepository.UpdatePassword(ctx, s.db, uuid, hash); err != nil {
		return fmt.Errorf("[PasswordService] %w", err)
	}
	return nil
}

func hashNewPassword(newPassword string) (string, error) {
	if err := security.ValidatePasswordPolicy(newPassword); err != nil {
		return "", fmt.Errorf("[PasswordService] %w", err)
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return "", util.LogError("[PasswordService] ошибка хэширования пароля", err)
	}
	return hash, nil
}
