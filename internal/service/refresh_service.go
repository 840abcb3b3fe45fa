package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/observability"
	"food-inventory/internal/ports"
	pkgerrors "food-inventory/pkg/errors"
	"log"
	"time"
)

const (
	MsgInvalidRequest = "invalid request"
	MsgTokenRefreshed = "new token generated"
)

// причины отказа, видны только в логах и метриках
const (
	rejectNoAccessToken    = "no_access_token"
	rejectBadPrincipal     = "bad_principal"
	rejectNoUsernameClaim  = "no_username_claim"
	rejectUserNotFound     = "user_not_found"
	rejectTokenMismatch    = "token_mismatch"
	rejectTokenExpired     = "token_expired"
	rejectConcurrentRotate = "concurrent_rotation"
)

type RefreshService struct {
	db              ports.Database
	userRepository  ports.UserRepository
	claimRepository ports.ClaimRepository
	roleRepository  ports.RoleRepository
	jwtService      ports.JWTServiceInterface
	now             func() time.Time
}

func NewRefreshService(
	db ports.Database,
	userRepository ports.UserRepository,
	claimRepository ports.ClaimRepository,
	roleRepository ports.RoleRepository,
	jwtService ports.JWTServiceInterface,
) *RefreshService {
	return &RefreshService{
		db:              db,
		userRepository:  userRepository,
		claimRepository: claimRepository,
		roleRepository:  roleRepository,
		jwtService:      jwtService,
		now:             time.Now,
	}
}

// Refresh обновляет пару токенов по (возможно истекшему) access токену и refresh токену.
// Проверки выполняются по порядку, первая неудача завершает обработку:
//  1. access токен передан;
//  2. подпись access токена верна (срок действия не проверяется);
//  3. в токене есть Username и такой пользователь существует;
//  4. refresh токен совпадает с сохраненным и еще не истек.
//
// Новый access токен строится из актуальных claims хранилища. Запись нового refresh токена
// условная: если старый токен уже заменен параллельным запросом, обновление отклоняется.
//
// Любой отказ возвращает один и тот же ответ "invalid request", причина пишется в лог.
// error возвращается только при отказе БД или отсутствии ключа подписи
func (s *RefreshService) Refresh(ctx context.Context, accessToken, refreshToken string) (*model.SessionResult, error) {
	ctx, span := observability.StartSpan(ctx, "Refresh")
	defer span.End()

	reject := func(reason string) (*model.SessionResult, error) {
		log.Printf("[RefreshService] refresh отклонен: %s", reason)
		observability.RefreshTotal.WithLabelValues(observability.ResultRejected, reason).Inc()
		observability.FailSpan(span, nil, reason)
		return model.FailedSession(MsgInvalidRequest), nil
	}
	fail := func(err error) (*model.SessionResult, error) {
		observability.RefreshTotal.WithLabelValues(observability.ResultError, "").Inc()
		observability.FailSpan(span, err, "refresh failed")
		return nil, err
	}

	if accessToken == "" {
		return reject(rejectNoAccessToken)
	}

	extracted, err := s.jwtService.ExtractPrincipal(accessToken)
	if errors.Is(err, pkgerrors.ErrSigningKeyMissing) {
		return fail(err)
	}
	if err != nil {
		return reject(rejectBadPrincipal)
	}

	userName, ok := model.FindClaim(extracted, model.ClaimUsername)
	if !ok || userName == "" {
		return reject(rejectNoUsernameClaim)
	}

	user, err := s.userRepository.FindByUserName(ctx, s.db, userName)
	if errors.Is(err, pkgerrors.ErrUserNotFound) {
		return reject(rejectUserNotFound)
	}
	if err != nil {
		return fail(fmt.Errorf("[RefreshService] ошибка поиска пользователя: %w", err))
	}

	if refreshToken == "" || user.RefreshToken == nil ||
		subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(refreshToken)) != 1 {
		return reject(rejectTokenMismatch)
	}

	now := s.now()
	if !user.RefreshTokenExpiryTime.After(now) {
		return reject(rejectTokenExpired)
	}

	claims, err := principalClaims(ctx, s.db, s.claimRepository, s.roleRepository, user)
	if err != nil {
		return fail(fmt.Errorf("[RefreshService] ошибка загрузки claims: %w", err))
	}

	newAccessToken, err := s.jwtService.IssueAccessToken(claims)
	if err != nil {
		return fail(fmt.Errorf("[RefreshService] ошибка выдачи access токена: %w", err))
	}
	newRefreshToken := s.jwtService.IssueRefreshToken()

	rotated, err := s.userRepository.RotateRefreshToken(ctx, s.db, user.UUID,
		refreshToken, newRefreshToken, now, now.Add(s.jwtService.RefreshTokenTTL()))
	if err != nil {
		return fail(fmt.Errorf("[RefreshService] ошибка ротации refresh токена: %w", err))
	}
	if !rotated {
		return reject(rejectConcurrentRotate)
	}

	observability.RefreshTotal.WithLabelValues(observability.ResultSuccess, "").Inc()
	return &model.SessionResult{
		IsSucceed:    true,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		Message:      MsgTokenRefreshed,
	}, nil
}
