package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"food-inventory/config"
	"food-inventory/internal/model"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const refreshTokenBytes = 32

// registeredClaims : служебные поля JWT, которые не относятся к principal
var registeredClaims = map[string]struct{}{
	"iss": {}, "aud": {}, "exp": {}, "nbf": {}, "iat": {}, "jti": {}, "sub": {},
}

type JWTService struct {
	cfg        *config.JWTConfig
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTService : проверяет конфигурацию один раз при старте.
// Ошибка здесь означает, что сервис работать не может
func NewJWTService(cfg *config.JWTConfig) (*JWTService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("[JWTService] конфигурация не задана: %w", pkgerrors.ErrSigningKeyMissing)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("[JWTService] некорректная конфигурация: %w", err)
	}

	accessTTL, _ := config.ParsePositiveDuration(cfg.AccessTokenTTL)
	refreshTTL, _ := config.ParsePositiveDuration(cfg.RefreshTokenTTL)

	return &JWTService{
		cfg:        cfg,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// WithClock : подменяет источник времени (для тестов)
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

func (s *JWTService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// IssueAccessToken : подписанный HS256 токен, содержащий ровно переданные claims
// плюс iss, aud, iat и exp. Claim, встречающийся несколько раз, кодируется массивом
func (s *JWTService) IssueAccessToken(claims []model.Claim) (string, error) {
	if s.cfg.SecretKey == "" {
		return "", pkgerrors.ErrSigningKeyMissing
	}

	now := s.now()
	mapClaims := jwt.MapClaims{
		"iss": s.cfg.Issuer,
		"aud": s.cfg.Audience,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(s.accessTTL)),
	}

	for _, c := range claims {
		if _, reserved := registeredClaims[c.Type]; reserved {
			return "", fmt.Errorf("[JWTService] claim %q зарезервирован", c.Type)
		}
		switch existing := mapClaims[c.Type].(type) {
		case nil:
			mapClaims[c.Type] = c.Value
		case string:
			mapClaims[c.Type] = []string{existing, c.Value}
		case []string:
			mapClaims[c.Type] = append(existing, c.Value)
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", util.LogError("[JWTService] ошибка подписи токена", err)
	}

	return signed, nil
}

// IssueRefreshToken : 32 случайных байта в base64.
// Отказ источника случайности фатален для процесса
func (s *JWTService) IssueRefreshToken() string {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand: %v", err))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// ExtractPrincipal : проверяет подпись и алгоритм, но НЕ срок действия, issuer и audience.
// Используется при refresh, когда access токен уже истек
func (s *JWTService) ExtractPrincipal(tokenStr string) ([]model.Claim, error) {
	if s.cfg.SecretKey == "" {
		return nil, pkgerrors.ErrSigningKeyMissing
	}

	mapClaims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, mapClaims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidToken, err)
	}

	return principalClaims(mapClaims)
}

// ValidateAccessToken : полная проверка для защищенных маршрутов
func (s *JWTService) ValidateAccessToken(tokenStr string) ([]model.Claim, error) {
	if s.cfg.SecretKey == "" {
		return nil, pkgerrors.ErrSigningKeyMissing
	}

	mapClaims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, mapClaims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidToken, err)
	}

	return principalClaims(mapClaims)
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
	}
	return []byte(s.cfg.SecretKey), nil
}

func principalClaims(mapClaims jwt.MapClaims) ([]model.Claim, error) {
	keys := make([]string, 0, len(mapClaims))
	for k := range mapClaims {
		if _, reserved := registeredClaims[k]; !reserved {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	claims := make([]model.Claim, 0, len(keys))
	for _, k := range keys {
		switch v := mapClaims[k].(type) {
		case string:
			claims = append(claims, model.Claim{Type: k, Value: v})
		case []interface{}:
			for _, item := range v {
				str, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: claim %q содержит не строку", pkgerrors.ErrInvalidToken, k)
				}
				claims = append(claims, model.Claim{Type: k, Value: str})
			}
		default:
			return nil, fmt.Errorf("%w: claim %q имеет тип %T", pkgerrors.ErrInvalidToken, k, v)
		}
	}

	return claims, nil
}
