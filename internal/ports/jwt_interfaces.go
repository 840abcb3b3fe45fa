package ports

import (
	"food-inventory/internal/model"
	"time"
)

type JWTServiceInterface interface {
	IssueAccessToken(claims []model.Claim) (string, error)
	IssueRefreshToken() string
	RefreshTokenTTL() time.Duration
	ExtractPrincipal(token string) ([]model.Claim, error)
	ValidateAccessToken(token string) ([]model.Claim, error)
}
