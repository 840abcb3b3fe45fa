package security

import (
	"context"
	"food-inventory/internal/model"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const (
	PrincipalContextKey contextKey = "principal"
)

// Principal : пользователь, восстановленный из access токена
type Principal struct {
	UserUUID string
	UserName string
	Email    string
	Roles    []string
	Claims   []model.Claim
}

func NewPrincipal(claims []model.Claim) *Principal {
	p := &Principal{Claims: claims}
	p.UserUUID, _ = model.FindClaim(claims, model.ClaimUserID)
	p.UserName, _ = model.FindClaim(claims, model.ClaimUsername)
	p.Email, _ = model.FindClaim(claims, model.ClaimEmail)
	for _, c := range claims {
		if c.Type == model.ClaimRole {
			p.Roles = append(p.Roles, c.Value)
		}
	}
	return p
}

func (p *Principal) IsAdmin() bool {
	return model.HasRole(p.Claims, model.RoleAdmin)
}

type accessTokenValidator interface {
	ValidateAccessToken(token string) ([]model.Claim, error)
}

func JWTMiddleware(validator accessTokenValidator) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				util.HandleError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				log.Printf("[JWTMiddleware] невалидный токен: %v", err)
				util.HandleError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := WithPrincipal(r.Context(), NewPrincipal(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles : пропускает запрос, если у пользователя есть хотя бы одна из ролей
func RequireRoles(roles ...string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := GetPrincipalFromContext(r.Context())
			if err != nil {
				util.HandleError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !model.HasRole(principal.Claims, roles...) {
				util.HandleError(w, "access denied", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken : токен из заголовка Authorization
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalContextKey, p)
}

func GetPrincipalFromContext(ctx context.Context) (*Principal, error) {
	p, ok := ctx.Value(PrincipalContextKey).(*Principal)
	if !ok || p == nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	return p, nil
}
