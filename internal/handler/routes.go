package handler

import (
	"food-inventory/internal/model"
	"food-inventory/internal/security"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers : все обработчики API
type Handlers struct {
	Authentication *AuthenticationHandler
	User           *UserHandler
	Inventory      *InventoryHandler
}

type accessTokenValidator interface {
	ValidateAccessToken(token string) ([]model.Claim, error)
}

// SetupRoutes : публичные маршруты аутентификации и защищенные JWT маршруты
func SetupRoutes(r chi.Router, h Handlers, validator accessTokenValidator) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Authentication.Login)
		r.Post("/auth/register", h.Authentication.Register)
		r.Post("/auth/forgot-password", h.Authentication.ForgotPassword)
		r.Post("/auth/reset-password", h.Authentication.ResetPassword)
		r.Post("/token/refresh", h.Authentication.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(validator))

			r.Get("/auth/me", h.Authentication.Me)
			setupUserRoutes(r, h.User)
			h.Inventory.Mount(r)
		})
	})
}

// setupUserRoutes : доступ владельца и администратора проверяется в UserService
func setupUserRoutes(r chi.Router, h *UserHandler) {
	r.Group(func(r chi.Router) {
		r.Use(security.RequireRoles(model.RoleAdmin, model.RoleUser))

		r.Get("/users", h.ListUsers)
		r.Get("/roles", h.ListRoles)

		r.Route("/users/{uuid}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Put("/", h.UpdateUser)
			r.Delete("/", h.DeleteUser)
			r.Put("/password", h.UpdatePassword)
		})
	})
}

// NotFound : ответ в формате ErrorResponse для неизвестных маршрутов
func NotFound(w http.ResponseWriter, _ *http.Request) {
	sendErrorResponse(w, http.StatusNotFound, "not found")
}
