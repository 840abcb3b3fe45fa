package handler

import (
	"food-inventory/internal/model"
	"food-inventory/internal/model/requestresponse"
	"food-inventory/internal/ports"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultUsersLimit = 50
	maxUsersLimit     = 100
)

type UserHandler struct {
	userService     ports.UserService
	passwordService ports.PasswordService
}

func NewUserHandler(userService ports.UserService, passwordService ports.PasswordService) *UserHandler {
	return &UserHandler{userService: userService, passwordService: passwordService}
}

// GetUser godoc
// @Summary Получение информации о пользователе
// @Description Возвращает данные пользователя с ролями. Доступен самому пользователю и администратору.
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userUUID, ok := parseUserUUID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userUUID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.UserResponse{Response: user})
}

// UpdateUser godoc
// @Summary Обновление данных пользователя
// @Description Обновляет профиль и claims пользователя в одной транзакции. Роль меняет только администратор.
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.UpdateUserRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userUUID, ok := parseUserUUID(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	update := &model.UserUpdate{
		UserName:  req.UserName,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}
	user, err := h.userService.UpdateUser(r.Context(), userUUID, update)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.UserResponse{Response: user})
}

// UpdatePassword godoc
// @Summary Обновление пароля пользователя
// @Description Позволяет пользователю обновить свой пароль. Доступен только владельцу.
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.UpdatePasswordRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UpdatePasswordResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid}/password [put]
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userUUID, ok := parseUserUUID(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdatePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.passwordService.UpdatePassword(r.Context(), userUUID, req.NewPassword); err != nil {
		sendServiceError(w, err)
		return
	}

	resp := requestresponse.UpdatePasswordResponse{}
	resp.Response.Updated = true
	sendJSON(w, http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary Удаление пользователя
// @Description Удаляет пользователя вместе с claims и ролями. Только администратор.
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Пользователь успешно удалён"
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный UUID"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/{uuid} [delete]
// @Security BearerAuth
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userUUID, ok := parseUserUUID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userUUID); err != nil {
		sendServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUsers godoc
// @Summary Получение списка пользователей
// @Description Возвращает список пользователей с ролями и постраничной навигацией (cursor-based).
// @Tags Users
// @Produce json
// @Param cursor query string false "Курсор для пагинации"
// @Param limit query int false "Количество пользователей в списке" default(50) minimum(1) maximum(100)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный курсор"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users [get]
// @Security BearerAuth
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limit := defaultUsersLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = min(l, maxUsersLimit)
		}
	}

	users, nextCursor, err := h.userService.ListUsers(r.Context(), cursor, limit)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	resp := requestresponse.ListUsersResponse{}
	resp.Data.Users = users
	resp.Data.NextCursor = nextCursor
	sendJSON(w, http.StatusOK, resp)
}

// ListRoles godoc
// @Summary Список ролей
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListRolesResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/roles [get]
// @Security BearerAuth
func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.userService.ListRoles(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.ListRolesResponse{Response: roles})
}

// parseUserUUID : uuid из пути в каноническом виде, иначе 400 до обращения к БД
func parseUserUUID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid user id")
		return "", false
	}
	return id.String(), true
}
