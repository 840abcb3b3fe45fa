package handler

import (
	"food-inventory/internal/model"
	"food-inventory/internal/model/requestresponse"
	"food-inventory/internal/ports"
	"food-inventory/internal/security"
	"log"
	"net/http"
)

type AuthenticationHandler struct {
	authenticationService ports.AuthenticationService
	refreshService        ports.RefreshService
	passwordService       ports.PasswordService
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	refreshService ports.RefreshService,
	passwordService ports.PasswordService,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService: authenticationService,
		refreshService:        refreshService,
		passwordService:       passwordService,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Выдает access и refresh токены по email и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SessionResponse "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} requestresponse.SessionResponse "Неверный email или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	result, err := h.authenticationService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	sendSession(w, result, http.StatusUnauthorized)
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя с ролью User. Токены не выдаются, нужен отдельный вход
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SessionResponse
// @Failure 400 {object} requestresponse.SessionResponse "Ошибки валидации"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	info := &model.RegisterInfo{
		UserName:  req.UserName,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	result, err := h.authenticationService.Register(r.Context(), info, req.Password)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	sendSession(w, result, http.StatusBadRequest)
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Выдает новую пару по истекшему access токену и действующему refresh токену. Старый refresh токен становится недействительным
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SessionResponse
// @Failure 400 {object} requestresponse.SessionResponse "invalid request"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/token/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RefreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.AccessToken == "" {
		req.AccessToken, _ = security.BearerToken(r)
	}

	result, err := h.refreshService.Refresh(r.Context(), req.AccessToken, req.RefreshToken)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	sendSession(w, result, http.StatusBadRequest)
}

func sendSession(w http.ResponseWriter, result *model.SessionResult, failureStatus int) {
	status := http.StatusOK
	if !result.IsSucceed {
		status = failureStatus
	}
	sendJSON(w, status, requestresponse.SessionResponse{Response: result})
}

// Me godoc
// @Summary Текущий пользователь
// @Description Возвращает данные пользователя из access токена
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := security.GetPrincipalFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = principal.UserUUID
	resp.Response.UserName = principal.UserName
	resp.Response.Email = principal.Email
	resp.Response.Roles = principal.Roles

	sendJSON(w, http.StatusOK, resp)
}

// ForgotPassword godoc
// @Summary Запрос на сброс пароля
// @Description Отправляет письмо со ссылкой для сброса. Ответ одинаков для известных и неизвестных email
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ForgotPasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AcceptedResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/forgot-password [post]
func (h *AuthenticationHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.passwordService.ForgotPassword(r.Context(), req.Email); err != nil {
		sendServiceError(w, err)
		return
	}

	resp := requestresponse.AcceptedResponse{}
	resp.Response.Accepted = true
	sendJSON(w, http.StatusOK, resp)
}

// ResetPassword godoc
// @Summary Сброс пароля по токену из письма
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ResetPasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UpdatePasswordResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/reset-password [post]
func (h *AuthenticationHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.passwordService.ResetPassword(r.Context(), req.Email, req.Token, req.Password); err != nil {
		sendServiceError(w, err)
		return
	}

	resp := requestresponse.UpdatePasswordResponse{}
	resp.Response.Updated = true
	sendJSON(w, http.StatusOK, resp)
}
