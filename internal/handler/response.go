package handler

import (
	"encoding/json"
	"errors"
	"food-inventory/internal/security"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"
	"log"
	"net/http"
)

// decodeJSON обрабатывает декодирование JSON и возвращает ответ об ошибке, если декодирование не удалось.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return err
	}
	return nil
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	util.HandleError(w, message, statusCode)
}

func sendJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// sendServiceError : статус по типу ошибки сервиса
func sendServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, pkgerrors.ErrAccessDenied):
		sendErrorResponse(w, http.StatusForbidden, "access denied")
	case errors.Is(err, pkgerrors.ErrUserNotFound):
		sendErrorResponse(w, http.StatusNotFound, "user not found")
	case errors.Is(err, pkgerrors.ErrNotFound):
		sendErrorResponse(w, http.StatusNotFound, "not found")
	case errors.Is(err, pkgerrors.ErrUsernameExists):
		sendErrorResponse(w, http.StatusConflict, "username already exists")
	case errors.Is(err, pkgerrors.ErrEmailExists):
		sendErrorResponse(w, http.StatusConflict, "email already exists")
	case errors.Is(err, pkgerrors.ErrWeakPassword):
		sendErrorResponse(w, http.StatusBadRequest, security.PasswordPolicyMessage)
	case errors.Is(err, pkgerrors.ErrResetTokenInvalid):
		sendErrorResponse(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, pkgerrors.ErrInvalidInput):
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}
