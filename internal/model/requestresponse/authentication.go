package requestresponse

import "food-inventory/internal/model"

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	UserName  string `json:"userName" example:"alice"`
	Email     string `json:"email" example:"alice@example.com"`
	FirstName string `json:"firstName" example:"Alice"`
	LastName  string `json:"lastName" example:"Liddell"`
	Password  string `json:"password" example:"P@ssw0rd123"`
}

// RefreshTokenRequest : истекший access токен и текущий refresh токен.
// Если accessToken пуст, берется из заголовка Authorization
type RefreshTokenRequest struct {
	AccessToken  string `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refreshToken" example:"vcSi0369y1I62wOpxZFpgZ..."`
}

// SessionResponse : ответ login, register и refresh
type SessionResponse struct {
	Response *model.SessionResult `json:"response"`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	Response struct {
		UserUUID string   `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		UserName string   `json:"userName" example:"alice"`
		Email    string   `json:"email" example:"alice@example.com"`
		Roles    []string `json:"roles" example:"User"`
	} `json:"response"`
}

// ForgotPasswordRequest : запрос письма для сброса пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

// ResetPasswordRequest : новый пароль по токену из письма
type ResetPasswordRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Token    string `json:"token" example:"3q2-7wEjNkXr..."`
	Password string `json:"password" example:"N3w!Passw0rd"`
}

// AcceptedResponse : запрос принят
type AcceptedResponse struct {
	Response struct {
		Accepted bool `json:"accepted" example:"true"`
	} `json:"response"`
}
