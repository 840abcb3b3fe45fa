package requestresponse

import "food-inventory/internal/model"

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"invalid request body"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Response *model.User `json:"response"`
}

// UpdateUserRequest : пустые поля не меняются. role может менять только администратор
type UpdateUserRequest struct {
	UserName  string `json:"userName" example:"alice2"`
	Email     string `json:"email" example:"alice2@example.com"`
	FirstName string `json:"firstName" example:"Alice"`
	LastName  string `json:"lastName" example:"Liddell"`
	Role      string `json:"role" example:"User"`
}

// UpdatePasswordRequest : тело запроса
type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" example:"P@ssw0rd123"`
}

// UpdatePasswordResponse : успешный ответ
type UpdatePasswordResponse struct {
	Response struct {
		Updated bool `json:"updated" example:"true"`
	} `json:"response"`
}

// ListUsersResponse : успешный ответ
type ListUsersResponse struct {
	Data struct {
		Users      []*model.User `json:"users"`
		NextCursor string        `json:"next_cursor,omitempty"`
	} `json:"data"`
}

// ListRolesResponse : все роли
type ListRolesResponse struct {
	Response []model.Role `json:"response"`
}
