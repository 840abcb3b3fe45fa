package model

import "time"

type User struct {
	UUID                   string    `db:"uuid" json:"uuid"`
	UserName               string    `db:"user_name" json:"user_name"`
	Email                  string    `db:"email" json:"email"`
	PasswordHash           string    `db:"password_hash" json:"-"`
	FirstName              string    `db:"first_name" json:"first_name"`
	LastName               string    `db:"last_name" json:"last_name"`
	RefreshToken           *string   `db:"refresh_token" json:"-"`
	RefreshTokenExpiryTime time.Time `db:"refresh_token_expiry_time" json:"-"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	Roles                  []string  `db:"-" json:"roles,omitempty"`
}

// RegisterInfo : данные, которые пользователь передает при регистрации
type RegisterInfo struct {
	UserName  string
	Email     string
	FirstName string
	LastName  string
}

// UserUpdate : изменяемые поля профиля. Пустое значение означает "не менять"
type UserUpdate struct {
	UserName  string
	Email     string
	FirstName string
	LastName  string
	Role      string
}
