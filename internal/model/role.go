package model

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
