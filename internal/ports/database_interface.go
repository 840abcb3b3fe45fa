package ports

import (
	"context"
	"github.com/jmoiron/sqlx"
)

// Database : соединение с БД, умеющее открывать транзакции
type Database interface {
	sqlx.ExtContext
	BeginTX(ctx context.Context) (tx sqlx.ExtContext, rollback func() error, commit func() error, err error)
}
