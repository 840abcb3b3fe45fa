package ports

import (
	"context"
	"food-inventory/internal/model"
)

type AuthenticationService interface {
	Login(ctx context.Context, email, password string) (*model.SessionResult, error)
	Register(ctx context.Context, info *model.RegisterInfo, password string) (*model.SessionResult, error)
}

type RefreshService interface {
	Refresh(ctx context.Context, accessToken, refreshToken string) (*model.SessionResult, error)
}

// Notifier : fire-and-forget отправка писем
type Notifier interface {
	Send(ctx context.Context, message model.Message) error
}
