package repository

import (
	"context"
	"food-inventory/config"
	"food-inventory/internal/util"
	pkgerrors "food-inventory/pkg/errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetTokenRepository : токены сброса пароля живут только в Redis и истекают сами
type ResetTokenRepository struct {
	client *config.RedisClient
}

func NewResetTokenRepository(rdb *config.RedisClient) *ResetTokenRepository {
	return &ResetTokenRepository{rdb}
}

func (r *ResetTokenRepository) Save(ctx context.Context, token, userUUID string, ttl time.Duration) error {
	if err := r.client.Client.Set(ctx, r.key(token), userUUID, ttl).Err(); err != nil {
		return util.LogError("[ResetTokenRepo] ошибка сохранения токена в Redis", err)
	}
	return nil
}

// consumeScript : удалить ключ, только если он принадлежит владельцу. GET и DEL выполняются одной командой
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Consume : одноразовое использование токена. Из параллельных запросов с одним токеном успешен только один
func (r *ResetTokenRepository) Consume(ctx context.Context, token, userUUID string) error {
	deleted, err := consumeScript.Run(ctx, r.client.Client, []string{r.key(token)}, userUUID).Int()
	if err != nil {
		return util.LogError("[ResetTokenRepo] ошибка использования токена в Redis", err)
	}
	if deleted == 0 {
		return pkgerrors.ErrResetTokenInvalid
	}
	return nil
}

func (r *ResetTokenRepository) key(token string) string {
	return "password_reset:" + token
}
