package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Поля Redis Hash одной сессии.
const (
	fieldAccess  = "at"
	fieldRefresh = "rt"
	fieldUser    = "user"
	fieldRole    = "role"
)

// Redis — хранилище сессии в Redis Hash. Позволяет нескольким репликам
// шлюза делить одну сессию оператора.
type Redis struct {
	rdb *redis.Client
	key string
}

// NewRedis создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Пустой key заменяется на "aprilwind:session:default".
func NewRedis(ctx context.Context, redisURL, key string) (*Redis, error) {
	const op = "session.NewRedis"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return NewRedisFromClient(rdb, key), nil
}

// NewRedisFromClient оборачивает готовый клиент.
func NewRedisFromClient(rdb *redis.Client, key string) *Redis {
	if key == "" {
		key = "aprilwind:session:default"
	}

	return &Redis{rdb: rdb, key: key}
}

func (r *Redis) get(ctx context.Context, field string) (string, error) {
	v, err := r.rdb.HGet(ctx, r.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("session.Redis.get %s: %w", field, err)
	}

	return v, nil
}

func (r *Redis) set(ctx context.Context, field, value string) error {
	if err := r.rdb.HSet(ctx, r.key, field, value).Err(); err != nil {
		return fmt.Errorf("session.Redis.set %s: %w", field, err)
	}

	return nil
}

func (r *Redis) del(ctx context.Context, field string) error {
	if err := r.rdb.HDel(ctx, r.key, field).Err(); err != nil {
		return fmt.Errorf("session.Redis.del %s: %w", field, err)
	}

	return nil
}

func (r *Redis) AccessToken(ctx context.Context) (string, error) {
	return r.get(ctx, fieldAccess)
}

func (r *Redis) RefreshToken(ctx context.Context) (string, error) {
	return r.get(ctx, fieldRefresh)
}

func (r *Redis) SaveAccessToken(ctx context.Context, token string) error {
	return r.set(ctx, fieldAccess, token)
}

func (r *Redis) SaveRefreshToken(ctx context.Context, token string) error {
	return r.set(ctx, fieldRefresh, token)
}

func (r *Redis) UserData(ctx context.Context) (*models.UserData, error) {
	raw, err := r.get(ctx, fieldUser)
	if err != nil || raw == "" {
		return nil, err
	}

	var u models.UserData
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("session.Redis.UserData: %w", err)
	}

	return &u, nil
}

func (r *Redis) SaveUserData(ctx context.Context, u models.UserData) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session.Redis.SaveUserData: %w", err)
	}

	return r.set(ctx, fieldUser, string(raw))
}

func (r *Redis) UserRoleDetail(ctx context.Context) (*models.RoleDetail, error) {
	raw, err := r.get(ctx, fieldRole)
	if err != nil || raw == "" {
		return nil, err
	}

	var role models.RoleDetail
	if err := json.Unmarshal([]byte(raw), &role); err != nil {
		return nil, fmt.Errorf("session.Redis.UserRoleDetail: %w", err)
	}

	return &role, nil
}

func (r *Redis) SaveUserRoleDetail(ctx context.Context, role models.RoleDetail) error {
	raw, err := json.Marshal(role)
	if err != nil {
		return fmt.Errorf("session.Redis.SaveUserRoleDetail: %w", err)
	}

	return r.set(ctx, fieldRole, string(raw))
}

func (r *Redis) ClearAccessToken(ctx context.Context) error { return r.del(ctx, fieldAccess) }

func (r *Redis) ClearRefreshToken(ctx context.Context) error { return r.del(ctx, fieldRefresh) }

func (r *Redis) ClearUserData(ctx context.Context) error { return r.del(ctx, fieldUser) }

func (r *Redis) ClearUserRoleDetail(ctx context.Context) error { return r.del(ctx, fieldRole) }

// Close закрывает клиент Redis.
func (r *Redis) Close() error { return r.rdb.Close() }
