package persistent

import (
	"context"
	"encoding/json"

	"sparkz/internal/entity"

	"github.com/redis/go-redis/v9"
)

// SessionKey is the fixed key holding the serialized user record.
const SessionKey = "sparkz_user"

type SessionRepository interface {
	Save(ctx context.Context, user *entity.User) error
	Load(ctx context.Context) (*entity.User, error)
	Clear(ctx context.Context) error
}

// sessionRepository persists the single session record as one JSON value
// under a fixed key. There is no versioning or migration: a missing or
// unparseable value is treated identically to absence.
type sessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) Save(ctx context.Context, user *entity.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, SessionKey, data, 0).Err()
}

// Load restores the persisted record. Absence and corruption both yield
// (nil, nil) so a bad record can never prevent startup.
func (r *sessionRepository) Load(ctx context.Context) (*entity.User, error) {
	data, err := r.client.Get(ctx, SessionKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user entity.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.client.Del(ctx, SessionKey).Err()
}
