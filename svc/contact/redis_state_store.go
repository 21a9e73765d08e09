package contact

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/contactform/pkg/contactform"
)

// RedisStateStore keeps form state as JSON under prefix+"form:"+formID.
// Every save refreshes the TTL.
type RedisStateStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStateStore creates a store.
func NewRedisStateStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, prefix: prefix + "form:", ttl: ttl}
}

func (s *RedisStateStore) key(formID string) string {
	return s.prefix + formID
}

func (s *RedisStateStore) Load(ctx context.Context, formID string) (contactform.View, error) {
	data, err := s.client.Get(ctx, s.key(formID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return contactform.View{}, ErrStateNotFound
	}
	if err != nil {
		return contactform.View{}, errors.Join(ErrStateStore, err)
	}

	var view contactform.View
	if err := json.Unmarshal(data, &view); err != nil {
		return contactform.View{}, errors.Join(ErrInvalidPayload, err)
	}
	return view, nil
}

func (s *RedisStateStore) Save(ctx context.Context, formID string, view contactform.View) error {
	data, err := json.Marshal(view)
	if err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	if err := s.client.Set(ctx, s.key(formID), data, s.ttl).Err(); err != nil {
		return errors.Join(ErrStateStore, err)
	}
	return nil
}

func (s *RedisStateStore) Delete(ctx context.Context, formID string) error {
	if err := s.client.Del(ctx, s.key(formID)).Err(); err != nil {
		return errors.Join(ErrStateStore, err)
	}
	return nil
}
