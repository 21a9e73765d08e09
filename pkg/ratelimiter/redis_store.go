package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript refills and consumes atomically. Times are unix milliseconds.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local want = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last')
local tokens = tonumber(state[1])
local last = tonumber(state[2])
if tokens == nil then
  tokens = capacity
  last = now
end

local intervals = math.min(math.floor((now - last) / interval), math.floor(capacity / rate) + 1)
if intervals > 0 then
  tokens = math.min(tokens + intervals * rate, capacity)
  last = last + intervals * interval
  if tokens == capacity then
    last = now
  end
end

local remaining = tokens - want
if remaining >= 0 then
  tokens = remaining
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'last', last)
redis.call('PEXPIRE', KEYS[1], ttl)
return {remaining, last + interval}
`)

// RedisStore keeps buckets in redis so limits hold across instances.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore returns a store writing keys under prefix, e.g. "contactform:ratelimit:".
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{s.prefix + key},
		config.Capacity,
		config.RefillRate,
		config.RefillInterval.Milliseconds(),
		time.Now().UnixMilli(),
		tokens,
		config.ttl().Milliseconds(),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, err
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected script reply of length %d", len(res))
	}
	return int(res[0]), time.UnixMilli(res[1]), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
