package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// New connects to MongoDB and pings it, retrying up to cfg.RetryAttempts times.
func New(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	client, err := mongo.Connect(
		options.Client().
			ApplyURI(cfg.ConnectionURL).
			SetConnectTimeout(cfg.ConnectTimeout).
			SetMaxPoolSize(cfg.MaxPoolSize).
			SetMinPoolSize(cfg.MinPoolSize).
			SetMaxConnIdleTime(cfg.MaxConnIdleTime).
			SetRetryWrites(true).
			SetRetryReads(true),
	)
	if err != nil {
		return nil, errors.Join(ErrFailedToConnectToMongo, err)
	}

	var lastErr error
	for attempt := range max(cfg.RetryAttempts, 1) {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				_ = client.Disconnect(context.WithoutCancel(ctx))
				return nil, errors.Join(ErrFailedToConnectToMongo, lastErr, ctx.Err())
			case <-time.After(cfg.RetryInterval):
			}
		}

		pingCtx, cancel := context.WithTimeout(ctx, max(cfg.ConnectTimeout, time.Second))
		lastErr = client.Ping(pingCtx, nil)
		cancel()
		if lastErr == nil {
			return client, nil
		}
	}

	_ = client.Disconnect(context.WithoutCancel(ctx))
	return nil, errors.Join(ErrFailedToConnectToMongo, lastErr)
}

// NewWithDatabase connects and returns the database named in cfg.
func NewWithDatabase(ctx context.Context, cfg Config) (*mongo.Database, error) {
	client, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client.Database(cfg.Database), nil
}
