// Package redis connects to redis with retries and exposes a readiness probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
//
// The form state store and the rate limiter share the returned client; both
// prefix their keys with Config.KeyPrefix.
package redis
