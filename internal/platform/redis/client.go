// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the API to the Redis instance holding read caches.

Nothing stored in Redis is authoritative. Every cached value (today the
reference type list) is rebuilt from PostgreSQL on a miss, so a flushed or
restarted Redis only costs latency.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 2 * time.Second

	defaultPoolSize = 10
)

// Options describes the cache connection.
type Options struct {
	// URL is a redis:// or rediss:// connection URL.
	URL string

	// PoolSize caps open connections. Zero selects the default of 10.
	PoolSize int
}

/*
NewClient parses the connection URL, applies pool and timeout settings and
verifies connectivity before returning.

Parameters:
  - context: bounds the startup ping
  - options: Options
  - logger: *slog.Logger

Returns:
  - *redis.Client: ready client, to be closed by the caller
  - error: invalid URL or unreachable server
*/
func NewClient(context stdctx.Context, options Options, logger *slog.Logger) (*redis.Client, error) {

	// 1. Parse the URL (credentials, db index and TLS come from it)
	parsed, err := redis.ParseURL(options.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	// 2. Size the pool; a third of it stays warm
	poolSize := options.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	parsed.PoolSize = poolSize
	parsed.MinIdleConns = max(1, poolSize/5)
	parsed.MaxIdleConns = max(parsed.MinIdleConns, poolSize/3)

	parsed.DialTimeout = dialTimeout
	parsed.ReadTimeout = ioTimeout
	parsed.WriteTimeout = ioTimeout

	client := redis.NewClient(parsed)

	// 3. Fail fast at startup
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", parsed.Addr),
		slog.Int("db", parsed.DB),
		slog.Int("pool_size", parsed.PoolSize),
	)

	return client, nil
}

// Ping checks the connection within a short deadline. Used by the readiness check.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
