// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/shipdoc/internal/platform/apperr"
	"github.com/taibuivan/shipdoc/internal/platform/constants"
	"github.com/taibuivan/shipdoc/internal/platform/respond"
)

// # Rate Limiting

// RateLimitOptions sizes the per-IP token bucket. Zero fields use the defaults
// from [constants].
type RateLimitOptions struct {
	RPS   float64
	Burst int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter holds one token bucket per client IP.
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func (limiter *ipLimiter) allow(ip string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	current, found := limiter.visitors[ip]
	if !found {
		current = &visitor{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.visitors[ip] = current
	}
	current.lastSeen = now

	return current.limiter.AllowN(now, 1)
}

// evictIdle drops buckets not used within ttl.
func (limiter *ipLimiter) evictIdle(now time.Time, ttl time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for ip, current := range limiter.visitors {
		if now.Sub(current.lastSeen) > ttl {
			delete(limiter.visitors, ip)
		}
	}
}

/*
RateLimit rejects callers that exceed their per-IP token bucket with 429.

Buckets live in memory for this process only. A background sweep evicts
idle clients until context is cancelled.
*/
func RateLimit(context context.Context, options RateLimitOptions) func(http.Handler) http.Handler {
	if options.RPS <= 0 {
		options.RPS = constants.DefaultRateLimitRPS
	}
	if options.Burst <= 0 {
		options.Burst = constants.DefaultRateLimitBurst
	}

	limiter := &ipLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(options.RPS),
		burst:    options.Burst,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				limiter.evictIdle(now, constants.RateLimitClientTTL)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !limiter.allow(RealIP(request), time.Now()) {
				respond.Error(writer, request, apperr.TooManyRequests("Rate limit exceeded"))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
