// Package ratelimit bounds how often one principal may call the self-service admission
// endpoints (apply, invite).
package ratelimit

import (
	"context"
	"time"
)

type Rule struct {
	Limit  int
	Window time.Duration
}

// Enabled reports whether the rule restricts anything.
func (r Rule) Enabled() bool {
	return r.Limit > 0 && r.Window > 0
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, rule Rule) (bool, error)
	GetRemaining(ctx context.Context, key string, rule Rule) (int64, error)
	Reset(ctx context.Context, key string) error
}
