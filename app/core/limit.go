package core

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type LimitConfig struct {
	Limit int
	Every time.Duration
}

type LimitOption func(l *LimitConfig)

// WithLimit sets how many requests per window the key allows.
func WithLimit(limit int) LimitOption {
	return func(l *LimitConfig) {
		l.Limit = limit
	}
}

func WithRange(r time.Duration) LimitOption {
	return func(l *LimitConfig) {
		l.Every = r
	}
}

type Limiter interface {
	Allow() bool
}

var (
	limiterMu sync.Mutex
	limiters  = make(map[string]*rate.Limiter)
)

// UseLimiter returns the shared limiter for key, creating it on first use.
// Limit defaults to 60 per minute with burst 2x.
func (s *Core) UseLimiter(key string, opts ...LimitOption) Limiter {
	cfg := &LimitConfig{
		Limit: 60,
		Every: time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	limiterMu.Lock()
	defer limiterMu.Unlock()

	l, exist := limiters[key]
	if !exist {
		limit := rate.Every(cfg.Every / time.Duration(cfg.Limit))
		l = rate.NewLimiter(limit, cfg.Limit*2)
		limiters[key] = l
	}
	return l
}
