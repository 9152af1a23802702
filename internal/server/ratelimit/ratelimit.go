// Package ratelimit throttles generation submissions per client.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds for the Retry-After header.
func (i Info) RetryAfterSeconds() int {
	return int(i.RetryAfter.Seconds()) + 1
}

// LimitError is returned by Admit when a client has no generations left.
type LimitError struct {
	Info Info
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("Too many resume generations. Please try again in %d seconds.", e.Info.RetryAfterSeconds())
}

type client struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter keeps one token bucket per client.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	config  *Config
	now     func() time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			Limit:           DefaultLimit,
			Window:          DefaultWindow,
			Burst:           DefaultBurst,
			CleanupInterval: DefaultCleanupInterval,
		}
	}

	l := &Limiter{
		clients: make(map[string]*client),
		config:  config,
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Allow consumes one generation for clientID if its bucket has a token.
func (l *Limiter) Allow(clientID string) (bool, Info) {
	if !l.config.Enabled || l.config.Limit <= 0 || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	now := l.now()
	limiter := l.limiterFor(clientID, now)

	allowed := limiter.AllowN(now, 1)
	tokens := limiter.TokensAt(now)

	info := Info{
		Allowed:   allowed,
		Limit:     l.config.Limit,
		Remaining: max(int(tokens), 0),
	}
	if !allowed {
		info.RetryAfter = time.Duration((1 - tokens) / float64(limiter.Limit()) * float64(time.Second))
	}
	return allowed, info
}

// Admit is Allow with the denial expressed as a *LimitError.
func (l *Limiter) Admit(clientID string) (Info, error) {
	allowed, info := l.Allow(clientID)
	if !allowed {
		return info, &LimitError{Info: info}
	}
	return info, nil
}

func (l *Limiter) limiterFor(clientID string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[clientID]
	if !ok {
		burst := l.config.Burst
		if burst <= 0 {
			burst = l.config.Limit
		}
		window := l.config.Window
		if window <= 0 {
			window = DefaultWindow
		}
		c = &client{limiter: rate.NewLimiter(rate.Every(window/time.Duration(l.config.Limit)), burst)}
		l.clients[clientID] = c
	}
	c.lastAccess = now
	return c.limiter
}

// cleanup removes idle clients until Stop is called.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.removeIdle(l.now().Add(-l.config.Window))
		case <-l.cleanupStop:
			return
		}
	}
}

// removeIdle drops clients not seen since cutoff; their buckets would be full again anyway.
func (l *Limiter) removeIdle(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, c := range l.clients {
		if c.lastAccess.Before(cutoff) {
			delete(l.clients, id)
			removed++
		}
	}
	return removed
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
