package token_bucket

import (
	"sync"
	"time"
)

// Limiter пропускает запрос (true) или отклоняет его (false).
type Limiter interface {
	Allow() bool
}

// TokenBucket ведро на capacity токенов, пополняется на refillRate токенов в секунду.
// Дробные остатки пополнения копятся, поэтому медленный поток не теряет токены.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	now        func() time.Time
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	if capacity < 0 {
		capacity = 0
	}
	if refillRate < 0 {
		refillRate = 0
	}

	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	if t.tokens < 1 {
		return false
	}
	t.tokens--
	return true
}

// full true, если ведро восстановилось полностью и его можно забыть.
func (t *TokenBucket) full() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return t.tokens >= t.capacity
}

// refill вызывается под mu.
func (t *TokenBucket) refill() {
	now := t.now()
	elapsed := now.Sub(t.lastRefill)
	if elapsed <= 0 {
		return
	}
	t.lastRefill = now

	t.tokens = min(t.capacity, t.tokens+elapsed.Seconds()*t.refillRate)
}
