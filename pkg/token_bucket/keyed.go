package token_bucket

import (
	"sync"
	"time"
)

// KeyedLimiter отдельное ведро на каждый ключ (актор, адрес клиента).
type KeyedLimiter interface {
	Allow(key string) bool
}

type KeyedTokenBucket struct {
	capacity   int
	refillRate float64
	maxKeys    int
	now        func() time.Time

	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

type Option func(*KeyedTokenBucket)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(k *KeyedTokenBucket) {
		k.now = now
	}
}

// WithMaxKeys порог числа ведер, после которого полные ведра вычищаются.
func WithMaxKeys(maxKeys int) Option {
	return func(k *KeyedTokenBucket) {
		k.maxKeys = maxKeys
	}
}

const defaultMaxKeys = 10_000

func NewKeyedTokenBucket(capacity int, refillRate float64, opts ...Option) *KeyedTokenBucket {
	k := &KeyedTokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		maxKeys:    defaultMaxKeys,
		now:        time.Now,
		buckets:    make(map[string]*TokenBucket),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *KeyedTokenBucket) Allow(key string) bool {
	return k.bucket(key).Allow()
}

func (k *KeyedTokenBucket) bucket(key string) *TokenBucket {
	k.mu.Lock()
	defer k.mu.Unlock()

	if b, ok := k.buckets[key]; ok {
		return b
	}

	if len(k.buckets) >= k.maxKeys {
		k.evictFull()
	}

	b := newTokenBucket(k.capacity, k.refillRate, k.now)
	k.buckets[key] = b
	return b
}

// evictFull удаляет ведра, которые уже восстановились: для них новое ведро
// ведёт себя так же.
func (k *KeyedTokenBucket) evictFull() {
	for key, b := range k.buckets {
		if b.full() {
			delete(k.buckets, key)
		}
	}
}

// Len число отслеживаемых ключей.
func (k *KeyedTokenBucket) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}
