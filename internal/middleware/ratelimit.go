package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"carnetvoyage/internal/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CounterStore compte les requêtes par clé sur une fenêtre fixe. Le magasin
// mémoire suffit en mono-instance ; le magasin Redis partage les compteurs
// entre instances.
type CounterStore interface {
	// Incr incrémente le compteur de la clé et retourne sa valeur ainsi que
	// la fin de la fenêtre courante. Une fenêtre expirée repart de 1.
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetTime time.Time, err error)
}

type memoryEntry struct {
	count     int
	resetTime time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.After(e.resetTime) {
		e = &memoryEntry{count: 1, resetTime: now.Add(window)}
		s.entries[key] = e
		return e.count, e.resetTime, nil
	}

	e.count++
	return e.count, e.resetTime, nil
}

// Sweep supprime les fenêtres expirées pour borner la mémoire. Appelé
// périodiquement par le planificateur de l'application.
func (s *MemoryStore) Sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if now.After(e.resetTime) {
			delete(s.entries, key)
		}
	}
}

// RedisStore : INCR + PEXPIRE en pipeline, la clé expire avec la fenêtre.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	redisKey := s.prefix + ":" + key

	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	count := int(incr.Val())
	remaining := ttl.Val()
	if count == 1 || remaining < 0 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
		remaining = window
	}

	return count, time.Now().Add(remaining), nil
}

// RateLimit applique une limite fenêtre-fixe par IP cliente.
type RateLimit struct {
	store       CounterStore
	name        string
	maxAttempts int
	window      time.Duration
}

func NewRateLimit(store CounterStore, name string, maxAttempts int, window time.Duration) *RateLimit {
	return &RateLimit{store: store, name: name, maxAttempts: maxAttempts, window: window}
}

type rateLimitExceededBody struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
	ResetTime  string `json:"resetTime"`
}

func (rl *RateLimit) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.name + ":" + ClientIP(r)

		count, resetTime, err := rl.store.Incr(r.Context(), key, rl.window)
		if err != nil {
			// Protection best-effort : en cas de panne du magasin on laisse
			// passer plutôt que de bloquer tout le trafic.
			logger.WithCtx(r.Context()).Error("Rate-limit: magasin indisponible", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.maxAttempts {
			retryAfter := int(time.Until(resetTime).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.maxAttempts))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(rateLimitExceededBody{
				Error:      "Trop de tentatives, réessayez plus tard",
				RetryAfter: retryAfter,
				ResetTime:  resetTime.UTC().Format(time.RFC3339),
			})

			logger.WithCtx(r.Context()).Warn("Rate-limit dépassé",
				zap.String("limiter", rl.name),
				zap.String("key", key),
				zap.Int("count", count),
			)
			return
		}

		remaining := rl.maxAttempts - count
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.maxAttempts))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		next.ServeHTTP(w, r)
	})
}

// ClientIP résout l'IP cliente : premier saut X-Forwarded-For derrière un
// proxy, sinon X-Real-IP, sinon l'adresse distante.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
	return host
}
