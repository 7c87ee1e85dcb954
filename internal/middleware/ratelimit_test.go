package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreIncr(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	count, reset1, err := store.Incr(ctx, "login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.WithinDuration(t, time.Now().Add(time.Minute), reset1, 2*time.Second)

	count, reset2, err := store.Incr(ctx, "login:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	// La fenêtre ne glisse pas : même échéance pour tous les appels.
	assert.Equal(t, reset1, reset2)

	// Clé indépendante.
	count, _, err = store.Incr(ctx, "login:5.6.7.8", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryStoreWindowReset(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, _, err := store.Incr(ctx, "api:ip", 10*time.Millisecond)
	require.NoError(t, err)
	_, _, err = store.Incr(ctx, "api:ip", 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	count, _, err := store.Incr(ctx, "api:ip", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "une fenêtre expirée repart de 1")
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, _, _ = store.Incr(ctx, "vieux", time.Nanosecond)
	_, _, _ = store.Incr(ctx, "recent", time.Hour)

	time.Sleep(time.Millisecond)
	store.Sweep()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotContains(t, store.entries, "vieux")
	assert.Contains(t, store.entries, "recent")
}

func TestRedisStoreIncr(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, "test")
	ctx := context.Background()

	count, _, err := store.Incr(ctx, "login:ip", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, _, err = store.Incr(ctx, "login:ip", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// La clé porte bien une expiration.
	assert.Positive(t, mr.TTL("test:login:ip"))

	mr.FastForward(2 * time.Minute)

	count, _, err = store.Incr(ctx, "login:ip", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "la clé expirée doit repartir de 1")
}

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("magasin en panne")
}

func TestRateLimitHandler(t *testing.T) {
	limit := NewRateLimit(NewMemoryStore(), "login", 3, time.Minute)

	handler := limit.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 1; i <= 3; i++ {
		rec := do()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, 3-i, mustAtoi(t, rec.Header().Get("X-RateLimit-Remaining")))
	}

	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body rateLimitExceededBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Trop de tentatives, réessayez plus tard", body.Error)
	assert.Positive(t, body.RetryAfter)
	_, err := time.Parse(time.RFC3339, body.ResetTime)
	assert.NoError(t, err)

	// Une autre IP n'est pas affectée.
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest("POST", "/api/auth/login", nil)
	req2.RemoteAddr = "10.0.0.2:54321"
	handler.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestRateLimitFailOpen(t *testing.T) {
	limit := NewRateLimit(failingStore{}, "login", 1, time.Minute)

	handler := limit.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1"
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "un magasin en panne ne doit pas bloquer le trafic")
	}
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "adresse distante seule",
			remoteAddr: "192.168.1.10:43222",
			want:       "192.168.1.10",
		},
		{
			name:       "X-Forwarded-For prend le premier saut",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			want:       "203.0.113.5",
		},
		{
			name:       "X-Real-IP en secours",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "adresse sans port",
			remoteAddr: "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name: "aucune information",
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
