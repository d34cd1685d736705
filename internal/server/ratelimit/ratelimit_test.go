package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tieredConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

func TestAllow_TierBursts(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		method string
		burst  int
		limit  int
	}{
		{"submit spends LLM quota, strictest", "/submit", "POST", 3, 20},
		{"login guards the shared secret", "/login", "POST", 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewLimiter(tieredConfig())
			defer limiter.Stop()

			for i := 0; i < tt.burst; i++ {
				allowed, info := limiter.Allow("203.0.113.7", tt.path, tt.method)
				require.True(t, allowed, "request %d should be within burst", i+1)
				assert.Equal(t, tt.limit, info.Limit)
			}

			allowed, info := limiter.Allow("203.0.113.7", tt.path, tt.method)
			assert.False(t, allowed, "request past burst should be denied")
			assert.Equal(t, tt.limit, info.Limit)
			assert.Zero(t, info.Remaining)
			assert.Greater(t, info.RetryAfter, time.Duration(0))
		})
	}
}

func TestAllow_HealthNeverLimited(t *testing.T) {
	limiter := NewLimiter(tieredConfig())
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/health", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestAllow_PageReadsUseDefaultTier(t *testing.T) {
	cfg := tieredConfig()
	cfg.DefaultLimit = 2
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, info := limiter.Allow("203.0.113.7", "/", "GET")
	require.True(t, allowed)
	assert.Equal(t, 2, info.Limit)

	allowed, _ = limiter.Allow("203.0.113.7", "/", "GET")
	require.True(t, allowed)

	allowed, _ = limiter.Allow("203.0.113.7", "/", "GET")
	assert.False(t, allowed)
}

func TestAllow_ClientsAreIsolated(t *testing.T) {
	limiter := NewLimiter(tieredConfig())
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("198.51.100.1", "/submit", "POST")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("198.51.100.1", "/submit", "POST")
	assert.False(t, allowed, "first client exhausted its burst")

	allowed, _ = limiter.Allow("198.51.100.2", "/submit", "POST")
	assert.True(t, allowed, "second client's budget is untouched")
}

func TestAllow_Refill(t *testing.T) {
	cfg := tieredConfig()
	cfg.EndpointConfigs = []EndpointConfig{
		// one token per second, single-token burst
		{Path: "/submit", Method: "POST", Limit: 60, Window: time.Minute, Burst: 1},
	}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("203.0.113.7", "/submit", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("203.0.113.7", "/submit", "POST")
	require.False(t, allowed)

	time.Sleep(1100 * time.Millisecond)

	allowed, _ = limiter.Allow("203.0.113.7", "/submit", "POST")
	assert.True(t, allowed, "token should have refilled")
}

func TestAllow_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/submit", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestAllow_NilConfigDisables(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("203.0.113.7", "/submit", "POST")
	assert.True(t, allowed)
}

func TestAllow_Concurrent(t *testing.T) {
	cfg := tieredConfig()
	cfg.EndpointConfigs = []EndpointConfig{
		{Path: "/submit", Method: "POST", Limit: 50, Window: time.Hour, Burst: 50},
	}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		allowedCount int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("203.0.113.7", "/submit", "POST"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestRemoveIdle(t *testing.T) {
	limiter := NewLimiter(tieredConfig())
	defer limiter.Stop()

	limiter.Allow("203.0.113.7", "/submit", "POST")
	limiter.Allow("203.0.113.8", "/login", "POST")

	limiter.mu.Lock()
	require.Len(t, limiter.buckets, 2)
	limiter.mu.Unlock()

	limiter.removeIdle(time.Now().Add(time.Second))

	limiter.mu.Lock()
	assert.Empty(t, limiter.buckets)
	limiter.mu.Unlock()
}

func TestStop_Idempotent(t *testing.T) {
	limiter := NewLimiter(tieredConfig())

	limiter.Stop()
	assert.NotPanics(t, func() { limiter.Stop() })
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	submit := MatchEndpoint("/submit", "POST", configs)
	require.NotNil(t, submit)
	assert.Equal(t, 20, submit.Limit)
	assert.Equal(t, 3, submit.Burst)

	login := MatchEndpoint("/login", "POST", configs)
	require.NotNil(t, login)
	assert.Equal(t, 10, login.Limit)

	assert.Nil(t, MatchEndpoint("/submit", "GET", configs), "method must match")
	assert.Nil(t, MatchEndpoint("/extracted", "GET", configs), "unlisted route falls to default")

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Zero(t, health.Limit)
}
