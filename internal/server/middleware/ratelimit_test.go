package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// frozenLimiter не пополняет токены: время не идет
func frozenLimiter(t *testing.T, burst int) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(1, burst, setupTestLogger())
	t.Cleanup(rl.Stop)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, now := frozenLimiter(t, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, rl.Allow("10.0.0.2"), "other IP has its own bucket")

	*now = now.Add(2 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "tokens refilled at 1 rps")
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl, now := frozenLimiter(t, 1)

	rl.Allow("10.0.0.1")
	*now = now.Add(time.Minute)
	rl.Allow("10.0.0.2")
	*now = now.Add(3 * time.Minute)

	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, 1, setupTestLogger())
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := frozenLimiter(t, 2)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
		req.RemoteAddr = "192.168.1.2:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("request %d should pass", i+1))
	}

	// другой порт того же IP не дает нового лимита
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.RemoteAddr = "192.168.1.2:54321"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	resp := decodeError(t, w.Body.String())
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "rate limit exceeded")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xRealIP    string
		expected   string
	}{
		{name: "remote addr with port", remoteAddr: "192.168.1.1:12345", expected: "192.168.1.1"},
		{name: "remote addr without port", remoteAddr: "192.168.1.1", expected: "192.168.1.1"},
		{name: "ipv6", remoteAddr: "[::1]:8080", expected: "::1"},
		{name: "x-forwarded-for chain", remoteAddr: "10.0.0.1:1", xff: "203.0.113.5, 10.0.0.1", expected: "203.0.113.5"},
		{name: "x-real-ip", remoteAddr: "10.0.0.1:1", xRealIP: " 203.0.113.9 ", expected: "203.0.113.9"},
		{name: "xff wins over x-real-ip", remoteAddr: "10.0.0.1:1", xff: "203.0.113.5", xRealIP: "203.0.113.9", expected: "203.0.113.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			assert.Equal(t, tt.expected, clientIP(req))
		})
	}
}
