package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestLimiter(t *testing.T, limit int, period time.Duration, now *time.Time) *Limiter {
	t.Helper()
	l := New(limit, period)
	l.now = func() time.Time { return *now }
	t.Cleanup(l.Stop)
	return l
}

func TestLimiter_AllowsUpToLimitPerWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	l := newTestLimiter(t, 3, time.Minute, &now)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("10.0.0.1")
		assert.True(t, ok)
	}

	now = now.Add(20 * time.Second)
	ok, retry := l.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, retry)

	now = now.Add(40 * time.Second)
	ok, _ = l.Allow("10.0.0.1")
	assert.True(t, ok, "a new window starts after the period")
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(t, 1, time.Minute, &now)

	ok, _ := l.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Allow("10.0.0.1")
	assert.False(t, ok)

	ok, _ = l.Allow("10.0.0.2")
	assert.True(t, ok)
}

func TestLimiter_ZeroLimitDisables(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(t, 0, time.Minute, &now)
	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("k")
		assert.True(t, ok)
	}
}

func TestLimiter_SweepDropsExpiredWindows(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(t, 5, time.Minute, &now)
	l.Allow("a")
	l.Allow("b")

	now = now.Add(2 * time.Minute)
	l.sweep()
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := New(1, time.Second)
	l.Stop()
	l.Stop()
}

func TestClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.10:5555"
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	c.Request.Header.Set("CF-Connecting-IP", "198.51.100.9")

	assert.Equal(t, "198.51.100.9", ClientIP(c, true))

	c.Request.Header.Del("CF-Connecting-IP")
	assert.Equal(t, "203.0.113.7", ClientIP(c, true))
}

func TestParseIP(t *testing.T) {
	assert.Equal(t, "203.0.113.7", parseIP(" 203.0.113.7:8080 "))
	assert.Equal(t, "::1", parseIP("[::1]:80"))
	assert.Equal(t, "", parseIP("not-an-ip"))
}
