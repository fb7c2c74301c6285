package cooldown

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(remoteAddr string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/send-to-telegram", nil)
	r.RemoteAddr = remoteAddr
	return r
}

func remoteKey(r *http.Request) string { return r.RemoteAddr }

func TestCookieGuard_CommitThenCheck(t *testing.T) {
	g := NewCookieGuard(0, false)

	dec, err := g.Check(newRequest("10.0.0.1:1234"))
	require.NoError(t, err)
	assert.True(t, dec.Allowed)

	rec := httptest.NewRecorder()
	require.NoError(t, g.Commit(rec, newRequest("10.0.0.1:1234")))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "messageSubmitted", c.Name)
	assert.Equal(t, "true", c.Value)
	assert.Equal(t, 21600, c.MaxAge)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	next := newRequest("10.0.0.1:1234")
	next.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	dec, err = g.Check(next)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
}

func TestCookieGuard_IgnoresOtherCookies(t *testing.T) {
	g := NewCookieGuard(time.Hour, true)
	r := newRequest("10.0.0.1:1234")
	r.AddCookie(&http.Cookie{Name: "session", Value: "abc"})

	dec, err := g.Check(r)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisGuard_WindowPerClient(t *testing.T) {
	mr, client := setupTestRedis(t)
	g := NewRedisGuard(client, remoteKey, WithPrefix("test:cd:"), WithWindow(2*time.Hour))

	first := newRequest("10.0.0.1")
	other := newRequest("10.0.0.2")

	dec, err := g.Check(first)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)

	require.NoError(t, g.Commit(httptest.NewRecorder(), first))
	assert.True(t, mr.Exists("test:cd:10.0.0.1"))

	dec, err = g.Check(first)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.InDelta(t, (2 * time.Hour).Seconds(), dec.RetryAfter.Seconds(), 1)

	dec, err = g.Check(other)
	require.NoError(t, err)
	assert.True(t, dec.Allowed, "cooldown must not leak across clients")

	mr.FastForward(2*time.Hour + time.Second)

	dec, err = g.Check(first)
	require.NoError(t, err)
	assert.True(t, dec.Allowed, "window should have expired")
}

func TestRedisGuard_KeyWithoutTTLDenies(t *testing.T) {
	mr, client := setupTestRedis(t)
	g := NewRedisGuard(client, remoteKey)
	require.NoError(t, mr.Set("glassesrelay:cooldown:10.0.0.9", "1"))

	dec, err := g.Check(newRequest("10.0.0.9"))
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Zero(t, dec.RetryAfter)
}

func TestRedisGuard_UnavailableFailsOpen(t *testing.T) {
	mr, client := setupTestRedis(t)
	g := NewRedisGuard(client, remoteKey)
	mr.Close()

	dec, err := g.Check(newRequest("10.0.0.1"))
	assert.Error(t, err)
	assert.True(t, dec.Allowed)

	assert.Error(t, g.Commit(httptest.NewRecorder(), newRequest("10.0.0.1")))
	assert.Error(t, g.Release(newRequest("10.0.0.1")))
}

func TestRedisGuard_ConcurrentChecksReserveOnce(t *testing.T) {
	_, client := setupTestRedis(t)
	g := NewRedisGuard(client, remoteKey)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dec, err := g.Check(newRequest("10.0.0.1"))
			assert.NoError(t, err)
			if dec.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), allowed.Load(), "only one request may hold the slot")
}

func TestRedisGuard_ReleaseReopensWindow(t *testing.T) {
	mr, client := setupTestRedis(t)
	g := NewRedisGuard(client, remoteKey)

	dec, err := g.Check(newRequest("10.0.0.1"))
	require.NoError(t, err)
	require.True(t, dec.Allowed)

	dec, err = g.Check(newRequest("10.0.0.1"))
	require.NoError(t, err)
	assert.False(t, dec.Allowed, "reservation holds until released")

	// A client that hung up still gets its slot back
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, g.Release(newRequest("10.0.0.1").WithContext(ctx)))
	assert.False(t, mr.Exists("glassesrelay:cooldown:10.0.0.1"))

	dec, err = g.Check(newRequest("10.0.0.1"))
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestNoopGuard(t *testing.T) {
	var g Guard = NoopGuard{}
	dec, err := g.Check(newRequest("10.0.0.1"))
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
	assert.NoError(t, g.Commit(httptest.NewRecorder(), newRequest("10.0.0.1")))
	assert.NoError(t, g.Release(newRequest("10.0.0.1")))
	assert.Equal(t, "none", g.Mode())
}
