package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"

	"mindhaven/utils"
)

type fakeAuthCache struct {
	store       map[string]string
	getErr      error
	setCalls    int
	expireCalls int
}

func newFakeAuthCache() *fakeAuthCache {
	return &fakeAuthCache{store: map[string]string{}}
}

func (f *fakeAuthCache) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.store[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeAuthCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.setCalls++
	f.store[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeAuthCache) Expire(_ context.Context, _ string, _ time.Duration) *redis.BoolCmd {
	f.expireCalls++
	return redis.NewBoolResult(true, nil)
}

func TestCheckAuthCacheFirstTokenPinned(t *testing.T) {
	cache := newFakeAuthCache()

	ok := checkAuthCache(context.Background(), cache, "c1", "token-a")
	assert.True(t, ok)
	assert.Equal(t, 1, cache.setCalls)
	assert.Equal(t, utils.HashToken("token-a"), cache.store[utils.AuthCachePrefix+"c1"])
}

func TestCheckAuthCacheMatchRefreshesTTL(t *testing.T) {
	cache := newFakeAuthCache()
	cache.store[utils.AuthCachePrefix+"c1"] = utils.HashToken("token-a")

	ok := checkAuthCache(context.Background(), cache, "c1", "token-a")
	assert.True(t, ok)
	assert.Equal(t, 0, cache.setCalls)
	assert.Equal(t, 1, cache.expireCalls)
}

func TestCheckAuthCacheRejectsSupersededToken(t *testing.T) {
	cache := newFakeAuthCache()
	cache.store[utils.AuthCachePrefix+"c1"] = utils.HashToken("token-a")

	// A different token for the same subject means token-a was superseded
	// or the presented one was revoked.
	ok := checkAuthCache(context.Background(), cache, "c1", "token-b")
	assert.False(t, ok)
	// The pinned hash is left untouched.
	assert.Equal(t, utils.HashToken("token-a"), cache.store[utils.AuthCachePrefix+"c1"])
}

func TestCheckAuthCacheScopedPerSubject(t *testing.T) {
	cache := newFakeAuthCache()
	cache.store[utils.AuthCachePrefix+"c1"] = utils.HashToken("token-a")

	ok := checkAuthCache(context.Background(), cache, "c2", "token-b")
	assert.True(t, ok)
}

func TestCheckAuthCacheDegradesWhenUnavailable(t *testing.T) {
	assert.True(t, checkAuthCache(context.Background(), nil, "c1", "token-a"))

	cache := newFakeAuthCache()
	cache.getErr = errors.New("connection refused")
	assert.True(t, checkAuthCache(context.Background(), cache, "c1", "token-a"))
}
