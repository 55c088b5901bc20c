package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devfinder/internal/domain/account"
	"github.com/khoahotran/devfinder/internal/domain/session"
	"github.com/khoahotran/devfinder/internal/view"
)

func sampleState() view.State {
	s := view.NewState("octocat")
	s.DarkMode = true
	s.Seq = 3
	s.Account = account.Account{Login: "octocat", Name: "The Octocat", Followers: 9000}
	return s
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, store.Save(ctx, "sid", sampleState(), time.Minute))
	got, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, sampleState(), *got)

	require.NoError(t, store.Delete(ctx, "sid"))
	_, err = store.Load(ctx, "sid")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	store := &memorySessionStore{entries: map[string]memoryEntry{}, now: func() time.Time { return now }}

	require.NoError(t, store.Save(ctx, "sid", sampleState(), time.Minute))

	now = now.Add(59 * time.Second)
	_, err := store.Load(ctx, "sid")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Load(ctx, "sid")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.Empty(t, store.entries)
}

type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	store := &redisSessionStore{rdb: rdb}

	_, err := store.Load(ctx, "sid")
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, store.Save(ctx, "sid", sampleState(), 30*time.Minute))
	assert.Contains(t, rdb.data, "devfinder:session:sid")
	assert.Equal(t, 30*time.Minute, rdb.ttls["devfinder:session:sid"])
	assert.Contains(t, rdb.data["devfinder:session:sid"], `"search_text":"octocat"`)

	got, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, sampleState(), *got)

	require.NoError(t, store.Delete(ctx, "sid"))
	assert.Empty(t, rdb.data)
}

func TestRedisSessionStore_Errors(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	store := &redisSessionStore{rdb: rdb}

	rdb.data["devfinder:session:bad"] = "{not json"
	_, err := store.Load(ctx, "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)

	rdb.failGet = errors.New("connection refused")
	_, err = store.Load(ctx, "sid")
	assert.ErrorContains(t, err, "connection refused")
}
