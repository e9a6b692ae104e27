package redis_a_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/dashboard-be/internal/adapters/redis_adapter"
	"github.com/ammerola/dashboard-be/test/helpers"
)

type cachedRow struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}

func newCache(t *testing.T) (*redis_a.Cache, *miniredis.Miniredis) {
	t.Helper()
	tr := helpers.SetupTestRedis(t)
	return redis_a.NewCache(tr.Client, redis_a.PrefixDashboard, 5*time.Minute, helpers.TestLogger()), tr.Server
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	tests := []struct {
		name  string
		key   string
		value any
		dest  func() any
		want  any
	}{
		{
			name:  "stores_and_retrieves_string",
			key:   "test:string",
			value: "test value",
			dest:  func() any { return new(string) },
			want:  "test value",
		},
		{
			name:  "stores_and_retrieves_slice_of_structs",
			key:   "sales:list",
			value: []cachedRow{{ID: "a", Total: 3}, {ID: "b", Total: 4}},
			dest:  func() any { return new([]cachedRow) },
			want:  []cachedRow{{ID: "a", Total: 3}, {ID: "b", Total: 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, cache.Set(ctx, tt.key, tt.value))

			dest := tt.dest()
			require.NoError(t, cache.Get(ctx, tt.key, dest))

			switch d := dest.(type) {
			case *string:
				assert.Equal(t, tt.want, *d)
			case *[]cachedRow:
				assert.Equal(t, tt.want, *d)
			}
			assert.True(t, mr.Exists("dash:"+tt.key), "key must be stored under the prefix")
		})
	}
}

func TestCache_GetMiss(t *testing.T) {
	cache, _ := newCache(t)

	var out string
	err := cache.Get(context.Background(), "absent", &out)

	assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
}

func TestCache_SetWithTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "short", "v", 100*time.Millisecond))
	mr.FastForward(200 * time.Millisecond)

	var out string
	assert.ErrorIs(t, cache.Get(ctx, "short", &out), redis_a.ErrCacheMiss)
}

func TestCache_DeleteAndPattern(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	for _, k := range []string{"sales:list", "sales:page:1", "inventories:list"} {
		require.NoError(t, cache.Set(ctx, k, k))
	}

	require.NoError(t, cache.Delete(ctx, "inventories:list"))
	assert.False(t, mr.Exists("dash:inventories:list"))

	require.NoError(t, cache.DeletePattern(ctx, "sales:*"))
	assert.False(t, mr.Exists("dash:sales:list"))
	assert.False(t, mr.Exists("dash:sales:page:1"))

	assert.NoError(t, cache.Delete(ctx))
	assert.NoError(t, cache.DeletePattern(ctx, "nothing:*"))
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()

	t.Run("miss_fetches_and_stores", func(t *testing.T) {
		cache, mr := newCache(t)
		calls := 0

		var out []cachedRow
		err := cache.GetOrSet(ctx, "sales:list", &out, func() (any, error) {
			calls++
			return []cachedRow{{ID: "a", Total: 1}}, nil
		}, time.Minute)

		require.NoError(t, err)
		assert.Equal(t, []cachedRow{{ID: "a", Total: 1}}, out)
		assert.Equal(t, 1, calls)
		assert.True(t, mr.Exists("dash:sales:list"))
		assert.Equal(t, time.Minute, mr.TTL("dash:sales:list"))
	})

	t.Run("hit_skips_fetch", func(t *testing.T) {
		cache, _ := newCache(t)
		require.NoError(t, cache.Set(ctx, "sales:list", []cachedRow{{ID: "cached"}}))

		var out []cachedRow
		err := cache.GetOrSet(ctx, "sales:list", &out, func() (any, error) {
			t.Fatal("fetch must not run on a hit")
			return nil, nil
		}, time.Minute)

		require.NoError(t, err)
		assert.Equal(t, []cachedRow{{ID: "cached"}}, out)
	})

	t.Run("fetch_error_is_wrapped", func(t *testing.T) {
		cache, mr := newCache(t)
		boom := errors.New("db down")

		var out []cachedRow
		err := cache.GetOrSet(ctx, "sales:list", &out, func() (any, error) {
			return nil, boom
		}, time.Minute)

		assert.ErrorIs(t, err, boom)
		assert.False(t, mr.Exists("dash:sales:list"))
	})

	t.Run("redis_failure_skips_fetch", func(t *testing.T) {
		cache, mr := newCache(t)
		mr.SetError("LOADING")
		defer mr.SetError("")

		var out []cachedRow
		err := cache.GetOrSet(ctx, "sales:list", &out, func() (any, error) {
			t.Fatal("fetch must not run when redis is failing")
			return nil, nil
		}, time.Minute)

		require.Error(t, err)
		assert.NotErrorIs(t, err, redis_a.ErrCacheMiss)
	})
}

func TestCache_Ping(t *testing.T) {
	cache, mr := newCache(t)
	require.NoError(t, cache.Ping(context.Background()))

	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis_a.NewClient(context.Background(), &redis.Options{Addr: mr.Addr()})
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = redis_a.NewClient(context.Background(), &redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	assert.Error(t, err)
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "dash:sales:list", redis_a.BuildKey(redis_a.PrefixDashboard, "sales", "list"))
	assert.Equal(t, "dash", redis_a.BuildKey(redis_a.PrefixDashboard))
}
