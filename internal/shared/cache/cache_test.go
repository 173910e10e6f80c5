package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"resto-admin/internal/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

func TestGetOrLoad_Hit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.New(rdb)

	data, _ := json.Marshal([]item{{ID: 1, Label: "Dashboard"}})
	mock.ExpectGet("features:all").SetVal(string(data))

	got, err := cache.GetOrLoad(context.Background(), c, "features:all", time.Minute,
		func(ctx context.Context) ([]item, error) {
			t.Fatal("loader must not run on a cache hit")
			return nil, nil
		})

	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 1, Label: "Dashboard"}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrLoad_MissStores(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.New(rdb)

	loaded := []item{{ID: 2, Label: "Roles"}}
	data, _ := json.Marshal(loaded)

	mock.ExpectGet("features:all").RedisNil()
	mock.ExpectSet("features:all", data, 10*time.Minute).SetVal("OK")

	got, err := cache.GetOrLoad(context.Background(), c, "features:all", 10*time.Minute,
		func(ctx context.Context) ([]item, error) { return loaded, nil })

	require.NoError(t, err)
	assert.Equal(t, loaded, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrLoad_LoaderError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.New(rdb)

	mock.ExpectGet("roles:all").RedisNil()

	_, err := cache.GetOrLoad(context.Background(), c, "roles:all", time.Minute,
		func(ctx context.Context) ([]item, error) { return nil, errors.New("platform down") })

	assert.EqualError(t, err, "platform down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrLoad_NilCache(t *testing.T) {
	var calls int32
	got, err := cache.GetOrLoad(context.Background(), (*cache.Cache)(nil), "k", time.Minute,
		func(ctx context.Context) (int, error) {
			atomic.AddInt32(&calls, 1)
			return 7, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, int32(1), calls)
}

func TestInvalidatePrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.New(rdb)

	require.NoError(t, mr.Set("permissions:all", "[]"))
	require.NoError(t, mr.Set("permissions:templates", "{}"))
	require.NoError(t, mr.Set("roles:all", "[]"))

	require.NoError(t, c.InvalidatePrefix(context.Background(), "permissions:"))

	assert.False(t, mr.Exists("permissions:all"))
	assert.False(t, mr.Exists("permissions:templates"))
	assert.True(t, mr.Exists("roles:all"))
}
