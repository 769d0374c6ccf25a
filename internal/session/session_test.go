package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()
	ctx := context.Background()

	id, err := s.Create(ctx, Data{Admin: true, Email: "admin@example.com"})
	require.NoError(t, err)
	assert.Len(t, id, 43)

	data, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, data.Admin)
	assert.Equal(t, "admin@example.com", data.Email)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_IDsAreUnique(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := s.Create(ctx, Data{})
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	expiring, err := s.Create(ctx, Data{Admin: true})
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	fresh, err := s.Create(ctx, Data{Admin: true})
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	_, err = s.Get(ctx, expiring)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, fresh)
	assert.NoError(t, err)

	now = now.Add(time.Minute)
	s.Sweep()
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_DeleteUnknownIsNoop(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	assert.NoError(t, s.Delete(context.Background(), "missing"))
}

func TestRedisStore_Lifecycle(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := NewRedisStore(client, "promosite:", time.Hour)
	ctx := context.Background()

	id, err := s.Create(ctx, Data{Admin: true, Email: "admin@example.com"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("promosite:session:"+id))
	assert.Equal(t, time.Hour, mr.TTL("promosite:session:"+id))

	data, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, data.Admin)

	mr.FastForward(2 * time.Hour)
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := NewRedisStore(client, "promosite:", time.Hour)
	ctx := context.Background()

	id, err := s.Create(ctx, Data{Admin: true})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
