package db

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maanvikp20/promosite/internal/models"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisBackend_MissingKeyIsEmpty(t *testing.T) {
	_, client := newTestRedis(t)
	b := NewRedisBackend(client, "promosite:students")

	records, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRedisBackend_SaveThenLoad(t *testing.T) {
	mr, client := newTestRedis(t)
	b := NewRedisBackend(client, "promosite:students")
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, []models.Record{{"id": "1", "firstName": "A"}}))
	assert.True(t, mr.Exists("promosite:students"))

	records, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0]["firstName"])
}

func TestRedisBackend_Corrupt(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set("promosite:students", "oops"))

	_, err := NewRedisBackend(client, "promosite:students").Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestRedisBackend_ConnectionError(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.Close()

	_, err := NewRedisBackend(client, "promosite:students").Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorrupt)
}

func TestRedisBackend_SaveErrorKeepsStore(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewCollection("students", NewRedisBackend(client, "promosite:students"), nil)

	existing, err := encodeRecords([]models.Record{{"id": "1"}})
	require.NoError(t, err)
	next, err := encodeRecords([]models.Record{{"id": "1"}, {"id": "2"}})
	require.NoError(t, err)

	mock.ExpectGet("promosite:students").SetVal(string(existing))
	mock.ExpectSet("promosite:students", next, 0).SetErr(errors.New("READONLY replica"))

	err = c.Update(context.Background(), func(records []models.Record) ([]models.Record, error) {
		return append(records, models.Record{"id": "2"}), nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "READONLY")
	assert.NoError(t, mock.ExpectationsWereMet())
}
