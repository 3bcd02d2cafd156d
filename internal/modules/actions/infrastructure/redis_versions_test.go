package infrastructure

import (
	"context"
	"errors"
	"testing"
	"time"

	"dsfrGateway/internal/modules/actions/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRecordVersions(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	versions := NewRedisRecordVersions(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, versions.Refresh(ctx, []domain.RecordRef{{RecordID: "a01"}, {RecordID: "a02"}, {RecordID: " "}}))
	require.NoError(t, versions.Refresh(ctx, []domain.RecordRef{{RecordID: "a01"}}))

	got, err := versions.Versions(ctx, []string{"a01", "a02", "a03"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a01": 2, "a02": 1, "a03": 0}, got)
	assert.Equal(t, time.Hour, mr.TTL("record:version:a01"))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestMemoryRecordVersions(t *testing.T) {
	versions := NewMemoryRecordVersions()
	ctx := context.Background()

	require.NoError(t, versions.Refresh(ctx, []domain.RecordRef{{RecordID: "a01"}, {RecordID: "a01"}}))
	got, err := versions.Versions(ctx, []string{"a01", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got["a01"])
	assert.Equal(t, int64(0), got["b"])
}

type failingRefresher struct{ err error }

func (f failingRefresher) Refresh(context.Context, []domain.RecordRef) error { return f.err }

func TestFanoutRefresher(t *testing.T) {
	memory := NewMemoryRecordVersions()
	boom := errors.New("boom")
	fanout := NewFanoutRefresher(nil, failingRefresher{err: boom}, memory)

	err := fanout.Refresh(context.Background(), []domain.RecordRef{{RecordID: "a01"}})
	assert.ErrorIs(t, err, boom)

	got, _ := memory.Versions(context.Background(), []string{"a01"})
	assert.Equal(t, int64(1), got["a01"], "later refreshers still run after a failure")
}
