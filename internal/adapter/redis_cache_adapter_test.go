package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"lecture-quiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const questionsKey = "lecturequiz:quiz:questions:3f2a9c:agile_5"

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(questionsKey).SetVal(`[{"question":"What is Agile?"}]`)
		val, err := adapter.Get(ctx, questionsKey)
		assert.NoError(t, err)
		assert.Equal(t, `[{"question":"What is Agile?"}]`, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(questionsKey).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, questionsKey)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectGet(questionsKey).SetErr(redisErr)
		val, err := adapter.Get(ctx, questionsKey)
		assert.ErrorIs(t, err, redisErr)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	expiration := time.Hour

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(questionsKey, "[]", expiration).SetVal("OK")
		assert.NoError(t, adapter.Set(ctx, questionsKey, "[]", expiration))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectSet(questionsKey, "[]", expiration).SetErr(redisErr)
		assert.ErrorIs(t, adapter.Set(ctx, questionsKey, "[]", expiration), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_DeleteByPrefix(t *testing.T) {
	const prefix = "lecturequiz:quiz:questions:3f2a9c:"
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("MultiplePages", func(t *testing.T) {
		mock.ExpectScan(0, prefix+"*", 100).SetVal([]string{prefix + "agile_5_0"}, 17)
		mock.ExpectDel(prefix + "agile_5_0").SetVal(1)
		mock.ExpectScan(17, prefix+"*", 100).SetVal([]string{prefix + "scrum_3_0", prefix + "__7_0"}, 0)
		mock.ExpectDel(prefix+"scrum_3_0", prefix+"__7_0").SetVal(2)

		n, err := adapter.DeleteByPrefix(ctx, prefix)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NothingToDelete", func(t *testing.T) {
		mock.ExpectScan(0, prefix+"*", 100).SetVal([]string{}, 0)

		n, err := adapter.DeleteByPrefix(ctx, prefix)
		assert.NoError(t, err)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ScanError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectScan(0, prefix+"*", 100).SetErr(redisErr)

		_, err := adapter.DeleteByPrefix(ctx, prefix)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectPing().SetVal("PONG")
		assert.NoError(t, adapter.Ping(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectPing().SetErr(redisErr)
		assert.ErrorIs(t, adapter.Ping(ctx), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
