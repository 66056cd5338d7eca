package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/user-notification-service/internal/config"
)

func TestNewRedis_PingsMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)

	r := NewRedis(context.Background(), config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	t.Cleanup(r.Close)

	require.NoError(t, r.Ping(context.Background()))
	assert.NotNil(t, r.Handle())
}

func TestNewRedis_UnreachableIsNotFatal(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	r := NewRedis(context.Background(), config.RedisConfig{Addr: addr}, zap.NewNop())
	t.Cleanup(r.Close)

	assert.Error(t, r.Ping(context.Background()))
}

func TestNilWrappers(t *testing.T) {
	var r *Redis
	assert.Error(t, r.Ping(context.Background()))
	assert.Nil(t, r.Handle())

	var pg *Postgres
	assert.Error(t, pg.Ping(context.Background()))
	assert.Nil(t, pg.PoolHandle())

	var m *Mongo
	assert.Error(t, m.Ping(context.Background()))
}

func TestMigrationsEmbedded(t *testing.T) {
	content, err := migrationFiles.ReadFile("migrations/001_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "users_email_key")
}
