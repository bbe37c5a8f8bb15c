package repo

import (
	"context"
	"testing"

	"ipmanager/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	g, err := db.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	sqlDB, err := g.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(g))
	return g
}

func TestUserStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(openTestDB(t))

	u, err := s.Create(ctx, "admin", "$2a$hash", true)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	got, err := s.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "$2a$hash", got.PasswordHash)
	assert.True(t, got.IsAdmin)

	plain, err := s.Create(ctx, "bob", "$2a$other", false)
	require.NoError(t, err)
	got, err = s.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, plain.ID, got.ID)
	assert.False(t, got.IsAdmin)
}

func TestUserStore_GetMissingAndCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(openTestDB(t))
	_, err := s.Create(ctx, "admin", "h", true)
	require.NoError(t, err)

	got, err := s.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.GetByUsername(ctx, "ADMIN")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserStore_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(openTestDB(t))

	_, err := s.Create(ctx, "admin", "h1", true)
	require.NoError(t, err)
	_, err = s.Create(ctx, "admin", "h2", false)
	assert.ErrorIs(t, err, ErrUserExists)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserStore_EmptyUsername(t *testing.T) {
	_, err := NewUserStore(openTestDB(t)).Create(context.Background(), "  ", "h", false)
	assert.Error(t, err)
}
