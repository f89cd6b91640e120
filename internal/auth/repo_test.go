package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sidelinehq/sideline-backend/pkg/db/models"
	"github.com/sidelinehq/sideline-backend/pkg/enums"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL,
  display_name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  system_role TEXT NOT NULL DEFAULT 'member',
  state TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`
	loginSessions := `
CREATE TABLE IF NOT EXISTS login_sessions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  token_id TEXT NOT NULL,
  user_agent TEXT,
  created_at DATETIME,
  expires_at DATETIME NOT NULL
);`
	require.NoError(t, conn.Exec(users).Error)
	require.NoError(t, conn.Exec(loginSessions).Error)
	require.NoError(t, conn.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_login_sessions_token_id ON login_sessions (token_id);`).Error)
	require.NoError(t, conn.Exec(`DELETE FROM login_sessions;`).Error)
	require.NoError(t, conn.Exec(`DELETE FROM users;`).Error)
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, state enums.UserState) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		DisplayName:  "Alice",
		PasswordHash: "x",
		SystemRole:   enums.SystemRoleMember,
		State:        state,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func TestRepositoryFindActiveByLogin(t *testing.T) {
	conn := setupAuthTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user := seedUser(t, conn, enums.UserStateActive)

	byUsername, err := repo.FindActiveByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := repo.FindActiveByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindActiveByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindActiveByLoginSkipsDeleted(t *testing.T) {
	conn := setupAuthTestDB(t)
	repo := NewRepository(conn)

	seedUser(t, conn, enums.UserStateDeleted)

	_, err := repo.FindActiveByLogin(context.Background(), "alice")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySessions(t *testing.T) {
	conn := setupAuthTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user := seedUser(t, conn, enums.UserStateActive)

	live := &models.LoginSession{
		UserID:    user.ID,
		TokenID:   uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, repo.CreateSession(ctx, live))

	stale := &models.LoginSession{
		UserID:    user.ID,
		TokenID:   uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, repo.CreateSession(ctx, stale))

	ok, err := repo.HasSession(ctx, live.TokenID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasSession(ctx, stale.TokenID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.HasSession(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}
