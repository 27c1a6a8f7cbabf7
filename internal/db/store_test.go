package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
)

const migrationsBase = "../../migrations"

func newTestStore(t *testing.T) Store {
	t.Helper()
	conn, err := OpenMigrated("sqlite://:memory:", migrationsBase)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewStore(conn)
}

func TestParseURL(t *testing.T) {
	driver, dsn := ParseURL("postgres://u:p@localhost/rafiq?sslmode=disable")
	assert.Equal(t, DriverPostgres, driver)
	assert.Equal(t, "postgres://u:p@localhost/rafiq?sslmode=disable", dsn)

	driver, dsn = ParseURL("sqlite://./data/rafiq.db")
	assert.Equal(t, DriverSQLite, driver)
	assert.Equal(t, "./data/rafiq.db", dsn)

	driver, _ = ParseURL("rafiq.db")
	assert.Equal(t, DriverSQLite, driver)
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)

	userID, err := store.CreateUser("reader@example.com", "hashed", nil)
	require.NoError(t, err)
	assert.Greater(t, userID, 0)

	u, err := store.GetUserByEmail("reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
	assert.Nil(t, u.Name)

	_, err = store.CreateUser("reader@example.com", "other", nil)
	assert.Error(t, err, "email is unique")

	name := "Amina"
	require.NoError(t, store.UpdateUserProfile(userID, "amina@example.com", &name))
	u, err = store.GetUserByID(userID)
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", u.Email)
	require.NotNil(t, u.Name)
	assert.Equal(t, name, *u.Name)

	_, err = store.GetUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.UpdateUserProfile(9999, "x@example.com", nil), ErrNotFound)
}

func TestReaderStateRoundTrip(t *testing.T) {
	store := newTestStore(t)
	userID, err := store.CreateUser("state@example.com", "hashed", nil)
	require.NoError(t, err)

	_, err = store.LoadReaderState(userID)
	assert.ErrorIs(t, err, ErrNotFound)

	state := model.DefaultReaderState()
	state.Page = 293
	state.Edition = "ksu"
	state.Bookmarks = []model.Bookmark{{Page: 293, Surah: 18, Note: "friday", CreatedAt: time.Now().UTC()}}
	state.History = []model.HistoryEntry{{Page: 293, VisitedAt: time.Now().UTC()}}
	require.NoError(t, store.SaveReaderState(userID, state))

	got, err := store.LoadReaderState(userID)
	require.NoError(t, err)
	assert.Equal(t, 293, got.Page)
	assert.Equal(t, "ksu", got.Edition)
	require.Len(t, got.Bookmarks, 1)
	assert.Equal(t, "friday", got.Bookmarks[0].Note)
	assert.False(t, got.UpdatedAt.IsZero())

	state.Page = 294
	require.NoError(t, store.SaveReaderState(userID, state))
	got, err = store.LoadReaderState(userID)
	require.NoError(t, err)
	assert.Equal(t, 294, got.Page)

	require.NoError(t, store.DeleteReaderState(userID))
	_, err = store.LoadReaderState(userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresIntegration(t *testing.T) {
	conn, err := OpenTestDB(migrationsBase)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	defer conn.Close()

	store := NewStore(conn)
	email := "pg-" + time.Now().Format("150405.000000") + "@example.com"
	userID, err := store.CreateUser(email, "hashed", nil)
	require.NoError(t, err)

	state := model.DefaultReaderState()
	state.Page = 42
	require.NoError(t, store.SaveReaderState(userID, state))
	got, err := store.LoadReaderState(userID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.Page)
}
