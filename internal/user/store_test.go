package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := NewSQLStore(":memory:")
	require.NoError(t, err)
	return store
}

func TestSQLStore_CreateAndFind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := &User{ID: "u1", Username: "alice", PasswordHash: "hash"}
	require.NoError(t, store.Create(ctx, u))

	byID, err := store.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", byName.ID)
}

func TestSQLStore_FindMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.FindByUsername(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_UpdateSpreadsheetID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &User{ID: "u1", Username: "alice", PasswordHash: "hash"}))

	require.NoError(t, store.UpdateSpreadsheetID(ctx, "u1", "sheet-123"))

	u, err := store.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "sheet-123", u.SpreadsheetID)

	assert.ErrorIs(t, store.UpdateSpreadsheetID(ctx, "nobody", "sheet-123"), ErrNotFound)
}

func TestService_RegisterAndAuthenticate(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "s3cret", u.PasswordHash, "password must be hashed")

	got, err := svc.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestService_AuthenticateFailures(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_RegisterDuplicate(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}
