package users

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikaboopeak/weather-monitor/internal/common"
)

type fakeRepo struct {
	mu      sync.Mutex
	users   []User
	loadErr error
	saveErr error
	saves   int
}

func (r *fakeRepo) Load(ctx context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *fakeRepo) Save(ctx context.Context, users []User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.users = make([]User, len(users))
	copy(r.users, users)
	r.saves++
	return nil
}

func TestAdd_ThenFind(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "alice", "s3cret-pw", "admin"))

	user, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "admin", user.Role)
}

func TestAdd_NeverStoresPlaintext(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo)

	require.NoError(t, s.Add(context.Background(), "bob", "hunter2hunter2", "viewer"))

	stored := repo.users[0]
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "hunter2")

	want := sha256.Sum256([]byte("hunter2hunter2"))
	assert.Equal(t, hex.EncodeToString(want[:]), stored.PasswordHash)
	assert.Len(t, stored.PasswordHash, 64)
}

func TestAdd_DuplicateUsernameConflicts(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "alice", "pw-one", "admin"))
	savesBefore := repo.saves

	err := s.Add(ctx, "alice", "pw-two", "viewer")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Equal(t, savesBefore, repo.saves, "conflict must not persist")
}

func TestFindByUsername_CaseSensitive(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "Alice", "pw", "admin"))

	_, err := s.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestVerifyPassword(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "carol", "correct-horse", "admin"))
	user, err := s.FindByUsername(ctx, "carol")
	require.NoError(t, err)

	assert.True(t, s.VerifyPassword(user, "correct-horse"))
	assert.False(t, s.VerifyPassword(user, "battery-staple"))
	assert.False(t, s.VerifyPassword(user, ""))
}

func TestAdd_RepoErrorPropagates(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("io error")}
	s := NewService(repo)

	err := s.Add(context.Background(), "dave", "pw", "admin")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
}
