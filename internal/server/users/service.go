// Package users implements the user directory: a durable list of
// credentials and roles behind a single-writer critical section.
package users

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"sync"

	"github.com/tikaboopeak/weather-monitor/internal/common"
)

type Service struct {
	mu   sync.Mutex
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// HashPassword returns the sha-256 hex digest of a plaintext password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// FindByUsername returns the user with the given (case-sensitive) username,
// or common.ErrorNotFound.
func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Add digests the password, appends the user and persists the list. Returns
// common.ErrorAlreadyExists when the username is taken; nothing is written
// in that case.
func (s *Service) Add(ctx context.Context, username, password, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	for _, u := range list {
		if u.Username == username {
			return common.ErrorAlreadyExists
		}
	}

	list = append(list, User{
		Username:     username,
		PasswordHash: HashPassword(password),
		Role:         role,
	})
	return s.repo.Save(ctx, list)
}

// VerifyPassword reports whether the plaintext password matches the stored
// digest. The comparison is constant-time over the two digests.
func (s *Service) VerifyPassword(user *User, password string) bool {
	candidate := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(user.PasswordHash)) == 1
}
