// Package sessions implements login, logout and the authorization gate over
// an in-memory session registry, plus the login counter that fires the
// periodic backup trigger.
package sessions

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/tikaboopeak/weather-monitor/internal/common"
	"github.com/tikaboopeak/weather-monitor/internal/logging"
	"github.com/tikaboopeak/weather-monitor/internal/server/backup"
	"github.com/tikaboopeak/weather-monitor/internal/server/users"
)

type Service struct {
	users    *users.Service
	registry *Registry
	trigger  backup.Trigger
	logger   logging.Logger

	// a backup fires on every interval-th successful login
	interval   int64
	loginCount atomic.Int64
}

func NewService(us *users.Service, registry *Registry, trigger backup.Trigger, interval int, logger logging.Logger) *Service {
	return &Service{
		users:    us,
		registry: registry,
		trigger:  trigger,
		logger:   logger.With("module", "sessions"),
		interval: int64(interval),
	}
}

// Login verifies the credentials, creates a session with a fresh opaque
// token and counts the success. Every interval-th success fires the backup
// trigger on a detached goroutine; the login response never waits for it.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" || !s.users.VerifyPassword(user, password) {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	session := Session{Token: token, Username: user.Username, Role: user.Role}
	s.registry.Put(session)

	count := s.loginCount.Add(1)
	if s.trigger != nil && s.interval > 0 && count%s.interval == 0 {
		s.logger.Info(ctx, "login milestone reached, firing backup", "logins", count)
		go s.trigger.Fire(context.WithoutCancel(ctx))
	}

	return &session, nil
}

// Logout removes the session if present. It always succeeds, even for a
// token that was never valid.
func (s *Service) Logout(ctx context.Context, token string) {
	s.registry.Delete(token)
}

// Authorize resolves the token to an active session. It returns
// common.ErrorUnauthorized when the token is missing or unknown, and
// common.ErrorForbidden when requiredRole is set and does not match the
// session's role.
func (s *Service) Authorize(ctx context.Context, token, requiredRole string) (*Session, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	session, ok := s.registry.Get(token)
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	if requiredRole != "" && session.Role != requiredRole {
		return nil, common.ErrorForbidden
	}
	return &session, nil
}

// LoginCount returns the number of successful logins since start.
func (s *Service) LoginCount() int64 {
	return s.loginCount.Load()
}
