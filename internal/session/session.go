// Package session owns the authenticated session: the bearer token and the
// current user. It is created once at startup and handed to everything that
// needs identity, rather than living in a package-level singleton.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"skillhive-agent/internal/core/domain"
	"skillhive-agent/internal/core/ports"
)

// ErrNotAuthenticated is returned by Restore when no usable token exists.
var ErrNotAuthenticated = errors.New("session: not authenticated")

type Session struct {
	store       ports.Storage
	backendName string
	log         *zap.Logger

	mu    sync.RWMutex
	token string
	user  *domain.User
}

func New(store ports.Storage, backendName string, log *zap.Logger) *Session {
	return &Session{store: store, backendName: backendName, log: log}
}

// Token implements the client's token source.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Invalidate is the 401 path: the backend rejected the token, so drop it
// along with the persisted copy and the cached user.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	if err := s.store.ClearToken(s.backendName); err != nil {
		s.log.Warn("failed to clear persisted token", zap.Error(err))
	}
}

// Begin installs a fresh login/registration result and persists the token.
func (s *Session) Begin(res *domain.AuthResult) error {
	s.mu.Lock()
	s.token = res.Token
	u := res.User
	s.user = &u
	s.mu.Unlock()
	return s.store.SaveToken(s.backendName, res.Token)
}

// End signs out: clears the in-memory session and the persisted token.
func (s *Session) End() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return s.store.ClearToken(s.backendName)
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// User returns a copy of the current user, or nil when anonymous.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// SetUser replaces the cached user, e.g. after a profile update merged new
// fields server-side.
func (s *Session) SetUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

// Restore loads the persisted token and hydrates the current user from the
// backend. The token is decoded (unverified, the backend is the verifier) to
// reject expired tokens locally and to recover the user id before any call
// is made. Returns ErrNotAuthenticated when there is nothing to restore.
func (s *Session) Restore(ctx context.Context, backend ports.Backend) error {
	token, err := s.store.LoadToken(s.backendName)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNotAuthenticated
	}

	userID, err := subjectIfValid(token)
	if err != nil {
		s.log.Info("persisted token unusable, discarding", zap.Error(err))
		s.store.ClearToken(s.backendName)
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	profile, err := backend.GetPrivateProfile(ctx, userID)
	if err != nil {
		// A 401 already invalidated us via the token source.
		return err
	}
	s.SetUser(profile.User)
	return nil
}

// subjectIfValid decodes the token claims without verifying the signature
// and returns the subject, or an error when the token is expired or carries
// no subject.
func subjectIfValid(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", err
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
		return "", errors.New("token expired")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
