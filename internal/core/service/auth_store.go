// Package service holds the client's state stores. Each store owns its
// slice of state exclusively; views read snapshots and dispatch operations,
// never mutate. All mutations are applied as atomic reducers behind the
// store mutex, so two reducers for the same store can never interleave.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/ports"
	"github.com/hohoindia/event-client/internal/validate"
)

// AuthStore holds the current session and exposes the login/signup/logout
// operations. Durable storage is read once at construction; afterwards the
// in-memory session is authoritative and storage is a write-through mirror.
type AuthStore struct {
	gateway ports.AuthGateway
	tokens  ports.TokenStore
	val     *validate.Validator
	log     zerolog.Logger

	mu        sync.Mutex
	session   domain.Session
	isLoading bool
	lastErr   error
}

// NewAuthStore builds the store and restores any persisted session token.
// A persisted JWT whose exp claim is already past is discarded up front
// rather than waiting for the first 401.
func NewAuthStore(gateway ports.AuthGateway, tokens ports.TokenStore, log zerolog.Logger) *AuthStore {
	s := &AuthStore{
		gateway: gateway,
		tokens:  tokens,
		val:     validate.New(),
		log:     log,
	}

	token, err := tokens.Load()
	if err != nil {
		log.Warn().Err(err).Msg("token restore failed, starting unauthenticated")
		return s
	}
	if token == "" {
		return s
	}
	if tokenExpired(token, time.Now()) {
		log.Info().Msg("persisted token expired, discarding")
		if err := tokens.Clear(); err != nil {
			log.Warn().Err(err).Msg("failed to clear expired token")
		}
		return s
	}
	s.session = domain.NewSession(nil, token)
	return s
}

// tokenExpired reports whether a persisted JWT carries an exp claim in the
// past. Opaque (non-JWT) tokens are kept; the backend decides their fate.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// Session returns a copy of the current session.
func (s *AuthStore) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// IsLoading reports whether a login or signup call is in flight.
func (s *AuthStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// Err returns the last login/signup error, or nil.
func (s *AuthStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Signup posts the profile fields and, on success, persists the token and
// replaces the session wholesale. Validation failures never reach the wire.
func (s *AuthStore) Signup(ctx context.Context, in ports.SignupInput) (domain.Session, error) {
	if err := s.val.Struct(in); err != nil {
		s.recordAuthError(err)
		return domain.Session{}, err
	}
	s.beginAuth()
	result, err := s.gateway.Signup(ctx, in)
	return s.finishAuth(result, err)
}

// Login exchanges credentials for a session, same contract as Signup.
func (s *AuthStore) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if email == "" || password == "" {
		err := &domain.ValidationError{Message: "email and password are required"}
		s.recordAuthError(err)
		return domain.Session{}, err
	}
	s.beginAuth()
	result, err := s.gateway.Login(ctx, email, password)
	return s.finishAuth(result, err)
}

func (s *AuthStore) beginAuth() {
	s.mu.Lock()
	s.isLoading = true
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *AuthStore) finishAuth(result *ports.AuthResult, err error) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false

	if err != nil {
		s.lastErr = err
		s.session = domain.Session{}
		return domain.Session{}, err
	}

	if err := s.tokens.Save(result.Token); err != nil {
		// The in-memory session still wins; the mirror just missed a write.
		s.log.Warn().Err(err).Msg("failed to persist session token")
	}
	s.session = domain.NewSession(result.User, result.Token)
	s.lastErr = nil
	s.log.Info().Str("user", userEmail(result.User)).Msg("session established")
	return s.session, nil
}

func (s *AuthStore) recordAuthError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Logout clears the persisted token and resets the session synchronously.
// No network call is involved.
func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted token")
	}
	s.session = domain.Session{}
	s.lastErr = nil
	s.log.Info().Msg("logged out")
}

// HandleAuthExpired is the subscriber side of the gateway's auth-expired
// signal: tear the session down exactly as a logout would.
func (s *AuthStore) HandleAuthExpired() {
	s.Logout()
}

// ClearError resets the last-error field, so a stale message never leaks
// into a fresh login or signup form.
func (s *AuthStore) ClearError() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

func userEmail(u *domain.UserProfile) string {
	if u == nil {
		return ""
	}
	return u.Email
}
