package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hohoindia/event-client/internal/core/domain"
	"github.com/hohoindia/event-client/internal/core/ports"
)

type memTokenStore struct {
	token string
}

func (m *memTokenStore) Load() (string, error)   { return m.token, nil }
func (m *memTokenStore) Save(token string) error { m.token = token; return nil }
func (m *memTokenStore) Clear() error            { m.token = ""; return nil }

type stubAuthGateway struct {
	result *ports.AuthResult
	err    error
	calls  int
}

func (g *stubAuthGateway) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	g.calls++
	return g.result, g.err
}

func (g *stubAuthGateway) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	g.calls++
	return g.result, g.err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestAuthStore_LoginThenLogout(t *testing.T) {
	tokens := &memTokenStore{}
	gw := &stubAuthGateway{result: &ports.AuthResult{
		User:  &domain.UserProfile{Name: "Asha", Email: "asha@example.com"},
		Token: "tok-1",
	}}
	store := NewAuthStore(gw, tokens, zerolog.Nop())

	session, err := store.Login(context.Background(), "asha@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, "tok-1", tokens.token, "token must be persisted")
	require.NotNil(t, session.User)
	assert.Equal(t, "Asha", session.User.Name)

	store.Logout()
	session = store.Session()
	assert.False(t, session.IsAuthenticated)
	assert.Empty(t, session.Token)
	assert.Nil(t, session.User)
	assert.Empty(t, tokens.token, "durable storage must be cleared too")
}

func TestAuthStore_LoginFailure(t *testing.T) {
	tokens := &memTokenStore{}
	gw := &stubAuthGateway{err: &domain.APIError{Status: 401, Message: "invalid credentials"}}
	store := NewAuthStore(gw, tokens, zerolog.Nop())

	_, err := store.Login(context.Background(), "asha@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	session := store.Session()
	assert.False(t, session.IsAuthenticated)
	assert.Error(t, store.Err())
	assert.False(t, store.IsLoading(), "loading flag must reset on failure")
	assert.Empty(t, tokens.token)
}

func TestAuthStore_LoginValidation(t *testing.T) {
	gw := &stubAuthGateway{}
	store := NewAuthStore(gw, &memTokenStore{}, zerolog.Nop())

	_, err := store.Login(context.Background(), "", "")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, gw.calls, "validation failures must not reach the wire")
}

func TestAuthStore_SignupValidation(t *testing.T) {
	gw := &stubAuthGateway{}
	store := NewAuthStore(gw, &memTokenStore{}, zerolog.Nop())

	_, err := store.Signup(context.Background(), ports.SignupInput{Email: "not-an-email"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, gw.calls)
}

func TestAuthStore_ClearError(t *testing.T) {
	gw := &stubAuthGateway{err: &domain.APIError{Message: "offline"}}
	store := NewAuthStore(gw, &memTokenStore{}, zerolog.Nop())

	_, _ = store.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, store.Err())

	// Invoked when a login/signup view unmounts, so a stale message never
	// leaks into a fresh form.
	store.ClearError()
	assert.NoError(t, store.Err())
}

func TestAuthStore_RestoresPersistedToken(t *testing.T) {
	tok := signedToken(t, time.Now().Add(time.Hour))
	tokens := &memTokenStore{token: tok}
	store := NewAuthStore(&stubAuthGateway{}, tokens, zerolog.Nop())

	session := store.Session()
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, tok, session.Token)
	assert.Nil(t, session.User, "profile is only populated by a fresh login")
}

func TestAuthStore_DiscardsExpiredPersistedToken(t *testing.T) {
	tokens := &memTokenStore{token: signedToken(t, time.Now().Add(-time.Hour))}
	store := NewAuthStore(&stubAuthGateway{}, tokens, zerolog.Nop())

	assert.False(t, store.Session().IsAuthenticated)
	assert.Empty(t, tokens.token, "expired token must be cleared from storage")
}

func TestAuthStore_KeepsOpaqueToken(t *testing.T) {
	tokens := &memTokenStore{token: "not-a-jwt"}
	store := NewAuthStore(&stubAuthGateway{}, tokens, zerolog.Nop())

	// The backend owns the verdict on tokens the client cannot inspect.
	assert.True(t, store.Session().IsAuthenticated)
}

func TestAuthStore_HandleAuthExpired(t *testing.T) {
	tokens := &memTokenStore{token: "not-a-jwt"}
	store := NewAuthStore(&stubAuthGateway{}, tokens, zerolog.Nop())
	require.True(t, store.Session().IsAuthenticated)

	store.HandleAuthExpired()
	assert.False(t, store.Session().IsAuthenticated)
	assert.Empty(t, tokens.token)
}
