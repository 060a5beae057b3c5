package ports

// TokenStore is the durable client storage holding the session token. It is
// read once at store initialisation and written through on login, signup,
// logout, and auth expiry. Load returns an empty string when no token is
// persisted.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
