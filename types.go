package credentials

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of a resolved identity
type Identity interface {
	ID() string
	Username() string
}

// Authenticator holds methods to deal with the credential lifecycle
type Authenticator interface {
	Signup(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ResolveCurrentUser(ctx context.Context, token string) (Identity, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenTTL() time.Duration
	GetIssuer() string
	GetAudience() []string
	GetAuthScheme() string
	GetContextKey() string
}

// CredentialStore is the contract the auth service needs from a user backend.
// CreateIfAbsent must be atomic: two concurrent calls for the same username
// yield exactly one stored record and one ErrUserAlreadyExists.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	CreateIfAbsent(ctx context.Context, user *User) (*User, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CRED "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] CRED "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CRED "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CRED "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
