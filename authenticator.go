package credentials

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Auther orchestrates signup, login, and current-user resolution over a
// CredentialStore. It holds no per request state; the store is the only
// shared mutable resource.
type Auther struct {
	store        CredentialStore
	hasher       PasswordAuthenticator
	tokenService TokenService
	logger       Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store CredentialStore, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenTTL(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		store:        store,
		hasher:       BcryptAuthenticator{},
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService sets a custom token service, mostly for tests
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	s.tokenService = ts
	return s
}

// WithPasswordAuthenticator sets a custom password hasher
func (s *Auther) WithPasswordAuthenticator(hasher PasswordAuthenticator) *Auther {
	s.hasher = hasher
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Signup hashes the password and stores a new credential record. A taken
// username fails with ErrUserAlreadyExists; the existence check and insert
// are a single atomic store operation.
func (s *Auther) Signup(ctx context.Context, username, password string) (*User, error) {
	if username == "" {
		return nil, ErrNoEmptyString
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		ID:           newUserID(username),
		Username:     username,
		PasswordHash: hash,
	}

	created, err := s.store.CreateIfAbsent(ctx, user)
	if err != nil {
		if IsUserExistsError(err) {
			s.logger.Info("Signup rejected, username taken", "username", username)
			return nil, err
		}
		s.logger.Error("Signup store error", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to store user")
	}

	return created, nil
}

// Login verifies the password for the username and issues a bearer token.
// Unknown users and wrong passwords return the same ErrInvalidCredentials so
// responses cannot be used to enumerate usernames.
func (s *Auther) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if !errors.IsNotFound(err) {
			s.logger.Error("Login store error", "error", err)
		}
		return "", ErrInvalidCredentials
	}

	if err := s.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category == errors.CategoryInternal {
			// stored hash is corrupted, surface a server error, not a 401
			s.logger.Error("Login hash comparison failed", "error", err, "username", username)
			return "", richErr
		}
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(user.Identity())
	if err != nil {
		s.logger.Error("Login token generation failed", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to issue token")
	}

	return token, nil
}

// ResolveCurrentUser validates the token and resolves the subject against the
// store. Every failure mode collapses into ErrUnauthenticated.
func (s *Auther) ResolveCurrentUser(ctx context.Context, token string) (Identity, error) {
	claims, err := s.tokenService.Validate(token)
	if err != nil {
		s.logger.Debug("ResolveCurrentUser token validation failed", "error", err)
		return nil, ErrUnauthenticated
	}

	user, err := s.store.GetByUsername(ctx, claims.Subject())
	if err != nil {
		s.logger.Debug("ResolveCurrentUser subject lookup failed", "subject", claims.Subject())
		return nil, ErrUnauthenticated
	}

	return user.Identity(), nil
}

// newUserID derives a stable UUID from the username so repeated registrations
// across environments agree on IDs. Falls back to a random UUID.
func newUserID(username string) uuid.UUID {
	if id, err := hashid.NewUUID(username); err == nil {
		return id
	}
	return uuid.New()
}
