package credentials_test

import (
	"context"
	"time"

	credentials "github.com/goliatone/go-credentials"
	"github.com/stretchr/testify/mock"
)

// MockIdentity implements credentials.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Username() string {
	args := m.Called()
	return args.String(0)
}

// MockLogger implements credentials.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// MockCredentialStore implements credentials.CredentialStore for testing
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) GetByUsername(ctx context.Context, username string) (*credentials.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*credentials.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) CreateIfAbsent(ctx context.Context, user *credentials.User) (*credentials.User, error) {
	args := m.Called(ctx, user)
	if created, ok := args.Get(0).(*credentials.User); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

// testConfig is a plain Config implementation for tests
type testConfig struct {
	signingKey string
	ttl        time.Duration
	issuer     string
	audience   []string
}

func (c testConfig) GetSigningKey() string      { return c.signingKey }
func (c testConfig) GetTokenTTL() time.Duration { return c.ttl }
func (c testConfig) GetIssuer() string          { return c.issuer }
func (c testConfig) GetAudience() []string      { return c.audience }
func (c testConfig) GetAuthScheme() string      { return "Bearer" }
func (c testConfig) GetContextKey() string      { return "user" }
