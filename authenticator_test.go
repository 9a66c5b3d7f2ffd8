package credentials_test

import (
	"context"
	"sync"
	"testing"
	"time"

	credentials "github.com/goliatone/go-credentials"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAuther(store credentials.CredentialStore) *credentials.Auther {
	return credentials.NewAuthenticator(store, testConfig{
		signingKey: "test-signing-key",
		ttl:        30 * time.Minute,
		issuer:     "test-issuer",
	})
}

func TestAuther_Signup(t *testing.T) {
	ctx := context.Background()
	auther := newTestAuther(credentials.NewMemoryStore())

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		user, err := auther.Signup(ctx, "alice", "pw123")
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "pw123", user.PasswordHash)
		assert.NoError(t, credentials.ComparePasswordAndHash("pw123", user.PasswordHash))
	})

	t.Run("duplicate username fails with ErrUserAlreadyExists", func(t *testing.T) {
		_, err := auther.Signup(ctx, "alice", "otherpw")
		assert.Equal(t, credentials.ErrUserAlreadyExists, err)
		assert.True(t, credentials.IsUserExistsError(err))
	})

	t.Run("empty username is rejected", func(t *testing.T) {
		_, err := auther.Signup(ctx, "", "pw123")
		assert.Error(t, err)
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		_, err := auther.Signup(ctx, "someone", "")
		assert.Error(t, err)
	})
}

func TestAuther_SignupConcurrent(t *testing.T) {
	const workers = 8

	ctx := context.Background()
	store := credentials.NewMemoryStore()
	auther := newTestAuther(store)

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := auther.Signup(ctx, "race", "pw123")
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.Equal(t, credentials.ErrUserAlreadyExists, err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, store.Len())
}

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()
	auther := newTestAuther(credentials.NewMemoryStore())

	_, err := auther.Signup(ctx, "alice", "pw123")
	require.NoError(t, err)

	t.Run("valid credentials return a verifiable token", func(t *testing.T) {
		token, err := auther.Login(ctx, "alice", "pw123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject())
	})

	t.Run("wrong password and unknown user yield the same error", func(t *testing.T) {
		_, errWrongPassword := auther.Login(ctx, "alice", "nope")
		_, errUnknownUser := auther.Login(ctx, "nobody", "pw123")

		assert.Equal(t, credentials.ErrInvalidCredentials, errWrongPassword)
		assert.Equal(t, credentials.ErrInvalidCredentials, errUnknownUser)
		assert.Equal(t, errWrongPassword, errUnknownUser)
	})

	t.Run("store failures do not leak through the login error", func(t *testing.T) {
		store := &MockCredentialStore{}
		store.On("GetByUsername", ctx, "alice").
			Return(nil, goerrors.New("backend down", goerrors.CategoryInternal))

		broken := newTestAuther(store).WithLogger(quietLogger())

		_, err := broken.Login(ctx, "alice", "pw123")
		assert.Equal(t, credentials.ErrInvalidCredentials, err)
	})

	t.Run("corrupted stored hash surfaces as an internal error", func(t *testing.T) {
		store := &MockCredentialStore{}
		store.On("GetByUsername", ctx, "alice").
			Return(&credentials.User{Username: "alice", PasswordHash: "not-a-bcrypt-hash"}, nil)

		broken := newTestAuther(store).WithLogger(quietLogger())

		_, err := broken.Login(ctx, "alice", "pw123")
		require.Error(t, err)
		assert.NotEqual(t, credentials.ErrInvalidCredentials, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryInternal, richErr.Category)
	})
}

func TestAuther_ResolveCurrentUser(t *testing.T) {
	ctx := context.Background()
	auther := newTestAuther(credentials.NewMemoryStore())

	user, err := auther.Signup(ctx, "alice", "pw123")
	require.NoError(t, err)

	t.Run("resolves the identity behind a fresh token", func(t *testing.T) {
		token, err := auther.Login(ctx, "alice", "pw123")
		require.NoError(t, err)

		identity, err := auther.ResolveCurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "alice", identity.Username())
		assert.Equal(t, user.ID.String(), identity.ID())
	})

	t.Run("expired token fails with ErrUnauthenticated", func(t *testing.T) {
		token, err := auther.TokenService().GenerateWithTTL(user.Identity(), -time.Minute)
		require.NoError(t, err)

		_, err = auther.ResolveCurrentUser(ctx, token)
		assert.Equal(t, credentials.ErrUnauthenticated, err)
	})

	t.Run("garbage token fails with ErrUnauthenticated", func(t *testing.T) {
		_, err := auther.ResolveCurrentUser(ctx, "garbage")
		assert.Equal(t, credentials.ErrUnauthenticated, err)
	})

	t.Run("token for a subject no longer in the store fails", func(t *testing.T) {
		token, err := auther.Login(ctx, "alice", "pw123")
		require.NoError(t, err)

		// same signing config, different (empty) store
		other := newTestAuther(credentials.NewMemoryStore())

		_, err = other.ResolveCurrentUser(ctx, token)
		assert.Equal(t, credentials.ErrUnauthenticated, err)
	})
}

func quietLogger() credentials.Logger {
	logger := &MockLogger{}
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return logger
}
