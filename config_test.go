package credentials_test

import (
	"os"
	"testing"
	"time"

	credentials "github.com/goliatone/go-credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets variables for the duration of the test so ambient shell
// values cannot leak into the assertions. t.Setenv registers the restore.
func clearEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t,
		"CRED_TOKEN_TTL",
		"CRED_ISSUER",
		"CRED_AUDIENCE",
		"CRED_AUTH_SCHEME",
		"CRED_CONTEXT_KEY",
		"CRED_ADDR",
		"CRED_DSN",
		"CRED_DEBUG",
	)
	t.Setenv("CRED_SIGNING_KEY", "super-secret")

	cfg, err := credentials.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "super-secret", cfg.GetSigningKey())
	assert.Equal(t, 30*time.Minute, cfg.GetTokenTTL())
	assert.Equal(t, "go-credentials", cfg.GetIssuer())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
	assert.Equal(t, "user", cfg.GetContextKey())
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Empty(t, cfg.DSN)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CRED_SIGNING_KEY", "super-secret")
	t.Setenv("CRED_TOKEN_TTL", "15m")
	t.Setenv("CRED_ISSUER", "issuer-under-test")
	t.Setenv("CRED_AUDIENCE", "api,web")

	cfg, err := credentials.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.GetTokenTTL())
	assert.Equal(t, "issuer-under-test", cfg.GetIssuer())
	assert.Equal(t, []string{"api", "web"}, cfg.GetAudience())
}

func TestLoadConfigRequiresSigningKey(t *testing.T) {
	t.Setenv("CRED_SIGNING_KEY", "")

	_, err := credentials.LoadConfig()
	assert.Error(t, err)
}
