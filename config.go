package credentials

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// EnvConfig is the process configuration, loaded once at startup. The signing
// key is required and must never be logged.
type EnvConfig struct {
	SigningKey string        `env:"CRED_SIGNING_KEY,required,notEmpty"`
	TokenTTL   time.Duration `env:"CRED_TOKEN_TTL" envDefault:"30m"`
	Issuer     string        `env:"CRED_ISSUER" envDefault:"go-credentials"`
	Audience   []string      `env:"CRED_AUDIENCE" envSeparator:","`
	AuthScheme string        `env:"CRED_AUTH_SCHEME" envDefault:"Bearer"`
	ContextKey string        `env:"CRED_CONTEXT_KEY" envDefault:"user"`
	ListenAddr string        `env:"CRED_ADDR" envDefault:":8080"`
	DSN        string        `env:"CRED_DSN"`
	Debug      bool          `env:"CRED_DEBUG"`
}

var _ Config = (*EnvConfig)(nil)

// LoadConfig parses configuration from environment variables
func LoadConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse environment configuration")
	}
	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *EnvConfig) GetTokenTTL() time.Duration {
	if c.TokenTTL <= 0 {
		return DefaultTokenTTL
	}
	return c.TokenTTL
}

func (c *EnvConfig) GetIssuer() string {
	return c.Issuer
}

func (c *EnvConfig) GetAudience() []string {
	return c.Audience
}

func (c *EnvConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c *EnvConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}
