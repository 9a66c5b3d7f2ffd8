package credentials

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeUserExists         = "user_already_exists"
	TextCodeInvalidCredentials = "invalid_credentials"
	TextCodeTokenInvalid       = "token_invalid"
	TextCodeTokenExpired       = "token_expired"
	TextCodeUnauthenticated    = "unauthenticated"
	TextCodeHashFormat         = "hash_format"
	TextCodeEmptyValue         = "empty_value"
	TextCodeIdentityNotFound   = "identity_not_found"
)

// ErrUserAlreadyExists is returned when a signup targets a taken username.
// The wire contract maps signup conflicts to 400, not 409.
var ErrUserAlreadyExists = errors.New("user already exists", errors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredentials covers both unknown usernames and password mismatches
// so callers cannot enumerate registered accounts.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid is returned when a token fails signature or structural checks.
var ErrTokenInvalid = errors.New("invalid token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a token is past its expiry claim.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is the only failure surfaced when resolving the current
// user from a bearer token, regardless of the underlying cause.
var ErrUnauthenticated = errors.New("not authenticated", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrHashFormat indicates a stored password hash is not in the expected
// encoding. It points at corrupted data and must never reach a client.
var ErrHashFormat = errors.New("malformed password hash", errors.CategoryInternal).
	WithTextCode(TextCodeHashFormat).
	WithCode(errors.CodeInternal)

// ErrMismatchedHashAndPassword is the internal comparison failure, mapped to
// ErrInvalidCredentials at the service boundary.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is the error we return for empty required values
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyValue).
	WithCode(errors.CodeBadRequest)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(errors.CodeNotFound)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeTokenExpired
}

// IsUserExistsError will check for signup conflicts
func IsUserExistsError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeUserExists
}
