// Package credentials implements a minimal credential issuance service:
// signup with bcrypt hashed passwords, login exchanging a password for a
// signed expiring bearer token, and current-user resolution from that token.
//
// Tokens are stateless HS256 JWTs carrying the username as subject; no
// session table exists and tokens cannot be revoked before expiry.
//
// Stores:
//   - MemoryStore keeps records in process and is the default.
//   - BunStore persists records through Bun and relies on the unique username
//     constraint for atomic insert-if-absent.
//
// Login never distinguishes an unknown username from a wrong password; both
// yield ErrInvalidCredentials so responses cannot enumerate usernames.
package credentials
