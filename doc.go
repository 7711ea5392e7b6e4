// Package authpair provides an authentication-session engine built around
// paired JWT access/refresh tokens, Redis-backed server-side session
// identity, and a two-stage password acceptability pipeline enforced at
// registration time.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authpair is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (AuthResult, Identity, TokenPair). Token signing lives in
// the jwt subpackage, session state in session, hashing and password gating
// in password. Persistent user storage is a collaborator the caller
// implements ([UserStore]); the engine never owns user records.
//
// # Session model
//
// Tokens are stateless artifacts, but each carries a session identifier
// that must match the single record stored server-side for the user. That
// binding makes logout effective before token expiry, and it makes issuing
// a new pair (login or refresh) silently invalidate the previous one:
// exactly one session is live per account at any time.
//
// # What this package must NOT do
//
//   - Expose the Redis client, token secrets, or digest formats in its
//     public API.
//   - Perform I/O during construction (Builder is allocation-only until
//     Build).
//   - Let a plaintext password or a full password digest leave the process;
//     the breach gate sends a 5-character digest prefix and nothing else.
package authpair
