// Package session owns the server-side session state: a thin TTL key-value
// adapter over Redis ([Store]) and the orchestrator that issues, validates,
// rotates, and destroys token pairs ([Manager]).
//
// The store holds at most one record per user: the pair of session
// identifiers embedded in that user's live access and refresh tokens.
// Issuing a new pair unconditionally overwrites the previous record, which
// is the sole mechanism enforcing one active session per account. All
// mutable state lives in Redis; Manager and Store hold none of their own
// and are safe for concurrent use.
package session
