// Package jwt implements the two-kind token codec: HS256-signed access and
// refresh tokens with independent secrets and lifetimes.
//
// Verification failures collapse to exactly two sentinels. [ErrTokenExpired]
// means the token parsed and its signature verified but its expiry has
// passed. [ErrTokenMalformed] covers everything else, including a token of
// the other kind: each kind is signed with its own secret and carries an
// explicit kind claim, so possession of one secret cannot forge the other
// kind and cross-kind verification always fails as malformed.
package jwt
