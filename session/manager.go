package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/kareemadel/authpair/internal"
	"github.com/kareemadel/authpair/jwt"
)

// ErrRefreshInvalid is the single opaque outcome of a failed refresh.
// Expiry, malformed tokens, and session mismatches are deliberately not
// distinguished to the caller.
var ErrRefreshInvalid = errors.New("invalid refresh token")

// DefaultTTL is the session record lifetime. It matches the refresh token
// lifetime so a record never outlives the only token that can rotate it.
const DefaultTTL = 7 * 24 * time.Hour

// TokenPair is the signed access/refresh pair returned by Issue and Refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Manager orchestrates issuance, validation, rotation, and destruction of
// session pairs. It holds no in-process mutable state; the Redis operation
// is the unit of atomicity.
type Manager struct {
	codec *jwt.Manager
	store *Store
	ttl   time.Duration
}

// NewManager returns a Manager over the given codec and store. A zero ttl
// selects DefaultTTL.
func NewManager(codec *jwt.Manager, store *Store, ttl time.Duration) (*Manager, error) {
	if codec == nil || store == nil {
		return nil, errors.New("codec and store are required")
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if ttl < 0 {
		return nil, errors.New("invalid session TTL")
	}

	return &Manager{codec: codec, store: store, ttl: ttl}, nil
}

// Issue mints two fresh session identifiers, signs a token pair carrying
// them, and stores the pair for userID.
//
// The store write unconditionally replaces any prior record: this is the
// sole mechanism enforcing one active session per account. Concurrent Issue
// calls for the same user are last-write-wins, and the losing call's tokens
// are immediately unusable.
func (m *Manager) Issue(ctx context.Context, userID string) (TokenPair, error) {
	accessSID, err := internal.NewSessionID()
	if err != nil {
		return TokenPair{}, err
	}
	refreshSID, err := internal.NewSessionID()
	if err != nil {
		return TokenPair{}, err
	}

	accessToken, err := m.codec.Sign(userID, accessSID, jwt.KindAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := m.codec.Sign(userID, refreshSID, jwt.KindRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	if err := m.store.Put(ctx, userID, accessSID, refreshSID, m.ttl); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Validate checks that sessionID equals the stored identifier for userID
// and the given token kind. It returns ErrSessionNotFound when no record
// exists, ErrSessionMismatch when the stored identifier differs, and an
// ErrRedisUnavailable-wrapped error when the store cannot be reached.
// Store unavailability is not fail-open: an unreadable record cannot be
// told apart from one that never existed.
func (m *Manager) Validate(ctx context.Context, sessionID, userID string, kind jwt.Kind) error {
	record, err := m.store.Get(ctx, userID)
	if err != nil {
		return err
	}

	stored := record.AccessSID
	if kind == jwt.KindRefresh {
		stored = record.RefreshSID
	}
	if stored != sessionID {
		return ErrSessionMismatch
	}

	return nil
}

// Refresh verifies refreshToken, validates its session identifier against
// the stored record, and issues a fresh pair, rotating both identifiers.
// Every failure collapses to ErrRefreshInvalid so the caller learns nothing
// about which stage rejected the token.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := m.codec.Verify(refreshToken, jwt.KindRefresh)
	if err != nil {
		return TokenPair{}, ErrRefreshInvalid
	}

	if err := m.Validate(ctx, claims.SID, claims.Subject, jwt.KindRefresh); err != nil {
		return TokenPair{}, ErrRefreshInvalid
	}

	pair, err := m.Issue(ctx, claims.Subject)
	if err != nil {
		log.Print("authpair: token rotation failed after refresh validation")
		return TokenPair{}, ErrRefreshInvalid
	}

	return pair, nil
}

// Logout deletes the stored record for userID. It is idempotent.
func (m *Manager) Logout(ctx context.Context, userID string) error {
	return m.store.Delete(ctx, userID)
}
