package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no record exists for the user. A
// logged-out session, a TTL-expired session, and a session that never
// existed are deliberately indistinguishable.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionMismatch is returned when a record exists but the presented
// session identifier does not equal the stored one for the token kind.
var ErrSessionMismatch = errors.New("session mismatch")

// ErrRedisUnavailable wraps transport-level cache failures. Unlike the
// breach gate, session validation is never fail-open.
var ErrRedisUnavailable = errors.New("redis unavailable")

// DefaultKeyPrefix is the Redis key prefix for session records.
const DefaultKeyPrefix = "authsession:"

const recordSeparator = ":"

// Record is the stored session-identifier pair for one user.
type Record struct {
	AccessSID  string
	RefreshSID string
}

// Store is the TTL key-value adapter. It does not interpret identifiers;
// TTL semantics are delegated to Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore returns a Store keyed under prefix. An empty prefix selects
// DefaultKeyPrefix.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(userID string) string {
	return s.prefix + userID
}

// Put stores the identifier pair for userID with the given TTL, replacing
// any existing record.
func (s *Store) Put(ctx context.Context, userID, accessSID, refreshSID string, ttl time.Duration) error {
	value := accessSID + recordSeparator + refreshSID
	if err := s.client.Set(ctx, s.key(userID), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get retrieves the identifier pair for userID. An absent key and a record
// that does not decode both read as ErrSessionNotFound; a corrupt record is
// unrecoverable anyway and the next login overwrites it.
func (s *Store) Get(ctx context.Context, userID string) (Record, error) {
	value, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, ErrSessionNotFound
		}
		return Record{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	accessSID, refreshSID, ok := strings.Cut(value, recordSeparator)
	if !ok || accessSID == "" || refreshSID == "" {
		return Record{}, ErrSessionNotFound
	}

	return Record{AccessSID: accessSID, RefreshSID: refreshSID}, nil
}

// Delete removes the record for userID. Deleting an absent record is not an
// error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
