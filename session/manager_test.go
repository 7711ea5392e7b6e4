package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kareemadel/authpair/jwt"
)

func newTestCodec(t *testing.T) *jwt.Manager {
	t.Helper()

	codec, err := jwt.NewManager(jwt.Config{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "authpair",
	})
	if err != nil {
		t.Fatalf("jwt.NewManager: %v", err)
	}
	return codec
}

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m, err := NewManager(newTestCodec(t), NewStore(rdb, ""), 0)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, mr
}

// sids decodes the session identifiers embedded in a pair's tokens.
func sids(t *testing.T, codec *jwt.Manager, pair TokenPair) (access, refresh string) {
	t.Helper()

	accessClaims, err := codec.Verify(pair.AccessToken, jwt.KindAccess)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	refreshClaims, err := codec.Verify(pair.RefreshToken, jwt.KindRefresh)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	return accessClaims.SID, refreshClaims.SID
}

func TestIssueThenValidate(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	pair, err := m.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	accessSID, refreshSID := sids(t, m.codec, pair)
	if accessSID == refreshSID {
		t.Fatal("access and refresh session ids must be distinct")
	}

	if err := m.Validate(ctx, accessSID, "user-1", jwt.KindAccess); err != nil {
		t.Fatalf("Validate access: %v", err)
	}
	if err := m.Validate(ctx, refreshSID, "user-1", jwt.KindRefresh); err != nil {
		t.Fatalf("Validate refresh: %v", err)
	}
}

func TestValidateMismatch(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	pair, err := m.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	accessSID, refreshSID := sids(t, m.codec, pair)

	if err := m.Validate(ctx, "some-other-sid", "user-1", jwt.KindAccess); !errors.Is(err, ErrSessionMismatch) {
		t.Fatalf("expected ErrSessionMismatch, got %v", err)
	}
	// The refresh id is not valid for the access slot and vice versa.
	if err := m.Validate(ctx, refreshSID, "user-1", jwt.KindAccess); !errors.Is(err, ErrSessionMismatch) {
		t.Fatalf("refresh sid accepted for access kind: %v", err)
	}
	if err := m.Validate(ctx, accessSID, "user-1", jwt.KindRefresh); !errors.Is(err, ErrSessionMismatch) {
		t.Fatalf("access sid accepted for refresh kind: %v", err)
	}
}

func TestValidateAfterLogout(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	pair, err := m.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	accessSID, _ := sids(t, m.codec, pair)

	if err := m.Logout(ctx, "user-1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := m.Logout(ctx, "user-1"); err != nil {
		t.Fatalf("Logout not idempotent: %v", err)
	}

	if err := m.Validate(ctx, accessSID, "user-1", jwt.KindAccess); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestSecondIssueInvalidatesFirst(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	first, err := m.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("first Issue: %v", err)
	}
	second, err := m.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("second Issue: %v", err)
	}

	firstAccess, firstRefresh := sids(t, m.codec, first)
	secondAccess, secondRefresh := sids(t, m.codec, second)

	if err := m.Validate(ctx, firstAccess, "user-1", jwt.KindAccess); !errors.Is(err, ErrSessionMismatch) {
		t.Fatalf("first pair's access sid still valid: %v", err)
	}
	if err := m.Validate(ctx, firstRefresh, "user-1", jwt.KindRefresh); !errors.Is(err, ErrSessionMismatch) {
		t.Fatalf("first pair's refresh sid still valid: %v", err)
	}
	if err := m.Validate(ctx, secondAccess, "user-1", jwt.KindAccess); err != nil {
		t.Fatalf("second pair's access sid invalid: %v", err)
	}
	if err := m.Validate(ctx, secondRefresh, "user-1", jwt.KindRefresh); err != nil {
		t.Fatalf("second pair's refresh sid invalid: %v", err)
	}
}

func TestConcurrentIssueLastWriteWins(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	const callers = 8
	pairs := make([]TokenPair, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pair, err := m.Issue(ctx, "user-1")
			if err != nil {
				t.Errorf("Issue: %v", err)
				return
			}
			pairs[i] = pair
		}(i)
	}
	wg.Wait()

	// Exactly one pair's identifiers match the surviving record; the rest
	// became unusable the moment a later store write landed.
	live := 0
	for _, pair := range pairs {
		if pair.AccessToken == "" {
			continue
		}
		accessSID, _ := sids(t, m.codec, pair)
		if err := m.Validate(ctx, accessSID, "user-1", jwt.KindAccess); err == nil {
			live++
		}
	}
	if live != 1 {
		t.Fatalf("expected exactly one live session, got %d", live)
	}
}

func TestRefreshRotatesBothIdentifiers(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	first, err := m.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	firstAccess, firstRefresh := sids(t, m.codec, first)

	second, err := m.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	secondAccess, secondRefresh := sids(t, m.codec, second)

	if secondAccess == firstAccess || secondRefresh == firstRefresh {
		t.Fatal("refresh did not rotate both identifiers")
	}
	if err := m.Validate(ctx, secondAccess, "user-1", jwt.KindAccess); err != nil {
		t.Fatalf("rotated access sid invalid: %v", err)
	}

	// The consumed refresh token is dead: its session id no longer matches.
	if _, err := m.Refresh(ctx, first.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid for consumed token, got %v", err)
	}
}

func TestRefreshFailuresAreOpaque(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	pair, err := m.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name  string
		token string
		setup func()
	}{
		{"garbage token", "not-a-token", nil},
		{"access token in refresh slot", pair.AccessToken, nil},
		{"after logout", pair.RefreshToken, func() {
			if err := m.Logout(ctx, "user-1"); err != nil {
				t.Fatalf("Logout: %v", err)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				tc.setup()
			}
			if _, err := m.Refresh(ctx, tc.token); !errors.Is(err, ErrRefreshInvalid) {
				t.Fatalf("expected ErrRefreshInvalid, got %v", err)
			}
		})
	}
}

func TestSessionTTLExpiry(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	pair, err := m.Issue(ctx, "user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	accessSID, _ := sids(t, m.codec, pair)

	mr.FastForward(DefaultTTL + time.Hour)

	if err := m.Validate(ctx, accessSID, "user-1", jwt.KindAccess); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after TTL expiry, got %v", err)
	}
	if _, err := m.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid after TTL expiry, got %v", err)
	}
}

func TestNewManagerValidation(t *testing.T) {
	codec := newTestCodec(t)

	if _, err := NewManager(nil, nil, 0); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
	if _, err := NewManager(codec, &Store{}, -time.Hour); err == nil {
		t.Fatal("expected error for negative TTL")
	}
}
