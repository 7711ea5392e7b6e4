package jwt

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind distinguishes the two token classes. Each kind has its own signing
// secret and lifetime.
type Kind string

const (
	// KindAccess is the short-lived per-request token kind.
	KindAccess Kind = "access"
	// KindRefresh is the long-lived token kind used only to mint new pairs.
	KindRefresh Kind = "refresh"
)

// ErrTokenMalformed is returned when a token cannot be parsed, its
// signature does not verify, or its claims fail validation.
var ErrTokenMalformed = errors.New("malformed token")

// ErrTokenExpired is returned when a well-formed token's expiry has passed.
var ErrTokenExpired = errors.New("token expired")

// Config defines the codec's secrets and lifetimes.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// Claims is the signed claim set carried by both token kinds. SID binds the
// token to the server-side session record; Kind pins which secret the token
// was signed under.
type Claims struct {
	SID  string `json:"sid"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Manager signs and verifies both token kinds. It holds no mutable state
// and is safe for concurrent use.
type Manager struct {
	config Config
}

// NewManager validates cfg and returns a Manager. Secrets must be non-empty
// and distinct; equal secrets would let either kind verify as the other.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("access and refresh secrets are required")
	}
	if len(cfg.AccessSecret) == len(cfg.RefreshSecret) &&
		subtle.ConstantTimeCompare(cfg.AccessSecret, cfg.RefreshSecret) == 1 {
		return nil, errors.New("access and refresh secrets must differ")
	}

	return &Manager{config: cfg}, nil
}

// Sign builds and signs a token of the given kind for userID, embedding the
// session identifier and the kind's lifetime.
func (m *Manager) Sign(userID, sessionID string, kind Kind) (string, error) {
	secret, ttl, err := m.kindParams(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		SID:  sessionID,
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if m.config.Issuer != "" {
		claims.Issuer = m.config.Issuer
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify parses tokenStr with the secret for the expected kind and returns
// its claims. Failures are collapsed to ErrTokenExpired or ErrTokenMalformed.
func (m *Manager) Verify(tokenStr string, kind Kind) (*Claims, error) {
	secret, _, err := m.kindParams(kind)
	if err != nil {
		return nil, err
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	// Kind is pinned both by secret separation and by claim; a token signed
	// under the right secret but carrying the wrong kind is still malformed.
	if claims.Kind != string(kind) {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" || claims.SID == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func (m *Manager) kindParams(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindAccess:
		return m.config.AccessSecret, m.config.AccessTTL, nil
	case KindRefresh:
		return m.config.RefreshSecret, m.config.RefreshTTL, nil
	default:
		return nil, 0, errors.New("unsupported token kind")
	}
}
