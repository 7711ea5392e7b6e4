package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	minCost = bcrypt.MinCost
	maxCost = bcrypt.MaxCost
)

// HashConfig controls the bcrypt work factor.
//
// HashConfig instances are intended to be configured during initialization
// and then treated as immutable.
type HashConfig struct {
	Cost int
}

// Hasher produces and verifies salted one-way password digests.
//
// Hasher is stateless after construction and safe for concurrent use.
type Hasher struct {
	cost int
}

// NewHasher validates cfg and returns a Hasher. A zero Cost selects the
// bcrypt default work factor.
func NewHasher(cfg HashConfig) (*Hasher, error) {
	cost := cfg.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < minCost || cost > maxCost {
		return nil, errors.New("invalid bcrypt cost")
	}

	return &Hasher{cost: cost}, nil
}

// Hash derives a salted digest from plaintext. The digest embeds its own
// salt and cost, so Verify needs no companion state.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("empty password")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed or truncated
// digest yields false; Verify never returns an error.
func (h *Hasher) Verify(plaintext, digest string) bool {
	if plaintext == "" || digest == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
