package authpair

import (
	"errors"
	"time"

	"github.com/kareemadel/authpair/session"
)

// Config defines the engine's configuration. Zero-valued fields select the
// defaults documented per section.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	JWT      JWTConfig
	Session  SessionConfig
	Password PasswordConfig
	Breach   BreachConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig carries the token codec's secrets and lifetimes. The two
// secrets are independent configuration values so possession of one cannot
// forge tokens of the other kind.
type JWTConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration // default 15m
	RefreshTTL    time.Duration // default 7d
	Issuer        string        // default "authpair"
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls the server-side session record.
type SessionConfig struct {
	RedisPrefix string        // default "authsession:"
	TTL         time.Duration // default 7d, matching RefreshTTL
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig controls hashing cost and the entropy gate.
type PasswordConfig struct {
	BcryptCost int // default bcrypt.DefaultCost
	MinScore   int // default 3, on the 0-4 zxcvbn scale
}

/*
====================================
BREACH CONFIG
====================================
*/

// BreachConfig controls the breach-corpus gate. Lookups past Timeout fall
// under the fail-open policy.
type BreachConfig struct {
	Endpoint string        // default public range API
	Timeout  time.Duration // default 3s
}

// DefaultConfig returns the documented defaults. Secrets have no default
// and must be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			Issuer:     "authpair",
		},
		Session: SessionConfig{
			RedisPrefix: session.DefaultKeyPrefix,
			TTL:         session.DefaultTTL,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.AccessSecret = append([]byte(nil), cfg.JWT.AccessSecret...)
	out.JWT.RefreshSecret = append([]byte(nil), cfg.JWT.RefreshSecret...)
	return out
}

func validateConfig(cfg Config) error {
	if len(cfg.JWT.AccessSecret) == 0 || len(cfg.JWT.RefreshSecret) == 0 {
		return errors.New("jwt secrets are required")
	}
	if cfg.JWT.AccessTTL <= 0 || cfg.JWT.RefreshTTL <= 0 {
		return errors.New("jwt TTLs must be positive")
	}
	if cfg.Session.TTL < 0 {
		return errors.New("session TTL must not be negative")
	}
	if cfg.Breach.Timeout < 0 {
		return errors.New("breach timeout must not be negative")
	}
	return nil
}
