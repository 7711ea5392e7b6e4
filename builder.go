package authpair

import (
	"errors"
	"net/http"

	"github.com/kareemadel/authpair/jwt"
	"github.com/kareemadel/authpair/password"
	"github.com/kareemadel/authpair/session"
	"github.com/redis/go-redis/v9"
)

// Builder assembles an [Engine] through explicit composition: every
// collaborator is handed in, none is discovered from ambient state.
// Construction is allocation-only; no I/O happens until Engine methods run.
type Builder struct {
	config     Config
	redis      *redis.Client
	users      UserStore
	httpClient *http.Client

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the builder's configuration. The config is cloned;
// later mutation of cfg does not affect the built engine.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the Redis client backing the session store.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithUserStore sets the persistence collaborator.
func (b *Builder) WithUserStore(users UserStore) *Builder {
	b.users = users
	return b
}

// WithHTTPClient overrides the client used for breach-corpus lookups.
// Intended for tests; the default client enforces the configured timeout.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// Build validates the configuration, wires the components, and returns a
// ready Engine. A Builder must not be reused after a successful Build.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client is required")
	}
	if b.users == nil {
		return nil, errors.New("user store is required")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	codec, err := jwt.NewManager(jwt.Config{
		AccessSecret:  b.config.JWT.AccessSecret,
		RefreshSecret: b.config.JWT.RefreshSecret,
		AccessTTL:     b.config.JWT.AccessTTL,
		RefreshTTL:    b.config.JWT.RefreshTTL,
		Issuer:        b.config.JWT.Issuer,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.HashConfig{Cost: b.config.Password.BcryptCost})
	if err != nil {
		return nil, err
	}

	strength, err := password.NewStrength(password.StrengthConfig{
		MinScore: b.config.Password.MinScore,
		Endpoint: b.config.Breach.Endpoint,
		Timeout:  b.config.Breach.Timeout,
	}, b.httpClient)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(b.redis, b.config.Session.RedisPrefix)
	sessions, err := session.NewManager(codec, store, b.config.Session.TTL)
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Engine{
		users:    b.users,
		hasher:   hasher,
		strength: strength,
		codec:    codec,
		sessions: sessions,
	}, nil
}
