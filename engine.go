package authpair

import (
	"context"
	"errors"

	"github.com/kareemadel/authpair/jwt"
	"github.com/kareemadel/authpair/password"
	"github.com/kareemadel/authpair/session"
)

// Engine is the boundary surface of the authentication-session subsystem.
// It composes the credential hasher, the acceptability pipeline, the token
// codec, and the session manager behind the operations the request layer
// calls.
//
// Engine holds no in-process mutable state and is safe for concurrent use
// after [Builder.Build]. All session state lives in Redis; the Redis
// operation is the unit of atomicity.
type Engine struct {
	users    UserStore
	hasher   *password.Hasher
	strength *password.Strength
	codec    *jwt.Manager
	sessions *session.Manager
}

// Register creates an account and issues its first token pair.
//
// The request shape is validated first, then the email is checked for
// conflict, then the acceptability pipeline gates the password, and only
// then is the candidate hashed and the account created. Failure modes:
// *ValidationError, ErrEmailExists, ErrWeakPassword, ErrBreachedPassword.
func (e *Engine) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}
	if err := validateRegister(input); err != nil {
		return nil, err
	}

	existing, err := e.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	if err := e.strength.Check(ctx, input.Password); err != nil {
		return nil, err
	}

	digest, err := e.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	input.Password = ""

	user, err := e.users.Create(ctx, CreateUserInput{
		Email:          input.Email,
		HashedPassword: digest,
		FirstName:      capitalize(input.FirstName),
		LastName:       capitalize(input.LastName),
	})
	if err != nil {
		return nil, err
	}

	tokens, err := e.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: publicUser(user), Tokens: tokens}, nil
}

// Login verifies credentials and issues a fresh token pair, replacing any
// session the user already had. An unknown email, a store failure, and a
// wrong password all collapse to ErrInvalidCredentials.
func (e *Engine) Login(ctx context.Context, email, pw string) (*AuthResult, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}
	if err := validateLogin(email, pw); err != nil {
		return nil, err
	}

	user, err := e.users.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if !e.hasher.Verify(pw, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	pw = ""

	tokens, err := e.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: publicUser(user), Tokens: tokens}, nil
}

// Refresh rotates a token pair. Every failure is the opaque
// ErrRefreshInvalid; see [session.Manager.Refresh].
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if e == nil || e.sessions == nil {
		return TokenPair{}, ErrEngineNotReady
	}
	return e.sessions.Refresh(ctx, refreshToken)
}

// Logout deletes the user's session record, invalidating both live tokens.
// It is idempotent.
func (e *Engine) Logout(ctx context.Context, userID string) error {
	if e == nil || e.sessions == nil {
		return ErrEngineNotReady
	}
	return e.sessions.Logout(ctx, userID)
}

// Authenticate is the per-request authorization gate. It verifies the
// bearer access token and checks its session identifier against the stored
// record. Reasons are distinguished only as ErrMissingToken,
// ErrTokenExpired, and ErrUnauthorized; session-not-found and
// session-mismatch are merged at this boundary.
func (e *Engine) Authenticate(ctx context.Context, bearer string) (*Identity, error) {
	if e == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}
	if bearer == "" {
		return nil, ErrMissingToken
	}

	claims, err := e.codec.Verify(bearer, jwt.KindAccess)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrUnauthorized
	}

	if err := e.sessions.Validate(ctx, claims.SID, claims.Subject, jwt.KindAccess); err != nil {
		// Not-found, mismatch, and an unreachable store all surface as the
		// same unauthorized outcome; a missing record cannot be told apart
		// from one that never existed.
		return nil, ErrUnauthorized
	}

	return &Identity{UserID: claims.Subject, SessionID: claims.SID}, nil
}

// GetMe returns the credential-free profile for userID.
func (e *Engine) GetMe(ctx context.Context, userID string) (*UserPublic, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}

	user, err := e.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
