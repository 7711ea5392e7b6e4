package authpair

import (
	"errors"

	"github.com/kareemadel/authpair/jwt"
	"github.com/kareemadel/authpair/password"
	"github.com/kareemadel/authpair/session"
)

var (
	// ErrEngineNotReady is returned when an Engine method is called before
	// the Engine was constructed through [Builder.Build].
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrEmailExists is returned by Register when the email is taken.
	ErrEmailExists = errors.New("email already registered")
	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password, without distinguishing which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by GetMe for an unknown user id.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingToken is returned by Authenticate for an empty bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrUnauthorized is returned by Authenticate for a malformed token, an
	// unknown session, or a mismatched session, without distinguishing which.
	ErrUnauthorized = errors.New("invalid token or session")

	// ErrWeakPassword is re-exported from the password package: the entropy
	// gate rejected the candidate.
	ErrWeakPassword = password.ErrWeakPassword
	// ErrBreachedPassword is re-exported from the password package: the
	// breach-corpus gate rejected the candidate.
	ErrBreachedPassword = password.ErrBreachedPassword
	// ErrTokenExpired is re-exported from the jwt package: the access token
	// is well-formed but past its expiry.
	ErrTokenExpired = jwt.ErrTokenExpired
	// ErrRefreshInvalid is re-exported from the session package: the single
	// opaque outcome of a failed refresh.
	ErrRefreshInvalid = session.ErrRefreshInvalid
)

// ValidationError reports a request-shape rejection from the validation
// pipeline: which field failed and why. It is the caller's fault, never a
// dependency failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Field + ": " + e.Reason
}
