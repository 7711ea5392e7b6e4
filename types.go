package authpair

import (
	"context"

	"github.com/kareemadel/authpair/session"
)

// TokenPair is the signed access/refresh pair returned by Register, Login,
// and Refresh.
type TokenPair = session.TokenPair

// User is the full account record owned by the external user store. The
// engine never mutates it; it only threads the id through tokens and
// session keys and compares the stored credential digest.
type User struct {
	ID             string
	Email          string
	HashedPassword string
	FirstName      string
	LastName       string
}

// UserPublic is the credential-free view of a user returned across the
// boundary.
type UserPublic struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// CreateUserInput carries the fields the engine hands to
// [UserStore.Create]. HashedPassword is always a digest; the plaintext
// candidate never reaches the store.
type CreateUserInput struct {
	Email          string
	HashedPassword string
	FirstName      string
	LastName       string
}

// UserStore is the persistence contract callers must implement to integrate
// the engine with their user database. Absence is reported as a nil record
// with a nil error; errors are reserved for store failures.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*UserPublic, error)
	Create(ctx context.Context, input CreateUserInput) (*User, error)
}

// RegisterInput is the raw registration request shape, validated by the
// pipeline in validate.go before any core operation runs.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// AuthResult is returned by Register and Login: the public user view plus a
// freshly issued token pair.
type AuthResult struct {
	User   UserPublic
	Tokens TokenPair
}

// Identity is returned by [Engine.Authenticate]: the authenticated user id
// and the session identifier the presented access token was bound to.
type Identity struct {
	UserID    string
	SessionID string
}

func publicUser(u *User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
