package authpair

import (
	"net/mail"
	"unicode"
	"unicode/utf8"
)

// The request-shape pipeline: an ordered list of predicates, each returning
// a typed rejection reason, run by the boundary layer before any core
// operation. First failure wins.

const (
	minNameRunes   = 3
	minPasswordLen = 8
	maxPasswordLen = 256
)

type registerRule func(RegisterInput) *ValidationError

var registerRules = []registerRule{
	func(in RegisterInput) *ValidationError { return checkEmail(in.Email) },
	func(in RegisterInput) *ValidationError { return checkName("firstName", in.FirstName) },
	func(in RegisterInput) *ValidationError { return checkName("lastName", in.LastName) },
	func(in RegisterInput) *ValidationError { return checkPasswordShape(in.Password) },
}

func validateRegister(in RegisterInput) error {
	for _, rule := range registerRules {
		if verr := rule(in); verr != nil {
			return verr
		}
	}
	return nil
}

func validateLogin(email, password string) error {
	if verr := checkEmail(email); verr != nil {
		return verr
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	return nil
}

func checkEmail(email string) *ValidationError {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Reason: "not a valid email address"}
	}
	return nil
}

func checkName(field, value string) *ValidationError {
	if utf8.RuneCountInString(value) < minNameRunes {
		return &ValidationError{Field: field, Reason: "must be at least 3 characters"}
	}
	return nil
}

func checkPasswordShape(pw string) *ValidationError {
	n := utf8.RuneCountInString(pw)
	if n < minPasswordLen {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	if n > maxPasswordLen {
		return &ValidationError{Field: "password", Reason: "too long"}
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasLetter {
		return &ValidationError{Field: "password", Reason: "must contain at least one letter"}
	}
	if !hasDigit {
		return &ValidationError{Field: "password", Reason: "must contain at least one number"}
	}
	if !hasSpecial {
		return &ValidationError{Field: "password", Reason: "must contain at least one special character"}
	}
	return nil
}

// capitalize upper-cases the first rune, matching the stored form of names.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}
