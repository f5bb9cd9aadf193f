// internal/app/system/auth/errors.go
package auth

import (
	"errors"

	"github.com/dalemusser/quotebook/internal/app/system/navigation"
)

// Rejected-request errors. Handlers map these to 4xx responses and never
// issue or modify the session cookie when one occurs.
var (
	ErrInvalidCSRF                = errors.New("invalid CSRF token")
	ErrIdentityVerificationFailed = errors.New("identity verification failed")
	ErrEmailNotVerified           = errors.New("email address not verified")
	ErrOpenRedirectRejected       = navigation.ErrOpenRedirect
)

// Fatal errors. These surface as 500s with a generic message.
var (
	ErrClock             = errors.New("system clock is before the Unix epoch")
	ErrNoSigningKey      = errors.New("session signing key is empty")
	errMalformedSub      = errors.New("session token subject is not a user id")
	errIssuedAfterExpiry = errors.New("session token issued after it expires")
)

// IsRejection reports whether err is one of the rejected-request errors
// rather than an internal failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidCSRF) ||
		errors.Is(err, ErrIdentityVerificationFailed) ||
		errors.Is(err, ErrEmailNotVerified) ||
		errors.Is(err, ErrOpenRedirectRejected)
}
