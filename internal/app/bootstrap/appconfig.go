// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers ports, TLS, logging and the environment name.
// Everything specific to Quotebook lives here and is passed to every
// lifecycle hook.
type AppConfig struct {
	// Postgres connection configuration
	PostgresURI      string // e.g. postgres://quotebook@localhost:5432/quotebook?sslmode=disable
	PostgresMaxConns int    // upper bound on open connections in the pool

	// Session configuration
	Secret          []byte        // signs session tokens and seeds the CSRF key
	SessionDuration time.Duration // lifetime of a session token (default 30 days)

	// Google sign-in
	GoogleClientID        string        // audience expected in Google ID tokens
	IdentityVerifyTimeout time.Duration // bound on a single ID-token verification

	// Absolute base URL used for the sign-in callback and feed links
	BaseURL string // e.g. "https://quotes.example.org" or "http://localhost:3000"
}
