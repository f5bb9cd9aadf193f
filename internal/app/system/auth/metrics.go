// internal/app/system/auth/metrics.go
package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAnonymous     = "anonymous"
	outcomeInvalid       = "invalid_token"
	outcomeUnknownUser   = "unknown_user"
	outcomeLookupFailed  = "lookup_failed"
	outcomeAuthenticated = "authenticated"
)

// Login results.
const (
	LoginSuccess       = "success"
	LoginInvalidCSRF   = "invalid_csrf"
	LoginUnverified    = "verification_failed"
	LoginNoAccount     = "no_account"
	LoginBadRedirect   = "bad_redirect"
	LoginInternalError = "error"
)

var (
	sessionResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotebook_session_resolutions_total",
			Help: "Per-request session resolutions by outcome",
		},
		[]string{"outcome"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotebook_login_attempts_total",
			Help: "Google sign-in attempts by result",
		},
		[]string{"result"},
	)
)

func recordResolution(outcome string) {
	sessionResolutions.WithLabelValues(outcome).Inc()
}

// RecordLogin counts a sign-in attempt with the given result.
func RecordLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}
