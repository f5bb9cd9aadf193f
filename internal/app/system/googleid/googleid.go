// Package googleid verifies Google Identity Services ID tokens.
package googleid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// GoogleIssuer is the OpenID Connect issuer for Google accounts.
const GoogleIssuer = "https://accounts.google.com"

// ErrNotConfigured is returned when no client id is configured.
var ErrNotConfigured = errors.New("google sign-in is not configured")

// Claims are the ID-token claims the sign-in flow relies on.
type Claims struct {
	Subject       string `json:"sub" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Verifier checks an identity-provider credential and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Claims, error)
}

// OIDCVerifier verifies Google ID tokens against Google's published keys,
// checking signature, issuer, audience (the client id), and expiry.
// Provider discovery happens on first use.
type OIDCVerifier struct {
	clientID string
	issuer   string
	client   *http.Client
	validate *validator.Validate
	log      *zap.Logger

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier returns a verifier for tokens issued to clientID.
func NewOIDCVerifier(clientID string, logger *zap.Logger) *OIDCVerifier {
	return &OIDCVerifier{
		clientID: clientID,
		issuer:   GoogleIssuer,
		client:   &http.Client{Timeout: timeouts.Verify()},
		validate: validator.New(),
		log:      logger,
	}
}

// Verify checks rawToken and returns its claims. Every failure wraps
// auth.ErrIdentityVerificationFailed except a missing client id.
func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (Claims, error) {
	if v.clientID == "" {
		return Claims{}, ErrNotConfigured
	}
	idv, err := v.idTokenVerifier(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: provider discovery: %v", auth.ErrIdentityVerificationFailed, err)
	}

	tok, err := idv.Verify(oidc.ClientContext(ctx, v.client), rawToken)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", auth.ErrIdentityVerificationFailed, err)
	}

	var claims Claims
	if err := tok.Claims(&claims); err != nil {
		return Claims{}, fmt.Errorf("%w: decode claims: %v", auth.ErrIdentityVerificationFailed, err)
	}
	return v.check(claims)
}

func (v *OIDCVerifier) check(claims Claims) (Claims, error) {
	if err := v.validate.Struct(claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", auth.ErrIdentityVerificationFailed, err)
	}
	return claims, nil
}

// idTokenVerifier discovers the provider on first use. Discovery runs on
// the caller's context without holding mu, so a slow or failed discovery
// stalls only its own request. A failure is not cached and the next sign-in
// retries.
func (v *OIDCVerifier) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	v.mu.Lock()
	idv := v.verifier
	v.mu.Unlock()
	if idv != nil {
		return idv, nil
	}

	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, v.client), v.issuer)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.verifier == nil {
		v.verifier = provider.Verifier(&oidc.Config{ClientID: v.clientID})
		v.log.Info("google id token verifier ready", zap.String("issuer", v.issuer))
	}
	return v.verifier, nil
}
