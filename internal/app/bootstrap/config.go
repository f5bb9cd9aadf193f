// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/gorilla/securecookie"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Quotebook.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: postgres_uri, secret, etc.
//   - Environment variables: QUOTEBOOK_POSTGRES_URI, QUOTEBOOK_SECRET, etc.
//   - Command-line flags: --postgres_uri, --secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "postgres_uri", Default: "postgres://localhost:5432/quotebook?sslmode=disable", Desc: "Postgres connection URI"},
	{Name: "postgres_max_conns", Default: 5, Desc: "Maximum open Postgres connections (default: 5)"},
	{Name: "secret", Default: "", Desc: "Session signing secret (required in production)"},
	{Name: "session_duration", Default: "720h", Desc: "Session lifetime (e.g., 720h, 24h)"},
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID used as the ID-token audience"},
	{Name: "identity_verify_timeout", Default: "5s", Desc: "Timeout for verifying a Google ID token"},
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Absolute base URL of the site"},
}

// ErrNoSecret is returned by ValidateConfig when production runs without a
// session secret.
var ErrNoSecret = errors.New("secret must be set in production")

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges with precedence
// flags > env > files > defaults; app variables use the QUOTEBOOK_ prefix.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "QUOTEBOOK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		PostgresURI:      appValues.String("postgres_uri"),
		PostgresMaxConns: appValues.Int("postgres_max_conns"),

		Secret:          []byte(appValues.String("secret")),
		SessionDuration: appValues.Duration("session_duration", auth.DefaultSessionDuration),

		GoogleClientID:        appValues.String("google_client_id"),
		IdentityVerifyTimeout: appValues.Duration("identity_verify_timeout", 5*time.Second),

		BaseURL: appValues.String("base_url"),
	}

	if err := ensureSecret(coreCfg.Env, &appCfg, logger); err != nil {
		return nil, AppConfig{}, err
	}

	return coreCfg, appCfg, nil
}

// ensureSecret fills in a random secret outside production. A generated
// key signs everyone out on restart.
func ensureSecret(env string, appCfg *AppConfig, logger *zap.Logger) error {
	if len(appCfg.Secret) > 0 {
		return nil
	}
	if env == "prod" {
		return ErrNoSecret
	}
	appCfg.Secret = securecookie.GenerateRandomKey(32)
	if appCfg.Secret == nil {
		return errors.New("could not generate a development secret")
	}
	logger.Warn("no secret configured; using a random key, sessions will not survive a restart",
		zap.String("env", env))
	return nil
}

// ValidateConfig performs app-specific config validation.
//
// Quotebook checks the Postgres URI and base URL up front so a bad value
// fails at startup rather than on the first request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if _, err := pgx.ParseConfig(appCfg.PostgresURI); err != nil {
		logger.Error("invalid Postgres URI", zap.Error(err))
		return fmt.Errorf("invalid Postgres URI: %w", err)
	}
	if appCfg.PostgresMaxConns < 1 {
		return fmt.Errorf("postgres_max_conns must be at least 1, got %d", appCfg.PostgresMaxConns)
	}

	u, err := url.Parse(appCfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL, got %q", appCfg.BaseURL)
	}

	if len(appCfg.Secret) == 0 {
		return ErrNoSecret
	}
	if appCfg.GoogleClientID == "" {
		logger.Warn("google_client_id is empty; Google sign-in will reject every token")
	}
	return nil
}
