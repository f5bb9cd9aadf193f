// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"

	authgooglefeature "github.com/dalemusser/quotebook/internal/app/features/authgoogle"
	commentsfeature "github.com/dalemusser/quotebook/internal/app/features/comments"
	contextsfeature "github.com/dalemusser/quotebook/internal/app/features/contexts"
	errorsfeature "github.com/dalemusser/quotebook/internal/app/features/errors"
	healthfeature "github.com/dalemusser/quotebook/internal/app/features/health"
	homefeature "github.com/dalemusser/quotebook/internal/app/features/home"
	loginfeature "github.com/dalemusser/quotebook/internal/app/features/login"
	logoutfeature "github.com/dalemusser/quotebook/internal/app/features/logout"
	quotesfeature "github.com/dalemusser/quotebook/internal/app/features/quotes"
	usersfeature "github.com/dalemusser/quotebook/internal/app/features/users"
	userstore "github.com/dalemusser/quotebook/internal/app/store/users"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/googleid"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

// csrfKeyInfo separates the CSRF key from the session signing key, which
// share the configured secret.
const csrfKeyInfo = "quotebook csrf v1"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed.
//
// Quotebook boots the template engine, resolves the Session on every
// request, protects form posts with gorilla/csrf, and mounts the feature
// routers. The Google callback sits outside the CSRF middleware because
// Google posts it cross-site; it carries its own double-submit check.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	sessionMgr, err := auth.NewSessionManager(appCfg.Secret, appCfg.SessionDuration, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Every request re-reads the user, so deleted accounts lose access at once.
	users := userstore.New(deps.DB)
	sessionMgr.SetUserFetcher(users)

	csrfKey, err := deriveCSRFKey(appCfg.Secret)
	if err != nil {
		logger.Error("csrf key derivation failed", zap.Error(err))
		return nil, err
	}

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global session middleware: derives the Session (current user, flash,
	// path) and clears any flash cookies it read.
	r.Use(sessionMgr.Load)
	r.NotFound(errorsfeature.NotFound)

	// Machine endpoints
	healthHandler := healthfeature.NewHandler(deps.DB, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", promhttp.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Google sign-in callback
	verifier := googleid.NewOIDCVerifier(appCfg.GoogleClientID, logger)
	googleHandler := authgooglefeature.NewHandler(sessionMgr, errLog, verifier, users, logger)
	r.Mount("/google_auth", authgooglefeature.Routes(googleHandler))

	// Everything else is CSRF protected.
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware(csrfKey, secure, logger))

		loginHandler := loginfeature.NewHandler(errLog, appCfg.GoogleClientID, appCfg.BaseURL, logger)
		r.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, errLog, logger)
		r.Mount("/logout", logoutfeature.Routes(logoutHandler))

		homeHandler := homefeature.NewHandler(deps.DB, errLog, appCfg.BaseURL, logger)
		homefeature.Register(r, homeHandler)

		quotesHandler := quotesfeature.NewHandler(deps.DB, errLog, appCfg.BaseURL, logger)
		commentsHandler := commentsfeature.NewHandler(deps.DB, errLog, appCfg.BaseURL, logger)
		quotesRouter := quotesfeature.Routes(quotesHandler, sessionMgr)
		quotesRouter.Get("/{id}/comments.atom", commentsHandler.ServeIndexAtom)
		quotesRouter.Mount("/{id}/comments", commentsfeature.Routes(commentsHandler))
		r.Get("/quotes.atom", quotesHandler.ServeIndexAtom)
		r.Mount("/quotes", quotesRouter)

		contextsHandler := contextsfeature.NewHandler(deps.DB, errLog, appCfg.BaseURL, logger)
		contextsRouter := contextsfeature.Routes(contextsHandler, sessionMgr)
		contextsRouter.Get("/{id}/latest", quotesHandler.ServeLatest)
		r.Mount("/contexts", contextsRouter)

		usersHandler := usersfeature.NewHandler(deps.DB, errLog, appCfg.BaseURL, logger)
		r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	})

	return r, nil
}

// deriveCSRFKey expands secret into the 32-byte key gorilla/csrf needs.
func deriveCSRFKey(secret []byte) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(csrfKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive csrf key: %w", err)
	}
	return key, nil
}

// csrfMiddleware wraps gorilla/csrf. Outside production the site is served
// over plain HTTP, which gorilla/csrf must be told per request.
func csrfMiddleware(key []byte, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			errorsfeature.RenderForbidden(w, r, "Your form has expired. Please reload the page and try again.", "/")
		})),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
