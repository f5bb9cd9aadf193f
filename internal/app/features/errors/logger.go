// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and renders the
// matching friendly page. Handlers call one method and return.
type ErrorLogger struct {
	Log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func requestFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}

// LogServerError logs at Error and renders a 500 page. userMsg is shown
// to the visitor and must not leak internals.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, requestFields(r, err)...)
	if userMsg == "" {
		userMsg = "Something went wrong. Please try again."
	}
	render(w, r, http.StatusInternalServerError, "Server error", userMsg, backURL)
}

// LogNotFound logs at Debug and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, what string) {
	e.Log.Debug("not found", append(requestFields(r, nil), zap.String("what", what))...)
	NotFound(w, r)
}

// LogBadRequest logs at Info and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Info(msg, requestFields(r, err)...)
	if userMsg == "" {
		userMsg = "That request couldn't be processed."
	}
	render(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

// LogUnauthorized logs at Warn and renders a 401 page. Used for rejected
// sign-in attempts.
func (e *ErrorLogger) LogUnauthorized(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, requestFields(r, err)...)
	RenderUnauthorized(w, r, userMsg, backURL)
}
