// internal/app/features/login/handler.go
package login

import (
	"net/http"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/navigation"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log            *zap.Logger
	ErrLog         *uierrors.ErrorLogger
	GoogleClientID string
	BaseURL        string // absolute site URL, e.g. "https://quotes.example.com"
}

func NewHandler(errLog *uierrors.ErrorLogger, googleClientID, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:            logger,
		ErrLog:         errLog,
		GoogleClientID: googleClientID,
		BaseURL:        baseURL,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginData struct {
	viewdata.BaseVM
	GoogleClientID string
	CallbackURL    string // where Google Identity Services posts the credential
	Redirect       string
}

func (h *Handler) pageData(r *http.Request) (loginData, error) {
	target, err := navigation.RedirectTarget(r)
	if err != nil {
		return loginData{}, err
	}
	return loginData{
		BaseVM:         viewdata.NewBaseVM(r, "Log in", "/"),
		GoogleClientID: h.GoogleClientID,
		CallbackURL:    auth.CallbackURL(h.BaseURL, target),
		Redirect:       target,
	}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login?redirect=<path>                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	data, err := h.pageData(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: redirect rejected", err, "That sign-in link is not valid.", "/")
		return
	}
	templates.Render(w, r, "login", data)
}
