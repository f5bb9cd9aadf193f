// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/navigation"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in the page header and titles.
const SiteName = "theQuotebook"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from the session middleware)
	IsLoggedIn bool
	UserID     int64
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// One-shot messages
	Notice string
	Error  string

	// Header links; both return here afterwards.
	LoginURL  string
	LogoutURL string

	// CSRF protection
	CSRFToken string
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	s := auth.FromRequest(r)
	current := httpnav.CurrentPath(r)

	vm := BaseVM{
		SiteName:    SiteName,
		IsLoggedIn:  s.LoggedIn(),
		UserID:      s.UserID(),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: current,
		Notice:      s.Flash.Notice,
		Error:       s.Flash.Error,
		LoginURL:    navigation.LoginURL(r.URL.RequestURI()),
		LogoutURL:   "/logout?" + navigation.RedirectParam + "=" + url.QueryEscape(r.URL.RequestURI()),
		CSRFToken:   csrf.Token(r),
	}
	if s.CurrentUser != nil {
		vm.UserName = s.CurrentUser.UsernameOrFullname()
	}
	return vm
}
