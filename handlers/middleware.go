package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"lvestimate/services"
)

// AdminPINHeader carries the admin PIN on guarded requests.
const AdminPINHeader = "X-Admin-PIN"

// RequireAdminPIN rejects requests whose X-Admin-PIN header does not match
// the configured PIN.
func RequireAdminPIN(ws *services.Workspace) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !ws.Settings.VerifyPIN(e.Request.Header.Get(AdminPINHeader)) {
			log.Printf("admin: rejected %s %s", e.Request.Method, e.Request.URL.Path)
			return ErrorToast(e, http.StatusUnauthorized, "Admin PIN required")
		}
		return e.Next()
	}
}

// confirmed reports whether the request carries confirm=true.
func confirmed(e *core.RequestEvent) bool {
	return e.Request.FormValue("confirm") == "true"
}

// formValue returns the value of a submitted form field and whether the
// field was present at all.
func formValue(e *core.RequestEvent, key string) (string, bool) {
	if err := e.Request.ParseForm(); err != nil {
		return "", false
	}
	vals, ok := e.Request.PostForm[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
