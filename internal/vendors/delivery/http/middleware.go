package http

import (
	"context"
	"net/http"

	"github.com/ndumiso/bizstock/pkg/auth"
)

// SessionCookieName carries the vendor session token
const SessionCookieName = "bizstock_session"

type contextKey string

const (
	VendorIDKey     contextKey = "vendor_id"
	EmailKey        contextKey = "email"
	BusinessNameKey contextKey = "business_name"
)

// RequireSession validates the session cookie and puts the vendor identity
// into the request context; unauthenticated requests are sent to the login
// page.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		claims, err := auth.ValidateToken(cookie.Value)
		if err != nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), VendorIDKey, claims.VendorID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		ctx = context.WithValue(ctx, BusinessNameKey, claims.BusinessName)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// VendorID extracts the authenticated vendor from the request context
func VendorID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(VendorIDKey).(uint)
	return id, ok
}

// BusinessName extracts the vendor's business name from the request context
func BusinessName(ctx context.Context) string {
	name, _ := ctx.Value(BusinessNameKey).(string)
	return name
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   24 * 60 * 60,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
