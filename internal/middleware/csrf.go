package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"factorysite/internal/render"
)

const (
	csrfTokenLength = 32

	// CSRFCookieName holds the double-submit token. The admin SPA reads it
	// and echoes it in CSRFHeaderName.
	CSRFCookieName = "fs_csrf"

	// CSRFHeaderName is the header state-changing admin requests must carry.
	CSRFHeaderName = "X-CSRF-Token"

	csrfKey contextKey = "csrf"
)

// NewCSRF returns double-submit cookie protection. Safe methods pass and
// mint a token cookie if none exists; POST, PUT, PATCH and DELETE must echo
// the cookie value in the X-CSRF-Token header.
func NewCSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(CSRFCookieName); err == nil {
				token = c.Value
			}
			if token == "" {
				fresh, err := generateCSRFToken()
				if err != nil {
					render.Error(w, http.StatusInternalServerError, "Internal Server Error")
					return
				}
				token = fresh
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: false,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfKey, token))

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(CSRFHeaderName)
			if submitted == "" || subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
				render.Error(w, http.StatusForbidden, "CSRF token mismatch")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CSRFTokenFromCtx returns the token NewCSRF placed in the context.
func CSRFTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey).(string)
	return token
}

func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
