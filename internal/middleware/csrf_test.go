package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func csrfCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	return nil
}

func TestCSRFMintsCookieOnSafeMethods(t *testing.T) {
	for _, secure := range []bool{false, true} {
		var ctxToken string
		handler := NewCSRF(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxToken = CSRFTokenFromCtx(r.Context())
		}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/api/session", nil))

		c := csrfCookie(rr)
		if c == nil {
			t.Fatal("expected CSRF cookie")
		}
		if len(c.Value) != 2*csrfTokenLength {
			t.Errorf("token length = %d", len(c.Value))
		}
		if c.Secure != secure {
			t.Errorf("Secure = %v, want %v", c.Secure, secure)
		}
		if ctxToken != c.Value {
			t.Errorf("context token %q != cookie %q", ctxToken, c.Value)
		}
	}
}

func TestCSRFUnsafeMethods(t *testing.T) {
	const token = "abc123"
	tests := []struct {
		name   string
		method string
		header string
		want   int
	}{
		{"post without header", http.MethodPost, "", http.StatusForbidden},
		{"put wrong token", http.MethodPut, "nope", http.StatusForbidden},
		{"delete with token", http.MethodDelete, token, http.StatusOK},
		{"patch with token", http.MethodPatch, token, http.StatusOK},
		{"head passes", http.MethodHead, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := okHandler()
			req := httptest.NewRequest(tt.method, "/admin/api/services", nil)
			req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
			if tt.header != "" {
				req.Header.Set(CSRFHeaderName, tt.header)
			}
			rr := httptest.NewRecorder()
			NewCSRF(false)(next).ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestCSRFRejectsFirstPostWithoutCookie(t *testing.T) {
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	req.Header.Set(CSRFHeaderName, "guessed")
	rr := httptest.NewRecorder()
	NewCSRF(false)(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden || *called {
		t.Errorf("status = %d called = %v", rr.Code, *called)
	}
}
