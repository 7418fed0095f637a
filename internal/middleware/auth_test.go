package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"factorysite/internal/session"
)

// stubSessions satisfies SessionGetter without Valkey.
type stubSessions struct {
	data *session.Data
	err  error
}

func (s stubSessions) Get(context.Context, *http.Request) (*session.Data, error) {
	return s.data, s.err
}

func newTestSession(twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "admin@factory.local",
		DisplayName: "Plant Admin",
		TwoFADone:   twoFADone,
	}
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestSessionFromCtx(t *testing.T) {
	sess := newTestSession(true)
	if got := SessionFromCtx(WithSession(context.Background(), sess)); got != sess {
		t.Errorf("SessionFromCtx = %v, want %v", got, sess)
	}
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("SessionFromCtx on empty context = %v, want nil", got)
	}
}

func TestLoadSession(t *testing.T) {
	tests := []struct {
		name    string
		store   stubSessions
		wantNil bool
	}{
		{"session present", stubSessions{data: newTestSession(true)}, false},
		{"no session", stubSessions{}, true},
		{"store error continues unauthenticated", stubSessions{err: errors.New("valkey down")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = captureLogs(t)
			var got *session.Data
			called := false
			handler := LoadSession(tt.store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got = SessionFromCtx(r.Context())
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/api/services", nil))

			if !called {
				t.Fatal("next handler not called")
			}
			if (got == nil) != tt.wantNil {
				t.Errorf("session = %v, wantNil %v", got, tt.wantNil)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		sess       *session.Data
		wantStatus int
		wantCalled bool
	}{
		{"no session", nil, http.StatusUnauthorized, false},
		{"authenticated", newTestSession(false), http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			req := httptest.NewRequest(http.MethodGet, "/admin/api/products", nil)
			if tt.sess != nil {
				req = req.WithContext(WithSession(req.Context(), tt.sess))
			}
			rr := httptest.NewRecorder()
			RequireAuth(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus || *called != tt.wantCalled {
				t.Errorf("status = %d called = %v, want %d %v", rr.Code, *called, tt.wantStatus, tt.wantCalled)
			}
		})
	}
}

func TestRequire2FA(t *testing.T) {
	tests := []struct {
		name       string
		sess       *session.Data
		wantStatus int
	}{
		{"2FA pending", newTestSession(false), http.StatusForbidden},
		{"2FA done", newTestSession(true), http.StatusOK},
		{"no session passes to RequireAuth", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := okHandler()
			req := httptest.NewRequest(http.MethodDelete, "/admin/api/products/x", nil)
			if tt.sess != nil {
				req = req.WithContext(WithSession(req.Context(), tt.sess))
			}
			rr := httptest.NewRecorder()
			Require2FA(next).ServeHTTP(rr, req)
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}
