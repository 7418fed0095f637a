package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"factorysite/internal/i18n"
	"factorysite/internal/middleware"
	"factorysite/internal/render"
)

// listBody mirrors render.List.
type listBody[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// call runs h against a request built from method, target and an optional
// JSON body. params are chi URL parameters as key, value pairs.
func call(t *testing.T, h http.HandlerFunc, method, target string, body any, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	return callLang(t, h, i18n.English, method, target, body, params...)
}

func callLang(t *testing.T, h http.HandlerFunc, lang i18n.Lang, method, target string, body any, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req = withParams(req, params...)
	req = req.WithContext(middleware.WithLang(req.Context(), lang))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func errorField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[render.ErrorBody](t, rec).Field
}
