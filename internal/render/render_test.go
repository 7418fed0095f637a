package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"factorysite/internal/apperr"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]string{"name": "Oak Door"})

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"Oak Door"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestFailure(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		wantMsg   string
		wantField string
	}{
		{"validation", apperr.Invalid("title_en", "is required"), http.StatusUnprocessableEntity, "is required", "title_en"},
		{"wrapped validation", fmt.Errorf("create: %w", apperr.Invalid("slug", "bad")), http.StatusUnprocessableEntity, "bad", "slug"},
		{"conflict", apperr.Conflict("product", "slug", "oak-door"), http.StatusConflict, `product with slug "oak-door" already exists`, "slug"},
		{"not found", apperr.NotFound("service", "doors"), http.StatusNotFound, `service "doors" not found`, ""},
		{"transient", &apperr.TransientFetchError{Op: "list services", Err: errors.New("dial tcp")}, http.StatusServiceUnavailable, "Service temporarily unavailable", ""},
		{"internal", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Failed to save product", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/admin/api/products", nil)
			Failure(rec, req, "save product", tt.err)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			body := decodeBody(t, rec)
			if body.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", body.Error, tt.wantMsg)
			}
			if body.Field != tt.wantField {
				t.Errorf("field = %q, want %q", body.Field, tt.wantField)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantField string
	}{
		{"valid", `{"title":"Doors","count":2}`, false, ""},
		{"empty", ``, true, ""},
		{"unknown field", `{"titel":"x"}`, true, "titel"},
		{"wrong type", `{"count":"two"}`, true, "count"},
		{"trailing value", `{"title":"a"}{"title":"b"}`, true, ""},
		{"malformed", `{"title":`, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			var p payload
			err := Decode(httptest.NewRecorder(), req, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not a ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestDecode_RejectsNonJSONContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := Decode(httptest.NewRecorder(), req, &struct{}{}); !apperr.IsValidation(err) {
		t.Errorf("Decode error = %v, want validation error", err)
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, List[string](nil))
	if got := strings.TrimSpace(rec.Body.String()); got != `{"count":0,"items":[]}` {
		t.Errorf("body = %s", got)
	}
}
