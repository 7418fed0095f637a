// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render writes JSON responses for the public and admin APIs and
// maps the apperr taxonomy to HTTP status codes. Internal error text is
// logged, never sent to the client.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"factorysite/internal/apperr"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// Error writes a plain error message.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}

// Failure maps err to a status code. Validation, conflict and not-found
// errors carry their own message to the client. Anything else is logged
// and answered with a generic "Failed to <action>".
func Failure(w http.ResponseWriter, r *http.Request, action string, err error) {
	var (
		ve *apperr.ValidationError
		ce *apperr.ConflictError
		nf *apperr.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		JSON(w, http.StatusUnprocessableEntity, ErrorBody{Error: ve.Message, Field: ve.Field})
	case errors.As(err, &ce):
		JSON(w, http.StatusConflict, ErrorBody{Error: ce.Error(), Field: ce.Field})
	case errors.As(err, &nf):
		Error(w, http.StatusNotFound, nf.Error())
	case apperr.IsTransient(err):
		slog.Error("store unavailable", "action", action, "path", r.URL.Path, "error", err)
		Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		slog.Error("request failed", "action", action, "method", r.Method, "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// Decode reads a JSON body into dst. Unknown fields and trailing data are
// rejected as validation errors so typos in admin payloads surface.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return apperr.Invalid("", "content type must be application/json")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		var ute *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Invalid("", "request body is empty")
		case errors.As(err, &mbe):
			return apperr.Invalid("", "request body exceeds %d bytes", mbe.Limit)
		case errors.As(err, &ute):
			return apperr.Invalid(ute.Field, "must be %s", ute.Type)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return apperr.Invalid(strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`), "unknown field")
		default:
			return apperr.Invalid("", "malformed JSON: %v", err)
		}
	}
	if dec.More() {
		return apperr.Invalid("", "request body must hold a single JSON value")
	}
	return nil
}

// List wraps a slice as {"items": [...], "count": n} so empty results
// serialize as [] rather than null.
func List[T any](items []T) map[string]any {
	if items == nil {
		items = []T{}
	}
	return map[string]any{"items": items, "count": len(items)}
}

// Created writes 201 with v.
func Created(w http.ResponseWriter, v any) {
	JSON(w, http.StatusCreated, v)
}

// NoContent writes 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Errorf is Error with formatting.
func Errorf(w http.ResponseWriter, status int, format string, args ...any) {
	Error(w, status, fmt.Sprintf(format, args...))
}
