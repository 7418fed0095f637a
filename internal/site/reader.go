// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site is the public read path. It turns repository rows into
// localized, visibility-filtered views for a given language.
//
// Every call takes the language explicitly; the Reader holds no mutable
// state and is safe for concurrent use. When the primary repository fails,
// or comes back empty for a bootstrap query such as navigation, the call is
// served from the fallback repository holding the built-in sample catalog.
package site

import (
	"context"
	"log/slog"

	"factorysite/internal/apperr"
	"factorysite/internal/store"
)

// Reader serves the public site.
type Reader struct {
	primary  store.Repository
	fallback store.Repository
}

// New returns a Reader. primary may be nil when no database is configured,
// in which case every call is served from fallback. fallback may be nil to
// disable substitution; store failures then surface as
// *apperr.TransientFetchError.
func New(primary, fallback store.Repository) *Reader {
	return &Reader{primary: primary, fallback: fallback}
}

// rowsCheck reports whether repo holds no rows for a bootstrap query.
// It looks at the stored rows, never at the visibility-filtered result.
type rowsCheck func(ctx context.Context, repo store.Repository) bool

// read runs fn against the primary repository and substitutes the
// fallback on a store failure. When noRows is set and the result is
// empty, the fallback is also used if the primary store has no rows at
// all. Not-found errors are data and are returned as is.
func read[T any](ctx context.Context, r *Reader, op string, noRows rowsCheck, empty func(T) bool, fn func(store.Repository) (T, error)) (T, error) {
	if r.primary == nil {
		return fn(r.fallback)
	}

	v, err := fn(r.primary)
	switch {
	case err == nil && (noRows == nil || r.fallback == nil || !empty(v) || !noRows(ctx, r.primary)):
		return v, nil
	case err != nil && apperr.IsNotFound(err):
		if r.fallback != nil && noServices(ctx, r.primary) {
			slog.Warn("primary store has no catalog, serving sample data", "op", op)
			return fn(r.fallback)
		}
		return v, err
	case r.fallback == nil:
		var zero T
		return zero, &apperr.TransientFetchError{Op: op, Err: err}
	case err != nil:
		slog.Warn("store read failed, serving sample data", "op", op, "error", err)
	default:
		slog.Warn("store returned no rows, serving sample data", "op", op)
	}
	return fn(r.fallback)
}

// noServices reports whether repo holds no services. A slug lookup
// against an empty database is answered from the sample catalog so that
// links rendered from fallback navigation resolve.
func noServices(ctx context.Context, repo store.Repository) bool {
	services, err := repo.ListServices(ctx)
	return err == nil && len(services) == 0
}

// noCompany reports whether repo has no company profile stored.
func noCompany(ctx context.Context, repo store.Repository) bool {
	_, err := repo.GetCompanyInfo(ctx)
	return apperr.IsNotFound(err)
}

func none[T any](v []T) bool { return len(v) == 0 }

func never[T any](T) bool { return false }
