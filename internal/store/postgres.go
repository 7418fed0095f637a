// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"factorysite/internal/apperr"
)

var _ Repository = (*Postgres)(nil)

// Postgres is the production Repository backed by a *sql.DB pool opened
// with the pgx stdlib driver.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a Postgres repository using db.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// translate maps constraint violations to the apperr taxonomy. Other errors
// are wrapped with op.
func translate(err error, op, entity, slug string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperr.Conflict(entity, "slug", slug)
		case "23503": // foreign_key_violation
			return apperr.Invalid("parent", "%s references a row that does not exist", entity)
		case "23514": // check_violation
			return apperr.Invalid(pgErr.ConstraintName, "%s has an invalid value", entity)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// updateErr maps the error of an UPDATE ... RETURNING statement.
func updateErr(err error, op, entity string, id uuid.UUID, slug string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity, id.String())
	}
	return translate(err, op, entity, slug)
}

// notFound converts sql.ErrNoRows into an apperr.NotFoundError.
func notFound(err error, op, entity, key string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity, key)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affected returns a NotFoundError when a write touched no row.
func affected(res sql.Result, entity, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound(entity, key)
	}
	return nil
}

// jsonArg encodes v for a JSONB parameter. nil slices become [].
func jsonArg[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json column: %w", err)
	}
	return string(b), nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}
