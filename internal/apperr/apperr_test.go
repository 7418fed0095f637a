package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassification(t *testing.T) {
	wrapped := func(err error) error { return fmt.Errorf("create service: %w", err) }

	if !IsNotFound(wrapped(NotFound("product", "oak-door"))) {
		t.Error("wrapped NotFound should match IsNotFound")
	}
	if !errors.Is(NotFound("story", "x"), ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if !IsValidation(wrapped(Invalid("title", "English title is required"))) {
		t.Error("wrapped ValidationError should match IsValidation")
	}
	if !IsConflict(wrapped(Conflict("service", "slug", "cabinets"))) {
		t.Error("wrapped ConflictError should match IsConflict")
	}
	if !IsTransient(&TransientFetchError{Op: "list services", Err: errors.New("dial tcp")}) {
		t.Error("TransientFetchError should match IsTransient")
	}
	if IsNotFound(errors.New("boom")) || IsValidation(nil) {
		t.Error("plain errors must not be classified")
	}
}

func TestMessages(t *testing.T) {
	if got := Conflict("service", "slug", "cabinets").Error(); got != `service with slug "cabinets" already exists` {
		t.Errorf("conflict message = %q", got)
	}
	if got := Invalid("title", "is required").Error(); got != "title: is required" {
		t.Errorf("validation message = %q", got)
	}
	if got := NotFound("product", "oak-door").Error(); got != `product "oak-door" not found` {
		t.Errorf("not found message = %q", got)
	}
}
