// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// Reorder rewrites one sibling group so that ordered[i] gets sort_order i.
// ordered must be a permutation of the whole group; a partial list or a
// pair swap is rejected. parentID selects the group for subservices,
// categories, products and option values and is ignored otherwise.
//
// If the write fails the group is re-read and renumbered in whatever
// order the store now holds, so sort_order stays dense, and the original
// error is returned.
func (m *Manager) Reorder(ctx context.Context, kind models.Kind, parentID uuid.UUID, ordered []uuid.UUID) error {
	current, err := m.siblings(ctx, kind, parentID)
	if err != nil {
		return err
	}
	if err := checkPermutation(current, ordered); err != nil {
		return err
	}

	if err := m.repo.Reorder(ctx, kind, ordered); err != nil {
		if rerr := m.renumber(ctx, kind, parentID); rerr != nil {
			slog.Error("reorder reconciliation failed", "kind", kind, "parent_id", parentID, "error", rerr)
			return fmt.Errorf("reorder %s: %w", kind, errors.Join(err, rerr))
		}
		slog.Warn("reorder failed, sibling group renumbered", "kind", kind, "parent_id", parentID, "error", err)
		return fmt.Errorf("reorder %s: %w", kind, err)
	}
	return nil
}

func checkPermutation(current, ordered []uuid.UUID) error {
	if len(ordered) != len(current) {
		return apperr.Invalid("ids", "expected all %d items of the group, got %d", len(current), len(ordered))
	}
	members := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		members[id] = true
	}
	seen := make(map[uuid.UUID]bool, len(ordered))
	for _, id := range ordered {
		if !members[id] {
			return apperr.Invalid("ids", "%s is not part of this group", id)
		}
		if seen[id] {
			return apperr.Invalid("ids", "%s is listed twice", id)
		}
		seen[id] = true
	}
	return nil
}
