// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// Inbox is the admin view of both lead inboxes, newest first.
type Inbox struct {
	Contact []models.ContactSubmission `json:"contact"`
	Quote   []models.QuoteSubmission   `json:"quote"`
	Unread  int                        `json:"unread"`
}

// ListSubmissions loads both inboxes.
func (m *Manager) ListSubmissions(ctx context.Context) (*Inbox, error) {
	contact, err := m.repo.ListContactSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	quote, err := m.repo.ListQuoteSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quote submissions: %w", err)
	}
	in := &Inbox{Contact: contact, Quote: quote}
	if in.Contact == nil {
		in.Contact = []models.ContactSubmission{}
	}
	if in.Quote == nil {
		in.Quote = []models.QuoteSubmission{}
	}
	for _, c := range contact {
		if !c.IsRead {
			in.Unread++
		}
	}
	for _, q := range quote {
		if !q.IsRead {
			in.Unread++
		}
	}
	return in, nil
}

func checkKind(kind models.SubmissionKind) error {
	if kind != models.SubmissionContact && kind != models.SubmissionQuote {
		return apperr.Invalid("kind", "unknown submission kind %q", kind)
	}
	return nil
}

// MarkRead sets the read flag of one submission.
func (m *Manager) MarkRead(ctx context.Context, kind models.SubmissionKind, id uuid.UUID, read bool) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := m.repo.MarkSubmissionRead(ctx, kind, id, read); err != nil {
		return fmt.Errorf("mark submission read: %w", err)
	}
	return nil
}

// DeleteSubmission removes one submission.
func (m *Manager) DeleteSubmission(ctx context.Context, kind models.SubmissionKind, id uuid.UUID) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := m.repo.DeleteSubmission(ctx, kind, id); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	return nil
}
