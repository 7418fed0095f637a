// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

func (p *Postgres) CreateContactSubmission(ctx context.Context, s *models.ContactSubmission) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO contact_submissions (id, name, email, phone, company, subject, message, lang)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		s.ID, s.Name, s.Email, s.Phone, s.Company, s.Subject, s.Message, s.Lang,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact submission: %w", err)
	}
	return nil
}

func (p *Postgres) CreateQuoteSubmission(ctx context.Context, s *models.QuoteSubmission) error {
	interest, err := jsonArg(s.ProductInterest)
	if err != nil {
		return fmt.Errorf("create quote submission: %w", err)
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err = p.db.QueryRowContext(ctx, `
		INSERT INTO quote_submissions (id, name, email, phone, company, project_type, budget_range,
		                               timeline, product_interest, configuration, message, lang)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`,
		s.ID, s.Name, s.Email, s.Phone, s.Company, s.ProjectType, s.BudgetRange,
		s.Timeline, interest, s.Configuration, s.Message, s.Lang,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create quote submission: %w", err)
	}
	return nil
}

func (p *Postgres) ListContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	return queryList(ctx, p, "list contact submissions", func(row scanner) (*models.ContactSubmission, error) {
		var s models.ContactSubmission
		err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Company, &s.Subject,
			&s.Message, &s.Lang, &s.IsRead, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &s, nil
	}, `
		SELECT id, name, email, phone, company, subject, message, lang, is_read, created_at
		FROM contact_submissions ORDER BY created_at DESC, id`)
}

func (p *Postgres) ListQuoteSubmissions(ctx context.Context) ([]models.QuoteSubmission, error) {
	return queryList(ctx, p, "list quote submissions", func(row scanner) (*models.QuoteSubmission, error) {
		var (
			s   models.QuoteSubmission
			raw []byte
		)
		err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Company, &s.ProjectType,
			&s.BudgetRange, &s.Timeline, &raw, &s.Configuration, &s.Message, &s.Lang,
			&s.IsRead, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := decodeJSON(raw, &s.ProductInterest); err != nil {
			return nil, err
		}
		return &s, nil
	}, `
		SELECT id, name, email, phone, company, project_type, budget_range, timeline,
		       product_interest, configuration, message, lang, is_read, created_at
		FROM quote_submissions ORDER BY created_at DESC, id`)
}

func submissionTable(kind models.SubmissionKind) (string, error) {
	switch kind {
	case models.SubmissionContact:
		return "contact_submissions", nil
	case models.SubmissionQuote:
		return "quote_submissions", nil
	}
	return "", apperr.Invalid("kind", "unknown submission kind %q", kind)
}

func (p *Postgres) MarkSubmissionRead(ctx context.Context, kind models.SubmissionKind, id uuid.UUID, read bool) error {
	table, err := submissionTable(kind)
	if err != nil {
		return err
	}
	res, err := p.db.ExecContext(ctx, `UPDATE `+table+` SET is_read = $2 WHERE id = $1`, id, read)
	if err != nil {
		return fmt.Errorf("mark submission read: %w", err)
	}
	return affected(res, string(kind)+" submission", id.String())
}

func (p *Postgres) DeleteSubmission(ctx context.Context, kind models.SubmissionKind, id uuid.UUID) error {
	table, err := submissionTable(kind)
	if err != nil {
		return err
	}
	res, err := p.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	return affected(res, string(kind)+" submission", id.String())
}
