// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionKind distinguishes the two lead inboxes.
type SubmissionKind string

const (
	SubmissionContact SubmissionKind = "contact"
	SubmissionQuote   SubmissionKind = "quote"
)

// ContactSubmission is an append-only record from the contact form.
type ContactSubmission struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Lang      string    `json:"lang"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// QuoteSubmission is an append-only quote request. Configuration holds the
// serialized configurator selection when the request came from a product.
type QuoteSubmission struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Company         string    `json:"company,omitempty"`
	ProjectType     string    `json:"project_type"`
	BudgetRange     string    `json:"budget_range"`
	Timeline        string    `json:"timeline"`
	ProductInterest []string  `json:"product_interest"`
	Configuration   string    `json:"configuration,omitempty"`
	Message         string    `json:"message"`
	Lang            string    `json:"lang"`
	IsRead          bool      `json:"is_read"`
	CreatedAt       time.Time `json:"created_at"`
}
