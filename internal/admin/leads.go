// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"factorysite/internal/apperr"
	"factorysite/internal/configurator"
	"factorysite/internal/i18n"
	"factorysite/internal/models"
	"factorysite/internal/site"
	"factorysite/internal/store"
)

const (
	maxNameLen    = 200
	maxMessageLen = 5_000
	maxFieldLen   = 300
	maxInterests  = 20
)

// Leads accepts public contact and quote submissions.
type Leads struct {
	repo     store.Repository
	resolver *configurator.Resolver
}

// NewLeads creates a Leads.
func NewLeads(repo store.Repository) *Leads {
	return &Leads{repo: repo, resolver: configurator.New(repo)}
}

// ContactForm is the public contact form.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// QuoteForm is the public quote request. ProductSlug and Selection are set
// when the request comes from a product configurator.
type QuoteForm struct {
	Name            string                 `json:"name"`
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	Company         string                 `json:"company"`
	ProjectType     string                 `json:"project_type"`
	BudgetRange     string                 `json:"budget_range"`
	Timeline        string                 `json:"timeline"`
	ProductInterest []string               `json:"product_interest"`
	ProductSlug     string                 `json:"product_slug"`
	Selection       configurator.Selection `json:"selection"`
	Message         string                 `json:"message"`
}

// contact holds the fields both forms share.
type contact struct {
	name, email, phone, company string
}

func checkContact(c *contact) error {
	c.name = strings.TrimSpace(c.name)
	c.email = strings.TrimSpace(c.email)
	c.phone = strings.TrimSpace(c.phone)
	c.company = strings.TrimSpace(c.company)
	if c.name == "" {
		return apperr.Invalid("name", "name is required")
	}
	if utf8.RuneCountInString(c.name) > maxNameLen {
		return apperr.Invalid("name", "is too long (max %d characters)", maxNameLen)
	}
	if c.email == "" {
		return apperr.Invalid("email", "email is required")
	}
	addr, err := mail.ParseAddress(c.email)
	if err != nil || addr.Address != c.email {
		return apperr.Invalid("email", "%q is not a valid email address", c.email)
	}
	for field, v := range map[string]string{"phone": c.phone, "company": c.company} {
		if utf8.RuneCountInString(v) > maxFieldLen {
			return apperr.Invalid(field, "is too long (max %d characters)", maxFieldLen)
		}
	}
	return nil
}

func checkMessage(msg string, required bool) (string, error) {
	msg = strings.TrimSpace(msg)
	if required && msg == "" {
		return "", apperr.Invalid("message", "message is required")
	}
	if utf8.RuneCountInString(msg) > maxMessageLen {
		return "", apperr.Invalid("message", "is too long (max %d characters)", maxMessageLen)
	}
	return msg, nil
}

// SubmitContact validates and stores a contact form submission.
func (l *Leads) SubmitContact(ctx context.Context, lang i18n.Lang, f ContactForm) (*models.ContactSubmission, error) {
	c := contact{f.Name, f.Email, f.Phone, f.Company}
	if err := checkContact(&c); err != nil {
		return nil, err
	}
	msg, err := checkMessage(f.Message, true)
	if err != nil {
		return nil, err
	}
	subject := strings.TrimSpace(f.Subject)
	if utf8.RuneCountInString(subject) > maxFieldLen {
		return nil, apperr.Invalid("subject", "is too long (max %d characters)", maxFieldLen)
	}

	s := &models.ContactSubmission{
		Name:    c.name,
		Email:   c.email,
		Phone:   c.phone,
		Company: c.company,
		Subject: subject,
		Message: msg,
		Lang:    string(lang),
	}
	if err := l.repo.CreateContactSubmission(ctx, s); err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return s, nil
}

// SubmitQuote validates and stores a quote request. A configurator
// selection is checked against the product's offered options and stored
// as a readable summary.
func (l *Leads) SubmitQuote(ctx context.Context, lang i18n.Lang, f QuoteForm) (*models.QuoteSubmission, error) {
	c := contact{f.Name, f.Email, f.Phone, f.Company}
	if err := checkContact(&c); err != nil {
		return nil, err
	}
	msg, err := checkMessage(f.Message, false)
	if err != nil {
		return nil, err
	}

	var interest []string
	for _, p := range f.ProductInterest {
		if p = strings.TrimSpace(p); p != "" && utf8.RuneCountInString(p) <= maxFieldLen {
			interest = append(interest, p)
		}
	}

	s := &models.QuoteSubmission{
		Name:        c.name,
		Email:       c.email,
		Phone:       c.phone,
		Company:     c.company,
		ProjectType: strings.TrimSpace(f.ProjectType),
		BudgetRange: strings.TrimSpace(f.BudgetRange),
		Timeline:    strings.TrimSpace(f.Timeline),
		Message:     msg,
		Lang:        string(lang),
	}

	if slug := strings.TrimSpace(f.ProductSlug); slug != "" {
		p, err := site.PublicProduct(ctx, l.repo, slug)
		if apperr.IsNotFound(err) {
			return nil, apperr.Invalid("product_slug", "product %q does not exist", slug)
		}
		if err != nil {
			return nil, err
		}
		title := p.Title.In(lang)
		if !containsFold(interest, title) {
			interest = append([]string{title}, interest...)
		}
		summary, err := l.resolver.Validate(ctx, p.ID, f.Selection, lang)
		if err != nil {
			return nil, err
		}
		if len(summary.Lines) > 0 {
			s.Configuration = title + ": " + summary.String()
		}
	} else if len(f.Selection) > 0 {
		return nil, apperr.Invalid("product_slug", "a configuration needs a product")
	}

	if len(interest) > maxInterests {
		return nil, apperr.Invalid("product_interest", "at most %d items are allowed", maxInterests)
	}
	s.ProductInterest = interest
	if s.ProductInterest == nil {
		s.ProductInterest = []string{}
	}
	if err := l.repo.CreateQuoteSubmission(ctx, s); err != nil {
		return nil, fmt.Errorf("create quote submission: %w", err)
	}
	return s, nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
