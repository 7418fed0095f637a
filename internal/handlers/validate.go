package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	return parseUUID("id", chi.URLParam(r, "id"))
}

// queryID parses an optional uuid query parameter. A missing parameter
// yields uuid.Nil, which the store treats as "all parents".
func queryID(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return uuid.Nil, nil
	}
	return parseUUID(name, raw)
}

func parseUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Invalid(field, "must be a UUID")
	}
	return id, nil
}

// queryBool reads a flag such as ?featured=1. Unparseable values are false.
func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

// reorderableKinds are the collections the admin may reorder by hand.
var reorderableKinds = map[models.Kind]bool{
	models.KindService:     true,
	models.KindSubservice:  true,
	models.KindCategory:    true,
	models.KindProduct:     true,
	models.KindHeroSlide:   true,
	models.KindPartner:     true,
	models.KindOptionType:  true,
	models.KindOptionValue: true,
}

func parseKind(raw string) (models.Kind, error) {
	k := models.Kind(strings.TrimSpace(raw))
	if !reorderableKinds[k] {
		return "", apperr.Invalid("kind", "unknown collection %q", raw)
	}
	return k, nil
}

func parseSubmissionKind(raw string) (models.SubmissionKind, error) {
	switch k := models.SubmissionKind(raw); k {
	case models.SubmissionContact, models.SubmissionQuote:
		return k, nil
	}
	return "", apperr.Invalid("kind", "must be contact or quote")
}
