// Package service contains the business logic layer of the application.
//
// Handlers parse and validate HTTP input, services apply the domain rules
// and call the repositories, repositories speak SQL:
//
//	Handler (HTTP)  →  Service (rules)  →  Repository (storage)
//
// Services depend on the repository interfaces, never on sqldb, so tests
// substitute in-memory fakes. They return apperror values and log only
// successful mutations; failures are logged once, by the HTTP layer.
package service

import (
	"strings"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/query"
)

// requireText trims value and rejects it when nothing is left.
func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperror.MissingField(field)
	}
	return value, nil
}

// normalizePage fills in defaults for a zero Page and caps the limit.
func normalizePage(p query.Page) query.Page {
	return query.NewPage(p.Limit, p.Number)
}
