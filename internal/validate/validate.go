// Package validate coerces untrusted request input into typed values.
//
// Everything here runs before the service layer is called, so a malformed
// identifier, query parameter or body never reaches the database.
package validate

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/query"
)

// ID parses a path identifier. It must be a positive base-10 integer.
func ID(raw, resource string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidID(resource)
	}
	return id, nil
}

// positive reads an optional positive integer query parameter.
// A missing or empty value returns 0 so the caller's default applies.
func positive(values url.Values, field string) (uint64, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, apperror.ValidationFailed(field, "Bad Request: Invalid "+field+" query")
	}
	return n, nil
}

// Pagination reads limit and page (both optional).
func Pagination(values url.Values) (query.Page, error) {
	limit, err := positive(values, "limit")
	if err != nil {
		return query.Page{}, err
	}
	page, err := positive(values, "page")
	if err != nil {
		return query.Page{}, err
	}
	p := query.NewPage(limit, page)
	// OFFSET is a signed 64-bit value in both stores.
	if p.Number-1 > math.MaxInt64/p.Limit {
		return query.Page{}, apperror.ValidationFailed("page", "Bad Request: Invalid page query")
	}
	return p, nil
}

// ArticleQuery validates the query string of GET /api/articles. It does not
// check that the topic exists; that needs the store.
func ArticleQuery(values url.Values) (query.ArticleParams, error) {
	sort, err := query.ParseSort(values.Get("sort_by"))
	if err != nil {
		return query.ArticleParams{}, err
	}
	order, err := query.ParseOrder(values.Get("order"))
	if err != nil {
		return query.ArticleParams{}, err
	}
	page, err := Pagination(values)
	if err != nil {
		return query.ArticleParams{}, err
	}

	return query.ArticleParams{
		Topic: strings.TrimSpace(values.Get("topic")),
		Sort:  sort,
		Order: order,
		Page:  page,
	}, nil
}
