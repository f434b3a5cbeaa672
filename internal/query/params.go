// Package query builds the parameterised SQL statements behind the listing
// endpoints.
//
// Nothing in this package ever formats a caller-supplied string into SQL.
// Sort columns and directions are closed enumerations; each value maps to a
// fixed column reference chosen here. Filter values only ever travel as
// placeholder arguments.
//
// WHY ENUMS INSTEAD OF STRINGS?
// Placeholders protect values, but ORDER BY takes an identifier, and an
// identifier cannot be a placeholder. The usual escape hatch is to check
// the client string against a whitelist and then paste it into the query.
// That works until someone edits the whitelist or reuses the string
// somewhere the check did not run. Here the client string is parsed once
// (ParseSort, ParseOrder) into a SortField or Order, and only those types
// reach the builders. A SortField can only ever render as one of the
// column references in its column method, so there is no path from the
// query string to the SQL text.
//
// PAGINATION:
// Page holds the 1-based page number and the limit; Offset derives the
// rows to skip. Totals come from COUNT(*) OVER () on the same statement,
// so one round trip returns both the page and the number of matches.
package query

import (
	"strings"

	"github.com/sakif/news-api/internal/apperror"
)

// SortField is the closed set of columns an article listing may be ordered by.
type SortField int

const (
	SortCreatedAt SortField = iota // default
	SortArticleID
	SortAuthor
	SortTitle
	SortTopic
	SortVotes
	SortArticleImgURL
	SortCommentCount
)

var sortFieldNames = map[string]SortField{
	"created_at":      SortCreatedAt,
	"article_id":      SortArticleID,
	"author":          SortAuthor,
	"title":           SortTitle,
	"topic":           SortTopic,
	"votes":           SortVotes,
	"article_img_url": SortArticleImgURL,
	"comment_count":   SortCommentCount,
}

// column returns the fixed SQL reference for the field.
func (f SortField) column() string {
	switch f {
	case SortArticleID:
		return "articles.article_id"
	case SortAuthor:
		return "articles.author"
	case SortTitle:
		return "articles.title"
	case SortTopic:
		return "articles.topic"
	case SortVotes:
		return "articles.votes"
	case SortArticleImgURL:
		return "articles.article_img_url"
	case SortCommentCount:
		return "comment_count"
	default:
		return "articles.created_at"
	}
}

func (f SortField) String() string {
	for name, v := range sortFieldNames {
		if v == f {
			return name
		}
	}
	return "created_at"
}

// ParseSort maps a sort_by query value onto the whitelist. The empty string
// selects the default (created_at).
func ParseSort(raw string) (SortField, error) {
	if raw == "" {
		return SortCreatedAt, nil
	}
	f, ok := sortFieldNames[raw]
	if !ok {
		return 0, apperror.ValidationFailed("sort_by", "Bad Request: Invalid sort_by query")
	}
	return f, nil
}

// Order is the sort direction.
type Order int

const (
	Desc Order = iota // default
	Asc
)

func (o Order) sql() string {
	if o == Asc {
		return "ASC"
	}
	return "DESC"
}

func (o Order) String() string {
	return strings.ToLower(o.sql())
}

// ParseOrder accepts "asc" or "desc" in any case. The empty string selects desc.
func ParseOrder(raw string) (Order, error) {
	switch strings.ToLower(raw) {
	case "", "desc":
		return Desc, nil
	case "asc":
		return Asc, nil
	default:
		return 0, apperror.ValidationFailed("order", "Bad Request: Invalid order query")
	}
}

// Pagination defaults and bounds.
const (
	DefaultLimit = 10
	DefaultPage  = 1
	MaxLimit     = 100
)

// Page selects one page of a listing. Number is 1-based.
type Page struct {
	Limit  uint64
	Number uint64
}

// NewPage applies the defaults to zero values and caps the limit at MaxLimit.
func NewPage(limit, number uint64) Page {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if number == 0 {
		number = DefaultPage
	}
	return Page{Limit: limit, Number: number}
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() uint64 {
	if p.Number == 0 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// ArticleParams is a validated article listing request.
// An empty Topic means no topic filter.
type ArticleParams struct {
	Topic string
	Sort  SortField
	Order Order
	Page  Page
}
