// Package handler contains the HTTP handlers of the news API.
//
// Handlers parse path and query parameters with package validate, bind
// request bodies with go-chi/render, call a service and render the result
// wrapped in a named key ({"article": ...}, {"comments": [...]}, ...).
// They depend on the small service interfaces below rather than on the
// concrete services, so tests can substitute fakes.
package handler

import (
	"context"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/query"
)

type ArticleService interface {
	List(ctx context.Context, params query.ArticleParams) (*model.ArticlePage, error)
	Get(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, in model.NewArticle) (*model.Article, error)
	Vote(ctx context.Context, id int64, delta int) (*model.Article, error)
	Delete(ctx context.Context, id int64) error
}

type CommentService interface {
	ListByArticle(ctx context.Context, articleID int64, page query.Page) ([]model.Comment, error)
	Create(ctx context.Context, articleID int64, username, body string) (*model.Comment, error)
	Vote(ctx context.Context, id int64, delta int) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type TopicService interface {
	List(ctx context.Context) ([]model.Topic, error)
	Create(ctx context.Context, slug, description string) (*model.Topic, error)
}

type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, username string) (*model.User, error)
}
