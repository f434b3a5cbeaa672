// Package repository declares the storage interfaces the service layer
// depends on. The sqldb subpackage implements them on top of database/sql.
package repository

import (
	"context"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/query"
)

type ArticleRepository interface {
	List(ctx context.Context, params query.ArticleParams) (*model.ArticlePage, error)
	GetByID(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, article model.NewArticle) (*model.Article, error)
	UpdateVotes(ctx context.Context, id int64, delta int) (*model.Article, error)
	Delete(ctx context.Context, id int64) error
}

type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int64, page query.Page) ([]model.Comment, error)
	Create(ctx context.Context, articleID int64, author, body string) (*model.Comment, error)
	UpdateVotes(ctx context.Context, id int64, delta int) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type TopicRepository interface {
	List(ctx context.Context) ([]model.Topic, error)
	GetBySlug(ctx context.Context, slug string) (*model.Topic, error)
	Create(ctx context.Context, topic model.Topic) (*model.Topic, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
