package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/query"
	"github.com/sakif/news-api/internal/repository"
)

// ArticleService handles business logic for articles.
type ArticleService struct {
	repo   repository.ArticleRepository
	logger *slog.Logger
}

func NewArticleService(repo repository.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		repo:   repo,
		logger: logger,
	}
}

// List returns one page of articles together with the total number of
// articles matching the topic filter. An unknown topic is NotFound; a known
// topic without articles is an empty page.
func (s *ArticleService) List(ctx context.Context, params query.ArticleParams) (*model.ArticlePage, error) {
	params.Topic = strings.TrimSpace(params.Topic)
	params.Page = normalizePage(params.Page)
	return s.repo.List(ctx, params)
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*model.Article, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new article. Author and topic must already
// exist; the repository reports which one is missing.
func (s *ArticleService) Create(ctx context.Context, in model.NewArticle) (*model.Article, error) {
	var err error
	if in.Author, err = requireText("author", in.Author); err != nil {
		return nil, err
	}
	if in.Title, err = requireText("title", in.Title); err != nil {
		return nil, err
	}
	if in.Body, err = requireText("body", in.Body); err != nil {
		return nil, err
	}
	if in.Topic, err = requireText("topic", in.Topic); err != nil {
		return nil, err
	}
	in.ArticleImgURL = strings.TrimSpace(in.ArticleImgURL)

	article, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info("article created",
		slog.Int64("article_id", article.ArticleID),
		slog.String("author", article.Author),
		slog.String("topic", article.Topic),
	)
	return article, nil
}

// Vote adds delta (which may be negative or zero) to the article's votes.
func (s *ArticleService) Vote(ctx context.Context, id int64, delta int) (*model.Article, error) {
	article, err := s.repo.UpdateVotes(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	s.logger.Info("article voted",
		slog.Int64("article_id", id),
		slog.Int("delta", delta),
		slog.Int("votes", article.Votes),
	)
	return article, nil
}

// Delete removes the article and, through the schema, its comments.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("article deleted", slog.Int64("article_id", id))
	return nil
}
