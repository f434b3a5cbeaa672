package service

import (
	"context"
	"log/slog"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/query"
	"github.com/sakif/news-api/internal/repository"
)

// CommentService handles business logic for comments.
type CommentService struct {
	repo   repository.CommentRepository
	logger *slog.Logger
}

func NewCommentService(repo repository.CommentRepository, logger *slog.Logger) *CommentService {
	return &CommentService{
		repo:   repo,
		logger: logger,
	}
}

// ListByArticle returns a page of the article's comments, newest first.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64, page query.Page) ([]model.Comment, error) {
	return s.repo.ListByArticle(ctx, articleID, normalizePage(page))
}

// Create posts a comment on an article as username. An unknown article or
// user is NotFound.
func (s *CommentService) Create(ctx context.Context, articleID int64, username, body string) (*model.Comment, error) {
	username, err := requireText("username", username)
	if err != nil {
		return nil, err
	}
	body, err = requireText("body", body)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Create(ctx, articleID, username, body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		slog.Int64("comment_id", comment.CommentID),
		slog.Int64("article_id", articleID),
		slog.String("author", username),
	)
	return comment, nil
}

func (s *CommentService) Vote(ctx context.Context, id int64, delta int) (*model.Comment, error) {
	comment, err := s.repo.UpdateVotes(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment voted",
		slog.Int64("comment_id", id),
		slog.Int("delta", delta),
		slog.Int("votes", comment.Votes),
	)
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("comment deleted", slog.Int64("comment_id", id))
	return nil
}
