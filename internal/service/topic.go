package service

import (
	"context"
	"log/slog"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/repository"
)

type TopicService struct {
	repo   repository.TopicRepository
	logger *slog.Logger
}

func NewTopicService(repo repository.TopicRepository, logger *slog.Logger) *TopicService {
	return &TopicService{
		repo:   repo,
		logger: logger,
	}
}

func (s *TopicService) List(ctx context.Context) ([]model.Topic, error) {
	return s.repo.List(ctx)
}

func (s *TopicService) Get(ctx context.Context, slug string) (*model.Topic, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Create adds a topic. Slugs are unique; a taken slug is a Conflict.
func (s *TopicService) Create(ctx context.Context, slug, description string) (*model.Topic, error) {
	slug, err := requireText("slug", slug)
	if err != nil {
		return nil, err
	}
	description, err = requireText("description", description)
	if err != nil {
		return nil, err
	}

	topic, err := s.repo.Create(ctx, model.Topic{Slug: slug, Description: description})
	if err != nil {
		return nil, err
	}

	s.logger.Info("topic created", slog.String("slug", topic.Slug))
	return topic, nil
}
