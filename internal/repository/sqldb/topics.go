package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/repository"
)

var _ repository.TopicRepository = (*TopicDB)(nil)

// TopicDB is the topics repository.
type TopicDB struct {
	db *DB
}

func (r *TopicDB) List(ctx context.Context) ([]model.Topic, error) {
	topics := []model.Topic{}
	err := selectAll(ctx, r.db.conn, &topics,
		r.db.builder.Select("slug", "description").From("topics").OrderBy("slug"))
	if err != nil {
		return nil, storeError("listing topics", err)
	}
	return topics, nil
}

func (r *TopicDB) GetBySlug(ctx context.Context, slug string) (*model.Topic, error) {
	var topic model.Topic
	err := getOne(ctx, r.db.conn, &topic,
		r.db.builder.Select("slug", "description").From("topics").Where(squirrel.Eq{"slug": slug}))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("topic", slug)
		}
		return nil, storeError("getting topic", err)
	}
	return &topic, nil
}

// Create inserts a topic. A slug that is already taken is a Conflict.
func (r *TopicDB) Create(ctx context.Context, topic model.Topic) (*model.Topic, error) {
	_, err := exec(ctx, r.db.conn, r.db.builder.Insert("topics").
		Columns("slug", "description").
		Values(topic.Slug, topic.Description))
	if err != nil {
		err = storeError("creating topic", err)
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict("topic", topic.Slug)
		}
		return nil, err
	}
	return &topic, nil
}
