package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/query"
	"github.com/sakif/news-api/internal/repository"
)

var _ repository.CommentRepository = (*CommentDB)(nil)

// CommentDB is the comments repository.
type CommentDB struct {
	db *DB
}

// ListByArticle returns one page of an article's comments, newest first.
// An unknown article is NotFound; a known one without comments is an
// empty slice.
func (r *CommentDB) ListByArticle(ctx context.Context, articleID int64, page query.Page) ([]model.Comment, error) {
	comments := []model.Comment{}
	if err := selectAll(ctx, r.db.conn, &comments, query.Comments(r.db.builder, articleID, page)); err != nil {
		return nil, storeError("listing comments", err)
	}
	if len(comments) > 0 {
		return comments, nil
	}

	ok, err := r.db.exists(ctx, r.db.conn, "articles", "article_id", articleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("article", articleID)
	}
	return comments, nil
}

func (r *CommentDB) get(ctx context.Context, q queryer, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := getOne(ctx, q, &comment, query.Comment(r.db.builder, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, notFound("comment", id)
		}
		return nil, storeError("getting comment", err)
	}
	return &comment, nil
}

// Create adds a comment by author to the article.
func (r *CommentDB) Create(ctx context.Context, articleID int64, author, body string) (*model.Comment, error) {
	var comment *model.Comment
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		insert := r.db.builder.Insert("comments").
			Columns("article_id", "author", "body", "votes", "created_at").
			Values(articleID, author, body, 0, now()).
			Suffix("RETURNING comment_id")
		if err := getOne(ctx, tx, &id, insert); err != nil {
			return storeError("creating comment", err)
		}

		var err error
		comment, err = r.get(ctx, tx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, r.missingParent(ctx, articleID, author, err)
		}
		return nil, err
	}
	return comment, nil
}

func (r *CommentDB) missingParent(ctx context.Context, articleID int64, author string, fkErr error) error {
	ok, err := r.db.exists(ctx, r.db.conn, "articles", "article_id", articleID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("article", articleID)
	}
	ok, err = r.db.exists(ctx, r.db.conn, "users", "username", author)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("user", author)
	}
	return fkErr
}

// UpdateVotes adds delta to the comment's votes and returns the result.
func (r *CommentDB) UpdateVotes(ctx context.Context, id int64, delta int) (*model.Comment, error) {
	var comment *model.Comment
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := exec(ctx, tx, r.db.builder.Update("comments").
			Set("votes", squirrel.Expr("votes + ?", delta)).
			Where(squirrel.Eq{"comment_id": id}))
		if err != nil {
			return storeError("updating comment votes", err)
		}
		if err := affected(res, "comment", id); err != nil {
			return err
		}

		comment, err = r.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentDB) Delete(ctx context.Context, id int64) error {
	res, err := exec(ctx, r.db.conn, r.db.builder.Delete("comments").Where(squirrel.Eq{"comment_id": id}))
	if err != nil {
		return storeError("deleting comment", err)
	}
	return affected(res, "comment", id)
}
