package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/query"
	"github.com/sakif/news-api/internal/repository"
)

var _ repository.ArticleRepository = (*ArticleDB)(nil)

// ArticleDB is the articles repository.
type ArticleDB struct {
	db *DB
}

// articleRow is one row of the listing query.
type articleRow struct {
	model.ArticleSummary
	TotalCount int `db:"total_count"`
}

// List runs the listing query for params.
//
// The topic filter is checked lazily: a non-empty page proves the topic
// exists, so the extra lookup only happens when nothing matched. The same
// goes for the total: when the page lies past the last row the windowed
// total_count is unavailable and a plain COUNT is run instead.
func (r *ArticleDB) List(ctx context.Context, params query.ArticleParams) (*model.ArticlePage, error) {
	var rows []articleRow
	if err := selectAll(ctx, r.db.conn, &rows, query.Articles(r.db.builder, params)); err != nil {
		return nil, storeError("listing articles", err)
	}

	page := &model.ArticlePage{Articles: make([]model.ArticleSummary, 0, len(rows))}
	for _, row := range rows {
		page.Articles = append(page.Articles, row.ArticleSummary)
	}
	if len(rows) > 0 {
		page.TotalCount = rows[0].TotalCount
		return page, nil
	}

	if params.Topic != "" {
		ok, err := r.db.exists(ctx, r.db.conn, "topics", "slug", params.Topic)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NotFound("topic", params.Topic)
		}
	}

	if params.Page.Offset() > 0 {
		if err := getOne(ctx, r.db.conn, &page.TotalCount, query.ArticleCount(r.db.builder, params.Topic)); err != nil {
			return nil, storeError("counting articles", err)
		}
	}
	return page, nil
}

// GetByID returns the article with its body and comment_count.
func (r *ArticleDB) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	return r.get(ctx, r.db.conn, id)
}

func (r *ArticleDB) get(ctx context.Context, q queryer, id int64) (*model.Article, error) {
	var article model.Article
	err := getOne(ctx, q, &article, query.Article(r.db.builder, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, notFound("article", id)
		}
		return nil, storeError("getting article", err)
	}
	return &article, nil
}

// Create inserts an article and returns it as stored: generated id and
// timestamp, votes 0, comment_count 0.
func (r *ArticleDB) Create(ctx context.Context, in model.NewArticle) (*model.Article, error) {
	img := in.ArticleImgURL
	if img == "" {
		img = model.DefaultArticleImgURL
	}

	var article *model.Article
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		insert := r.db.builder.Insert("articles").
			Columns("author", "title", "body", "topic", "article_img_url", "votes", "created_at").
			Values(in.Author, in.Title, in.Body, in.Topic, img, 0, now()).
			Suffix("RETURNING article_id")
		if err := getOne(ctx, tx, &id, insert); err != nil {
			return storeError("creating article", err)
		}

		var err error
		article, err = r.get(ctx, tx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, r.missingParent(ctx, in, err)
		}
		return nil, err
	}
	return article, nil
}

// missingParent names which reference of a rejected insert does not exist.
func (r *ArticleDB) missingParent(ctx context.Context, in model.NewArticle, fkErr error) error {
	ok, err := r.db.exists(ctx, r.db.conn, "topics", "slug", in.Topic)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("topic", in.Topic)
	}
	ok, err = r.db.exists(ctx, r.db.conn, "users", "username", in.Author)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("user", in.Author)
	}
	return fkErr
}

// UpdateVotes adds delta to the article's votes and returns the result.
// The increment happens in SQL so concurrent updates cannot lose votes.
func (r *ArticleDB) UpdateVotes(ctx context.Context, id int64, delta int) (*model.Article, error) {
	var article *model.Article
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := exec(ctx, tx, r.db.builder.Update("articles").
			Set("votes", squirrel.Expr("votes + ?", delta)).
			Where(squirrel.Eq{"article_id": id}))
		if err != nil {
			return storeError("updating article votes", err)
		}
		if err := affected(res, "article", id); err != nil {
			return err
		}

		article, err = r.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes the article; the schema cascades the delete to its comments.
func (r *ArticleDB) Delete(ctx context.Context, id int64) error {
	res, err := exec(ctx, r.db.conn, r.db.builder.Delete("articles").Where(squirrel.Eq{"article_id": id}))
	if err != nil {
		return storeError("deleting article", err)
	}
	return affected(res, "article", id)
}

// now is the creation timestamp written by inserts. Microsecond precision
// matches what postgres stores, so values round-trip unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
