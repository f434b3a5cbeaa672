package sqldb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/seed"
)

// dialect holds the DDL fragments that differ between drivers.
type dialect struct {
	serial    string
	timestamp string
}

var dialects = map[Driver]dialect{
	Postgres: {serial: "SERIAL PRIMARY KEY", timestamp: "TIMESTAMP"},
	SQLite:   {serial: "INTEGER PRIMARY KEY AUTOINCREMENT", timestamp: "DATETIME"},
}

var dropStatements = []string{
	"DROP TABLE IF EXISTS comments",
	"DROP TABLE IF EXISTS articles",
	"DROP TABLE IF EXISTS users",
	"DROP TABLE IF EXISTS topics",
}

func createStatements(d dialect) []string {
	return []string{
		`CREATE TABLE topics (
			slug        VARCHAR PRIMARY KEY,
			description VARCHAR NOT NULL
		)`,
		`CREATE TABLE users (
			username   VARCHAR PRIMARY KEY,
			name       VARCHAR NOT NULL,
			avatar_url VARCHAR NOT NULL DEFAULT ''
		)`,
		fmt.Sprintf(`CREATE TABLE articles (
			article_id      %s,
			title           VARCHAR NOT NULL,
			topic           VARCHAR NOT NULL REFERENCES topics(slug),
			author          VARCHAR NOT NULL REFERENCES users(username),
			body            VARCHAR NOT NULL,
			created_at      %s NOT NULL DEFAULT CURRENT_TIMESTAMP,
			votes           INT NOT NULL DEFAULT 0,
			article_img_url VARCHAR NOT NULL DEFAULT '%s'
		)`, d.serial, d.timestamp, model.DefaultArticleImgURL),
		fmt.Sprintf(`CREATE TABLE comments (
			comment_id %s,
			article_id INT NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
			author     VARCHAR NOT NULL REFERENCES users(username),
			body       VARCHAR NOT NULL,
			votes      INT NOT NULL DEFAULT 0,
			created_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, d.serial, d.timestamp),
		"CREATE INDEX articles_topic_idx ON articles (topic)",
		"CREATE INDEX comments_article_id_idx ON comments (article_id)",
	}
}

// Reset drops and recreates every table. All data is lost.
func (db *DB) Reset(ctx context.Context) error {
	d, ok := dialects[db.driver]
	if !ok {
		return fmt.Errorf("sqldb: no schema for driver %q", db.driver)
	}

	stmts := append(append([]string{}, dropStatements...), createStatements(d)...)
	return db.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("sqldb: reset: %s: %w", firstLine(stmt), err)
			}
		}
		return nil
	})
}

// Seed inserts ds into freshly reset tables. Comments reference articles by
// position in ds.Articles; the generated ids are mapped back as rows go in.
func (db *DB) Seed(ctx context.Context, ds *seed.Dataset) error {
	return db.inTx(ctx, func(tx *sqlx.Tx) error {
		if len(ds.Topics) > 0 {
			insert := db.builder.Insert("topics").Columns("slug", "description")
			for _, t := range ds.Topics {
				insert = insert.Values(t.Slug, t.Description)
			}
			if _, err := exec(ctx, tx, insert); err != nil {
				return fmt.Errorf("sqldb: seeding topics: %w", err)
			}
		}

		if len(ds.Users) > 0 {
			insert := db.builder.Insert("users").Columns("username", "name", "avatar_url")
			for _, u := range ds.Users {
				insert = insert.Values(u.Username, u.Name, u.AvatarURL)
			}
			if _, err := exec(ctx, tx, insert); err != nil {
				return fmt.Errorf("sqldb: seeding users: %w", err)
			}
		}

		ids := make([]int64, len(ds.Articles))
		for i, a := range ds.Articles {
			img := a.ArticleImgURL
			if img == "" {
				img = model.DefaultArticleImgURL
			}
			insert := db.builder.Insert("articles").
				Columns("title", "topic", "author", "body", "created_at", "votes", "article_img_url").
				Values(a.Title, a.Topic, a.Author, a.Body, seedTime(a.CreatedAt), a.Votes, img).
				Suffix("RETURNING article_id")
			if err := getOne(ctx, tx, &ids[i], insert); err != nil {
				return fmt.Errorf("sqldb: seeding article %d: %w", i+1, err)
			}
		}

		if len(ds.Comments) > 0 {
			insert := db.builder.Insert("comments").
				Columns("article_id", "author", "body", "votes", "created_at")
			for _, c := range ds.Comments {
				insert = insert.Values(ids[c.ArticleID-1], c.Author, c.Body, c.Votes, seedTime(c.CreatedAt))
			}
			if _, err := exec(ctx, tx, insert); err != nil {
				return fmt.Errorf("sqldb: seeding comments: %w", err)
			}
		}
		return nil
	})
}

func seedTime(t time.Time) time.Time {
	if t.IsZero() {
		return now()
	}
	return t.UTC().Truncate(time.Microsecond)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
