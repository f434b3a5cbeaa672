// Package model defines the data structures used throughout the application.
// The `json` tags describe the wire format, the `db` tags the column names
// sqlx scans into.
package model

import "time"

// DefaultArticleImgURL is stored when an article is created without an image.
const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// ArticleSummary is the list-view projection of an article: everything
// except the body.
type ArticleSummary struct {
	ArticleID     int64     `json:"article_id"      db:"article_id"`
	Author        string    `json:"author"          db:"author"`
	Title         string    `json:"title"           db:"title"`
	Topic         string    `json:"topic"           db:"topic"`
	CreatedAt     time.Time `json:"created_at"      db:"created_at"`
	Votes         int       `json:"votes"           db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count"   db:"comment_count"` // derived, never stored
}

// Article is the single-item view, body included.
type Article struct {
	ArticleSummary
	Body string `json:"body" db:"body"`
}

// ArticlePage is one page of an article listing. TotalCount is the number of
// articles matching the filter before pagination was applied.
type ArticlePage struct {
	Articles   []ArticleSummary `json:"articles"`
	TotalCount int              `json:"total_count"`
}

// NewArticle holds the caller-supplied fields of an article to be created.
type NewArticle struct {
	Author        string
	Title         string
	Body          string
	Topic         string
	ArticleImgURL string
}
