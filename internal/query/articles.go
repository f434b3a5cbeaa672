package query

import (
	"github.com/Masterminds/squirrel"
)

// summaryColumns are the list-view columns of an article (body omitted).
var summaryColumns = []string{
	"articles.article_id",
	"articles.author",
	"articles.title",
	"articles.topic",
	"articles.created_at",
	"articles.votes",
	"articles.article_img_url",
}

// commentCount counts associated comments. It relies on the LEFT JOIN so
// articles without comments still yield a row with a count of zero.
const commentCount = "COUNT(comments.comment_id) AS comment_count"

// totalCount is evaluated after GROUP BY and before LIMIT, so it is the number
// of matching articles regardless of pagination.
const totalCount = "COUNT(*) OVER () AS total_count"

func withComments(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.From("articles").
		LeftJoin("comments ON comments.article_id = articles.article_id").
		GroupBy("articles.article_id")
}

// Articles builds the listing statement for p. Each row carries the
// summary columns, comment_count and total_count.
func Articles(sb squirrel.StatementBuilderType, p ArticleParams) squirrel.SelectBuilder {
	dir := p.Order.sql()

	b := withComments(sb.Select(summaryColumns...).Column(commentCount).Column(totalCount)).
		OrderBy(p.Sort.column()+" "+dir, "articles.article_id "+dir).
		Limit(p.Page.Limit).
		Offset(p.Page.Offset())

	if p.Topic != "" {
		b = b.Where(squirrel.Eq{"articles.topic": p.Topic})
	}
	return b
}

// ArticleCount counts the articles matching topic (all articles when empty).
// Used when the requested page lies past the last row and the windowed
// total_count is therefore unavailable.
func ArticleCount(sb squirrel.StatementBuilderType, topic string) squirrel.SelectBuilder {
	b := sb.Select("COUNT(*)").From("articles")
	if topic != "" {
		b = b.Where(squirrel.Eq{"topic": topic})
	}
	return b
}

// Article builds the single-item statement: summary columns, body and
// comment_count for one article id.
func Article(sb squirrel.StatementBuilderType, id int64) squirrel.SelectBuilder {
	return withComments(sb.Select(summaryColumns...).Column("articles.body").Column(commentCount)).
		Where(squirrel.Eq{"articles.article_id": id})
}
