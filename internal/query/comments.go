package query

import "github.com/Masterminds/squirrel"

var commentColumns = []string{
	"comment_id",
	"article_id",
	"author",
	"body",
	"votes",
	"created_at",
}

// Comments builds the paginated listing of an article's comments, newest first.
func Comments(sb squirrel.StatementBuilderType, articleID int64, p Page) squirrel.SelectBuilder {
	return sb.Select(commentColumns...).
		From("comments").
		Where(squirrel.Eq{"article_id": articleID}).
		OrderBy("created_at DESC", "comment_id DESC").
		Limit(p.Limit).
		Offset(p.Offset())
}

// Comment builds the lookup of a single comment by id.
func Comment(sb squirrel.StatementBuilderType, id int64) squirrel.SelectBuilder {
	return sb.Select(commentColumns...).
		From("comments").
		Where(squirrel.Eq{"comment_id": id})
}
