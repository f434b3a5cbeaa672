package handler

import (
	"net/http"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/validate"
)

// Request bodies. Each implements render.Binder, so render.Bind decodes the
// JSON and then runs the `validate` tags.

type NewArticleRequest struct {
	Author        string `json:"author"          validate:"required"`
	Title         string `json:"title"           validate:"required"`
	Body          string `json:"body"            validate:"required"`
	Topic         string `json:"topic"           validate:"required"`
	ArticleImgURL string `json:"article_img_url" validate:"omitempty,url"`
}

func (req *NewArticleRequest) Bind(r *http.Request) error {
	return validate.Struct(req)
}

func (req *NewArticleRequest) toModel() model.NewArticle {
	return model.NewArticle{
		Author:        req.Author,
		Title:         req.Title,
		Body:          req.Body,
		Topic:         req.Topic,
		ArticleImgURL: req.ArticleImgURL,
	}
}

// VoteRequest is the body of both vote endpoints. IncVotes is a pointer so
// that an explicit 0 is accepted while a missing field is not. The bound
// keeps a single vote from overflowing the INT votes column.
type VoteRequest struct {
	IncVotes *int `json:"incVotes" validate:"required,min=-1000000,max=1000000"`
}

func (req *VoteRequest) Bind(r *http.Request) error {
	return validate.Struct(req)
}

type NewCommentRequest struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"body"     validate:"required"`
}

func (req *NewCommentRequest) Bind(r *http.Request) error {
	return validate.Struct(req)
}

type NewTopicRequest struct {
	Slug        string `json:"slug"        validate:"required,max=64"`
	Description string `json:"description" validate:"required"`
}

func (req *NewTopicRequest) Bind(r *http.Request) error {
	return validate.Struct(req)
}
