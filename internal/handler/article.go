package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/validate"
)

// ArticleHandler serves /api/articles and the comment routes nested under it.
type ArticleHandler struct {
	articles ArticleService
	comments CommentService
	logger   *slog.Logger
}

func NewArticleHandler(articles ArticleService, comments CommentService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		comments: comments,
		logger:   logger,
	}
}

type articleResponse struct {
	Article *model.Article `json:"article"`
}

type commentsResponse struct {
	Comments []model.Comment `json:"comments"`
}

type commentResponse struct {
	Comment *model.Comment `json:"comment"`
}

// HandleList serves GET /api/articles?topic=&sort_by=&order=&limit=&page=
// with {"articles": [...], "total_count": n}.
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params, err := validate.ArticleQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	page, err := h.articles.List(r.Context(), params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

// HandleGet serves GET /api/articles/{article_id}.
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID(chi.URLParam(r, "article_id"), "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	article, err := h.articles.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, articleResponse{Article: article})
}

// HandleCreate serves POST /api/articles.
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req NewArticleRequest
	if err := render.Bind(r, &req); err != nil {
		writeError(w, r, h.logger, bindError(err))
		return
	}

	article, err := h.articles.Create(r.Context(), req.toModel())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, articleResponse{Article: article})
}

// HandleVote serves PATCH /api/articles/{article_id} with {"incVotes": n}.
func (h *ArticleHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID(chi.URLParam(r, "article_id"), "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req VoteRequest
	if err := render.Bind(r, &req); err != nil {
		writeError(w, r, h.logger, bindError(err))
		return
	}

	article, err := h.articles.Vote(r.Context(), id, *req.IncVotes)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, articleResponse{Article: article})
}

// HandleDelete serves DELETE /api/articles/{article_id}.
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID(chi.URLParam(r, "article_id"), "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.articles.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.NoContent(w, r)
}

// HandleListComments serves GET /api/articles/{article_id}/comments?limit=&page=.
func (h *ArticleHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID(chi.URLParam(r, "article_id"), "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	page, err := validate.Pagination(r.URL.Query())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	comments, err := h.comments.ListByArticle(r.Context(), id, page)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, commentsResponse{Comments: comments})
}

// HandleCreateComment serves POST /api/articles/{article_id}/comments with
// {"username": ..., "body": ...}.
func (h *ArticleHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID(chi.URLParam(r, "article_id"), "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req NewCommentRequest
	if err := render.Bind(r, &req); err != nil {
		writeError(w, r, h.logger, bindError(err))
		return
	}

	comment, err := h.comments.Create(r.Context(), id, req.Username, req.Body)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, commentResponse{Comment: comment})
}
