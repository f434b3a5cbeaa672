package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sakif/news-api/internal/validate"
)

// CommentHandler serves /api/comments/{comment_id}. Listing and posting
// comments live on ArticleHandler because they are addressed by article.
type CommentHandler struct {
	comments CommentService
	logger   *slog.Logger
}

func NewCommentHandler(comments CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

// HandleVote serves PATCH /api/comments/{comment_id} with {"incVotes": n}.
func (h *CommentHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID(chi.URLParam(r, "comment_id"), "comment")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req VoteRequest
	if err := render.Bind(r, &req); err != nil {
		writeError(w, r, h.logger, bindError(err))
		return
	}

	comment, err := h.comments.Vote(r.Context(), id, *req.IncVotes)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, commentResponse{Comment: comment})
}

// HandleDelete serves DELETE /api/comments/{comment_id}.
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID(chi.URLParam(r, "comment_id"), "comment")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.comments.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.NoContent(w, r)
}
