package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sakif/news-api/internal/model"
)

type TopicHandler struct {
	topics TopicService
	logger *slog.Logger
}

func NewTopicHandler(topics TopicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{topics: topics, logger: logger}
}

type topicsResponse struct {
	Topics []model.Topic `json:"topics"`
}

type topicResponse struct {
	Topic *model.Topic `json:"topic"`
}

// HandleList serves GET /api/topics.
func (h *TopicHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, topicsResponse{Topics: topics})
}

// HandleCreate serves POST /api/topics with {"slug": ..., "description": ...}.
func (h *TopicHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req NewTopicRequest
	if err := render.Bind(r, &req); err != nil {
		writeError(w, r, h.logger, bindError(err))
		return
	}

	topic, err := h.topics.Create(r.Context(), req.Slug, req.Description)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, topicResponse{Topic: topic})
}
