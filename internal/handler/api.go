package handler

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

//go:embed endpoints.json
var endpointsJSON []byte

// APIHandler serves GET /api, a description of every endpoint.
type APIHandler struct {
	endpoints json.RawMessage
	logger    *slog.Logger
}

// NewAPIHandler checks the embedded document once at startup so a broken
// file fails the server instead of every request.
func NewAPIHandler(logger *slog.Logger) (*APIHandler, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(endpointsJSON, &doc); err != nil {
		return nil, fmt.Errorf("parsing endpoints.json: %w", err)
	}
	return &APIHandler{endpoints: json.RawMessage(endpointsJSON), logger: logger}, nil
}

type endpointsResponse struct {
	Endpoints json.RawMessage `json:"endpoints"`
}

func (h *APIHandler) HandleEndpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, endpointsResponse{Endpoints: h.endpoints})
}
