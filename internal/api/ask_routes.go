package api

import (
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAskKuber(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	// Ask never fails: the service converts internal errors into the
	// fallback reply shape.
	resp := s.ask.Ask(r.Context(), req.Question)
	writeJSON(w, http.StatusOK, resp)
}
