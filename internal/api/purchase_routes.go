package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/simplifymoney/kuberai-backend/internal/purchase"
)

func (s *Server) handleBuyGold(w http.ResponseWriter, r *http.Request) {
	var req purchase.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.purchases.Record(r.Context(), req)
	if err != nil {
		if isClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error().Err(err).Msg("purchase recording failed")
		writeError(w, http.StatusInternalServerError, "failed to record purchase")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func isClientError(err error) bool {
	return errors.Is(err, purchase.ErrNudgeDeclined) ||
		errors.Is(err, purchase.ErrBelowMinimum) ||
		errors.Is(err, purchase.ErrInvalidRequest)
}
