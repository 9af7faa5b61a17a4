package handler

import (
	"net/http"

	"github.com/aidar/member-search/internal/domain"
)

// TeamStatsResponse представляет статистику по возрасту для всех команд
type TeamStatsResponse struct {
	Teams []domain.TeamAgeStats `json:"teams"`
}

// GetTeamStats обрабатывает GET /v1/teams/stats
func (h *TeamHandler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.teams.AgeStats(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TeamStatsResponse{Teams: stats})
}
