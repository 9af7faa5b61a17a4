package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/service"
)

// TeamManager управляет командами
type TeamManager interface {
	AddTeam(ctx context.Context, name string) (*domain.Team, error)
	GetTeamMembers(ctx context.Context, teamID int64) (*service.TeamMembers, error)
	AgeStats(ctx context.Context) ([]domain.TeamAgeStats, error)
}

// TeamHandler обрабатывает эндпоинты команд
type TeamHandler struct {
	teams TeamManager
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(teams TeamManager) *TeamHandler {
	return &TeamHandler{
		teams: teams,
	}
}

// AddTeamRequest представляет тело запроса на создание команды
type AddTeamRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// AddTeam обрабатывает POST /v1/teams
func (h *TeamHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	var req AddTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	// Валидация запроса
	if err := validate.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "name is required")
		return
	}

	team, err := h.teams.AddTeam(r.Context(), req.Name)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, team)
}

// GetTeamMembers обрабатывает GET /v1/teams/{teamID}/members
func (h *TeamHandler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}

	team, err := h.teams.GetTeamMembers(r.Context(), teamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, team)
}
