package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aidar/member-search/internal/domain"
)

var validate = validator.New()

// MemberSearcher выполняет поиск участников
type MemberSearcher interface {
	Search(ctx context.Context, cond domain.MemberSearchCondition) ([]domain.MemberTeam, error)
	SearchPage(ctx context.Context, cond domain.MemberSearchCondition, page domain.PageRequest, strategy domain.PageStrategy) (*domain.Page, error)
}

// MemberManager управляет участниками
type MemberManager interface {
	CreateMember(ctx context.Context, member *domain.Member) (*domain.Member, error)
	GetByID(ctx context.Context, memberID int64) (*domain.Member, error)
	FindByUsername(ctx context.Context, username string) ([]*domain.Member, error)
	ChangeTeam(ctx context.Context, memberID int64, teamID *int64) (*domain.Member, error)
}

// MemberHandler обрабатывает эндпоинты участников
type MemberHandler struct {
	searcher    MemberSearcher
	members     MemberManager
	defaultSize int
}

// NewMemberHandler создает новый MemberHandler
func NewMemberHandler(searcher MemberSearcher, members MemberManager, defaultSize int) *MemberHandler {
	return &MemberHandler{
		searcher:    searcher,
		members:     members,
		defaultSize: defaultSize,
	}
}

// SearchMembers обрабатывает GET /v1/members?username=&teamName=&ageGoe=&ageLoe=
func (h *MemberHandler) SearchMembers(w http.ResponseWriter, r *http.Request) {
	cond, err := parseCondition(r.URL.Query())
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}

	rows, err := h.searcher.Search(r.Context(), cond)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.MemberTeam{}
	}

	RespondWithJSON(w, r, http.StatusOK, rows)
}

// SearchMembersPage обрабатывает GET /v2/members?...&page=&size=&offset=&limit=&sort=&strategy=
func (h *MemberHandler) SearchMembersPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	cond, err := parseCondition(q)
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}
	page, err := parsePageRequest(q, h.defaultSize)
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}
	strategy, err := parseStrategy(q)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	result, err := h.searcher.SearchPage(r.Context(), cond, page, strategy)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewPageResponse(result))
}

// CreateMemberRequest представляет тело запроса на создание участника
type CreateMemberRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Age      int    `json:"age" validate:"gte=0"`
	TeamID   *int64 `json:"teamId,omitempty" validate:"omitempty,gt=0"`
}

// CreateMember обрабатывает POST /v1/members
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, err.Error())
		return
	}

	member, err := h.members.CreateMember(r.Context(), &domain.Member{
		Username: req.Username,
		Age:      req.Age,
		TeamID:   req.TeamID,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, member)
}

// GetMember обрабатывает GET /v1/members/{memberID}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "memberID")
	if !ok {
		return
	}

	member, err := h.members.GetByID(r.Context(), memberID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, member)
}

// FindByUsername обрабатывает GET /v1/members/by-username/{username}
func (h *MemberHandler) FindByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "username is required")
		return
	}

	members, err := h.members.FindByUsername(r.Context(), username)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	if members == nil {
		members = []*domain.Member{}
	}

	RespondWithJSON(w, r, http.StatusOK, members)
}

// ChangeTeamRequest представляет тело запроса на смену команды; null исключает из команды
type ChangeTeamRequest struct {
	TeamID *int64 `json:"teamId" validate:"omitempty,gt=0"`
}

// ChangeTeam обрабатывает POST /v1/members/{memberID}/team
func (h *MemberHandler) ChangeTeam(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "memberID")
	if !ok {
		return
	}

	var req ChangeTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, err.Error())
		return
	}

	member, err := h.members.ChangeTeam(r.Context(), memberID, req.TeamID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, member)
}

// pathID читает числовой параметр пути; при ошибке сам отвечает 400
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// respondBadRequest отвечает 400; ошибки окна сохраняют код INVALID_PAGE_REQUEST
func respondBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrInvalidPageRequest) {
		HandleError(w, r, err)
		return
	}
	RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, err.Error())
}
