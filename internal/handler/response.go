package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/member-search/internal/domain"
)

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// PageResponse представляет страницу результатов поиска
type PageResponse struct {
	Content    []domain.MemberTeam `json:"content"`
	Offset     int64               `json:"offset"`
	Limit      int                 `json:"limit"`
	Total      int64               `json:"total"`
	TotalPages int64               `json:"totalPages"`
	Number     int64               `json:"number"`
	Last       bool                `json:"last"`
}

// NewPageResponse строит ответ из доменной страницы
func NewPageResponse(page *domain.Page) PageResponse {
	content := page.Content
	if content == nil {
		content = []domain.MemberTeam{}
	}
	return PageResponse{
		Content:    content,
		Offset:     page.Offset,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages(),
		Number:     page.Number(),
		Last:       page.IsLast(),
	}
}
