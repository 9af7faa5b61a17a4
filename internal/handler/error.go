package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/member-search/internal/domain"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code domain.ErrorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)

	switch {
	case errors.Is(err, domain.ErrInvalidPageRequest), errors.Is(err, domain.ErrUnknownStrategy):
		RespondWithError(w, r, http.StatusBadRequest, code, err.Error())
	case errors.Is(err, domain.ErrTeamExists):
		RespondWithError(w, r, http.StatusBadRequest, code, "team already exists")
	case errors.Is(err, domain.ErrAmbiguousCount):
		RespondWithError(w, r, http.StatusConflict, code, err.Error())
	case errors.Is(err, domain.ErrMemberNotFound), errors.Is(err, domain.ErrTeamNotFound):
		RespondWithError(w, r, http.StatusNotFound, code, err.Error())
	case domain.IsDataAccess(err):
		RespondWithError(w, r, http.StatusInternalServerError, code, "data access error")
	default:
		RespondWithError(w, r, http.StatusInternalServerError, code, "internal server error")
	}
}
