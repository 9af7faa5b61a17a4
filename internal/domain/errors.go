package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки
var (
	// ErrInvalidPageRequest возвращается при limit <= 0, offset < 0 или неизвестной сортировке
	ErrInvalidPageRequest = errors.New("invalid page request")

	// ErrAmbiguousCount возвращается optimized-стратегией для пустой непервой страницы
	// при политике EmptyPageReject
	ErrAmbiguousCount = errors.New("total count is ambiguous for an empty page past offset 0")

	// ErrUnknownStrategy возвращается для неизвестной стратегии пагинации
	ErrUnknownStrategy = errors.New("unknown page strategy")

	// ErrMemberNotFound возвращается когда участник не найден
	ErrMemberNotFound = errors.New("member not found")

	// ErrTeamNotFound возвращается когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrTeamExists возвращается при попытке создать команду с существующим именем
	ErrTeamExists = errors.New("team already exists")
)

// DataAccessError оборачивает любую ошибку хранилища: недоступность БД,
// отклоненный запрос, исчерпание пула. Повторы на стороне вызывающего.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError создает DataAccessError; для nil возвращает nil
func NewDataAccessError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DataAccessError{Op: op, Err: err}
}

// IsDataAccess проверяет, является ли ошибка ошибкой доступа к данным
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeInvalidPageRequest ErrorCode = "INVALID_PAGE_REQUEST" // Некорректные offset/limit/sort
	CodeAmbiguousCount     ErrorCode = "AMBIGUOUS_COUNT"      // total не может быть выведен
	CodeDataAccess         ErrorCode = "DATA_ACCESS_ERROR"    // Ошибка хранилища
	CodeNotFound           ErrorCode = "NOT_FOUND"            // Ресурс не найден
	CodeTeamExists         ErrorCode = "TEAM_EXISTS"          // Команда уже существует
	CodeBadRequest         ErrorCode = "BAD_REQUEST"          // Некорректные параметры запроса
	CodeInternal           ErrorCode = "INTERNAL_ERROR"       // Прочие ошибки
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidPageRequest):
		return CodeInvalidPageRequest
	case errors.Is(err, ErrUnknownStrategy):
		return CodeBadRequest
	case errors.Is(err, ErrAmbiguousCount):
		return CodeAmbiguousCount
	case errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrTeamNotFound):
		return CodeNotFound
	case errors.Is(err, ErrTeamExists):
		return CodeTeamExists
	case IsDataAccess(err):
		return CodeDataAccess
	default:
		return CodeInternal
	}
}
