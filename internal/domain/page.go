package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Direction задает направление сортировки
type Direction string

// Направления сортировки
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Свойства, по которым разрешена сортировка результатов поиска
const (
	SortByID       = "id"
	SortByUsername = "username"
	SortByAge      = "age"
	SortByTeamName = "teamName"
)

// Order описывает одно поле сортировки
type Order struct {
	Property  string    `json:"property" validate:"oneof=id username age teamName"`
	Direction Direction `json:"direction" validate:"oneof=ASC DESC"`
}

// PageRequest описывает запрашиваемое окно результатов
type PageRequest struct {
	Offset int64   `json:"offset" validate:"gte=0"`
	Limit  int     `json:"limit" validate:"gt=0"`
	Sort   []Order `json:"sort,omitempty" validate:"dive"`
}

// Validate проверяет offset, limit и сортировку. Ошибка всегда оборачивает ErrInvalidPageRequest.
func (p PageRequest) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q (got %v)", ErrInvalidPageRequest, fe.Field(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalidPageRequest, err)
}

// Page представляет одну страницу результатов поиска
type Page struct {
	Content []MemberTeam `json:"content"`
	Offset  int64        `json:"offset"`
	Limit   int          `json:"limit"`
	Total   int64        `json:"total"`
}

// NewPage создает страницу; nil content заменяется пустым срезом
func NewPage(content []MemberTeam, req PageRequest, total int64) *Page {
	if content == nil {
		content = []MemberTeam{}
	}
	return &Page{
		Content: content,
		Offset:  req.Offset,
		Limit:   req.Limit,
		Total:   total,
	}
}

// TotalPages возвращает количество страниц размера Limit
func (p *Page) TotalPages() int64 {
	if p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return (p.Total + limit - 1) / limit
}

// Number возвращает номер страницы (с нуля)
func (p *Page) Number() int64 {
	if p.Limit <= 0 {
		return 0
	}
	return p.Offset / int64(p.Limit)
}

// HasNext возвращает true если за этой страницей есть еще строки
func (p *Page) HasNext() bool {
	return p.Offset+int64(len(p.Content)) < p.Total
}

// IsLast возвращает true для последней страницы
func (p *Page) IsLast() bool {
	return !p.HasNext()
}
