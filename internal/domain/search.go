package domain

import (
	"fmt"
	"strings"
)

// MemberSearchCondition содержит необязательные параметры поиска участников.
// Пустая строка и nil означают отсутствие фильтра по полю.
type MemberSearchCondition struct {
	Username string `json:"username,omitempty"`
	TeamName string `json:"teamName,omitempty"`
	AgeGoe   *int   `json:"ageGoe,omitempty"` // возраст >= AgeGoe
	AgeLoe   *int   `json:"ageLoe,omitempty"` // возраст <= AgeLoe
}

// IsEmpty возвращает true если ни один фильтр не задан
func (c MemberSearchCondition) IsEmpty() bool {
	return c.Username == "" && c.TeamName == "" && c.AgeGoe == nil && c.AgeLoe == nil
}

// PageStrategy определяет способ подсчета общего количества строк
type PageStrategy string

// Поддерживаемые стратегии пагинации
const (
	StrategySimple    PageStrategy = "simple"    // данные и total за один запрос (COUNT(*) OVER())
	StrategySplit     PageStrategy = "split"     // отдельный, облегченный count-запрос
	StrategyOptimized PageStrategy = "optimized" // count-запрос только если total нельзя вывести
)

// ParsePageStrategy разбирает название стратегии без учета регистра
func ParsePageStrategy(s string) (PageStrategy, error) {
	switch PageStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategySimple:
		return StrategySimple, nil
	case StrategySplit:
		return StrategySplit, nil
	case StrategyOptimized:
		return StrategyOptimized, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// EmptyPagePolicy определяет поведение optimized-стратегии для пустой страницы при offset > 0
type EmptyPagePolicy string

// Варианты обработки пустой непервой страницы
const (
	EmptyPageCount  EmptyPagePolicy = "count"  // выполнить count-запрос
	EmptyPageOffset EmptyPagePolicy = "offset" // считать total = offset
	EmptyPageReject EmptyPagePolicy = "reject" // вернуть ErrAmbiguousCount
)

// ParseEmptyPagePolicy разбирает название политики
func ParseEmptyPagePolicy(s string) (EmptyPagePolicy, error) {
	switch EmptyPagePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case EmptyPageCount:
		return EmptyPageCount, nil
	case EmptyPageOffset:
		return EmptyPageOffset, nil
	case EmptyPageReject:
		return EmptyPageReject, nil
	default:
		return "", fmt.Errorf("unknown empty page policy %q", s)
	}
}
