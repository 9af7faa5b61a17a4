package postgres

import (
	"fmt"

	"github.com/aidar/member-search/internal/domain"
)

// Причины, по которым total выведен без count-запроса
const (
	reasonFirstPage   = "first_page"
	reasonLastPage    = "last_page"
	reasonEmptyOffset = "empty_page_offset"
)

// derivation - результат попытки вывести total из полученного окна
type derivation struct {
	total   int64
	derived bool   // false - нужен count-запрос
	reason  string // заполнено только при derived
}

// deriveTotal выводит total из размера окна n:
//   - первая неполная страница: total = n
//   - пустая непервая страница: решает policy
//   - неполная непервая страница: total = offset + n
//   - полная страница: total неизвестен, нужен count
func deriveTotal(page domain.PageRequest, n int, policy domain.EmptyPagePolicy) (derivation, error) {
	switch {
	case page.Offset == 0 && n < page.Limit:
		return derivation{total: int64(n), derived: true, reason: reasonFirstPage}, nil
	case n == 0:
		switch policy {
		case domain.EmptyPageOffset:
			return derivation{total: page.Offset, derived: true, reason: reasonEmptyOffset}, nil
		case domain.EmptyPageReject:
			return derivation{}, fmt.Errorf("%w: offset=%d limit=%d", domain.ErrAmbiguousCount, page.Offset, page.Limit)
		default:
			return derivation{}, nil
		}
	case n < page.Limit:
		return derivation{total: page.Offset + int64(n), derived: true, reason: reasonLastPage}, nil
	default:
		return derivation{}, nil
	}
}
