package handler

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/aidar/member-search/internal/domain"
)

// parseCondition читает фильтры поиска из query string.
// Пустые значения означают отсутствие фильтра.
func parseCondition(q url.Values) (domain.MemberSearchCondition, error) {
	cond := domain.MemberSearchCondition{
		Username: q.Get("username"),
		TeamName: q.Get("teamName"),
	}

	var err error
	if cond.AgeGoe, err = optionalInt(q, "ageGoe"); err != nil {
		return cond, err
	}
	if cond.AgeLoe, err = optionalInt(q, "ageLoe"); err != nil {
		return cond, err
	}
	return cond, nil
}

// parsePageRequest читает окно и сортировку.
// page/size нумеруются с нуля; явные offset/limit имеют приоритет.
func parsePageRequest(q url.Values, defaultSize int) (domain.PageRequest, error) {
	var req domain.PageRequest

	size, err := intParam(q, "size", defaultSize)
	if err != nil {
		return req, err
	}
	number, err := intParam(q, "page", 0)
	if err != nil {
		return req, err
	}
	if number < 0 {
		return req, fmt.Errorf("%w: page must not be negative, got %d", domain.ErrInvalidPageRequest, number)
	}
	if size > 0 && int64(number) > math.MaxInt64/int64(size) {
		return req, fmt.Errorf("%w: page %d of size %d is out of range", domain.ErrInvalidPageRequest, number, size)
	}
	req.Limit = size
	req.Offset = int64(number) * int64(size)

	if q.Has("limit") {
		if req.Limit, err = intParam(q, "limit", 0); err != nil {
			return req, err
		}
	}
	if q.Has("offset") {
		v := q.Get("offset")
		if req.Offset, err = strconv.ParseInt(v, 10, 64); err != nil {
			return req, fmt.Errorf("offset must be an integer, got %q", v)
		}
	}

	for _, raw := range q["sort"] {
		order, err := parseOrder(raw)
		if err != nil {
			return req, err
		}
		req.Sort = append(req.Sort, order)
	}

	return req, nil
}

// parseOrder разбирает "property[,asc|desc]"
func parseOrder(raw string) (domain.Order, error) {
	property, direction, _ := strings.Cut(raw, ",")
	order := domain.Order{
		Property:  strings.TrimSpace(property),
		Direction: domain.Asc,
	}
	if direction = strings.TrimSpace(direction); direction != "" {
		order.Direction = domain.Direction(strings.ToUpper(direction))
	}
	if order.Property == "" {
		return order, fmt.Errorf("%w: empty sort property", domain.ErrInvalidPageRequest)
	}
	return order, nil
}

// parseStrategy возвращает пустую стратегию если параметр не задан
func parseStrategy(q url.Values) (domain.PageStrategy, error) {
	v := q.Get("strategy")
	if v == "" {
		return "", nil
	}
	return domain.ParsePageStrategy(v)
}

func optionalInt(q url.Values, name string) (*int, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	return &n, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	return n, nil
}
