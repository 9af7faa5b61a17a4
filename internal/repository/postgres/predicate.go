package postgres

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/aidar/member-search/internal/domain"
)

// clause - один необязательный фрагмент WHERE
type clause struct {
	expr      sq.Sqlizer
	needsTeam bool // фрагмент ссылается на таблицу team
}

// filterRule превращает условие поиска в фрагмент; false - поле не задано
type filterRule func(cond domain.MemberSearchCondition) (clause, bool)

var memberFilterRules = []filterRule{
	usernameEq,
	teamNameEq,
	ageGoe,
	ageLoe,
}

func usernameEq(cond domain.MemberSearchCondition) (clause, bool) {
	if cond.Username == "" {
		return clause{}, false
	}
	return clause{expr: sq.Eq{"m.username": cond.Username}}, true
}

func teamNameEq(cond domain.MemberSearchCondition) (clause, bool) {
	if cond.TeamName == "" {
		return clause{}, false
	}
	return clause{expr: sq.Eq{"t.name": cond.TeamName}, needsTeam: true}, true
}

func ageGoe(cond domain.MemberSearchCondition) (clause, bool) {
	if cond.AgeGoe == nil {
		return clause{}, false
	}
	return clause{expr: sq.GtOrEq{"m.age": *cond.AgeGoe}}, true
}

func ageLoe(cond domain.MemberSearchCondition) (clause, bool) {
	if cond.AgeLoe == nil {
		return clause{}, false
	}
	return clause{expr: sq.LtOrEq{"m.age": *cond.AgeLoe}}, true
}

// filter - конъюнкция заданных фрагментов. Пустой filter пропускает все строки.
type filter []clause

// composeFilter применяет все правила и оставляет только заданные фрагменты
func composeFilter(cond domain.MemberSearchCondition) filter {
	var f filter
	for _, rule := range memberFilterRules {
		if c, ok := rule(cond); ok {
			f = append(f, c)
		}
	}
	return f
}

// needsTeam возвращает true если хотя бы один фрагмент требует join с team
func (f filter) needsTeam() bool {
	for _, c := range f {
		if c.needsTeam {
			return true
		}
	}
	return false
}

// apply добавляет фрагменты в WHERE через AND
func (f filter) apply(b sq.SelectBuilder) sq.SelectBuilder {
	for _, c := range f {
		b = b.Where(c.expr)
	}
	return b
}
