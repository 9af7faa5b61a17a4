package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aidar/member-search/internal/domain"
)

var windowRe = regexp.MustCompile(`LIMIT (\d+) OFFSET (\d+)`)

// fakeStore имитирует хранилище, в котором matching - строки, уже прошедшие фильтр.
// Окно берется из LIMIT/OFFSET текста запроса, count возвращает len(matching).
type fakeStore struct {
	matching []domain.MemberTeam
	err      error
	execTag  pgconn.CommandTag

	dataQueries  []string
	countQueries []string
	args         [][]any
}

func (s *fakeStore) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.args = append(s.args, args)
	if s.err != nil {
		return pgconn.CommandTag{}, s.err
	}
	return s.execTag, nil
}

func (s *fakeStore) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.dataQueries = append(s.dataQueries, sql)
	s.args = append(s.args, args)
	if s.err != nil {
		return nil, s.err
	}

	rows := s.matching
	if m := windowRe.FindStringSubmatch(sql); m != nil {
		limit, _ := strconv.Atoi(m[1])
		offset, _ := strconv.Atoi(m[2])
		rows = sliceWindow(rows, offset, limit)
	}

	withTotal := strings.Contains(sql, "COUNT(*) OVER()")
	data := make([][]any, 0, len(rows))
	for _, mt := range rows {
		vals := []any{mt.MemberID, mt.Username, mt.Age, mt.TeamID, mt.TeamName}
		if withTotal {
			vals = append(vals, int64(len(s.matching)))
		}
		data = append(data, vals)
	}
	return &fakeRows{data: data}, nil
}

func (s *fakeStore) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.countQueries = append(s.countQueries, sql)
	s.args = append(s.args, args)
	return fakeRow{values: []any{int64(len(s.matching))}, err: s.err}
}

func sliceWindow(rows []domain.MemberTeam, offset, limit int) []domain.MemberTeam {
	if offset >= len(rows) {
		return nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

type fakeRows struct {
	data   [][]any
	pos    int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(dest, r.data[r.pos-1])
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

func assign(dest []any, src []any) error {
	if len(dest) != len(src) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(src))
	}
	for i, d := range dest {
		var ok bool
		switch p := d.(type) {
		case *int64:
			*p, ok = src[i].(int64)
		case *int:
			*p, ok = src[i].(int)
		case *string:
			*p, ok = src[i].(string)
		case **int64:
			*p, ok = src[i].(*int64)
		case **string:
			*p, ok = src[i].(*string)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
		if !ok {
			return fmt.Errorf("scan: column %d: cannot assign %T to %T", i, src[i], d)
		}
	}
	return nil
}
