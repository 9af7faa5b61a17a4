package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/metrics"
	"github.com/aidar/member-search/internal/repository"
)

const (
	memberTable = "member m"
	teamJoin    = "team t ON t.team_id = m.team_id"
	labelSearch = "unpaged"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// memberTeamColumns - проекция в domain.MemberTeam, порядок совпадает со scanMemberTeam
var memberTeamColumns = []string{"m.member_id", "m.username", "m.age", "t.team_id", "t.name"}

// sortColumns сопоставляет свойства сортировки колонкам
var sortColumns = map[string]string{
	domain.SortByID:       "m.member_id",
	domain.SortByUsername: "m.username",
	domain.SortByAge:      "m.age",
	domain.SortByTeamName: "t.name",
}

// MemberSearchRepository реализует repository.MemberSearchRepository для PostgreSQL
type MemberSearchRepository struct {
	db     Querier
	policy domain.EmptyPagePolicy
	logger zerolog.Logger
}

// NewMemberSearchRepository создает новый экземпляр MemberSearchRepository.
// policy определяет поведение SearchPageOptimized для пустой непервой страницы.
func NewMemberSearchRepository(db Querier, policy domain.EmptyPagePolicy, logger zerolog.Logger) *MemberSearchRepository {
	if policy == "" {
		policy = domain.EmptyPageCount
	}
	return &MemberSearchRepository{
		db:     db,
		policy: policy,
		logger: logger.With().Str("component", "member_search").Logger(),
	}
}

// Search возвращает все строки, удовлетворяющие условию, упорядоченные по member_id
func (r *MemberSearchRepository) Search(ctx context.Context, cond domain.MemberSearchCondition) ([]domain.MemberTeam, error) {
	timer := prometheus.NewTimer(metrics.SearchDuration.WithLabelValues(labelSearch))
	defer timer.ObserveDuration()

	query := composeFilter(cond).apply(selectMemberTeam()).OrderBy(orderBy(nil)...)
	content, _, err := r.fetch(ctx, labelSearch, query, false)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().Int("rows", len(content)).Msg("member search")
	return content, nil
}

// SearchPageSimple получает окно вместе с COUNT(*) OVER(): данные и total приходят
// одним запросом, но подсчет идет по тому же join, что и выборка данных
func (r *MemberSearchRepository) SearchPageSimple(ctx context.Context, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	strategy := string(domain.StrategySimple)
	timer := prometheus.NewTimer(metrics.SearchDuration.WithLabelValues(strategy))
	defer timer.ObserveDuration()

	f := composeFilter(cond)
	query := window(f.apply(selectMemberTeam("COUNT(*) OVER() AS total")), page)
	content, total, err := r.fetch(ctx, strategy, query, true)
	if err != nil {
		return nil, err
	}

	// Оконной функции не на чем вернуть total, если окно за пределами данных
	counted := false
	if len(content) == 0 && page.Offset > 0 {
		if total, err = r.count(ctx, strategy, f, true); err != nil {
			return nil, err
		}
		counted = true
	}

	r.logPage(strategy, page, len(content), total, counted)
	return domain.NewPage(content, page, total), nil
}

// SearchPageSplit получает окно и total двумя запросами. Count-запрос строится
// отдельно и делает join с team только если фильтр ссылается на team.
func (r *MemberSearchRepository) SearchPageSplit(ctx context.Context, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	strategy := string(domain.StrategySplit)
	timer := prometheus.NewTimer(metrics.SearchDuration.WithLabelValues(strategy))
	defer timer.ObserveDuration()

	f := composeFilter(cond)
	content, _, err := r.fetch(ctx, strategy, window(f.apply(selectMemberTeam()), page), false)
	if err != nil {
		return nil, err
	}

	total, err := r.count(ctx, strategy, f, f.needsTeam())
	if err != nil {
		return nil, err
	}

	r.logPage(strategy, page, len(content), total, true)
	return domain.NewPage(content, page, total), nil
}

// SearchPageOptimized получает окно и выполняет count-запрос только если total
// нельзя вывести из размера окна (см. deriveTotal)
func (r *MemberSearchRepository) SearchPageOptimized(ctx context.Context, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	strategy := string(domain.StrategyOptimized)
	timer := prometheus.NewTimer(metrics.SearchDuration.WithLabelValues(strategy))
	defer timer.ObserveDuration()

	f := composeFilter(cond)
	content, _, err := r.fetch(ctx, strategy, window(f.apply(selectMemberTeam()), page), false)
	if err != nil {
		return nil, err
	}

	d, err := deriveTotal(page, len(content), r.policy)
	if err != nil {
		return nil, err
	}

	total := d.total
	if d.derived {
		metrics.CountSkippedTotal.WithLabelValues(strategy, d.reason).Inc()
	} else if total, err = r.count(ctx, strategy, f, f.needsTeam()); err != nil {
		return nil, err
	}

	r.logPage(strategy, page, len(content), total, !d.derived)
	return domain.NewPage(content, page, total), nil
}

// selectMemberTeam строит базовый запрос: проекция + LEFT JOIN team
func selectMemberTeam(extra ...string) sq.SelectBuilder {
	columns := make([]string, 0, len(memberTeamColumns)+len(extra))
	columns = append(columns, memberTeamColumns...)
	columns = append(columns, extra...)
	return psql.Select(columns...).From(memberTable).LeftJoin(teamJoin)
}

// window добавляет сортировку и LIMIT/OFFSET
func window(b sq.SelectBuilder, page domain.PageRequest) sq.SelectBuilder {
	return b.OrderBy(orderBy(page.Sort)...).
		Offset(uint64(page.Offset)).
		Limit(uint64(page.Limit))
}

// orderBy переводит сортировку в ORDER BY. m.member_id всегда замыкает список,
// поэтому порядок строк детерминирован между повторными запросами.
func orderBy(sort []domain.Order) []string {
	out := make([]string, 0, len(sort)+1)
	hasID := false
	for _, o := range sort {
		column, ok := sortColumns[o.Property]
		if !ok {
			continue
		}
		dir := domain.Asc
		if o.Direction == domain.Desc {
			dir = domain.Desc
		}
		expr := column + " " + string(dir)
		if o.Property == domain.SortByTeamName {
			expr += " NULLS LAST"
		}
		if o.Property == domain.SortByID {
			hasID = true
		}
		out = append(out, expr)
	}
	if !hasID {
		out = append(out, "m.member_id ASC")
	}
	return out
}

// fetch выполняет запрос данных. withTotal - последней колонкой идет COUNT(*) OVER().
func (r *MemberSearchRepository) fetch(ctx context.Context, strategy string, b sq.SelectBuilder, withTotal bool) ([]domain.MemberTeam, int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, domain.NewDataAccessError("build search query", err)
	}

	metrics.SearchQueriesTotal.WithLabelValues(strategy, metrics.KindData).Inc()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, domain.NewDataAccessError("search members", err)
	}
	defer rows.Close()

	content := make([]domain.MemberTeam, 0)
	var total int64
	for rows.Next() {
		var mt domain.MemberTeam
		dest := []any{&mt.MemberID, &mt.Username, &mt.Age, &mt.TeamID, &mt.TeamName}
		if withTotal {
			dest = append(dest, &total)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, domain.NewDataAccessError("scan member row", err)
		}
		content = append(content, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.NewDataAccessError("search members", err)
	}

	return content, total, nil
}

// count выполняет count-запрос с тем же фильтром. Без joinTeam считается только member:
// LEFT JOIN по внешнему ключу на первичный ключ не меняет количество строк.
func (r *MemberSearchRepository) count(ctx context.Context, strategy string, f filter, joinTeam bool) (int64, error) {
	b := psql.Select("COUNT(*)").From(memberTable)
	if joinTeam {
		b = b.LeftJoin(teamJoin)
	}
	query, args, err := f.apply(b).ToSql()
	if err != nil {
		return 0, domain.NewDataAccessError("build count query", err)
	}

	metrics.SearchQueriesTotal.WithLabelValues(strategy, metrics.KindCount).Inc()
	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, domain.NewDataAccessError(fmt.Sprintf("count members (%s)", strategy), err)
	}
	return total, nil
}

func (r *MemberSearchRepository) logPage(strategy string, page domain.PageRequest, n int, total int64, counted bool) {
	r.logger.Debug().
		Str("strategy", strategy).
		Int64("offset", page.Offset).
		Int("limit", page.Limit).
		Int("rows", n).
		Int64("total", total).
		Bool("count_query", counted).
		Msg("member search page")
}

var _ repository.MemberSearchRepository = (*MemberSearchRepository)(nil)
