package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/repository"
)

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	db Querier
}

// NewTeamRepository создает новый экземпляр TeamRepository
func NewTeamRepository(db Querier) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create создает новую команду
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	query := `INSERT INTO team (name) VALUES ($1) RETURNING team_id`

	err := r.db.QueryRow(ctx, query, team.Name).Scan(&team.ID)
	if err != nil {
		// Имя команды уникально
		if isUniqueViolation(err) {
			return domain.ErrTeamExists
		}
		return domain.NewDataAccessError("create team", err)
	}

	return nil
}

// GetByID получает команду по ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (*domain.Team, error) {
	return r.get(ctx, `SELECT team_id, name FROM team WHERE team_id = $1`, teamID)
}

// GetByName получает команду по имени
func (r *TeamRepository) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	return r.get(ctx, `SELECT team_id, name FROM team WHERE name = $1`, name)
}

func (r *TeamRepository) get(ctx context.Context, query string, arg any) (*domain.Team, error) {
	var team domain.Team
	err := r.db.QueryRow(ctx, query, arg).Scan(&team.ID, &team.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, domain.NewDataAccessError("get team", err)
	}

	return &team, nil
}

// AgeStats возвращает количество участников и агрегаты по возрасту для каждой команды.
// Команды без участников возвращаются с нулями.
func (r *TeamRepository) AgeStats(ctx context.Context) ([]domain.TeamAgeStats, error) {
	query := `
		SELECT
			t.team_id,
			t.name,
			COUNT(m.member_id) AS member_count,
			COALESCE(SUM(m.age), 0) AS age_sum,
			COALESCE(AVG(m.age), 0)::float8 AS age_avg,
			COALESCE(MIN(m.age), 0) AS age_min,
			COALESCE(MAX(m.age), 0) AS age_max
		FROM team t
		LEFT JOIN member m ON m.team_id = t.team_id
		GROUP BY t.team_id, t.name
		ORDER BY t.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, domain.NewDataAccessError("team age stats", err)
	}
	defer rows.Close()

	stats := []domain.TeamAgeStats{}
	for rows.Next() {
		var s domain.TeamAgeStats
		if err := rows.Scan(&s.TeamID, &s.TeamName, &s.MemberCount, &s.AgeSum, &s.AgeAvg, &s.AgeMin, &s.AgeMax); err != nil {
			return nil, domain.NewDataAccessError("team age stats", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewDataAccessError("team age stats", err)
	}

	return stats, nil
}

var _ repository.TeamRepository = (*TeamRepository)(nil)
