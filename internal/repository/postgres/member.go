package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/repository"
)

// MemberRepository реализует repository.MemberRepository для PostgreSQL
type MemberRepository struct {
	db Querier
}

// NewMemberRepository создает новый экземпляр MemberRepository
func NewMemberRepository(db Querier) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create создает участника и заполняет member.ID
func (r *MemberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO member (username, age, team_id)
		VALUES ($1, $2, $3)
		RETURNING member_id
	`

	err := r.db.QueryRow(ctx, query, member.Username, member.Age, member.TeamID).Scan(&member.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTeamNotFound
		}
		return domain.NewDataAccessError("create member", err)
	}

	return nil
}

// GetByID получает участника по ID
func (r *MemberRepository) GetByID(ctx context.Context, memberID int64) (*domain.Member, error) {
	query := `
		SELECT member_id, username, age, team_id
		FROM member
		WHERE member_id = $1
	`

	var member domain.Member
	err := r.db.QueryRow(ctx, query, memberID).Scan(
		&member.ID,
		&member.Username,
		&member.Age,
		&member.TeamID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, domain.NewDataAccessError("get member", err)
	}

	return &member, nil
}

// FindByUsername возвращает всех участников с указанным именем
func (r *MemberRepository) FindByUsername(ctx context.Context, username string) ([]*domain.Member, error) {
	query := `
		SELECT member_id, username, age, team_id
		FROM member
		WHERE username = $1
		ORDER BY member_id
	`

	return r.list(ctx, "find members by username", query, username)
}

// ChangeTeam переводит участника в другую команду. Список участников команды
// не хранится, поэтому обновлять больше нечего.
func (r *MemberRepository) ChangeTeam(ctx context.Context, memberID int64, teamID *int64) error {
	query := `
		UPDATE member
		SET team_id = $1
		WHERE member_id = $2
	`

	result, err := r.db.Exec(ctx, query, teamID, memberID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTeamNotFound
		}
		return domain.NewDataAccessError("change member team", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}

	return nil
}

// ListByTeam возвращает участников команды
func (r *MemberRepository) ListByTeam(ctx context.Context, teamID int64) ([]*domain.Member, error) {
	query := `
		SELECT member_id, username, age, team_id
		FROM member
		WHERE team_id = $1
		ORDER BY member_id
	`

	return r.list(ctx, "list team members", query, teamID)
}

func (r *MemberRepository) list(ctx context.Context, op, query string, args ...any) ([]*domain.Member, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewDataAccessError(op, err)
	}
	defer rows.Close()

	members := []*domain.Member{}
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(&member.ID, &member.Username, &member.Age, &member.TeamID); err != nil {
			return nil, domain.NewDataAccessError(op, err)
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewDataAccessError(op, err)
	}

	return members, nil
}

var _ repository.MemberRepository = (*MemberRepository)(nil)
