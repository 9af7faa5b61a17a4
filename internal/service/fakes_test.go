package service

import (
	"context"
	"errors"
	"sort"

	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/repository"
)

// fakeTeamRepo и fakeMemberRepo хранят данные в памяти
type fakeTeamRepo struct {
	teams  []*domain.Team
	stats  []domain.TeamAgeStats
	err    error
	nextID int64
}

func (f *fakeTeamRepo) Create(_ context.Context, team *domain.Team) error {
	if f.err != nil {
		return f.err
	}
	for _, t := range f.teams {
		if t.Name == team.Name {
			return domain.ErrTeamExists
		}
	}
	f.nextID++
	team.ID = f.nextID
	f.teams = append(f.teams, &domain.Team{ID: team.ID, Name: team.Name})
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, teamID int64) (*domain.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.teams {
		if t.ID == teamID {
			return t, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (f *fakeTeamRepo) GetByName(_ context.Context, name string) (*domain.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.teams {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (f *fakeTeamRepo) AgeStats(_ context.Context) ([]domain.TeamAgeStats, error) {
	return f.stats, f.err
}

type fakeMemberRepo struct {
	teams   *fakeTeamRepo
	members []*domain.Member
	err     error
	failOn  string // Create падает для участника с этим именем
	nextID  int64
}

func (f *fakeMemberRepo) teamExists(teamID *int64) bool {
	if teamID == nil {
		return true
	}
	_, err := f.teams.GetByID(context.Background(), *teamID)
	return err == nil
}

func (f *fakeMemberRepo) Create(_ context.Context, member *domain.Member) error {
	if f.err != nil {
		return f.err
	}
	if f.failOn != "" && member.Username == f.failOn {
		return domain.NewDataAccessError("create member", errors.New("connection reset"))
	}
	if !f.teamExists(member.TeamID) {
		return domain.ErrTeamNotFound
	}
	f.nextID++
	member.ID = f.nextID
	stored := *member
	f.members = append(f.members, &stored)
	return nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, memberID int64) (*domain.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.members {
		if m.ID == memberID {
			return m, nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

func (f *fakeMemberRepo) FindByUsername(_ context.Context, username string) ([]*domain.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Member
	for _, m := range f.members {
		if m.Username == username {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) ChangeTeam(ctx context.Context, memberID int64, teamID *int64) error {
	if f.err != nil {
		return f.err
	}
	m, err := f.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if !f.teamExists(teamID) {
		return domain.ErrTeamNotFound
	}
	m.TeamID = teamID
	return nil
}

func (f *fakeMemberRepo) ListByTeam(_ context.Context, teamID int64) ([]*domain.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Member
	for _, m := range f.members {
		if m.TeamID != nil && *m.TeamID == teamID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeSearchRepo запоминает, какая стратегия была вызвана и с каким окном
type fakeSearchRepo struct {
	called string
	page   domain.PageRequest
	cond   domain.MemberSearchCondition
	rows   []domain.MemberTeam
	err    error
}

func (f *fakeSearchRepo) Search(_ context.Context, cond domain.MemberSearchCondition) ([]domain.MemberTeam, error) {
	f.called = "search"
	f.cond = cond
	return f.rows, f.err
}

func (f *fakeSearchRepo) record(strategy string, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error) {
	f.called = strategy
	f.cond = cond
	f.page = page
	if f.err != nil {
		return nil, f.err
	}
	return domain.NewPage(f.rows, page, int64(len(f.rows))), nil
}

func (f *fakeSearchRepo) SearchPageSimple(_ context.Context, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error) {
	return f.record("simple", cond, page)
}

func (f *fakeSearchRepo) SearchPageSplit(_ context.Context, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error) {
	return f.record("split", cond, page)
}

func (f *fakeSearchRepo) SearchPageOptimized(_ context.Context, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error) {
	return f.record("optimized", cond, page)
}

// fakeTxManager откатывает изменения fake-репозиториев, если fn вернула ошибку
type fakeTxManager struct {
	teams     *fakeTeamRepo
	members   *fakeMemberRepo
	commits   int
	rollbacks int
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	teams := append([]*domain.Team(nil), f.teams.teams...)
	members := append([]*domain.Member(nil), f.members.members...)

	if err := fn(ctx, repository.Repositories{Teams: f.teams, Members: f.members}); err != nil {
		f.teams.teams = teams
		f.members.members = members
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}
