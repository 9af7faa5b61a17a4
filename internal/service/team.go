package service

import (
	"context"

	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/repository"
)

// TeamMembers is a team together with its members, looked up on demand
type TeamMembers struct {
	Team    *domain.Team     `json:"team"`
	Members []*domain.Member `json:"members"`
}

// TeamService handles business logic for teams
type TeamService struct {
	teamRepo   repository.TeamRepository
	memberRepo repository.MemberRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, memberRepo repository.MemberRepository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
	}
}

// AddTeam creates a new team
func (s *TeamService) AddTeam(ctx context.Context, name string) (*domain.Team, error) {
	team := &domain.Team{Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeamMembers retrieves a team with all members
func (s *TeamService) GetTeamMembers(ctx context.Context, teamID int64) (*TeamMembers, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*domain.Member{}
	}

	return &TeamMembers{Team: team, Members: members}, nil
}

// AgeStats returns member count and age aggregates per team
func (s *TeamService) AgeStats(ctx context.Context) ([]domain.TeamAgeStats, error) {
	stats, err := s.teamRepo.AgeStats(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []domain.TeamAgeStats{}
	}
	return stats, nil
}
