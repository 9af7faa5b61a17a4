package service

import (
	"context"

	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/repository"
)

// MemberService handles business logic for members
type MemberService struct {
	memberRepo repository.MemberRepository
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo repository.MemberRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
	}
}

// CreateMember persists a member; a non-nil team must already exist
func (s *MemberService) CreateMember(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetByID retrieves a member by ID
func (s *MemberService) GetByID(ctx context.Context, memberID int64) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, memberID)
}

// FindByUsername returns all members with the given username
func (s *MemberService) FindByUsername(ctx context.Context, username string) ([]*domain.Member, error) {
	return s.memberRepo.FindByUsername(ctx, username)
}

// ChangeTeam moves a member to another team, or out of any team when teamID is nil
func (s *MemberService) ChangeTeam(ctx context.Context, memberID int64, teamID *int64) (*domain.Member, error) {
	if err := s.memberRepo.ChangeTeam(ctx, memberID, teamID); err != nil {
		return nil, err
	}

	// Get updated member
	return s.memberRepo.GetByID(ctx, memberID)
}
