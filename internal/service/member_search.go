package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aidar/member-search/internal/config"
	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/repository"
)

// MemberSearchService dispatches search requests to the configured pagination strategy.
type MemberSearchService struct {
	repo            repository.MemberSearchRepository
	defaultStrategy domain.PageStrategy
	maxSize         int
	logger          zerolog.Logger
}

// NewMemberSearchService creates a new MemberSearchService
func NewMemberSearchService(repo repository.MemberSearchRepository, cfg config.PaginationConfig, logger zerolog.Logger) *MemberSearchService {
	return &MemberSearchService{
		repo:            repo,
		defaultStrategy: cfg.Strategy(),
		maxSize:         cfg.MaxSize,
		logger:          logger.With().Str("component", "member_search_service").Logger(),
	}
}

// Search returns every member matching cond.
func (s *MemberSearchService) Search(ctx context.Context, cond domain.MemberSearchCondition) ([]domain.MemberTeam, error) {
	return s.repo.Search(ctx, cond)
}

// SearchPage returns one window of members matching cond.
// An empty strategy selects the configured default and a limit above the maximum is
// clamped. Zero and negative limits are left for the repository to reject.
func (s *MemberSearchService) SearchPage(ctx context.Context, cond domain.MemberSearchCondition, page domain.PageRequest, strategy domain.PageStrategy) (*domain.Page, error) {
	if strategy == "" {
		strategy = s.defaultStrategy
	}
	page = s.normalize(page)

	s.logger.Debug().
		Str("strategy", string(strategy)).
		Int64("offset", page.Offset).
		Int("limit", page.Limit).
		Bool("filtered", !cond.IsEmpty()).
		Msg("search page")

	switch strategy {
	case domain.StrategySimple:
		return s.repo.SearchPageSimple(ctx, cond, page)
	case domain.StrategySplit:
		return s.repo.SearchPageSplit(ctx, cond, page)
	case domain.StrategyOptimized:
		return s.repo.SearchPageOptimized(ctx, cond, page)
	default:
		_, err := domain.ParsePageStrategy(string(strategy))
		return nil, err
	}
}

func (s *MemberSearchService) normalize(page domain.PageRequest) domain.PageRequest {
	if s.maxSize > 0 && page.Limit > s.maxSize {
		page.Limit = s.maxSize
	}
	return page
}
