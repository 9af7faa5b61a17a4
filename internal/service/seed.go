package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/repository"
)

// Seed team names
const (
	SeedTeamA = "teamA"
	SeedTeamB = "teamB"
)

// errAlreadySeeded aborts the seed transaction without creating anything
var errAlreadySeeded = errors.New("seed data already present")

// SeedService loads sample teams and members
type SeedService struct {
	tx     repository.TxManager
	logger zerolog.Logger
}

// NewSeedService creates a new SeedService
func NewSeedService(tx repository.TxManager, logger zerolog.Logger) *SeedService {
	return &SeedService{
		tx:     tx,
		logger: logger.With().Str("component", "seed").Logger(),
	}
}

// Seed creates teamA and teamB and n members named member0..member{n-1} with age i.
// Even members join teamA, odd ones teamB. It returns the number of members created;
// nothing is created when teamA already exists. All inserts share one transaction.
func (s *SeedService) Seed(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("invalid seed member count %d", n)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return seed(ctx, repos, n)
	})
	switch {
	case errors.Is(err, errAlreadySeeded):
		s.logger.Info().Msg("seed data already present, skipping")
		return 0, nil
	case err != nil:
		return 0, err
	}

	s.logger.Info().Int("members", n).Msg("seed data loaded")
	return n, nil
}

func seed(ctx context.Context, repos repository.Repositories, n int) error {
	_, err := repos.Teams.GetByName(ctx, SeedTeamA)
	switch {
	case err == nil:
		return errAlreadySeeded
	case !errors.Is(err, domain.ErrTeamNotFound):
		return err
	}

	teamA := &domain.Team{Name: SeedTeamA}
	if err := repos.Teams.Create(ctx, teamA); err != nil {
		return fmt.Errorf("create %s: %w", SeedTeamA, err)
	}
	teamB := &domain.Team{Name: SeedTeamB}
	if err := repos.Teams.Create(ctx, teamB); err != nil {
		return fmt.Errorf("create %s: %w", SeedTeamB, err)
	}

	for i := 0; i < n; i++ {
		teamID := teamA.ID
		if i%2 != 0 {
			teamID = teamB.ID
		}
		member := &domain.Member{
			Username: fmt.Sprintf("member%d", i),
			Age:      i,
			TeamID:   &teamID,
		}
		if err := repos.Members.Create(ctx, member); err != nil {
			return fmt.Errorf("create member%d: %w", i, err)
		}
	}
	return nil
}
