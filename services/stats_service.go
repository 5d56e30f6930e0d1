package services

import (
	"context"
	"fmt"

	"github.com/avelychko/league-roster/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardStats struct {
	Sports  int `json:"sports"`
	Teams   int `json:"teams"`
	Players int `json:"players"`
}

type StatsService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	sportRepo  repositories.SportRepository
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
}

func NewStatsService(
	sportRepo repositories.SportRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
) StatsService {
	return &statsService{
		sportRepo:  sportRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

// GetDashboardStats fetches the three counts concurrently.
func (s *statsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.sportRepo.Count(ctx)
		stats.Sports = count
		return err
	})
	g.Go(func() error {
		count, err := s.teamRepo.Count(ctx)
		stats.Teams = count
		return err
	})
	g.Go(func() error {
		count, err := s.playerRepo.Count(ctx)
		stats.Players = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect dashboard stats: %w", err)
	}
	return &stats, nil
}
