package services

import (
	"context"
	"testing"

	"github.com/avelychko/league-roster/models"
)

func TestGetDashboardStats(t *testing.T) {
	sportRepo := newMockSportRepo()
	teamRepo := newMockTeamRepo()
	playerRepo := newMockPlayerRepo()

	if err := sportRepo.Create(context.Background(), &models.Sport{Name: "Football"}); err != nil {
		t.Fatalf("seeding sport: %v", err)
	}
	for _, name := range []string{"Lions", "Tigers"} {
		if err := teamRepo.Create(context.Background(), &models.Team{Name: name, SportID: 1}); err != nil {
			t.Fatalf("seeding team: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := playerRepo.Create(context.Background(), &models.Player{
			FirstName: "P", LastName: "L", Number: i, TeamID: 1,
		}); err != nil {
			t.Fatalf("seeding player: %v", err)
		}
	}

	svc := NewStatsService(sportRepo, teamRepo, playerRepo)
	stats, err := svc.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.Sports != 1 || stats.Teams != 2 || stats.Players != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
