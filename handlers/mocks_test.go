package handlers

import (
	"context"
	"io"

	"github.com/avelychko/league-roster/models"
	"github.com/avelychko/league-roster/services"
)

// Function-field stubs for the service interfaces. Unset methods return the
// entity's not-found error so handler tests only wire what they exercise.

type stubSportService struct {
	createFn func(ctx context.Context, input services.CreateSportInput) (*models.Sport, error)
	getFn    func(ctx context.Context, id int) (*models.Sport, error)
	getAllFn func(ctx context.Context) ([]models.Sport, error)
	updateFn func(ctx context.Context, id int, input services.UpdateSportInput) (*models.Sport, error)
	deleteFn func(ctx context.Context, id int) error
	existsFn func(ctx context.Context, id int) (bool, error)
	uploadFn func(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sport, error)
}

func (s *stubSportService) CreateSport(ctx context.Context, input services.CreateSportInput) (*models.Sport, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return nil, services.ErrSportNotFound
}

func (s *stubSportService) GetSportByID(ctx context.Context, id int) (*models.Sport, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, services.ErrSportNotFound
}

func (s *stubSportService) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return []models.Sport{}, nil
}

func (s *stubSportService) UpdateSport(ctx context.Context, id int, input services.UpdateSportInput) (*models.Sport, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, input)
	}
	return nil, services.ErrSportNotFound
}

func (s *stubSportService) DeleteSport(ctx context.Context, id int) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return services.ErrSportNotFound
}

func (s *stubSportService) SportExists(ctx context.Context, id int) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, id)
	}
	return false, nil
}

func (s *stubSportService) UploadSportLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sport, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, id, file, contentType)
	}
	return nil, services.ErrSportNotFound
}

type stubTeamService struct {
	createFn func(ctx context.Context, input services.CreateTeamInput) (*models.Team, error)
	getFn    func(ctx context.Context, id int) (*models.Team, error)
	getAllFn func(ctx context.Context) ([]models.Team, error)
	updateFn func(ctx context.Context, id int, input services.UpdateTeamInput) (*models.Team, error)
	deleteFn func(ctx context.Context, id int) error
	existsFn func(ctx context.Context, id int) (bool, error)
	uploadFn func(ctx context.Context, id int, file io.Reader, contentType string) (*models.Team, error)
}

func (s *stubTeamService) CreateTeam(ctx context.Context, input services.CreateTeamInput) (*models.Team, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return nil, services.ErrTeamNotFound
}

func (s *stubTeamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, services.ErrTeamNotFound
}

func (s *stubTeamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx)
	}
	return []models.Team{}, nil
}

func (s *stubTeamService) UpdateTeam(ctx context.Context, id int, input services.UpdateTeamInput) (*models.Team, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, input)
	}
	return nil, services.ErrTeamNotFound
}

func (s *stubTeamService) DeleteTeam(ctx context.Context, id int) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return services.ErrTeamNotFound
}

func (s *stubTeamService) TeamExists(ctx context.Context, id int) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, id)
	}
	return false, nil
}

func (s *stubTeamService) UploadTeamLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Team, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, id, file, contentType)
	}
	return nil, services.ErrTeamNotFound
}

type stubPlayerService struct {
	createFn func(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error)
	getFn    func(ctx context.Context, id int) (*models.Player, error)
	getAllFn func(ctx context.Context, search string) ([]models.Player, error)
	updateFn func(ctx context.Context, id int, input services.UpdatePlayerInput) (*models.Player, error)
	deleteFn func(ctx context.Context, id int) error
	existsFn func(ctx context.Context, id int) (bool, error)
}

func (s *stubPlayerService) CreatePlayer(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return nil, services.ErrPlayerNotFound
}

func (s *stubPlayerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, services.ErrPlayerNotFound
}

func (s *stubPlayerService) GetAllPlayers(ctx context.Context, search string) ([]models.Player, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx, search)
	}
	return []models.Player{}, nil
}

func (s *stubPlayerService) UpdatePlayer(ctx context.Context, id int, input services.UpdatePlayerInput) (*models.Player, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, input)
	}
	return nil, services.ErrPlayerNotFound
}

func (s *stubPlayerService) DeletePlayer(ctx context.Context, id int) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return services.ErrPlayerNotFound
}

func (s *stubPlayerService) PlayerExists(ctx context.Context, id int) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, id)
	}
	return false, nil
}
