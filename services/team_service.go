package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/avelychko/league-roster/live"
	"github.com/avelychko/league-roster/models"
	"github.com/avelychko/league-roster/repositories"
	"github.com/avelychko/league-roster/storage"
)

var (
	ErrTeamCreationFailed = errors.New("failed to create team")
	ErrTeamUpdateFailed   = errors.New("failed to update team")
	ErrTeamDeleteFailed   = errors.New("failed to delete team")
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	GetAllTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	TeamExists(ctx context.Context, id int) (bool, error)
	UploadTeamLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Team, error)
}

type CreateTeamInput struct {
	Name    string
	SportID int
}

type UpdateTeamInput struct {
	Name    string
	SportID int
	Version int
}

type teamService struct {
	teamRepo  repositories.TeamRepository
	sportRepo repositories.SportRepository
	uploader  storage.FileUploader
	feed      live.Broadcaster
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	sportRepo repositories.SportRepository,
	uploader storage.FileUploader,
	feed live.Broadcaster,
) TeamService {
	return &teamService{
		teamRepo:  teamRepo,
		sportRepo: sportRepo,
		uploader:  uploader,
		feed:      feed,
	}
}

func (s *teamService) validate(ctx context.Context, name string, sportID int) error {
	v := newValidationError()
	if strings.TrimSpace(name) == "" {
		v.add("name", "name is required")
	}
	if sportID <= 0 {
		v.add("sport_id", "sport is required")
	} else {
		exists, err := s.sportRepo.Exists(ctx, sportID)
		if err != nil {
			return fmt.Errorf("failed to check sport %d: %w", sportID, err)
		}
		if !exists {
			v.add("sport_id", "referenced sport does not exist")
		}
	}
	return v.orNil()
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.validate(ctx, name, input.SportID); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:    name,
		SportID: input.SportID,
	}

	err := s.teamRepo.Create(ctx, team)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamSportMissing):
			// The sport vanished between the existence check and the insert.
			v := newValidationError()
			v.add("sport_id", "referenced sport does not exist")
			return nil, v
		default:
			return nil, fmt.Errorf("%w: %w", ErrTeamCreationFailed, err)
		}
	}

	s.publish("TEAM_CREATED", team)
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %d: %w", id, err)
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all teams: %w", err)
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.validate(ctx, name, input.SportID); err != nil {
		return nil, err
	}

	teamToUpdate := &models.Team{
		ID:      id,
		Name:    name,
		SportID: input.SportID,
		Version: input.Version,
	}

	err := s.teamRepo.Update(ctx, teamToUpdate)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamVersionConflict):
			return nil, ErrConcurrencyConflict
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamSportMissing):
			v := newValidationError()
			v.add("sport_id", "referenced sport does not exist")
			return nil, v
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrTeamUpdateFailed, id, err)
		}
	}

	s.publish("TEAM_UPDATED", teamToUpdate)
	return teamToUpdate, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	err := s.teamRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamInUse):
			return ErrTeamInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrTeamDeleteFailed, id, err)
		}
	}

	s.publish("TEAM_DELETED", &models.Team{ID: id})
	return nil
}

func (s *teamService) TeamExists(ctx context.Context, id int) (bool, error) {
	return s.teamRepo.Exists(ctx, id)
}

func (s *teamService) UploadTeamLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		v := newValidationError()
		v.add("logo", err.Error())
		return nil, v
	}

	key := fmt.Sprintf("teams/%d/logo%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload team logo (id: %d): %w", id, err)
	}

	if team.LogoKey != nil && *team.LogoKey != key {
		if delErr := s.uploader.Delete(ctx, *team.LogoKey); delErr != nil {
			// Stale object only; the new key still gets persisted.
			slog.Warn("failed to delete previous team logo",
				slog.String("key", *team.LogoKey), slog.Any("error", delErr))
		}
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, id, key); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to persist team logo key (id: %d): %w", id, err)
	}

	team.LogoKey = &key
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) publish(eventType string, team *models.Team) {
	if s.feed != nil {
		s.feed.BroadcastToTopic(live.TopicTeams, live.Event{Type: eventType, Payload: team})
	}
}
