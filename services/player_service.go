package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avelychko/league-roster/live"
	"github.com/avelychko/league-roster/models"
	"github.com/avelychko/league-roster/repositories"
)

var (
	ErrPlayerCreationFailed = errors.New("failed to create player")
	ErrPlayerUpdateFailed   = errors.New("failed to update player")
	ErrPlayerDeleteFailed   = errors.New("failed to delete player")
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	// GetAllPlayers narrows the result to players whose first or last name
	// contains search when it is non-empty.
	GetAllPlayers(ctx context.Context, search string) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	PlayerExists(ctx context.Context, id int) (bool, error)
}

type CreatePlayerInput struct {
	FirstName string
	LastName  string
	Number    int
	TeamID    int
}

type UpdatePlayerInput struct {
	FirstName string
	LastName  string
	Number    int
	TeamID    int
	Version   int
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	feed       live.Broadcaster
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	feed live.Broadcaster,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		feed:       feed,
	}
}

func (s *playerService) validate(ctx context.Context, firstName, lastName string, number, teamID int) error {
	v := newValidationError()
	if strings.TrimSpace(firstName) == "" {
		v.add("first_name", "first name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		v.add("last_name", "last name is required")
	}
	if number < 0 {
		v.add("number", "number must not be negative")
	}
	if teamID <= 0 {
		v.add("team_id", "team is required")
	} else {
		exists, err := s.teamRepo.Exists(ctx, teamID)
		if err != nil {
			return fmt.Errorf("failed to check team %d: %w", teamID, err)
		}
		if !exists {
			v.add("team_id", "referenced team does not exist")
		}
	}
	return v.orNil()
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if err := s.validate(ctx, firstName, lastName, input.Number, input.TeamID); err != nil {
		return nil, err
	}

	player := &models.Player{
		FirstName: firstName,
		LastName:  lastName,
		Number:    input.Number,
		TeamID:    input.TeamID,
	}

	err := s.playerRepo.Create(ctx, player)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamMissing) {
			v := newValidationError()
			v.add("team_id", "referenced team does not exist")
			return nil, v
		}
		return nil, fmt.Errorf("%w: %w", ErrPlayerCreationFailed, err)
	}

	s.publish("PLAYER_CREATED", player)
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by id %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) GetAllPlayers(ctx context.Context, search string) ([]models.Player, error) {
	players, err := s.playerRepo.GetAll(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if err := s.validate(ctx, firstName, lastName, input.Number, input.TeamID); err != nil {
		return nil, err
	}

	playerToUpdate := &models.Player{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Number:    input.Number,
		TeamID:    input.TeamID,
		Version:   input.Version,
	}

	err := s.playerRepo.Update(ctx, playerToUpdate)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerVersionConflict):
			return nil, ErrConcurrencyConflict
		case errors.Is(err, repositories.ErrPlayerTeamMissing):
			v := newValidationError()
			v.add("team_id", "referenced team does not exist")
			return nil, v
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrPlayerUpdateFailed, id, err)
		}
	}

	s.publish("PLAYER_UPDATED", playerToUpdate)
	return playerToUpdate, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrPlayerDeleteFailed, id, err)
	}

	s.publish("PLAYER_DELETED", &models.Player{ID: id})
	return nil
}

func (s *playerService) PlayerExists(ctx context.Context, id int) (bool, error) {
	return s.playerRepo.Exists(ctx, id)
}

func (s *playerService) publish(eventType string, player *models.Player) {
	if s.feed != nil {
		s.feed.BroadcastToTopic(live.TopicPlayers, live.Event{Type: eventType, Payload: player})
	}
}
