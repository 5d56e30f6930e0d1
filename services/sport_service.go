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
	ErrSportCreationFailed = errors.New("failed to create sport")
	ErrSportUpdateFailed   = errors.New("failed to update sport")
	ErrSportDeleteFailed   = errors.New("failed to delete sport")
)

type SportService interface {
	CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error)
	GetSportByID(ctx context.Context, id int) (*models.Sport, error)
	GetAllSports(ctx context.Context) ([]models.Sport, error)
	UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error)
	DeleteSport(ctx context.Context, id int) error
	SportExists(ctx context.Context, id int) (bool, error)
	UploadSportLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sport, error)
}

type CreateSportInput struct {
	Name string
}

// UpdateSportInput is a full replacement payload. Version is the row version
// the client read; the update fails with ErrConcurrencyConflict if the stored
// version differs.
type UpdateSportInput struct {
	Name    string
	Version int
}

type sportService struct {
	sportRepo repositories.SportRepository
	uploader  storage.FileUploader
	feed      live.Broadcaster
}

func NewSportService(sportRepo repositories.SportRepository, uploader storage.FileUploader, feed live.Broadcaster) SportService {
	return &sportService{
		sportRepo: sportRepo,
		uploader:  uploader,
		feed:      feed,
	}
}

func (s *sportService) CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error) {
	v := newValidationError()
	name := strings.TrimSpace(input.Name)
	if name == "" {
		v.add("name", "name is required")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	sport := &models.Sport{Name: name}

	err := s.sportRepo.Create(ctx, sport)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNameConflict) {
			return nil, ErrSportNameConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrSportCreationFailed, err)
	}

	s.publish("SPORT_CREATED", sport)
	return sport, nil
}

func (s *sportService) GetSportByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport by id %d: %w", id, err)
	}
	populateSportLogoURL(sport, s.uploader)
	return sport, nil
}

func (s *sportService) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := s.sportRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sports: %w", err)
	}
	for i := range sports {
		populateSportLogoURL(&sports[i], s.uploader)
	}
	return sports, nil
}

func (s *sportService) UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error) {
	v := newValidationError()
	name := strings.TrimSpace(input.Name)
	if name == "" {
		v.add("name", "name is required")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	sportToUpdate := &models.Sport{
		ID:      id,
		Name:    name,
		Version: input.Version,
	}

	err := s.sportRepo.Update(ctx, sportToUpdate)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportVersionConflict):
			return nil, ErrConcurrencyConflict
		case errors.Is(err, repositories.ErrSportNameConflict):
			return nil, ErrSportNameConflict
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrSportUpdateFailed, id, err)
		}
	}

	s.publish("SPORT_UPDATED", sportToUpdate)
	return sportToUpdate, nil
}

func (s *sportService) DeleteSport(ctx context.Context, id int) error {
	err := s.sportRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return ErrSportNotFound
		case errors.Is(err, repositories.ErrSportInUse):
			return ErrSportInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrSportDeleteFailed, id, err)
		}
	}

	s.publish("SPORT_DELETED", &models.Sport{ID: id})
	return nil
}

func (s *sportService) SportExists(ctx context.Context, id int) (bool, error) {
	return s.sportRepo.Exists(ctx, id)
}

func (s *sportService) UploadSportLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sport, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	sport, err := s.GetSportByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		v := newValidationError()
		v.add("logo", err.Error())
		return nil, v
	}

	key := fmt.Sprintf("sports/%d/logo%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload sport logo (id: %d): %w", id, err)
	}

	if sport.LogoKey != nil && *sport.LogoKey != key {
		if delErr := s.uploader.Delete(ctx, *sport.LogoKey); delErr != nil {
			// Stale object only; the new key still gets persisted.
			slog.Warn("failed to delete previous sport logo",
				slog.String("key", *sport.LogoKey), slog.Any("error", delErr))
		}
	}

	if err := s.sportRepo.UpdateLogoKey(ctx, id, key); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to persist sport logo key (id: %d): %w", id, err)
	}

	sport.LogoKey = &key
	populateSportLogoURL(sport, s.uploader)
	return sport, nil
}

func (s *sportService) publish(eventType string, sport *models.Sport) {
	if s.feed != nil {
		s.feed.BroadcastToTopic(live.TopicSports, live.Event{Type: eventType, Payload: sport})
	}
}
