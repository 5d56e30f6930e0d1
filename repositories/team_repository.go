package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelychko/league-roster/models"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamNameConflict    = errors.New("team name conflict")
	ErrTeamInUse           = errors.New("team cannot be deleted as it is in use")
	ErrTeamSportMissing    = errors.New("referenced sport does not exist")
	ErrTeamVersionConflict = errors.New("team row version conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetAll(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
	UpdateLogoKey(ctx context.Context, id int, logoKey string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `INSERT INTO teams (name, sport_id) VALUES ($1, $2) RETURNING id, row_version`

	err := r.db.QueryRowContext(ctx, query, team.Name, team.SportID).Scan(&team.ID, &team.Version)
	if err != nil {
		if isPqError(err, pqUniqueViolation) {
			return ErrTeamNameConflict
		}
		if isPqError(err, pqForeignKeyViolation) {
			return ErrTeamSportMissing
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, sport_id, row_version, logo_key FROM teams WHERE id = $1`

	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.SportID, &team.Version, &team.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	query := `SELECT id, name, sport_id, row_version, logo_key FROM teams ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if scanErr := rows.Scan(&team.ID, &team.Name, &team.SportID, &team.Version, &team.LogoKey); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams
		SET name = $1, sport_id = $2, row_version = row_version + 1
		WHERE id = $3 AND row_version = $4`

	result, err := r.db.ExecContext(ctx, query, team.Name, team.SportID, team.ID, team.Version)
	if err != nil {
		if isPqError(err, pqUniqueViolation) {
			return ErrTeamNameConflict
		}
		if isPqError(err, pqForeignKeyViolation) {
			return ErrTeamSportMissing
		}
		return err
	}

	if err := checkAffectedRows(result, ErrTeamVersionConflict); err != nil {
		return err
	}
	team.Version++
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// players.team_id is ON DELETE RESTRICT
		if isPqError(err, pqForeignKeyViolation) {
			return ErrTeamInUse
		}
		return err
	}

	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresTeamRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
