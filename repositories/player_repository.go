package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelychko/league-roster/models"
)

var (
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerTeamMissing     = errors.New("referenced team does not exist")
	ErrPlayerVersionConflict = errors.New("player row version conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetAll(ctx context.Context, search string) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `INSERT INTO players (first_name, last_name, number, team_id)
		VALUES ($1, $2, $3, $4) RETURNING id, row_version`

	err := r.db.QueryRowContext(ctx, query,
		player.FirstName, player.LastName, player.Number, player.TeamID,
	).Scan(&player.ID, &player.Version)
	if err != nil {
		if isPqError(err, pqForeignKeyViolation) {
			return ErrPlayerTeamMissing
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT id, first_name, last_name, number, team_id, row_version
		FROM players WHERE id = $1`

	var player models.Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID, &player.FirstName, &player.LastName, &player.Number, &player.TeamID, &player.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

// GetAll returns every player, or only those whose first or last name contains
// search (case-insensitive) when it is non-empty.
func (r *postgresPlayerRepository) GetAll(ctx context.Context, search string) ([]models.Player, error) {
	query := `SELECT id, first_name, last_name, number, team_id, row_version
		FROM players
		WHERE $1 = '' OR first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'
		ORDER BY last_name ASC, first_name ASC`

	rows, err := r.db.QueryContext(ctx, query, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(
			&player.ID, &player.FirstName, &player.LastName, &player.Number, &player.TeamID, &player.Version,
		); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `UPDATE players
		SET first_name = $1, last_name = $2, number = $3, team_id = $4, row_version = row_version + 1
		WHERE id = $5 AND row_version = $6`

	result, err := r.db.ExecContext(ctx, query,
		player.FirstName, player.LastName, player.Number, player.TeamID, player.ID, player.Version,
	)
	if err != nil {
		if isPqError(err, pqForeignKeyViolation) {
			return ErrPlayerTeamMissing
		}
		return err
	}

	if err := checkAffectedRows(result, ErrPlayerVersionConflict); err != nil {
		return err
	}
	player.Version++
	return nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM players WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresPlayerRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM players WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
