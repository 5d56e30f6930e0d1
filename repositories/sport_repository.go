package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelychko/league-roster/models"
)

var (
	ErrSportNotFound        = errors.New("sport not found")
	ErrSportNameConflict    = errors.New("sport name conflict")
	ErrSportInUse           = errors.New("sport cannot be deleted as it is in use")
	ErrSportVersionConflict = errors.New("sport row version conflict")
)

type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id int) (*models.Sport, error)
	GetAll(ctx context.Context) ([]models.Sport, error)
	Update(ctx context.Context, sport *models.Sport) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
	UpdateLogoKey(ctx context.Context, id int, logoKey string) error
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) Create(ctx context.Context, sport *models.Sport) error {
	query := `INSERT INTO sports (name) VALUES ($1) RETURNING id, row_version`

	err := r.db.QueryRowContext(ctx, query, sport.Name).Scan(&sport.ID, &sport.Version)
	if err != nil {
		if isPqError(err, pqUniqueViolation) {
			return ErrSportNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	query := `SELECT id, name, row_version, logo_key FROM sports WHERE id = $1`

	var sport models.Sport
	err := r.db.QueryRowContext(ctx, query, id).Scan(&sport.ID, &sport.Name, &sport.Version, &sport.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *postgresSportRepository) GetAll(ctx context.Context) ([]models.Sport, error) {
	query := `SELECT id, name, row_version, logo_key FROM sports ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := make([]models.Sport, 0)
	for rows.Next() {
		var sport models.Sport
		if scanErr := rows.Scan(&sport.ID, &sport.Name, &sport.Version, &sport.LogoKey); scanErr != nil {
			return nil, scanErr
		}
		sports = append(sports, sport)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sports, nil
}

// Update matches both id and row_version. Zero affected rows means the row was
// concurrently modified or removed; callers disambiguate via Exists.
func (r *postgresSportRepository) Update(ctx context.Context, sport *models.Sport) error {
	query := `UPDATE sports
		SET name = $1, row_version = row_version + 1
		WHERE id = $2 AND row_version = $3`

	result, err := r.db.ExecContext(ctx, query, sport.Name, sport.ID, sport.Version)
	if err != nil {
		if isPqError(err, pqUniqueViolation) {
			return ErrSportNameConflict
		}
		return err
	}

	if err := checkAffectedRows(result, ErrSportVersionConflict); err != nil {
		return err
	}
	sport.Version++
	return nil
}

func (r *postgresSportRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM sports WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// teams.sport_id is ON DELETE RESTRICT
		if isPqError(err, pqForeignKeyViolation) {
			return ErrSportInUse
		}
		return err
	}

	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *postgresSportRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM sports WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresSportRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sports`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresSportRepository) UpdateLogoKey(ctx context.Context, id int, logoKey string) error {
	query := `UPDATE sports SET logo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}
