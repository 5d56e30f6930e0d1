package repositories

import (
	"context"
	"database/sql"
	"errors"
)

var ErrRoleNotFound = errors.New("role not found")

// RoleRepository manages the role and user_roles tables. EnsureRole and
// AssignRole are idempotent so the startup seed can run on every boot.
type RoleRepository interface {
	EnsureRole(ctx context.Context, name string) error
	AssignRole(ctx context.Context, userID int, roleName string) error
	ListRoleNames(ctx context.Context, userID int) ([]string, error)
	HasRole(ctx context.Context, userID int, roleName string) (bool, error)
	CountRole(ctx context.Context, name string) (int, error)
	CountUserRole(ctx context.Context, userID int, roleName string) (int, error)
}

type postgresRoleRepository struct {
	db *sql.DB
}

func NewPostgresRoleRepository(db *sql.DB) RoleRepository {
	return &postgresRoleRepository{db: db}
}

func (r *postgresRoleRepository) EnsureRole(ctx context.Context, name string) error {
	query := `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, name)
	return err
}

func (r *postgresRoleRepository) AssignRole(ctx context.Context, userID int, roleName string) error {
	query := `INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT (user_id, role_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, userID, roleName)
	if err != nil {
		if isPqError(err, pqForeignKeyViolation) {
			return ErrUserNotFound
		}
		return err
	}

	// Zero affected rows is fine when the grant already exists, but a missing
	// role means the SELECT matched nothing.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		has, hasErr := r.HasRole(ctx, userID, roleName)
		if hasErr != nil {
			return hasErr
		}
		if !has {
			return ErrRoleNotFound
		}
	}
	return nil
}

func (r *postgresRoleRepository) ListRoleNames(ctx context.Context, userID int) ([]string, error) {
	query := `SELECT r.name FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if scanErr := rows.Scan(&name); scanErr != nil {
			return nil, scanErr
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

func (r *postgresRoleRepository) HasRole(ctx context.Context, userID int, roleName string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1 AND r.name = $2)`

	var has bool
	err := r.db.QueryRowContext(ctx, query, userID, roleName).Scan(&has)
	if err != nil {
		return false, err
	}
	return has, nil
}

func (r *postgresRoleRepository) CountRole(ctx context.Context, name string) (int, error) {
	query := `SELECT COUNT(*) FROM roles WHERE name = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, name).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresRoleRepository) CountUserRole(ctx context.Context, userID int, roleName string) (int, error) {
	query := `SELECT COUNT(*) FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1 AND r.name = $2`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, roleName).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
