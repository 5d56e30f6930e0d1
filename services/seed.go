package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/avelychko/league-roster/models"
	"github.com/avelychko/league-roster/repositories"
)

// SeedRolesAndAdmin makes sure the fixed role set exists and that the
// designated admin account holds the Admin role. It is idempotent: re-running
// it against an already seeded store performs no redundant writes. A missing
// admin account is not an error; the grant simply waits for the account to be
// registered and a later restart.
func SeedRolesAndAdmin(
	ctx context.Context,
	roleRepo repositories.RoleRepository,
	userRepo repositories.UserRepository,
	adminEmail string,
	logger *slog.Logger,
) error {
	for _, role := range []string{models.RoleAdmin, models.RoleUser} {
		if err := roleRepo.EnsureRole(ctx, role); err != nil {
			return fmt.Errorf("failed to ensure role %q: %w", role, err)
		}
	}

	if adminEmail == "" {
		logger.Warn("no admin email configured, skipping admin grant")
		return nil
	}

	admin, err := userRepo.GetByEmail(ctx, adminEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.Warn("admin account not registered yet, skipping admin grant",
				slog.String("email", adminEmail))
			return nil
		}
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	has, err := roleRepo.HasRole(ctx, admin.ID, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to check admin grant: %w", err)
	}
	if has {
		return nil
	}

	if err := roleRepo.AssignRole(ctx, admin.ID, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to grant admin role: %w", err)
	}
	logger.Info("admin role granted", slog.String("email", adminEmail))
	return nil
}
