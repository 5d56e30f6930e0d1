package services

import (
	"context"
	"errors"
	"testing"

	"github.com/avelychko/league-roster/models"
)

func TestRegisterAndLogin(t *testing.T) {
	userRepo := newMockUserRepo()
	roleRepo := newMockRoleRepo()
	if err := roleRepo.EnsureRole(context.Background(), models.RoleUser); err != nil {
		t.Fatalf("EnsureRole: %v", err)
	}
	svc := NewAuthService(userRepo, roleRepo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Coach@Example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "coach@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked in response")
	}
	if len(user.Roles) != 1 || user.Roles[0] != models.RoleUser {
		t.Fatalf("expected default User role, got %v", user.Roles)
	}

	loggedIn, err := svc.Login(context.Background(), LoginInput{
		Email:    "coach@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, loggedIn.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := newMockUserRepo()
	roleRepo := newMockRoleRepo()
	if err := roleRepo.EnsureRole(context.Background(), models.RoleUser); err != nil {
		t.Fatalf("EnsureRole: %v", err)
	}
	svc := NewAuthService(userRepo, roleRepo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "coach@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "coach@example.com",
		Password: "wrong horse",
	})
	if !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Fatalf("expected ErrAuthInvalidCredentials, got %v", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), newMockRoleRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "coach@example.com",
		Password: "short",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newMockUserRepo()
	roleRepo := newMockRoleRepo()
	if err := roleRepo.EnsureRole(context.Background(), models.RoleUser); err != nil {
		t.Fatalf("EnsureRole: %v", err)
	}
	svc := NewAuthService(userRepo, roleRepo)

	input := RegisterInput{Email: "coach@example.com", Password: "correct horse"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrAuthEmailTaken) {
		t.Fatalf("expected ErrAuthEmailTaken, got %v", err)
	}
}
