package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Shared sentinel errors mapped to HTTP statuses in the handlers package.
var (
	ErrSportNotFound  = errors.New("sport not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")

	// ErrConcurrencyConflict means the row's version marker changed (or the
	// row vanished) between read and write. Callers must disambiguate with
	// the service's Exists before deciding how to surface it.
	ErrConcurrencyConflict = errors.New("record was modified or removed by another request")

	ErrSportNameConflict = errors.New("sport name already exists")
	ErrTeamNameConflict  = errors.New("team name already exists")
	ErrSportInUse        = errors.New("sport cannot be deleted while teams reference it")
	ErrTeamInUse         = errors.New("team cannot be deleted while players reference it")

	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")

	ErrLogoStorageUnavailable = errors.New("logo storage is not configured")
)

// ValidationError carries per-field messages so handlers can redisplay the
// submitted form with errors attached.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
