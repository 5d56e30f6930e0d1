package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/avelychko/league-roster/models"
	"github.com/avelychko/league-roster/services"
	"github.com/go-chi/chi/v5"
)

func newPlayerRouter(ps services.PlayerService, ts services.TeamService) http.Handler {
	h := NewPlayerHandler(ps, ts)
	r := chi.NewRouter()
	r.Get("/Player", h.List)
	r.Get("/Player/Details/{playerID}", h.Details)
	r.Post("/Player/Create", h.Create)
	r.Post("/Player/Edit/{playerID}", h.Edit)
	r.Post("/Player/Delete/{playerID}", h.Delete)
	return r
}

func TestPlayerListPassesSearchString(t *testing.T) {
	var gotSearch string
	ps := &stubPlayerService{
		getAllFn: func(ctx context.Context, search string) ([]models.Player, error) {
			gotSearch = search
			return []models.Player{}, nil
		},
	}
	router := newPlayerRouter(ps, &stubTeamService{})

	req := httptest.NewRequest(http.MethodGet, "/Player?searchString=Smith", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotSearch != "Smith" {
		t.Fatalf("expected search %q, got %q", "Smith", gotSearch)
	}
}

func TestPlayerCreateRedirectsToList(t *testing.T) {
	var gotInput services.CreatePlayerInput
	ps := &stubPlayerService{
		createFn: func(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error) {
			gotInput = input
			return &models.Player{ID: 1, Version: 1}, nil
		},
	}
	router := newPlayerRouter(ps, &stubTeamService{})

	rec := postForm(t, router, "/Player/Create", url.Values{
		"first_name": {"John"},
		"last_name":  {"Smith"},
		"number":     {"10"},
		"team_id":    {"3"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/Player" {
		t.Fatalf("expected redirect to /Player, got %q", loc)
	}
	if gotInput.FirstName != "John" || gotInput.LastName != "Smith" ||
		gotInput.Number != 10 || gotInput.TeamID != 3 {
		t.Fatalf("unexpected input: %+v", gotInput)
	}
}

func TestPlayerCreateNonNumericNumber(t *testing.T) {
	router := newPlayerRouter(&stubPlayerService{}, &stubTeamService{})

	rec := postForm(t, router, "/Player/Create", url.Values{
		"first_name": {"John"},
		"last_name":  {"Smith"},
		"number":     {"ten"},
		"team_id":    {"3"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPlayerEditConflictProtocol(t *testing.T) {
	tests := []struct {
		name       string
		exists     bool
		wantStatus int
	}{
		{"row deleted underneath the edit", false, http.StatusNotFound},
		{"row modified by another user", true, http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ps := &stubPlayerService{
				updateFn: func(ctx context.Context, id int, input services.UpdatePlayerInput) (*models.Player, error) {
					return nil, services.ErrConcurrencyConflict
				},
				existsFn: func(ctx context.Context, id int) (bool, error) {
					return tc.exists, nil
				},
			}
			router := newPlayerRouter(ps, &stubTeamService{})

			rec := postForm(t, router, "/Player/Edit/9", url.Values{
				"id":          {"9"},
				"first_name":  {"John"},
				"last_name":   {"Smith"},
				"number":      {"10"},
				"team_id":     {"3"},
				"row_version": {"2"},
			})

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestPlayerDeleteAbsent(t *testing.T) {
	router := newPlayerRouter(&stubPlayerService{}, &stubTeamService{})

	rec := postForm(t, router, "/Player/Delete/42", url.Values{})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
