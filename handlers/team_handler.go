package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avelychko/league-roster/services"
)

type TeamHandler struct {
	teamService  services.TeamService
	sportService services.SportService
}

func NewTeamHandler(ts services.TeamService, ss services.SportService) *TeamHandler {
	return &TeamHandler{
		teamService:  ts,
		sportService: ss,
	}
}

// List handles GET /Team.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.GetAllTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Details handles GET /Team/Details/{teamID}.
func (h *TeamHandler) Details(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateForm handles GET /Team/Create: the form payload includes the sports
// available for the reference dropdown.
func (h *TeamHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.GetAllSports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	response := jsonResponse{
		"form":   map[string]string{"name": "", "sport_id": ""},
		"sports": sports,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create handles POST /Team/Create.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	sportID, err := formInt(r, "sport_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.CreateTeamInput{
		Name:    r.FormValue("name"),
		SportID: sportID,
	}

	_, err = h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, teamFormValues(input.Name, input.SportID))
		return
	}

	redirectToList(w, r, "/Team")
}

// EditForm handles GET /Team/Edit/{teamID}.
func (h *TeamHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	sports, err := h.sportService.GetAllSports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	response := jsonResponse{"team": team, "sports": sports}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Edit handles POST /Team/Edit/{teamID} with the optimistic-update conflict
// protocol: downgrade to 404 when the row vanished, surface the conflict
// otherwise.
func (h *TeamHandler) Edit(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	formID, err := formInt(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if formID != teamID {
		notFoundResponse(w, r)
		return
	}

	version, err := formInt(r, "row_version")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sportID, err := formInt(r, "sport_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.UpdateTeamInput{
		Name:    r.FormValue("name"),
		SportID: sportID,
		Version: version,
	}

	_, err = h.teamService.UpdateTeam(r.Context(), teamID, input)
	if err != nil {
		if errors.Is(err, services.ErrConcurrencyConflict) {
			exists, exErr := h.teamService.TeamExists(r.Context(), teamID)
			if exErr != nil {
				serverErrorResponse(w, r, exErr)
				return
			}
			if !exists {
				notFoundResponse(w, r)
				return
			}
			concurrentModificationResponse(w, r, fmt.Errorf("team %d: %w", teamID, err))
			return
		}
		mapServiceErrorToHTTP(w, r, err, teamFormValues(input.Name, input.SportID))
		return
	}

	redirectToList(w, r, "/Team")
}

// DeleteForm handles GET /Team/Delete/{teamID}, the confirmation page.
func (h *TeamHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	h.Details(w, r)
}

// Delete handles POST /Team/Delete/{teamID}.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	redirectToList(w, r, "/Team")
}

// UploadLogo handles POST /Team/Logo/{teamID}.
func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	team, err := h.teamService.UploadTeamLogo(r.Context(), teamID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func teamFormValues(name string, sportID int) map[string]string {
	return map[string]string{
		"name":     name,
		"sport_id": strconv.Itoa(sportID),
	}
}
