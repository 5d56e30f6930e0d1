package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avelychko/league-roster/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
	teamService   services.TeamService
}

func NewPlayerHandler(ps services.PlayerService, ts services.TeamService) *PlayerHandler {
	return &PlayerHandler{
		playerService: ps,
		teamService:   ts,
	}
}

// List handles GET /Player, optionally narrowed by ?searchString= matching
// against first or last name.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("searchString")

	players, err := h.playerService.GetAllPlayers(r.Context(), search)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Details handles GET /Player/Details/{playerID}.
func (h *PlayerHandler) Details(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetPlayerByID(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateForm handles GET /Player/Create: includes the teams available for the
// reference dropdown.
func (h *PlayerHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.GetAllTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	response := jsonResponse{
		"form":  map[string]string{"first_name": "", "last_name": "", "number": "", "team_id": ""},
		"teams": teams,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create handles POST /Player/Create.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	number, err := formInt(r, "number")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := formInt(r, "team_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.CreatePlayerInput{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Number:    number,
		TeamID:    teamID,
	}

	_, err = h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, playerFormValues(input.FirstName, input.LastName, input.Number, input.TeamID))
		return
	}

	redirectToList(w, r, "/Player")
}

// EditForm handles GET /Player/Edit/{playerID}.
func (h *PlayerHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetPlayerByID(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	teams, err := h.teamService.GetAllTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	response := jsonResponse{"player": player, "teams": teams}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Edit handles POST /Player/Edit/{playerID} with the optimistic-update
// conflict protocol.
func (h *PlayerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	formID, err := formInt(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if formID != playerID {
		notFoundResponse(w, r)
		return
	}

	version, err := formInt(r, "row_version")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	number, err := formInt(r, "number")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := formInt(r, "team_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.UpdatePlayerInput{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Number:    number,
		TeamID:    teamID,
		Version:   version,
	}

	_, err = h.playerService.UpdatePlayer(r.Context(), playerID, input)
	if err != nil {
		if errors.Is(err, services.ErrConcurrencyConflict) {
			exists, exErr := h.playerService.PlayerExists(r.Context(), playerID)
			if exErr != nil {
				serverErrorResponse(w, r, exErr)
				return
			}
			if !exists {
				notFoundResponse(w, r)
				return
			}
			concurrentModificationResponse(w, r, fmt.Errorf("player %d: %w", playerID, err))
			return
		}
		mapServiceErrorToHTTP(w, r, err, playerFormValues(input.FirstName, input.LastName, input.Number, input.TeamID))
		return
	}

	redirectToList(w, r, "/Player")
}

// DeleteForm handles GET /Player/Delete/{playerID}, the confirmation page.
func (h *PlayerHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	h.Details(w, r)
}

// Delete handles POST /Player/Delete/{playerID}.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.DeletePlayer(r.Context(), playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	redirectToList(w, r, "/Player")
}

func playerFormValues(firstName, lastName string, number, teamID int) map[string]string {
	return map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
		"number":     strconv.Itoa(number),
		"team_id":    strconv.Itoa(teamID),
	}
}
