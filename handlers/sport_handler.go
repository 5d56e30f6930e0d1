package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avelychko/league-roster/services"
)

// SportHandler serves the /Sport pages. The whole group is gated to the Admin
// role in the router, so the handlers themselves carry no role checks.
type SportHandler struct {
	sportService services.SportService
}

func NewSportHandler(ss services.SportService) *SportHandler {
	return &SportHandler{
		sportService: ss,
	}
}

// List handles GET /Sport.
func (h *SportHandler) List(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.GetAllSports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sports": sports}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Details handles GET /Sport/Details/{sportID}.
func (h *SportHandler) Details(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.GetSportByID(r.Context(), sportID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sport": sport}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateForm handles GET /Sport/Create.
func (h *SportHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	form := jsonResponse{"form": map[string]string{"name": ""}}
	if err := writeJSON(w, http.StatusOK, form, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Create handles POST /Sport/Create.
func (h *SportHandler) Create(w http.ResponseWriter, r *http.Request) {
	input := services.CreateSportInput{
		Name: r.FormValue("name"),
	}

	_, err := h.sportService.CreateSport(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, map[string]string{"name": input.Name})
		return
	}

	redirectToList(w, r, "/Sport")
}

// EditForm handles GET /Sport/Edit/{sportID}.
func (h *SportHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.GetSportByID(r.Context(), sportID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sport": sport}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Edit handles POST /Sport/Edit/{sportID} and runs the optimistic-update
// conflict protocol: a version conflict is downgraded to 404 when the row was
// deleted in the meantime, otherwise surfaced as an unrecovered conflict.
func (h *SportHandler) Edit(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	formID, err := formInt(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if formID != sportID {
		notFoundResponse(w, r)
		return
	}

	version, err := formInt(r, "row_version")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := services.UpdateSportInput{
		Name:    r.FormValue("name"),
		Version: version,
	}

	_, err = h.sportService.UpdateSport(r.Context(), sportID, input)
	if err != nil {
		if errors.Is(err, services.ErrConcurrencyConflict) {
			exists, exErr := h.sportService.SportExists(r.Context(), sportID)
			if exErr != nil {
				serverErrorResponse(w, r, exErr)
				return
			}
			if !exists {
				notFoundResponse(w, r)
				return
			}
			concurrentModificationResponse(w, r, fmt.Errorf("sport %d: %w", sportID, err))
			return
		}
		mapServiceErrorToHTTP(w, r, err, map[string]string{"name": input.Name})
		return
	}

	redirectToList(w, r, "/Sport")
}

// DeleteForm handles GET /Sport/Delete/{sportID}, the confirmation page.
func (h *SportHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	h.Details(w, r)
}

// Delete handles POST /Sport/Delete/{sportID}.
func (h *SportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sportService.DeleteSport(r.Context(), sportID); err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	redirectToList(w, r, "/Sport")
}

// UploadLogo handles POST /Sport/Logo/{sportID}.
func (h *SportHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "sportID")
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

	sport, err := h.sportService.UploadSportLogo(r.Context(), sportID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err, nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sport": sport}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
