package httpapi

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/hifi-israel/sikacare/internal/server/models"
)

// eqFilter reads a column=eq.value filter. A missing filter yields def.
func eqFilter(r *http.Request, column, def string) (string, bool) {
	raw, ok := r.URL.Query()[column]
	if !ok || len(raw) == 0 {
		return def, true
	}
	v, found := strings.CutPrefix(raw[0], "eq.")
	return v, found
}

func (h *handler) selectProfiles(w http.ResponseWriter, r *http.Request) {
	caller := userIDFrom(r.Context())
	userID, ok := eqFilter(r, "user_id", caller)
	if !ok {
		writeError(w, http.StatusBadRequest, codeValidation, "only eq filters are supported on user_id")
		return
	}

	rows, err := h.Profiles.Select(r.Context(), caller, userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *handler) updateProfiles(w http.ResponseWriter, r *http.Request) {
	caller := userIDFrom(r.Context())
	userID, ok := eqFilter(r, "user_id", caller)
	if !ok {
		writeError(w, http.StatusBadRequest, codeValidation, "only eq filters are supported on user_id")
		return
	}

	var upd models.ProfileUpdate
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, codeBadJSON, "Could not parse request body as a profile update")
		return
	}

	if err := h.Profiles.Update(r.Context(), caller, userID, upd); err != nil {
		h.fail(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Prefer"), "return=representation") {
		rows, err := h.Profiles.Select(r.Context(), caller, userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// selectAvatars serves the active catalog. active=eq.false yields nothing,
// since inactive entries are never exposed; order=id.desc reverses.
func (h *handler) selectAvatars(w http.ResponseWriter, r *http.Request) {
	active, ok := eqFilter(r, "active", "true")
	if !ok {
		writeError(w, http.StatusBadRequest, codeValidation, "only eq filters are supported on active")
		return
	}

	list := []models.Avatar{}
	if active == "true" {
		var err error
		if list, err = h.Avatars.ListActive(r.Context()); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	if list == nil {
		list = []models.Avatar{}
	}

	switch r.URL.Query().Get("order") {
	case "", "id.asc":
	case "id.desc":
		slices.Reverse(list)
	default:
		writeError(w, http.StatusBadRequest, codeValidation, "only id.asc and id.desc ordering is supported")
		return
	}
	writeJSON(w, http.StatusOK, list)
}
