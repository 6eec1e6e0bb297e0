package server

import (
	"encoding/json"
	"net/http"

	"github.com/Daskott/raksha/server/models"
)

func (s *Server) settings(rw http.ResponseWriter, r *http.Request) {
	settings, err := s.store.FindOrCreateSettings(currentUser(r).ID)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, settings, http.StatusOK)
}

// updateSettings replaces all of the caller's settings. Fields left out of the body are
// reset to their defaults & any user_id in the body is ignored.
func (s *Server) updateSettings(rw http.ResponseWriter, r *http.Request) {
	userID := currentUser(r).ID

	settings := models.DefaultSettings(userID)
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(rw, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	settings.UserID = userID

	if err := s.store.ReplaceSettings(&settings); err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, settings, http.StatusOK)
}
