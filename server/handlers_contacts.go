package server

import (
	"errors"
	"net/http"

	"github.com/Daskott/raksha/server/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func (s *Server) createContact(rw http.ResponseWriter, r *http.Request) {
	data := ContactRequest{}
	if !s.decodeAndValidate(rw, r, &data) {
		return
	}

	contact := models.Contact{
		UserID:       currentUser(r).ID,
		Name:         data.Name,
		PhoneNumber:  normalizePhoneNumber(data.PhoneNumber),
		Relationship: data.Relationship,
		IsPrimary:    data.IsPrimary,
	}

	if err := s.store.CreateContact(&contact); err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, contact, http.StatusOK)
}

func (s *Server) contacts(rw http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.ContactsForUser(currentUser(r).ID, models.MAX_CONTACTS_PER_USER)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, contacts, http.StatusOK)
}

func (s *Server) deleteContact(rw http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteContact(currentUser(r).ID, mux.Vars(r)["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(rw, http.StatusNotFound, "Contact not found")
		return
	}

	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, MessageResponse{Message: "Contact deleted successfully", Success: true}, http.StatusOK)
}
