package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/Daskott/raksha/server/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
)

// createAlert stores the alert, texts the user's contacts and records the alert in the
// user's history. SMS & history failures never fail the request.
func (s *Server) createAlert(rw http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	data := AlertRequest{}
	if !s.decodeAndValidate(rw, r, &data) {
		return
	}

	alert := models.Alert{
		UserID:    user.ID,
		Type:      data.Type,
		Message:   data.Message,
		Location:  s.withAddress(r.Context(), data.Location.toLocation()),
		AudioData: data.AudioData,
		VideoData: data.VideoData,
	}

	if err := s.store.CreateAlert(&alert); err != nil {
		writeInternalError(rw, err)
		return
	}
	s.metrics.AlertCreated(string(alert.Type))

	contacts, err := s.store.ContactsForUser(user.ID, models.MAX_CONTACTS_PER_USER)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	// Sends continue even if the client goes away
	notified := s.dispatcher.Dispatch(context.WithoutCancel(r.Context()), &alert, user.FullName, contacts)

	if err := s.store.SetContactsNotified(alert.ID, notified); err != nil {
		logg.Errorf("alert %v: unable to save notified contacts: %v", alert.ID, err)
	}
	alert.ContactsNotified = notified

	location := alert.Location
	s.appendHistory(&models.SafetyHistory{
		UserID:      user.ID,
		EventType:   models.ALERT_EVENT,
		Description: alertDescription(alert.Type),
		Location:    &location,
		Metadata: datatypes.JSONMap{
			"alert_id":          alert.ID,
			"contacts_notified": len(notified),
		},
	})

	writeResponse(rw, alert, http.StatusOK)
}

func (s *Server) alerts(rw http.ResponseWriter, r *http.Request) {
	alerts, err := s.store.AlertsForUser(currentUser(r).ID, models.MAX_ALERTS_PER_USER)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, alerts, http.StatusOK)
}

// withAddress fills in a missing address when a geocoder is configured
func (s *Server) withAddress(ctx context.Context, location models.Location) models.Location {
	if location.HasAddress() || s.geocoder == nil {
		return location
	}

	address, err := s.geocoder.ReverseGeocode(ctx, location.Latitude, location.Longitude)
	if err != nil {
		logg.Warnf("reverse geocoding failed: %v", err)
		return location
	}

	location.Address = &address
	return location
}

// appendHistory records a history entry. It's best effort, failures are only logged.
func (s *Server) appendHistory(entry *models.SafetyHistory) {
	if err := s.store.AppendHistory(entry); err != nil {
		logg.Errorf("unable to append %v history for user %v: %v", entry.EventType, entry.UserID, err)
	}
}

// alertDescription returns e.g. "Panic Button alert activated" for panic_button
func alertDescription(alertType models.AlertType) string {
	title := cases.Title(language.English).String(strings.ReplaceAll(string(alertType), "_", " "))
	return title + " alert activated"
}
