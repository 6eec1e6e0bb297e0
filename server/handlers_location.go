package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Daskott/raksha/server/models"
	"github.com/Daskott/raksha/server/zones"
	"gorm.io/datatypes"
)

// checkLocationSafety scores the caller's location against the known zones. The body is
// either the location itself or {"location": {...}}.
func (s *Server) checkLocationSafety(rw http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	body := map[string]json.RawMessage{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(rw, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	data, err := locationFromBody(body)
	if err != nil {
		writeError(rw, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := s.validate.Struct(data); err != nil {
		messages := validationMessages(err)
		writeError(rw, http.StatusBadRequest, messages[0], messages...)
		return
	}

	allZones, err := s.store.AllZones()
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	assessment := zones.Evaluate(allZones)

	var zoneName interface{}
	if assessment.CurrentZone != nil {
		zoneName = assessment.CurrentZone.Name
	}

	location := data.toLocation()
	s.appendHistory(&models.SafetyHistory{
		UserID:      user.ID,
		EventType:   models.LOCATION_CHECK_EVENT,
		Description: fmt.Sprintf("Location checked - %v zone", assessment.SafetyStatus),
		Location:    &location,
		Metadata: datatypes.JSONMap{
			"risk_level": assessment.RiskLevel,
			"zone":       zoneName,
		},
	})

	writeResponse(rw, assessment, http.StatusOK)
}

func locationFromBody(body map[string]json.RawMessage) (*LocationRequest, error) {
	raw, wrapped := body["location"]
	_, bare := body["latitude"]

	data := &LocationRequest{}
	if wrapped && !bare {
		return data, json.Unmarshal(raw, data)
	}

	// re-encode the already decoded fields as a location
	bytes, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	return data, json.Unmarshal(bytes, data)
}
