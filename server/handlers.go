package server

import (
	"net/http"
	"time"
)

var emergencyNumbersByCountry = map[string]map[string]string{
	"india": {
		"police":              "100",
		"fire":                "101",
		"ambulance":           "102",
		"women_helpline":      "1091",
		"child_helpline":      "1098",
		"disaster_management": "108",
	},
}

func healthCheck(rw http.ResponseWriter, r *http.Request) {
	writeResponse(rw, HealthResponse{Status: "healthy", Timestamp: time.Now().UTC()}, http.StatusOK)
}

func emergencyNumbers(rw http.ResponseWriter, r *http.Request) {
	writeResponse(rw, emergencyNumbersByCountry, http.StatusOK)
}
