package zones

import (
	"github.com/Daskott/raksha/server/models"
)

type SafetyStatus string

const (
	SAFE    SafetyStatus = "safe"
	CAUTION SafetyStatus = "caution"
	DANGER  SafetyStatus = "danger"

	BASE_RISK_LEVEL    = 1
	CAUTION_RISK_LEVEL = 5
	DANGER_RISK_LEVEL  = 8
)

var recommendations = map[SafetyStatus][]string{
	SAFE: {
		"You're in a safe area. Continue to stay aware of your surroundings.",
	},
	CAUTION: {
		"Exercise extra caution in this area.",
		"Consider sharing your location with trusted contacts.",
		"Stay in well-lit, populated areas.",
	},
	DANGER: {
		"You're in a high-risk area. Consider leaving immediately.",
		"Share your location with emergency contacts.",
		"Stay alert and avoid isolated areas.",
		"Consider calling local emergency services if you feel unsafe.",
	},
}

type Assessment struct {
	SafetyStatus    SafetyStatus       `json:"safety_status"`
	RiskLevel       int                `json:"risk_level"`
	CurrentZone     *models.SafetyZone `json:"current_zone"`
	Recommendations []string           `json:"recommendations"`
}

// Evaluate scores the given zones in order. Every danger zone replaces the current zone,
// a caution zone only becomes current when no zone was picked yet. Zone geometry isn't
// considered, every zone is treated as applicable.
func Evaluate(zones []models.SafetyZone) Assessment {
	riskLevel := BASE_RISK_LEVEL
	var currentZone *models.SafetyZone

	for i := range zones {
		switch zones[i].ZoneType {
		case models.DANGER_ZONE:
			riskLevel = max(riskLevel, DANGER_RISK_LEVEL)
			currentZone = &zones[i]
		case models.CAUTION_ZONE:
			riskLevel = max(riskLevel, CAUTION_RISK_LEVEL)
			if currentZone == nil {
				currentZone = &zones[i]
			}
		}
	}

	status := StatusFor(riskLevel)

	return Assessment{
		SafetyStatus:    status,
		RiskLevel:       riskLevel,
		CurrentZone:     currentZone,
		Recommendations: Recommendations(status),
	}
}

func StatusFor(riskLevel int) SafetyStatus {
	switch {
	case riskLevel <= 3:
		return SAFE
	case riskLevel <= 6:
		return CAUTION
	default:
		return DANGER
	}
}

// Recommendations returns a copy of the advice shown for the status
func Recommendations(status SafetyStatus) []string {
	return append([]string{}, recommendations[status]...)
}
