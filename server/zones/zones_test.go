package zones

import (
	"testing"

	"github.com/Daskott/raksha/server/models"
	"github.com/stretchr/testify/assert"
)

func zone(name string, zoneType models.ZoneType) models.SafetyZone {
	return models.SafetyZone{Name: name, ZoneType: zoneType}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name            string
		zones           []models.SafetyZone
		wantRisk        int
		wantStatus      SafetyStatus
		wantZone        string
		wantRecommended int
	}{
		{"no zones", nil, 1, SAFE, "", 1},
		{"only safe zones", []models.SafetyZone{zone("Park", models.SAFE_ZONE)}, 1, SAFE, "", 1},
		{"single caution", []models.SafetyZone{zone("Market", models.CAUTION_ZONE)}, 5, CAUTION, "Market", 3},
		{"single danger", []models.SafetyZone{zone("Underpass", models.DANGER_ZONE)}, 8, DANGER, "Underpass", 4},
		{"caution then danger", []models.SafetyZone{zone("Market", models.CAUTION_ZONE), zone("Underpass", models.DANGER_ZONE)}, 8, DANGER, "Underpass", 4},
		{"danger then caution", []models.SafetyZone{zone("Underpass", models.DANGER_ZONE), zone("Market", models.CAUTION_ZONE)}, 8, DANGER, "Underpass", 4},
		{"first caution wins", []models.SafetyZone{zone("Market", models.CAUTION_ZONE), zone("Station", models.CAUTION_ZONE)}, 5, CAUTION, "Market", 3},
		{"last danger wins", []models.SafetyZone{zone("Underpass", models.DANGER_ZONE), zone("Alley", models.DANGER_ZONE)}, 8, DANGER, "Alley", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assessment := Evaluate(tt.zones)

			assert.Equal(t, tt.wantRisk, assessment.RiskLevel)
			assert.Equal(t, tt.wantStatus, assessment.SafetyStatus)
			assert.Len(t, assessment.Recommendations, tt.wantRecommended)

			if tt.wantZone == "" {
				assert.Nil(t, assessment.CurrentZone)
				return
			}
			assert.Equal(t, tt.wantZone, assessment.CurrentZone.Name)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, SAFE, StatusFor(3))
	assert.Equal(t, CAUTION, StatusFor(4))
	assert.Equal(t, CAUTION, StatusFor(6))
	assert.Equal(t, DANGER, StatusFor(7))
}

func TestRecommendationsReturnsCopy(t *testing.T) {
	first := Recommendations(DANGER)
	first[0] = "changed"

	assert.Equal(t, "You're in a high-risk area. Consider leaving immediately.", Recommendations(DANGER)[0])
}
