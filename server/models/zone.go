package models

import "github.com/pkg/errors"

type ZoneType string

const (
	SAFE_ZONE    ZoneType = "safe"
	CAUTION_ZONE ZoneType = "caution"
	DANGER_ZONE  ZoneType = "danger"
)

const DEFAULT_ZONE_RISK_LEVEL = 1

type SafetyZone struct {
	BaseModel
	Name        string      `json:"name" mapstructure:"name" gorm:"not null"`
	ZoneType    ZoneType    `json:"zone_type" mapstructure:"zone_type" gorm:"not null;size:16"`
	Coordinates [][]float64 `json:"coordinates" mapstructure:"coordinates" gorm:"type:text;serializer:json"`
	RiskLevel   int         `json:"risk_level" mapstructure:"risk_level"`
	Description *string     `json:"description" mapstructure:"description"`
}

// AllZones returns every zone in storage order
func (store *Store) AllZones() ([]SafetyZone, error) {
	zones := []SafetyZone{}
	if err := store.db.Find(&zones).Error; err != nil {
		return nil, errors.Wrap(err, "AllZones")
	}

	return zones, nil
}

func (store *Store) CreateZones(zones []SafetyZone) error {
	if len(zones) == 0 {
		return nil
	}

	for i := range zones {
		if zones[i].RiskLevel == 0 {
			zones[i].RiskLevel = DEFAULT_ZONE_RISK_LEVEL
		}
	}

	return errors.Wrap(store.db.Create(&zones).Error, "CreateZones")
}
