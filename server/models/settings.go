package models

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DEFAULT_VOICE_ACTIVATION_PHRASE = "help me"
	DEFAULT_EMERGENCY_MESSAGE       = "I need help! My current location is: [LOCATION]. Please check on me immediately."
)

// UserSettings are the per-user preferences. There is at most one row per user.
type UserSettings struct {
	UserID                  string `json:"user_id" gorm:"primaryKey;size:36"`
	VoiceActivationPhrase   string `json:"voice_activation_phrase"`
	EmergencyMessage        string `json:"emergency_message"`
	AutoAlertZones          bool   `json:"auto_alert_zones"`
	VoiceMonitoringEnabled  bool   `json:"voice_monitoring_enabled"`
	PredictiveAlertsEnabled bool   `json:"predictive_alerts_enabled"`
	DarkMode                bool   `json:"dark_mode"`
}

func DefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:                  userID,
		VoiceActivationPhrase:   DEFAULT_VOICE_ACTIVATION_PHRASE,
		EmergencyMessage:        DEFAULT_EMERGENCY_MESSAGE,
		AutoAlertZones:          true,
		VoiceMonitoringEnabled:  true,
		PredictiveAlertsEnabled: true,
		DarkMode:                false,
	}
}

// FindOrCreateSettings returns the user's settings, creating the defaults if none exist
func (store *Store) FindOrCreateSettings(userID string) (*UserSettings, error) {
	settings := UserSettings{}
	err := store.db.First(&settings, "user_id = ?", userID).Error
	if err == nil {
		return &settings, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "FindOrCreateSettings")
	}

	settings = DefaultSettings(userID)
	err = translateError(store.db.Create(&settings).Error)

	// Another request created them first
	if errors.Is(err, ErrDuplicate) {
		err = store.db.First(&settings, "user_id = ?", userID).Error
	}

	if err != nil {
		return nil, errors.Wrap(err, "FindOrCreateSettings")
	}

	return &settings, nil
}

// ReplaceSettings overwrites every field of the user's settings, creating the row if missing
func (store *Store) ReplaceSettings(settings *UserSettings) error {
	err := store.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(settings).Error

	return errors.Wrap(err, "ReplaceSettings")
}
