package models

import (
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

type EventType string

const (
	ALERT_EVENT          EventType = "alert"
	LOCATION_CHECK_EVENT EventType = "location_check"
	AI_CHECK_EVENT       EventType = "ai_check"
	ROUTE_TAKEN_EVENT    EventType = "route_taken"
)

// SafetyHistory is an append-only log entry of a safety related event
type SafetyHistory struct {
	BaseModel
	UserID      string            `json:"user_id" gorm:"not null;index;size:36"`
	EventType   EventType         `json:"event_type" gorm:"not null;size:32"`
	Description string            `json:"description"`
	Location    *Location         `json:"location" gorm:"type:text;serializer:json"`
	Metadata    datatypes.JSONMap `json:"metadata"`
}

func (SafetyHistory) TableName() string {
	return "safety_history"
}

func (store *Store) AppendHistory(entry *SafetyHistory) error {
	if entry.Metadata == nil {
		entry.Metadata = datatypes.JSONMap{}
	}

	return errors.Wrap(store.db.Create(entry).Error, "AppendHistory")
}

// HistoryForUser returns the user's most recent events, newest first
func (store *Store) HistoryForUser(userID string, limit int) ([]SafetyHistory, error) {
	history := []SafetyHistory{}
	err := store.db.Scopes(ownedBy(userID), newestFirst(limit)).Find(&history).Error
	if err != nil {
		return nil, errors.Wrap(err, "HistoryForUser")
	}

	return history, nil
}

// LastLocatedHistory returns the user's most recent event that carries a location
func (store *Store) LastLocatedHistory(userID string) (*SafetyHistory, error) {
	entry := SafetyHistory{}
	err := store.db.Scopes(ownedBy(userID)).
		Where("location IS NOT NULL AND location <> ?", "null").
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}

	return &entry, nil
}
