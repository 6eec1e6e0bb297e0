package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

type AlertType string

const (
	PANIC_BUTTON_ALERT AlertType = "panic_button"
	VOICE_SOS_ALERT    AlertType = "voice_sos"
	PREDICTIVE_ALERT   AlertType = "predictive"
	ZONE_ALERT         AlertType = "zone_alert"
)

func (alertType AlertType) Valid() bool {
	switch alertType {
	case PANIC_BUTTON_ALERT, VOICE_SOS_ALERT, PREDICTIVE_ALERT, ZONE_ALERT:
		return true
	}
	return false
}

type AlertStatus string

const (
	ACTIVE_ALERT      AlertStatus = "active"
	RESOLVED_ALERT    AlertStatus = "resolved"
	FALSE_ALARM_ALERT AlertStatus = "false_alarm"
)

type Alert struct {
	BaseModel
	UserID           string      `json:"user_id" gorm:"not null;index;size:36"`
	Type             AlertType   `json:"type" gorm:"not null;size:32"`
	Message          string      `json:"message"`
	Location         Location    `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	AudioData        *string     `json:"audio_data"`
	VideoData        *string     `json:"video_data"`
	ContactsNotified IDList      `json:"contacts_notified" gorm:"type:text;not null"`
	Status           AlertStatus `json:"status" gorm:"not null;size:32"`
}

// IDList is a list of record ids stored as a JSON array. It never encodes to null.
type IDList []string

func (ids IDList) Value() (driver.Value, error) {
	if ids == nil {
		return "[]", nil
	}

	bytes, err := json.Marshal([]string(ids))
	return string(bytes), err
}

func (ids *IDList) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*ids = IDList{}
		return nil
	case string:
		bytes = []byte(v)
	case []byte:
		bytes = v
	default:
		return fmt.Errorf("IDList: unsupported type %T", value)
	}

	list := []string{}
	if err := json.Unmarshal(bytes, &list); err != nil {
		return err
	}
	*ids = list

	return nil
}

func (ids IDList) MarshalJSON() ([]byte, error) {
	if ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ids))
}

// CreateAlert inserts a new active alert with no contacts notified yet
func (store *Store) CreateAlert(alert *Alert) error {
	alert.Status = ACTIVE_ALERT
	alert.ContactsNotified = IDList{}
	alert.Location = alert.Location.WithDefaults()

	return errors.Wrap(store.db.Create(alert).Error, "CreateAlert")
}

func (store *Store) SetContactsNotified(alertID string, contactIDs []string) error {
	err := store.db.Model(&Alert{}).
		Where("id = ?", alertID).
		Update("contacts_notified", IDList(contactIDs)).Error

	return errors.Wrap(err, "SetContactsNotified")
}

// AlertsForUser returns the user's most recent alerts, newest first
func (store *Store) AlertsForUser(userID string, limit int) ([]Alert, error) {
	alerts := []Alert{}
	err := store.db.Scopes(ownedBy(userID), newestFirst(limit)).Find(&alerts).Error
	if err != nil {
		return nil, errors.Wrap(err, "AlertsForUser")
	}

	return alerts, nil
}
