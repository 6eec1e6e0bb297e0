package models

import "time"

// Location is a point reported by the device. Coordinates are stored as sent.
type Location struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Address   *string   `json:"address"`
	Accuracy  *float64  `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

// WithDefaults returns a copy of the location with a missing timestamp set to now
func (location Location) WithDefaults() Location {
	if location.Timestamp.IsZero() {
		location.Timestamp = time.Now().UTC()
	}
	return location
}

// HasAddress reports whether a non-empty address is set
func (location Location) HasAddress() bool {
	return location.Address != nil && *location.Address != ""
}
