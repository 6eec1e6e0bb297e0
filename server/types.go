package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/Daskott/raksha/server/auth"
	"github.com/Daskott/raksha/server/models"
)

type RequestContextKey string

const DECODED_JWT_CONTEXT_KEY = RequestContextKey("decodedJWT")

type DecodedJWT struct {
	Claims   *auth.RakshaTokenClaims
	User     *models.User
	ErrorMsg string
}

// ErrorPayload is the body of every non 2xx response
type ErrorPayload struct {
	Detail  string   `json:"detail"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,phone_number"`
	FullName    string `json:"full_name" validate:"required"`
	Password    string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ContactRequest struct {
	Name         string `json:"name" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required,phone_number"`
	Relationship string `json:"relationship"`
	IsPrimary    bool   `json:"is_primary"`
}

type LocationRequest struct {
	Latitude  *float64   `json:"latitude" validate:"required"`
	Longitude *float64   `json:"longitude" validate:"required"`
	Address   *string    `json:"address"`
	Accuracy  *float64   `json:"accuracy"`
	Timestamp *Timestamp `json:"timestamp"`
}

func (req LocationRequest) toLocation() models.Location {
	location := models.Location{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Address:   req.Address,
		Accuracy:  req.Accuracy,
	}

	if req.Timestamp != nil {
		location.Timestamp = req.Timestamp.UTC()
	}

	return location.WithDefaults()
}

type AlertRequest struct {
	Type      models.AlertType `json:"type" validate:"required,alert_type"`
	Message   string           `json:"message" validate:"required"`
	Location  *LocationRequest `json:"location" validate:"required"`
	AudioData *string          `json:"audio_data"`
	VideoData *string          `json:"video_data"`
}

type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Timestamp accepts RFC 3339 times as well as ones without a zone, which are read as UTC
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	var err error
	for _, layout := range timestampLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, value); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("invalid timestamp %q: %v", value, err)
}
