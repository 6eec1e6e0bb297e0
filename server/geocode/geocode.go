package geocode

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	GOOGLE_MAPS_BASE_URL = "https://maps.googleapis.com"
	REQUEST_TIMEOUT      = 5 * time.Second
)

// Geocoder resolves coordinates to a human readable address
type Geocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}

// GoogleGeocoder calls the Google Maps Geocoding API
type GoogleGeocoder struct {
	client *resty.Client
	apiKey string
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// NewGoogleGeocoder returns nil when no api key is set
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return newGoogleGeocoder(GOOGLE_MAPS_BASE_URL, apiKey)
}

func newGoogleGeocoder(baseURL, apiKey string) *GoogleGeocoder {
	if apiKey == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(REQUEST_TIMEOUT)

	return &GoogleGeocoder{client: client, apiKey: apiKey}
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	result := geocodeResponse{}

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latlng": fmt.Sprintf("%v,%v", latitude, longitude),
			"key":    g.apiKey,
		}).
		SetResult(&result).
		Get("/maps/api/geocode/json")
	if err != nil {
		return "", fmt.Errorf("geocode request: %v", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("geocode status %d: %s", resp.StatusCode(), resp.String())
	}

	if result.Status != "OK" || len(result.Results) == 0 {
		return "", fmt.Errorf("geocode: %s %s", result.Status, result.ErrorMessage)
	}

	return result.Results[0].FormattedAddress, nil
}
