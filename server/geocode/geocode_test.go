package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoogleGeocoderWithoutKey(t *testing.T) {
	assert.Nil(t, NewGoogleGeocoder(""))
}

func TestReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "12.97,77.59", r.URL.Query().Get("latlng"))
		assert.Equal(t, "maps-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"MG Road, Bengaluru"},{"formatted_address":"Bengaluru"}]}`))
	}))
	defer server.Close()

	address, err := newGoogleGeocoder(server.URL, "maps-key").ReverseGeocode(context.Background(), 12.97, 77.59)
	require.Nil(t, err)
	assert.Equal(t, "MG Road, Bengaluru", address)
}

func TestReverseGeocodeFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"zero results", http.StatusOK, `{"status":"ZERO_RESULTS","results":[]}`},
		{"denied", http.StatusOK, `{"status":"REQUEST_DENIED","error_message":"bad key"}`},
		{"server error", http.StatusInternalServerError, `oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newGoogleGeocoder(server.URL, "maps-key").ReverseGeocode(context.Background(), 1, 2)
			assert.NotNil(t, err)
		})
	}
}
