package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{`"2024-05-01T10:30:00Z"`, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{`"2024-05-01T16:00:00+05:30"`, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{`"2024-05-01T10:30:00.123"`, time.Date(2024, 5, 1, 10, 30, 0, 123000000, time.UTC)},
		{`"2024-05-01 10:30:00"`, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		ts := Timestamp{}
		require.Nil(t, json.Unmarshal([]byte(tc.input), &ts), tc.input)
		assert.True(t, tc.expected.Equal(ts.Time), tc.input)
	}

	ts := Timestamp{}
	assert.NotNil(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestLocationRequestDefaults(t *testing.T) {
	req := LocationRequest{}
	require.Nil(t, json.Unmarshal([]byte(`{"latitude": 0, "longitude": 0}`), &req))

	location := req.toLocation()
	assert.Equal(t, 0.0, location.Latitude)
	assert.Nil(t, location.Address)
	assert.WithinDuration(t, time.Now(), location.Timestamp, time.Minute)
}
