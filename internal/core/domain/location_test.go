package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{name: "plain", input: "12.97,77.59", lat: 12.97, lon: 77.59},
		{name: "spaces", input: " 40.7128 , -74.006 ", lat: 40.7128, lon: -74.006},
		{name: "integers", input: "0,0", lat: 0, lon: 0},
		{name: "single value", input: "12.97", wantErr: true},
		{name: "three values", input: "1,2,3", wantErr: true},
		{name: "not a number", input: "north,77.59", wantErr: true},
		{name: "latitude out of range", input: "91,10", wantErr: true},
		{name: "longitude out of range", input: "10,-181", wantErr: true},
		{name: "NaN", input: "NaN,10", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, err := ParseLocation(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidLocation)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.lat, lat, 1e-9)
			assert.InDelta(t, tt.lon, lon, 1e-9)
		})
	}
}

func TestFormatLocation_RoundTrip(t *testing.T) {
	s := FormatLocation(51.5074, -0.1278)
	assert.Equal(t, "51.5074,-0.1278", s)

	lat, lon, err := ParseLocation(s)
	require.NoError(t, err)
	assert.Equal(t, 51.5074, lat)
	assert.Equal(t, -0.1278, lon)
}

func TestPropertyUpdate_IsEmpty(t *testing.T) {
	assert.True(t, PropertyUpdate{}.IsEmpty())

	name := "Loft"
	assert.False(t, PropertyUpdate{Name: &name}.IsEmpty())
}
