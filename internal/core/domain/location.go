package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseLocation разбирает строку вида "lat,lon"
func ParseLocation(location string) (lat, lon float64, err error) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected \"lat,lon\", got %q", ErrInvalidLocation, location)
	}

	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad latitude %q", ErrInvalidLocation, parts[0])
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad longitude %q", ErrInvalidLocation, parts[1])
	}

	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("%w: coordinates out of range (%v, %v)", ErrInvalidLocation, lat, lon)
	}
	return lat, lon, nil
}

// FormatLocation - обратная операция к ParseLocation
func FormatLocation(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
