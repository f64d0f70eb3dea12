package domain

import "errors"

// Ошибки, которые use case'ы возвращают наружу
var (
	ErrPropertyNotFound    = errors.New("property not found")
	ErrInvalidLocation     = errors.New("invalid location")
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmptyGeneration     = errors.New("text generator returned an empty response")
	ErrGeneratorDisabled   = errors.New("text generation is not configured")
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
)
