package port

import (
	"context"
	"property-service/internal/core/domain"
)

type GeocoderPort interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*domain.Address, error)
}
