package usecase

import (
	"context"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"

	"golang.org/x/sync/errgroup"
)

const defaultGeocodeFanout = 8

type GetAllPropertiesUseCase struct {
	storage  port.PropertyStoragePort
	geocoder port.GeocoderPort
	fanout   int
}

func NewGetAllPropertiesUseCase(storage port.PropertyStoragePort, geocoder port.GeocoderPort, fanout int) *GetAllPropertiesUseCase {
	if fanout <= 0 {
		fanout = defaultGeocodeFanout
	}
	return &GetAllPropertiesUseCase{storage: storage, geocoder: geocoder, fanout: fanout}
}

// Execute возвращает все объекты с адресами. Ошибка геокодирования одного объекта
// оставляет у него пустой адрес и не влияет на остальные.
func (uc *GetAllPropertiesUseCase) Execute(ctx context.Context) ([]domain.PropertyWithAddress, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetAllProperties",
		"fanout":   uc.fanout,
	})

	ucLogger.Info("Use case started", nil)

	properties, err := uc.storage.FindAll(ctx)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	result := make([]domain.PropertyWithAddress, len(properties))

	var g errgroup.Group
	g.SetLimit(uc.fanout)

	for i, prop := range properties {
		result[i] = domain.PropertyWithAddress{Property: prop}
		if uc.geocoder == nil {
			continue
		}

		g.Go(func() error {
			result[i].Address = uc.lookupAddress(ctx, ucLogger, prop)
			return nil
		})
	}
	_ = g.Wait()

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": len(result)})
	return result, nil
}

func (uc *GetAllPropertiesUseCase) lookupAddress(ctx context.Context, logger port.LoggerPort, prop domain.Property) string {
	lat, lon, err := domain.ParseLocation(prop.Location)
	if err != nil {
		logger.Warn("Skipping geocoding for unparsable location", port.Fields{
			"property_id": prop.ID,
			"location":    prop.Location,
		})
		return ""
	}

	address, err := uc.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		logger.Warn("Reverse geocoding failed", port.Fields{
			"property_id": prop.ID,
			"error":       err.Error(),
		})
		return ""
	}
	if address == nil {
		return ""
	}
	return address.DisplayName
}
