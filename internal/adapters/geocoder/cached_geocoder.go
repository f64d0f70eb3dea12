package geocoder_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"property-service/internal/adapters/metrics"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"time"

	"github.com/mmcloughlin/geohash"
	goredis "github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "geocode:"
	// ячейка ~4.8м x 4.8м
	cacheGeohashPrecision = 9
	defaultCacheTTL       = 24 * time.Hour
)

// CachedGeocoder - read-through кэш в Redis поверх другого GeocoderPort.
// Ошибки Redis не фатальны: запрос уходит напрямую в геокодер.
type CachedGeocoder struct {
	rdb     goredis.Cmdable
	next    port.GeocoderPort
	ttl     time.Duration
	metrics *metrics.GeocoderMetrics
}

func NewCachedGeocoder(rdb goredis.Cmdable, next port.GeocoderPort, ttl time.Duration, m *metrics.GeocoderMetrics) *CachedGeocoder {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedGeocoder{rdb: rdb, next: next, ttl: ttl, metrics: m}
}

func cacheKey(lat, lon float64) string {
	return cacheKeyPrefix + geohash.EncodeWithPrecision(lat, lon, cacheGeohashPrecision)
}

func (g *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (*domain.Address, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	key := cacheKey(lat, lon)
	cacheLogger := logger.WithFields(port.Fields{
		"component": "CachedGeocoder",
		"cache_key": key,
	})

	data, err := g.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var cached cachedAddress
		if err := json.Unmarshal(data, &cached); err != nil {
			cacheLogger.Warn("Failed to unmarshal cached address, falling through to geocoder", port.Fields{"error": err.Error()})
		} else {
			g.metrics.ObserveLookup(metrics.LookupHit)
			return &domain.Address{
				DisplayName: cached.DisplayName,
				Road:        cached.Road,
				City:        cached.City,
				State:       cached.State,
				Postcode:    cached.Postcode,
				Country:     cached.Country,
			}, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		cacheLogger.Warn("Redis geocode cache GET failed, falling through to geocoder", port.Fields{"error": err.Error()})
	}

	address, err := g.next.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cachedAddress{
		DisplayName: address.DisplayName,
		Road:        address.Road,
		City:        address.City,
		State:       address.State,
		Postcode:    address.Postcode,
		Country:     address.Country,
	})
	if err == nil {
		if err := g.rdb.Set(ctx, key, payload, g.ttl).Err(); err != nil {
			cacheLogger.Warn("Failed to cache geocoded address", port.Fields{"error": err.Error()})
		}
	}

	return address, nil
}
