package geocoder_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"property-service/internal/adapters/metrics"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// errLocationUnresolved - у точки нет адреса (например, океан). Это штатный ответ, не сбой.
var errLocationUnresolved = errors.New("geocoder could not resolve location")

// errCallerGone - запрос прерван контекстом вызывающего, геокодер тут ни при чем
var errCallerGone = errors.New("geocoder request abandoned by caller")

type ClientConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RPS <= 0 снимает ограничение
	RPS float64
	// FailureThreshold - подряд идущие ошибки до размыкания
	FailureThreshold uint32
	// OpenTimeout - сколько breaker остается разомкнутым
	OpenTimeout time.Duration
}

// NominatimClient - HTTP-клиент обратного геокодирования (Nominatim-совместимый API).
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics.GeocoderMetrics
}

func NewNominatimClient(cfg ClientConfig, m *metrics.GeocoderMetrics) (*NominatimClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("geocoder base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	c := &NominatimClient{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		metrics:    m,
	}

	threshold := cfg.FailureThreshold
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: countsAsUpstreamSuccess,
		OnStateChange: func(_ string, _, to gobreaker.State) {
			m.SetBreakerState(stateToFloat(to))
		},
	})

	return c, nil
}

// countsAsUpstreamSuccess: breaker считает только сбои самого геокодера
func countsAsUpstreamSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, errLocationUnresolved) ||
		errors.Is(err, errCallerGone) ||
		errors.Is(err, context.Canceled)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// ReverseGeocode реализует GeocoderPort.
func (c *NominatimClient) ReverseGeocode(ctx context.Context, lat, lon float64) (*domain.Address, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "NominatimClient",
		"method":    "ReverseGeocode",
		"lat":       lat,
		"lon":       lon,
	})

	// ошибки лимитера breaker не учитывает
	if err := c.limiter.Wait(ctx); err != nil {
		c.metrics.ObserveLookup(metrics.LookupError)
		return nil, fmt.Errorf("%w: geocoder rate limiter: %w", errCallerGone, err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		address, err := c.reverse(ctx, lat, lon)
		if err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errCallerGone, err)
		}
		return address, err
	})
	if err != nil {
		c.metrics.ObserveLookup(metrics.LookupError)
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			clientLogger.Warn("Geocoder circuit breaker is open", nil)
			return nil, fmt.Errorf("%w: %v", domain.ErrGeocoderUnavailable, err)
		case errors.Is(err, errLocationUnresolved), errors.Is(err, errCallerGone):
			clientLogger.Debug("Reverse geocoding returned no address", port.Fields{"error": err.Error()})
		default:
			clientLogger.Error("Reverse geocoding request failed", err, nil)
		}
		return nil, err
	}

	c.metrics.ObserveLookup(metrics.LookupMiss)
	return result.(*domain.Address), nil
}

func (c *NominatimClient) reverse(ctx context.Context, lat, lon float64) (*domain.Address, error) {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	resp, err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/reverse?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to perform geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("geocoder returned non-200 status: %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", errLocationUnresolved, payload.Error)
	}

	return toDomainAddress(payload), nil
}

// doRequest прокидывает trace_id и обязательный для Nominatim User-Agent
func (c *NominatimClient) doRequest(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func toDomainAddress(payload reverseResponse) *domain.Address {
	city := payload.Address.City
	if city == "" {
		city = payload.Address.Town
	}
	if city == "" {
		city = payload.Address.Village
	}
	return &domain.Address{
		DisplayName: payload.DisplayName,
		Road:        payload.Address.Road,
		City:        city,
		State:       payload.Address.State,
		Postcode:    payload.Address.Postcode,
		Country:     payload.Address.Country,
	}
}
