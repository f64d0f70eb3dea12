package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"property-service/internal/core/domain"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxRequestBodyBytes = 1 << 20

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// readBody читает тело запроса с ограничением размера
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

// parseIDParam разбирает {id} из URL, только положительные целые
func parseIDParam(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || !domain.IsValidPropertyID(id) {
		return 0, fmt.Errorf("invalid property id %q", idStr)
	}
	return id, nil
}

// statusForError сопоставляет доменные ошибки HTTP-статусам
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusNotFound, "Property not found"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidLocation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrGeneratorDisabled):
		return http.StatusServiceUnavailable, "Text generation is not configured"
	case errors.Is(err, domain.ErrEmptyGeneration):
		return http.StatusBadGateway, "Text generator returned an empty response"
	case errors.Is(err, domain.ErrGeocoderUnavailable):
		return http.StatusBadGateway, "Geocoder is unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
