package rest

import (
	"encoding/json"
	"net/http"
	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"
	"property-service/internal/core/port/usecases_port"
)

type GenerationHandler struct {
	getAnswerUC      usecases_port.GetAnswerUseCase
	getDescriptionUC usecases_port.GetDescriptionUseCase
	getComparisonUC  usecases_port.GetComparisonUseCase
}

func NewGenerationHandler(
	getAnswerUC usecases_port.GetAnswerUseCase,
	getDescriptionUC usecases_port.GetDescriptionUseCase,
	getComparisonUC usecases_port.GetComparisonUseCase,
) *GenerationHandler {
	return &GenerationHandler{
		getAnswerUC:      getAnswerUC,
		getDescriptionUC: getDescriptionUC,
		getComparisonUC:  getComparisonUC,
	}
}

// GetAnswer обрабатывает POST /api/v1/ai/answer
func (h *GenerationHandler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	answer, err := h.getAnswerUC.Execute(r.Context(), req.Query, req.Context)
	if err != nil {
		writeGenerationError(w, r, "GetAnswer", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, AnswerResponse{Answer: answer})
}

// GetDescription обрабатывает POST /api/v1/ai/description
func (h *GenerationHandler) GetDescription(w http.ResponseWriter, r *http.Request) {
	var req domain.PropertyDescriptor
	if !decodeJSONBody(w, r, &req) {
		return
	}

	description, err := h.getDescriptionUC.Execute(r.Context(), req)
	if err != nil {
		writeGenerationError(w, r, "GetDescription", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DescriptionResponse{Description: description})
}

// GetComparison обрабатывает POST /api/v1/ai/comparison, тело - массив объектов
func (h *GenerationHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	var req []domain.PropertyDescriptor
	if !decodeJSONBody(w, r, &req) {
		return
	}

	comparison, err := h.getComparisonUC.Execute(r.Context(), req)
	if err != nil {
		writeGenerationError(w, r, "GetComparison", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ComparisonResponse{Comparison: comparison})
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(dst); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// writeGenerationError: любой сбой внешнего генератора - 502
func writeGenerationError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": handler})

	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		status, message = http.StatusBadGateway, "Text generation failed"
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Use case failed", err, nil)
	} else {
		logger.Warn("Use case rejected request", port.Fields{"error": err.Error()})
	}
	WriteJSONError(w, status, message)
}
