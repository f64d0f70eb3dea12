package rest

import (
	"encoding/json"
	"net/http"
	"property-service/internal/contextkeys"
	"property-service/internal/contracts"
	"property-service/internal/core/port"
	"property-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// клиенту не показываем причину ошибки создания
const addPropertyFailedMessage = "Failed to add property, try again or come back later."

type PropertyHandler struct {
	addPropertyUC        usecases_port.AddPropertyUseCase
	getAllPropertiesUC   usecases_port.GetAllPropertiesUseCase
	getPropertyByIDUC    usecases_port.GetPropertyByIDUseCase
	getPropertiesByOwner usecases_port.GetPropertiesByOwnerUseCase
	getPropertiesByIDsUC usecases_port.GetPropertiesByIDsUseCase
	updatePropertyUC     usecases_port.UpdatePropertyUseCase
	deletePropertyUC     usecases_port.DeletePropertyUseCase
}

func NewPropertyHandler(
	addPropertyUC usecases_port.AddPropertyUseCase,
	getAllPropertiesUC usecases_port.GetAllPropertiesUseCase,
	getPropertyByIDUC usecases_port.GetPropertyByIDUseCase,
	getPropertiesByOwner usecases_port.GetPropertiesByOwnerUseCase,
	getPropertiesByIDsUC usecases_port.GetPropertiesByIDsUseCase,
	updatePropertyUC usecases_port.UpdatePropertyUseCase,
	deletePropertyUC usecases_port.DeletePropertyUseCase,
) *PropertyHandler {
	return &PropertyHandler{
		addPropertyUC:        addPropertyUC,
		getAllPropertiesUC:   getAllPropertiesUC,
		getPropertyByIDUC:    getPropertyByIDUC,
		getPropertiesByOwner: getPropertiesByOwner,
		getPropertiesByIDsUC: getPropertiesByIDsUC,
		updatePropertyUC:     updatePropertyUC,
		deletePropertyUC:     deletePropertyUC,
	}
}

// AddProperty обрабатывает POST /api/v1/properties.
// Любая ошибка превращается в 400 с одним и тем же сообщением, детали только в логе.
func (h *PropertyHandler) AddProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "AddProperty"})

	body, err := readBody(w, r)
	if err != nil {
		handlerLogger.Warn("Failed to read request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, addPropertyFailedMessage)
		return
	}
	if err := contracts.ValidateRequest(contracts.PropertyRequest, contracts.SchemaVersionV1, body); err != nil {
		handlerLogger.Warn("Request body failed schema validation", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, addPropertyFailedMessage)
		return
	}

	var req PropertyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		handlerLogger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, addPropertyFailedMessage)
		return
	}

	created, err := h.addPropertyUC.Execute(r.Context(), req.toDomain())
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusBadRequest, addPropertyFailedMessage)
		return
	}

	RespondWithJSON(w, http.StatusOK, AddPropertyResponse{
		Message: "Property added successfully",
		Status:  http.StatusOK,
		ID:      created.ID,
	})
}

// GetAllProperties обрабатывает GET /api/v1/properties
func (h *PropertyHandler) GetAllProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	properties, err := h.getAllPropertiesUC.Execute(r.Context())
	if err != nil {
		logger.Error("Use case failed", err, port.Fields{"handler": "GetAllProperties"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, properties)
}

// GetPropertyByID обрабатывает GET /api/v1/properties/{id}
func (h *PropertyHandler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		logger.Warn("Invalid property ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID format")
		return
	}

	property, err := h.getPropertyByIDUC.Execute(r.Context(), id)
	if err != nil {
		h.writeUseCaseError(w, r, "GetPropertyByID", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, property)
}

// GetPropertiesByOwner обрабатывает GET /api/v1/owners/{owner}/properties
func (h *PropertyHandler) GetPropertiesByOwner(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	properties, err := h.getPropertiesByOwner.Execute(r.Context(), owner)
	if err != nil {
		h.writeUseCaseError(w, r, "GetPropertiesByOwner", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, properties)
}

// GetPropertiesByIDs обрабатывает POST /api/v1/properties/by-ids
func (h *PropertyHandler) GetPropertiesByIDs(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req PropertiesByIDsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	properties, err := h.getPropertiesByIDsUC.Execute(r.Context(), req.IDs)
	if err != nil {
		h.writeUseCaseError(w, r, "GetPropertiesByIDs", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, properties)
}

// UpdateProperty обрабатывает PUT /api/v1/properties/{id}
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		logger.Warn("Invalid property ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID format")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := contracts.ValidateRequest(contracts.PropertyUpdateRequest, contracts.SchemaVersionV1, body); err != nil {
		logger.Warn("Request body failed schema validation", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req PropertyUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.updatePropertyUC.Execute(r.Context(), id, req.toDomain())
	if err != nil {
		h.writeUseCaseError(w, r, "UpdateProperty", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteProperty обрабатывает DELETE /api/v1/properties/{id}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		logger.Warn("Invalid property ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID format")
		return
	}

	deleted, err := h.deletePropertyUC.Execute(r.Context(), id)
	if err != nil {
		h.writeUseCaseError(w, r, "DeleteProperty", err)
		return
	}

	RespondWithJSON(w, http.StatusOK, deleted)
}

func (h *PropertyHandler) writeUseCaseError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	status, message := statusForError(err)
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": handler})
	if status >= http.StatusInternalServerError {
		logger.Error("Use case failed", err, nil)
	} else {
		logger.Warn("Use case rejected request", port.Fields{"error": err.Error(), "status_code": status})
	}
	WriteJSONError(w, status, message)
}
