package equipment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	equipmentService "github.com/m04kA/SMC-RoomBookingService/internal/service/equipment"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/equipment/models"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMobile      = "параметр mobile должен быть true или false"
	msgNotFound           = "оборудование не найдено"
)

// Handler обработчики каталога оборудования
type Handler struct {
	service EquipmentService
	logger  Logger
}

func NewHandler(service EquipmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/equipment
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /equipment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /equipment", 0, err)
		return
	}

	h.logger.Info("POST /equipment - Equipment created successfully: equipment_id=%d, mobile=%t", item.ID, item.Mobile)
	handlers.RespondJSON(w, http.StatusCreated, item)
}

// Get GET /api/v1/equipment/{equipmentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.parseEquipmentID(w, r, "GET /equipment/{id}")
	if !ok {
		return
	}

	item, err := h.service.GetByID(r.Context(), equipmentID)
	if err != nil {
		h.respondServiceError(w, "GET /equipment/{id}", equipmentID, err)
		return
	}

	h.logger.Info("GET /equipment/{id} - Equipment retrieved successfully: equipment_id=%d", equipmentID)
	handlers.RespondJSON(w, http.StatusOK, item)
}

// List GET /api/v1/equipment
// Query params: mobile (optional, true|false)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var mobile *bool
	if raw := r.URL.Query().Get("mobile"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /equipment - Invalid mobile filter: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidMobile)
			return
		}
		mobile = &value
	}

	result, err := h.service.List(r.Context(), mobile)
	if err != nil {
		h.logger.Error("GET /equipment - Failed to list equipment: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /equipment - Equipment retrieved successfully: count=%d", len(result.Equipment))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/equipment/{equipmentId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.parseEquipmentID(w, r, "PUT /equipment/{id}")
	if !ok {
		return
	}

	var req models.UpdateEquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /equipment/{id} - Invalid request body: equipment_id=%d, error=%v", equipmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.Update(r.Context(), equipmentID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /equipment/{id}", equipmentID, err)
		return
	}

	h.logger.Info("PUT /equipment/{id} - Equipment updated successfully: equipment_id=%d", equipmentID)
	handlers.RespondJSON(w, http.StatusOK, item)
}

// Delete DELETE /api/v1/equipment/{equipmentId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.parseEquipmentID(w, r, "DELETE /equipment/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), equipmentID); err != nil {
		h.respondServiceError(w, "DELETE /equipment/{id}", equipmentID, err)
		return
	}

	h.logger.Info("DELETE /equipment/{id} - Equipment deleted successfully: equipment_id=%d", equipmentID)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseEquipmentID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	equipmentID, err := handlers.ParseID(mux.Vars(r)["equipmentId"])
	if err != nil {
		h.logger.Warn("%s - Invalid equipment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return 0, false
	}
	return equipmentID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, equipmentID int64, err error) {
	switch {
	case errors.Is(err, equipmentService.ErrEquipmentNotFound):
		h.logger.Warn("%s - Equipment not found: equipment_id=%d", route, equipmentID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, equipmentService.ErrInvalidInput):
		h.logger.Warn("%s - Validation error: equipment_id=%d, error=%v", route, equipmentID, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, equipmentService.ErrEquipmentInUse), errors.Is(err, equipmentService.ErrStockBelowUsage):
		h.logger.Warn("%s - Conflict: equipment_id=%d, error=%v", route, equipmentID, err)
		handlers.RespondConflict(w, err.Error())

	default:
		h.logger.Error("%s - Internal error: equipment_id=%d, error=%v", route, equipmentID, err)
		handlers.RespondInternalError(w)
	}
}
