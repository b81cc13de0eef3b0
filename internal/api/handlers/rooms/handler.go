package rooms

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	roomsService "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

const (
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "комната не найдена"
)

// Handler обработчики каталога комнат
type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/rooms
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /rooms", 0, err)
		return
	}

	h.logger.Info("POST /rooms - Room created successfully: room_id=%d, fixtures=%d", room.ID, len(room.Fixtures))
	handlers.RespondJSON(w, http.StatusCreated, room)
}

// Get GET /api/v1/rooms/{roomId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.parseRoomID(w, r, "GET /rooms/{id}")
	if !ok {
		return
	}

	room, err := h.service.GetByID(r.Context(), roomID)
	if err != nil {
		h.respondServiceError(w, "GET /rooms/{id}", roomID, err)
		return
	}

	h.logger.Info("GET /rooms/{id} - Room retrieved successfully: room_id=%d", roomID)
	handlers.RespondJSON(w, http.StatusOK, room)
}

// List GET /api/v1/rooms
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms - Rooms retrieved successfully: count=%d", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/rooms/{roomId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.parseRoomID(w, r, "PUT /rooms/{id}")
	if !ok {
		return
	}

	var req models.UpdateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rooms/{id} - Invalid request body: room_id=%d, error=%v", roomID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.Update(r.Context(), roomID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /rooms/{id}", roomID, err)
		return
	}

	h.logger.Info("PUT /rooms/{id} - Room updated successfully: room_id=%d", roomID)
	handlers.RespondJSON(w, http.StatusOK, room)
}

// Delete DELETE /api/v1/rooms/{roomId}
// Бронирования комнаты сохраняются с пустой ссылкой на комнату
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.parseRoomID(w, r, "DELETE /rooms/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), roomID); err != nil {
		h.respondServiceError(w, "DELETE /rooms/{id}", roomID, err)
		return
	}

	h.logger.Info("DELETE /rooms/{id} - Room deleted successfully: room_id=%d", roomID)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseRoomID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	roomID, err := handlers.ParseID(mux.Vars(r)["roomId"])
	if err != nil {
		h.logger.Warn("%s - Invalid room ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return 0, false
	}
	return roomID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, roomID int64, err error) {
	switch {
	case errors.Is(err, roomsService.ErrRoomNotFound):
		h.logger.Warn("%s - Room not found: room_id=%d", route, roomID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, roomsService.ErrInvalidInput), errors.Is(err, roomsService.ErrCapacityBelowBookings):
		h.logger.Warn("%s - Validation error: room_id=%d, error=%v", route, roomID, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Internal error: room_id=%d, error=%v", route, roomID, err)
		handlers.RespondInternalError(w)
	}
}
