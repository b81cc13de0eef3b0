package admit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	admitBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/admit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "бронировать от имени другого организатора может только администратор"
)

type Handler struct {
	useCase AdmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase AdmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AdmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, middleware.IsAdmin(r.Context())))
	if err != nil {
		if errors.Is(err, admitBooking.ErrForbidden) {
			h.logger.Warn("POST /bookings - Forbidden: user_id=%s, organizer=%s", userID, req.Organizer)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}

		if handlers.RespondAdmissionError(w, err) {
			h.logger.Warn("POST /bookings - Booking rejected: user_id=%s, room_id=%d, error=%v", userID, req.RoomID, err)
			return
		}

		h.logger.Error("POST /bookings - Failed to admit booking: user_id=%s, room_id=%d, error=%v",
			userID, req.RoomID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings - Booking admitted successfully: booking_id=%d, user_id=%s, room_id=%d",
		result.Booking.ID, userID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromBooking(result.Booking, result.SkippedEquipment))
}
