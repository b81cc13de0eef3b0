package revise_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	admitHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/admit_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	reviseBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/revise_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "изменить бронирование может только организатор или администратор"
)

type Handler struct {
	useCase ReviseBookingUseCase
	logger  Logger
}

func NewHandler(useCase ReviseBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseID(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ReviseBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, userID, middleware.IsAdmin(r.Context())))
	if err != nil {
		if errors.Is(err, reviseBooking.ErrForbidden) {
			h.logger.Warn("PUT /bookings/{id} - Forbidden: booking_id=%d, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}

		if handlers.RespondAdmissionError(w, err) {
			h.logger.Warn("PUT /bookings/{id} - Revision rejected: booking_id=%d, error=%v", bookingID, err)
			return
		}

		h.logger.Error("PUT /bookings/{id} - Failed to revise booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking revised successfully: booking_id=%d, user_id=%s", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, admitHandler.FromBooking(result.Booking, result.SkippedEquipment))
}
