package report_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	reportAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/report_availability"
)

const (
	msgMissingWindow = "параметры start и end обязательны"
	msgInvalidTime   = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidWindow = "начало интервала должно быть раньше конца"
)

type Handler struct {
	useCase ReportAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ReportAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/availability
// Query params: start, end (required, RFC 3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /equipment/availability - Missing window")
		handlers.RespondBadRequest(w, msgMissingWindow)
		return
	}

	useCaseReq, err := ToUseCaseRequest(startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /equipment/availability - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reportAvailability.ErrInvalidInput):
			h.logger.Warn("GET /equipment/availability - Invalid window: start=%s, end=%s", startStr, endStr)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /equipment/availability - Failed to build report: start=%s, end=%s, error=%v",
				startStr, endStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /equipment/availability - Report built successfully: window=%s, items=%d, cached=%t",
		result.Window, len(result.Items), result.Cached)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
