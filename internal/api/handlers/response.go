// Package handlers содержит общие функции HTTP-слоя: разбор тела запроса и формирование ответов.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgRoomConflict  = "комната уже забронирована на пересекающийся интервал"
	msgNoCapacity    = "недостаточно свободного оборудования на запрошенном интервале"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ConflictDetail пересекающееся бронирование комнаты
type ConflictDetail struct {
	BookingID int64     `json:"bookingId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// CapacityDetail запрошенное и доступное количество оборудования
type CapacityDetail struct {
	EquipmentID int64     `json:"equipmentId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Requested   int       `json:"requested"`
	Available   int       `json:"available"`
	Total       int       `json:"total"`
}

// DecodeJSON декодирует тело запроса, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// RespondJSON отправляет ответ в формате JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondNoContent отправляет пустой ответ 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondErrorWithDetails отправляет ответ с ошибкой и деталями
func RespondErrorWithDetails(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message, Details: details})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError отправляет 500 без подробностей: они только в логах
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondAdmissionError переводит ошибку допуска в HTTP-ответ по категории.
// Возвращает false, если ошибка не относится ни к одной категории.
func RespondAdmissionError(w http.ResponseWriter, err error) bool {
	var conflict *admission.RoomConflictError
	var capacity *admission.CapacityError

	switch {
	case errors.As(err, &conflict):
		details := make([]ConflictDetail, 0, len(conflict.Conflicts))
		for _, b := range conflict.Conflicts {
			details = append(details, ConflictDetail{BookingID: b.ID, StartTime: b.StartTime, EndTime: b.EndTime})
		}
		RespondErrorWithDetails(w, http.StatusConflict, msgRoomConflict, details)

	case errors.As(err, &capacity):
		RespondErrorWithDetails(w, http.StatusConflict, msgNoCapacity, CapacityDetail{
			EquipmentID: capacity.EquipmentID,
			StartTime:   capacity.Window.Start,
			EndTime:     capacity.Window.End,
			Requested:   capacity.Requested,
			Available:   capacity.Available(),
			Total:       capacity.Total,
		})

	case errors.Is(err, admission.ErrInvalidArgument):
		RespondBadRequest(w, err.Error())

	case errors.Is(err, admission.ErrNotFound):
		RespondNotFound(w, err.Error())

	case errors.Is(err, admission.ErrConflict):
		RespondConflict(w, err.Error())

	case errors.Is(err, admission.ErrInsufficientCapacity):
		RespondConflict(w, err.Error())

	default:
		return false
	}

	return true
}

// ParseID разбирает положительный идентификатор из пути
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive, got %d", id)
	}
	return id, nil
}

// ParseTime разбирает время в формате RFC 3339
func ParseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}
