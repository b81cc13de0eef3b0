package admit_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	admitBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/admit_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

// EquipmentRequest запрос оборудования; без интервала используется интервал бронирования
type EquipmentRequest struct {
	EquipmentID int64      `json:"equipmentId"`
	Quantity    int        `json:"quantity"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
}

// AdmitBookingRequest HTTP request model
type AdmitBookingRequest struct {
	Title     string             `json:"title"`
	Organizer string             `json:"organizer,omitempty"` // только для администратора
	RoomID    int64              `json:"roomId"`
	StartTime time.Time          `json:"startTime"`
	EndTime   time.Time          `json:"endTime"`
	Attendees int                `json:"attendees"`
	Equipment []EquipmentRequest `json:"equipment,omitempty"`
}

// SkippedEquipmentResponse стационарное оборудование, уже закреплённое за комнатой
type SkippedEquipmentResponse struct {
	EquipmentID int64  `json:"equipmentId"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	*bookingModels.BookingResponse
	SkippedEquipment []SkippedEquipmentResponse `json:"skippedEquipment"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdmitBookingRequest) ToUseCaseRequest(actor string, isAdmin bool) *admitBooking.Request {
	return &admitBooking.Request{
		Actor:        actor,
		ActorIsAdmin: isAdmin,
		Organizer:    r.Organizer,
		Title:        r.Title,
		RoomID:       r.RoomID,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Attendees:    r.Attendees,
		Allocations:  ToAllocationRequests(r.Equipment),
	}
}

// ToAllocationRequests конвертирует запросы оборудования; nil остаётся nil
func ToAllocationRequests(equipment []EquipmentRequest) []admission.AllocationRequest {
	if equipment == nil {
		return nil
	}

	requests := make([]admission.AllocationRequest, 0, len(equipment))
	for _, e := range equipment {
		req := admission.AllocationRequest{EquipmentID: e.EquipmentID, Quantity: e.Quantity}
		if e.StartTime != nil {
			req.StartTime = *e.StartTime
		}
		if e.EndTime != nil {
			req.EndTime = *e.EndTime
		}
		requests = append(requests, req)
	}
	return requests
}

// FromBooking формирует ответ из сохранённого бронирования и пропущенного оборудования
func FromBooking(booking *domain.Booking, skipped []domain.FixedEquipment) *BookingResponse {
	resp := &BookingResponse{
		BookingResponse:  bookingModels.FromDomainBooking(booking),
		SkippedEquipment: make([]SkippedEquipmentResponse, 0, len(skipped)),
	}
	for _, f := range skipped {
		resp.SkippedEquipment = append(resp.SkippedEquipment, SkippedEquipmentResponse{
			EquipmentID: f.EquipmentID,
			Name:        f.Name,
			Quantity:    f.Quantity,
		})
	}
	return resp
}
