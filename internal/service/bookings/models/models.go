package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	UserID    string     `json:"userId"`
	RoomID    *int64     `json:"roomId,omitempty"`    // Фильтр по комнате (опционально)
	Organizer *string    `json:"organizer,omitempty"` // Фильтр по организатору (опционально)
	From      *time.Time `json:"from,omitempty"`      // Начало периода (опционально)
	To        *time.Time `json:"to,omitempty"`        // Конец периода (опционально)
	Mine      bool       `json:"mine,omitempty"`      // Только бронирования текущего пользователя
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	filter := domain.BookingsFilter{
		RoomID:    r.RoomID,
		Organizer: r.Organizer,
	}

	if r.Mine {
		organizer := r.UserID
		filter.Organizer = &organizer
	}
	if r.From != nil {
		from := domain.NormalizeTime(*r.From)
		filter.From = &from
	}
	if r.To != nil {
		to := domain.NormalizeTime(*r.To)
		filter.To = &to
	}

	return filter
}

// WithdrawBookingRequest запрос на отзыв бронирования
type WithdrawBookingRequest struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

// Response модели

// AllocationResponse выделение мобильного оборудования
type AllocationResponse struct {
	ID          int64     `json:"id"`
	EquipmentID int64     `json:"equipmentId"`
	Quantity    int       `json:"quantity"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64                `json:"id"`
	Title       string               `json:"title"`
	Organizer   string               `json:"organizer"`
	RoomID      *int64               `json:"roomId"` // null, если комната удалена
	StartTime   time.Time            `json:"startTime"`
	EndTime     time.Time            `json:"endTime"`
	Attendees   int                  `json:"attendees"`
	Allocations []AllocationResponse `json:"allocations"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		Title:       b.Title,
		Organizer:   b.Organizer,
		RoomID:      b.RoomID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Attendees:   b.Attendees,
		Allocations: make([]AllocationResponse, 0, len(b.Allocations)),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	for _, a := range b.Allocations {
		resp.Allocations = append(resp.Allocations, AllocationResponse{
			ID:          a.ID,
			EquipmentID: a.EquipmentID,
			Quantity:    a.Quantity,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
