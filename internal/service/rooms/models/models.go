package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// FixtureRequest закрепление оборудования за комнатой
type FixtureRequest struct {
	EquipmentID int64 `json:"equipmentId"`
	Quantity    int   `json:"quantity"`
}

// CreateRoomRequest запрос на создание комнаты
type CreateRoomRequest struct {
	Name     string           `json:"name"`
	Capacity int              `json:"capacity"`
	Fixtures []FixtureRequest `json:"fixtures,omitempty"`
}

// UpdateRoomRequest запрос на обновление комнаты
// Все поля опциональны - обновляются только переданные значения
type UpdateRoomRequest struct {
	Name     *string           `json:"name,omitempty"`
	Capacity *int              `json:"capacity,omitempty"`
	Fixtures *[]FixtureRequest `json:"fixtures,omitempty"` // заменяет весь набор
}

// ApplyToRoom применяет переданные поля к комнате
func (r *UpdateRoomRequest) ApplyToRoom(room *domain.Room) {
	if r.Name != nil {
		room.Name = *r.Name
	}
	if r.Capacity != nil {
		room.Capacity = *r.Capacity
	}
}

// Response модели

// FixtureResponse закреплённое оборудование
type FixtureResponse struct {
	EquipmentID int64  `json:"equipmentId"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
}

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Capacity  int               `json:"capacity"`
	Fixtures  []FixtureResponse `json:"fixtures"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// Методы конвертации

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}

	resp := &RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		Fixtures:  make([]FixtureResponse, 0, len(r.Fixtures)),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	for _, f := range r.Fixtures {
		resp.Fixtures = append(resp.Fixtures, FixtureResponse{
			EquipmentID: f.EquipmentID,
			Name:        f.Name,
			Quantity:    f.Quantity,
		})
	}

	return resp
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	resp := &RoomListResponse{
		Rooms: make([]RoomResponse, 0, len(rooms)),
	}

	for _, room := range rooms {
		if roomResp := FromDomainRoom(room); roomResp != nil {
			resp.Rooms = append(resp.Rooms, *roomResp)
		}
	}

	return resp
}
