package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// CreateEquipmentRequest запрос на создание оборудования
type CreateEquipmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	Mobile      bool   `json:"mobile"`
}

// ToDomainEquipment конвертирует request в domain модель
func (r *CreateEquipmentRequest) ToDomainEquipment() *domain.Equipment {
	return &domain.Equipment{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Quantity:    r.Quantity,
		Mobile:      r.Mobile,
	}
}

// UpdateEquipmentRequest запрос на обновление оборудования
// Все поля опциональны - обновляются только переданные значения
type UpdateEquipmentRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Mobile      *bool   `json:"mobile,omitempty"`
}

// ApplyToEquipment применяет переданные поля к оборудованию
func (r *UpdateEquipmentRequest) ApplyToEquipment(item *domain.Equipment) {
	if r.Name != nil {
		item.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		item.Description = strings.TrimSpace(*r.Description)
	}
	if r.Quantity != nil {
		item.Quantity = *r.Quantity
	}
	if r.Mobile != nil {
		item.Mobile = *r.Mobile
	}
}

// Response модели

// EquipmentResponse ответ с данными оборудования
type EquipmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	Mobile      bool      `json:"mobile"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EquipmentListResponse ответ со списком оборудования
type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}

// FromDomainEquipment конвертирует domain модель в DTO
func FromDomainEquipment(e *domain.Equipment) *EquipmentResponse {
	if e == nil {
		return nil
	}

	return &EquipmentResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Quantity:    e.Quantity,
		Mobile:      e.Mobile,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// FromDomainEquipmentList конвертирует список domain моделей в DTO
func FromDomainEquipmentList(items []*domain.Equipment) *EquipmentListResponse {
	resp := &EquipmentListResponse{
		Equipment: make([]EquipmentResponse, 0, len(items)),
	}

	for _, item := range items {
		if itemResp := FromDomainEquipment(item); itemResp != nil {
			resp.Equipment = append(resp.Equipment, *itemResp)
		}
	}

	return resp
}
