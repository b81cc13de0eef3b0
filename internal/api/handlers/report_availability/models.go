package report_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	reportAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/report_availability"
)

// EquipmentAvailabilityResponse доступность одной единицы мобильного оборудования
type EquipmentAvailabilityResponse struct {
	EquipmentID int64  `json:"equipmentId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Total       int    `json:"total"`
	Reserved    int    `json:"reserved"`
	Available   int    `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	StartTime time.Time                       `json:"startTime"`
	EndTime   time.Time                       `json:"endTime"`
	Equipment []EquipmentAvailabilityResponse `json:"equipment"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров start и end (RFC 3339)
func ToUseCaseRequest(startStr, endStr string) (*reportAvailability.Request, error) {
	start, err := handlers.ParseTime(startStr)
	if err != nil {
		return nil, err
	}

	end, err := handlers.ParseTime(endStr)
	if err != nil {
		return nil, err
	}

	return &reportAvailability.Request{Start: start, End: end}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reportAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		StartTime: resp.Window.Start,
		EndTime:   resp.Window.End,
		Equipment: make([]EquipmentAvailabilityResponse, 0, len(resp.Items)),
	}

	for _, item := range resp.Items {
		result.Equipment = append(result.Equipment, EquipmentAvailabilityResponse{
			EquipmentID: item.EquipmentID,
			Name:        item.Name,
			Description: item.Description,
			Total:       item.Total,
			Reserved:    item.Reserved,
			Available:   item.Available,
		})
	}

	return result
}
