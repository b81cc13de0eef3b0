package equipment

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/equipment/models"
)

type EquipmentService interface {
	Create(ctx context.Context, req *models.CreateEquipmentRequest) (*models.EquipmentResponse, error)
	GetByID(ctx context.Context, id int64) (*models.EquipmentResponse, error)
	List(ctx context.Context, mobile *bool) (*models.EquipmentListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateEquipmentRequest) (*models.EquipmentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
