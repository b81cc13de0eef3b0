package rooms

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

type RoomService interface {
	Create(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error)
	GetByID(ctx context.Context, id int64) (*models.RoomResponse, error)
	List(ctx context.Context) (*models.RoomListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateRoomRequest) (*models.RoomResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
