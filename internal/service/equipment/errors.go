package equipment

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
)

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = fmt.Errorf("%w: equipment.service: equipment not found", admission.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: equipment.service: invalid input data", admission.ErrInvalidArgument)

	// ErrEquipmentInUse возвращается при смене мобильности оборудования, на которое есть ссылки
	ErrEquipmentInUse = fmt.Errorf("%w: equipment.service: equipment is in use", admission.ErrConflict)

	// ErrStockBelowUsage возвращается при уменьшении запаса ниже пикового одновременного использования
	ErrStockBelowUsage = fmt.Errorf("%w: equipment.service: quantity is below committed usage", admission.ErrInsufficientCapacity)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: equipment.service", admission.ErrInternal)
)
