package domain

import "time"

// EquipmentKind вид использования оборудования
type EquipmentKind string

const (
	// KindFixed оборудование закреплено за комнатой и не бронируется по времени
	KindFixed EquipmentKind = "fixed"
	// KindPooled оборудование из общего пула, выделяется бронированиям на интервал
	KindPooled EquipmentKind = "pooled"
)

// Equipment единица учёта оборудования
type Equipment struct {
	ID          int64
	Name        string
	Description string
	Quantity    int  // общий запас по организации
	Mobile      bool // true - переносное, распределяется через пул

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Kind возвращает вид использования оборудования
func (e *Equipment) Kind() EquipmentKind {
	if e.Mobile {
		return KindPooled
	}
	return KindFixed
}

// EquipmentUse вариант использования оборудования: FixedEquipment или PooledEquipment
type EquipmentUse interface {
	Kind() EquipmentKind
	isEquipmentUse()
}

// FixedEquipment оборудование, закреплённое за комнатой
type FixedEquipment struct {
	RoomID      int64
	EquipmentID int64
	Name        string
	Quantity    int
}

func (FixedEquipment) Kind() EquipmentKind { return KindFixed }
func (FixedEquipment) isEquipmentUse()     {}

// PooledEquipment выделение единиц из пула на интервал
type PooledEquipment struct {
	EquipmentID int64
	Quantity    int
	Window      Interval
}

func (PooledEquipment) Kind() EquipmentKind { return KindPooled }
func (PooledEquipment) isEquipmentUse()     {}

// ClassifyUse определяет вариант использования оборудования.
// Это единственное место, где читается флаг Mobile.
func ClassifyUse(equipment *Equipment, quantity int, window Interval) EquipmentUse {
	if equipment.Mobile {
		return PooledEquipment{
			EquipmentID: equipment.ID,
			Quantity:    quantity,
			Window:      window,
		}
	}
	return FixedEquipment{
		EquipmentID: equipment.ID,
		Name:        equipment.Name,
		Quantity:    quantity,
	}
}
