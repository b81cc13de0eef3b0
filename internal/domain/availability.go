package domain

import "sort"

// EquipmentAvailability доступность мобильного оборудования на интервале отчёта
type EquipmentAvailability struct {
	EquipmentID int64
	Name        string
	Description string
	Total       int
	Reserved    int
	Available   int
}

// ReservedQuantity суммирует количество по всем выделениям, пересекающим окно
func ReservedQuantity(allocations []*EquipmentAllocation, window Interval) int {
	reserved := 0
	for _, a := range allocations {
		if window.Overlaps(a.Window()) {
			reserved += a.Quantity
		}
	}
	return reserved
}

// PeakUsage максимальное суммарное количество единиц, занятых в один момент времени.
// Концы интервалов обрабатываются раньше начал, поэтому стык [a,b) и [b,c) не суммируется.
func PeakUsage(allocations []*EquipmentAllocation) int {
	type event struct {
		at    int64
		delta int
	}

	events := make([]event, 0, len(allocations)*2)
	for _, a := range allocations {
		events = append(events,
			event{at: a.StartTime.Unix(), delta: a.Quantity},
			event{at: a.EndTime.Unix(), delta: -a.Quantity},
		)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].delta < events[j].delta
	})

	peak, current := 0, 0
	for _, e := range events {
		current += e.delta
		if current > peak {
			peak = current
		}
	}
	return peak
}

// ComputeAvailability строит отчёт по каждой единице мобильного оборудования.
// Немобильное оборудование в отчёт не попадает.
func ComputeAvailability(items []*Equipment, allocations []*EquipmentAllocation, window Interval) []EquipmentAvailability {
	byEquipment := make(map[int64][]*EquipmentAllocation)
	for _, a := range allocations {
		byEquipment[a.EquipmentID] = append(byEquipment[a.EquipmentID], a)
	}

	result := make([]EquipmentAvailability, 0, len(items))
	for _, item := range items {
		if item.Kind() != KindPooled {
			continue
		}

		reserved := ReservedQuantity(byEquipment[item.ID], window)
		available := item.Quantity - reserved
		if available < 0 {
			available = 0
		}

		result = append(result, EquipmentAvailability{
			EquipmentID: item.ID,
			Name:        item.Name,
			Description: item.Description,
			Total:       item.Quantity,
			Reserved:    reserved,
			Available:   available,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].EquipmentID < result[j].EquipmentID })
	return result
}
