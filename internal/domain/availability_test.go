package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservedQuantity(t *testing.T) {
	allocations := []*EquipmentAllocation{
		{EquipmentID: 1, Quantity: 2, StartTime: at(9, 0), EndTime: at(10, 0)},
		{EquipmentID: 1, Quantity: 1, StartTime: at(10, 0), EndTime: at(11, 0)},
		{EquipmentID: 1, Quantity: 3, StartTime: at(12, 0), EndTime: at(13, 0)},
	}

	assert.Equal(t, 2, ReservedQuantity(allocations, Interval{at(9, 30), at(9, 45)}))
	assert.Equal(t, 3, ReservedQuantity(allocations, Interval{at(9, 30), at(10, 30)}))
	assert.Equal(t, 0, ReservedQuantity(allocations, Interval{at(11, 0), at(12, 0)}))
}

func TestPeakUsage(t *testing.T) {
	tests := []struct {
		name        string
		allocations []*EquipmentAllocation
		expected    int
	}{
		{"empty", nil, 0},
		{
			name: "back to back allocations do not stack",
			allocations: []*EquipmentAllocation{
				{Quantity: 2, StartTime: at(9, 0), EndTime: at(10, 0)},
				{Quantity: 2, StartTime: at(10, 0), EndTime: at(11, 0)},
			},
			expected: 2,
		},
		{
			name: "nested allocations stack",
			allocations: []*EquipmentAllocation{
				{Quantity: 1, StartTime: at(9, 0), EndTime: at(12, 0)},
				{Quantity: 2, StartTime: at(10, 0), EndTime: at(11, 0)},
				{Quantity: 1, StartTime: at(10, 30), EndTime: at(13, 0)},
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PeakUsage(tt.allocations))
		})
	}
}

func TestComputeAvailability(t *testing.T) {
	items := []*Equipment{
		{ID: 2, Name: "Speaker", Quantity: 4, Mobile: true},
		{ID: 1, Name: "Projector", Description: "HD", Quantity: 2, Mobile: true},
		{ID: 3, Name: "Whiteboard", Quantity: 1, Mobile: false},
	}
	allocations := []*EquipmentAllocation{
		{EquipmentID: 1, Quantity: 2, StartTime: at(9, 0), EndTime: at(10, 0)},
		{EquipmentID: 2, Quantity: 1, StartTime: at(10, 0), EndTime: at(11, 0)},
	}

	report := ComputeAvailability(items, allocations, Interval{at(9, 0), at(10, 0)})

	assert.Equal(t, []EquipmentAvailability{
		{EquipmentID: 1, Name: "Projector", Description: "HD", Total: 2, Reserved: 2, Available: 0},
		{EquipmentID: 2, Name: "Speaker", Total: 4, Reserved: 0, Available: 4},
	}, report)
}

func TestComputeAvailability_ClampsOverbookedStock(t *testing.T) {
	items := []*Equipment{{ID: 1, Name: "Projector", Quantity: 1, Mobile: true}}
	allocations := []*EquipmentAllocation{
		{EquipmentID: 1, Quantity: 3, StartTime: at(9, 0), EndTime: at(10, 0)},
	}

	report := ComputeAvailability(items, allocations, Interval{at(9, 0), at(10, 0)})

	assert.Equal(t, 3, report[0].Reserved)
	assert.Equal(t, 0, report[0].Available)
}
