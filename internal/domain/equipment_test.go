package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUse(t *testing.T) {
	window := Interval{at(9, 0), at(10, 0)}

	t.Run("mobile item is pooled", func(t *testing.T) {
		projector := &Equipment{ID: 7, Name: "Projector", Quantity: 2, Mobile: true}

		use := ClassifyUse(projector, 1, window)

		pooled, ok := use.(PooledEquipment)
		require.True(t, ok)
		assert.Equal(t, KindPooled, use.Kind())
		assert.Equal(t, int64(7), pooled.EquipmentID)
		assert.Equal(t, 1, pooled.Quantity)
		assert.Equal(t, window, pooled.Window)
	})

	t.Run("non-mobile item is a fixture", func(t *testing.T) {
		whiteboard := &Equipment{ID: 3, Name: "Whiteboard", Quantity: 5, Mobile: false}

		use := ClassifyUse(whiteboard, 1, window)

		fixed, ok := use.(FixedEquipment)
		require.True(t, ok)
		assert.Equal(t, KindFixed, use.Kind())
		assert.Equal(t, "Whiteboard", fixed.Name)
		assert.Equal(t, KindFixed, whiteboard.Kind())
	})
}

func TestBooking_IsOrganizedBy(t *testing.T) {
	b := &Booking{Organizer: "alice"}

	assert.True(t, b.IsOrganizedBy("alice"))
	assert.False(t, b.IsOrganizedBy("bob"))
	assert.False(t, (&Booking{}).IsOrganizedBy(""))
}

func TestRoom_Fits(t *testing.T) {
	room := &Room{Capacity: 4}

	assert.True(t, room.Fits(4))
	assert.True(t, room.Fits(0))
	assert.False(t, room.Fits(5))
}
