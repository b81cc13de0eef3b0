package bookingevents

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	declareErr error
	publishErr error
}

func (c *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	if c.declareErr != nil {
		return amqp.Queue{}, c.declareErr
	}
	if durable {
		c.declared = append(c.declared, name)
	}
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:        42,
		Title:     "Planning",
		Organizer: "alice",
		RoomID:    ptr.Ptr(int64(3)),
		StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Attendees: 5,
		Allocations: []*domain.EquipmentAllocation{
			{EquipmentID: 1, Quantity: 2, StartTime: time.Date(2026, 3, 2, 8, 45, 0, 0, time.UTC), EndTime: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
		},
	}
}

func TestNewPublisher_DeclaresDurableQueue(t *testing.T) {
	ch := &fakeChannel{}

	_, err := NewPublisher(ch, "")

	require.NoError(t, err)
	assert.Equal(t, []string{DefaultQueue}, ch.declared)
}

func TestNewPublisher_DeclareError(t *testing.T) {
	_, err := NewPublisher(&fakeChannel{declareErr: errors.New("channel closed")}, "events")

	assert.ErrorIs(t, err, ErrDeclareQueue)
}

func TestPublish_SendsPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	publisher, err := NewPublisher(ch, "events")
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), EventAdmitted, testBooking()))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, []string{"events"}, ch.keys)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "booking.admitted", msg.Type)

	var event Event
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	assert.Equal(t, msg.MessageId, event.EventID)
	_, err = uuid.Parse(event.EventID)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), event.Booking.ID)
	assert.Equal(t, int64(3), *event.Booking.RoomID)
	require.Len(t, event.Booking.Allocations, 1)
	assert.Equal(t, 2, event.Booking.Allocations[0].Quantity)
}

func TestPublish_WrapsChannelError(t *testing.T) {
	publisher, err := NewPublisher(&fakeChannel{publishErr: amqp.ErrClosed}, "events")
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), EventWithdrawn, testBooking())

	assert.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NewNopPublisher().Publish(context.Background(), EventRevised, testBooking()))
}
