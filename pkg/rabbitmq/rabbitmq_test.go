package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bloombuilder/internal/models"
	"bloombuilder/pkg/logger"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	called := m.Called(name, durable)
	return amqp.Queue{Name: name}, called.Error(0)
}

func (m *mockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

func (m *mockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	called := m.Called(queue)
	return called.Get(0).(<-chan amqp.Delivery), called.Error(1)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}

func TestNewClientDeclaresQueue(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", DefaultQueue, true).Return(nil).Once()

	client, err := newClient(ch, "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultQueue, client.queue)
	ch.AssertExpectations(t)

	failing := new(mockChannel)
	failing.On("QueueDeclare", "custom", true).Return(errors.New("access refused")).Once()
	_, err = newClient(failing, "custom", nil)
	assert.ErrorContains(t, err, "access refused")
}

func TestPublishFlowerEvent(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", DefaultQueue, true).Return(nil)
	client, err := newClient(ch, "", nil)
	require.NoError(t, err)

	event := models.FlowerEvent{
		Type:       models.FlowerCreated,
		FlowerID:   "f-1",
		Flower:     &models.Flower{ID: "f-1", Name: "Rose", Price: 2.5, Quantity: 100},
		OccurredAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	ch.On("Publish", "", DefaultQueue, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var decoded models.FlowerEvent
		if err := json.Unmarshal(msg.Body, &decoded); err != nil {
			return false
		}
		return msg.ContentType == "application/json" &&
			msg.DeliveryMode == amqp.Persistent &&
			msg.Type == "flower.created" &&
			decoded.Flower != nil && decoded.Flower.Name == "Rose"
	})).Return(nil).Once()

	require.NoError(t, client.PublishFlowerEvent(context.Background(), event))
	ch.AssertExpectations(t)
}

func TestPublishFlowerEventCancelledContext(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", DefaultQueue, true).Return(nil)
	client, err := newClient(ch, "", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, client.PublishFlowerEvent(ctx, models.FlowerEvent{Type: models.FlowerDeleted}), context.Canceled)
	ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettle(t *testing.T) {
	client := &Client{log: logger.Nop()}

	body, err := json.Marshal(models.FlowerEvent{Type: models.FlowerUpdated, FlowerID: "f-2"})
	require.NoError(t, err)

	var received models.FlowerEvent
	ok := &fakeAck{}
	client.settle(ok, 1, body, func(e models.FlowerEvent) error {
		received = e
		return nil
	})
	assert.True(t, ok.acked)
	assert.Equal(t, "f-2", received.FlowerID)

	failing := &fakeAck{}
	client.settle(failing, 2, body, func(models.FlowerEvent) error { return errors.New("busy") })
	assert.True(t, failing.nacked)
	assert.True(t, failing.requeue)

	garbage := &fakeAck{}
	client.settle(garbage, 3, []byte("not json"), func(models.FlowerEvent) error { return nil })
	assert.True(t, garbage.nacked)
	assert.False(t, garbage.requeue)
}

func TestConsumeFlowerEvents(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", DefaultQueue, true).Return(nil)
	deliveries := make(chan amqp.Delivery)
	ch.On("Consume", DefaultQueue).Return((<-chan amqp.Delivery)(deliveries), nil).Once()

	client, err := newClient(ch, "", nil)
	require.NoError(t, err)
	require.NoError(t, client.ConsumeFlowerEvents(func(models.FlowerEvent) error { return nil }))
	close(deliveries)
	ch.AssertExpectations(t)
}
