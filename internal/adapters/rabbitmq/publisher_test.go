package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestPublisher_Publish(t *testing.T) {
	ch := new(MockChannel)
	var sent amqp.Publishing
	ch.On("PublishWithContext", mock.Anything, "finance_events", "transaction.created", false, false, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
		Return(nil)

	p := NewPublisher(ch)
	err := p.Publish(context.Background(), "finance_events", "transaction.created", map[string]any{"eventId": "e-1"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)
	var body map[string]any
	require.NoError(t, json.Unmarshal(sent.Body, &body))
	assert.Equal(t, "e-1", body["eventId"])
	ch.AssertExpectations(t)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := new(MockChannel)
	ch.On("PublishWithContext", mock.Anything, "x", "k", false, false, mock.Anything).Return(errors.New("channel closed"))

	err := NewPublisher(ch).Publish(context.Background(), "x", "k", "body")
	assert.ErrorContains(t, err, "channel closed")
}

func TestPublisher_MarshalError(t *testing.T) {
	ch := new(MockChannel)

	err := NewPublisher(ch).Publish(context.Background(), "x", "k", make(chan int))
	assert.ErrorContains(t, err, "marshal")
	ch.AssertNotCalled(t, "PublishWithContext")
}
