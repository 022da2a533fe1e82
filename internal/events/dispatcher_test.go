package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	t.Parallel()

	dispatcher := NewInMemoryDispatcher()
	var received []Event
	dispatcher.Subscribe(EventProductCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		Type:     EventProductCreated,
		EntityID: "product-1",
		ActorID:  "admin-1",
	})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, "product-1", received[0].EntityID)
	assert.Equal(t, "admin-1", received[0].ActorID)
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	t.Parallel()

	dispatcher := NewInMemoryDispatcher()
	called := 0
	dispatcher.Subscribe(EventProductDeleted, func(_ context.Context, _ Event) error {
		called++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventProductCreated}))
	assert.Zero(t, called)
}

func TestDispatcherFailingHandlerDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	dispatcher := NewInMemoryDispatcher()
	dispatcher.Subscribe(EventUserRegistered, func(_ context.Context, _ Event) error {
		return errors.New("handler failure")
	})
	reached := false
	dispatcher.Subscribe(EventUserRegistered, func(_ context.Context, _ Event) error {
		reached = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventUserRegistered}))
	assert.True(t, reached)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	t.Parallel()

	dispatcher := NewInMemoryDispatcher()
	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventProductUpdated}))
}
