package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbor-dev/arbor/internal/arborerrors"
)

func TestHubSubscribeAndPublish(t *testing.T) {
	hub := NewHub()
	id, ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()
	require.NotEmpty(t, id)
	assert.Equal(t, 1, hub.SubscriberCount())

	hub.Publish(Message{Type: TypeFocusNode, Payload: FocusNode{NodeID: "n1"}})

	msg := <-ch
	assert.Equal(t, TypeFocusNode, msg.Type)
	assert.Equal(t, FocusNode{NodeID: "n1"}, msg.Payload)
}

func TestHubUnsubscribeRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, _, unsubscribe := hub.Subscribe()
	assert.Equal(t, 1, hub.SubscriberCount())
	unsubscribe()
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestHubDropsLaggingSubscriber(t *testing.T) {
	hub := NewHub()
	var lagged *arborerrors.SubscriberLagError
	hub.OnLag = func(err *arborerrors.SubscriberLagError) { lagged = err }

	_, ch, _ := hub.Subscribe()

	for i := 0; i < subscriberCapacity+10; i++ {
		hub.Publish(Message{Type: TypeIndexerStatus, Payload: IndexerStatus{Pending: i}})
	}

	require.NotNil(t, lagged)
	assert.Equal(t, 0, hub.SubscriberCount())

	// Draining the channel should not panic even though the hub already
	// dropped and closed it.
	for range ch {
	}
}
