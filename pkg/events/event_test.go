package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingKey(t *testing.T) {
	event := NewEvent(ProductDeletedEvent, EventVersionV1, ProductDeletedPayload{ID: "p1"}, Headers{TraceID: "t1"})

	assert.Equal(t, "product.deleted.v1", event.GetRoutingKey())
	assert.Equal(t, "t1", event.TraceID)
}

func TestDecodePayloadAfterTransport(t *testing.T) {
	event := NewEvent(CategoryCreatedEvent, EventVersionV1, CategoryCreatedPayload{ID: "c1", Name: "Minuman", Actor: "admin"}, Headers{})
	body, err := event.ToJSON()
	require.NoError(t, err)

	var received Event
	require.NoError(t, json.Unmarshal(body, &received))

	var payload CategoryCreatedPayload
	require.NoError(t, received.DecodePayload(&payload))
	assert.Equal(t, "c1", payload.ID)
	assert.Equal(t, "Minuman", payload.Name)
	assert.Equal(t, "admin", payload.Actor)
}

func TestCorrelationIDFallsBackToFreshID(t *testing.T) {
	assert.Equal(t, "req-1", CorrelationID(WithCorrelationID(context.Background(), "req-1")))
	assert.Len(t, CorrelationID(context.Background()), 36)
}
