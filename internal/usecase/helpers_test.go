package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	ws "chitchat/internal/infrastructure/websocket"
)

// connect registers a fresh connection for userID on the hub. Delivery is
// synchronous in the hub, so tests read events straight off client.Send.
func connect(hub *ws.Hub, userID string) *ws.Client {
	client := ws.NewClient(nil)
	client.UserID = userID
	hub.Register(client)
	return client
}

func nextEvent(t *testing.T, client *ws.Client) ws.Event {
	t.Helper()

	select {
	case raw := <-client.Send:
		var event ws.Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	default:
		t.Fatal("expected a queued event, got none")
		return ws.Event{}
	}
}

func decodePayload(t *testing.T, event ws.Event, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(event.Data, out))
}

func noEvent(t *testing.T, client *ws.Client) {
	t.Helper()

	select {
	case raw := <-client.Send:
		t.Fatalf("expected no event, got %s", raw)
	default:
	}
}
