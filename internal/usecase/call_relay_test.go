package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	ws "chitchat/internal/infrastructure/websocket"
)

func TestCallUserStampsCallerIdentity(t *testing.T) {
	hub := ws.NewHub()
	relay := NewCallRelay(hub)

	bob := connect(hub, "bob")

	// A spoofed from field is overwritten with the connection identity.
	relay.CallUser("alice", ws.CallPayload{From: "mallory", To: "bob", Type: "video"})

	event := nextEvent(t, bob)
	assert.Equal(t, ws.EventCallUser, event.Type)
	var payload ws.CallPayload
	decodePayload(t, event, &payload)
	assert.Equal(t, "alice", payload.From)
	assert.Equal(t, "bob", payload.To)
	assert.Equal(t, "video", payload.Type)
}

func TestCallRejectedGoesOnlyToCaller(t *testing.T) {
	hub := ws.NewHub()
	relay := NewCallRelay(hub)

	alice := connect(hub, "alice")
	bob := connect(hub, "bob")

	relay.CallRejected("bob", ws.CallPayload{To: "alice"})

	event := nextEvent(t, alice)
	assert.Equal(t, ws.EventCallRejected, event.Type)
	var payload ws.CallPayload
	decodePayload(t, event, &payload)
	assert.Equal(t, "bob", payload.From)
	noEvent(t, bob)
}

func TestCallAcceptedForwardedToCaller(t *testing.T) {
	hub := ws.NewHub()
	relay := NewCallRelay(hub)

	alice := connect(hub, "alice")

	relay.CallAccepted("bob", ws.CallPayload{To: "alice"})

	assert.Equal(t, ws.EventCallAccepted, nextEvent(t, alice).Type)
}

func TestCallEndReachesBothParties(t *testing.T) {
	hub := ws.NewHub()
	relay := NewCallRelay(hub)

	alice := connect(hub, "alice")
	bob := connect(hub, "bob")

	relay.CallEnd("alice", ws.CallPayload{To: "bob"})

	assert.Equal(t, ws.EventCallEnd, nextEvent(t, bob).Type)
	assert.Equal(t, ws.EventCallEnd, nextEvent(t, alice).Type)
}

func TestForwardSignalRelaysDataVerbatim(t *testing.T) {
	hub := ws.NewHub()
	relay := NewCallRelay(hub)

	bob := connect(hub, "bob")

	signal := json.RawMessage(`{"sdp":"v=0","type":"offer"}`)
	relay.ForwardSignal("alice", ws.SignalPayload{To: "bob", Signal: signal})

	event := nextEvent(t, bob)
	assert.Equal(t, ws.EventWebRTCSignal, event.Type)
	var payload ws.SignalPayload
	decodePayload(t, event, &payload)
	assert.Equal(t, "alice", payload.From)
	assert.JSONEq(t, string(signal), string(payload.Signal))
}

func TestForwardDropsMissingTarget(t *testing.T) {
	hub := ws.NewHub()
	relay := NewCallRelay(hub)

	alice := connect(hub, "alice")

	assert.NotPanics(t, func() {
		relay.CallUser("alice", ws.CallPayload{})
	})
	noEvent(t, alice)
}
