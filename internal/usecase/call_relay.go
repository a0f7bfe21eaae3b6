package usecase

import (
	ws "chitchat/internal/infrastructure/websocket"
	"chitchat/pkg/logger"
)

// CallRelay forwards call signaling between two users' live connections. It is
// a dumb pipe: no call state is kept server-side and nothing is persisted. The
// Idle → Ringing → Connected → Ended machine lives entirely on the two clients.
type CallRelay struct {
	hub *ws.Hub
}

func NewCallRelay(hub *ws.Hub) *CallRelay {
	return &CallRelay{hub: hub}
}

// CallUser forwards a call invitation to the callee. The from field is stamped
// from the connection identity, never trusted from the payload.
func (r *CallRelay) CallUser(callerID string, payload ws.CallPayload) {
	payload.From = callerID
	r.forward(ws.EventCallUser, payload.To, payload)
}

// CallAccepted forwards the acceptance back to the original caller.
func (r *CallRelay) CallAccepted(calleeID string, payload ws.CallPayload) {
	payload.From = calleeID
	r.forward(ws.EventCallAccepted, payload.To, payload)
}

// CallRejected forwards the rejection back to the original caller, who is
// expected to close its dialog.
func (r *CallRelay) CallRejected(calleeID string, payload ws.CallPayload) {
	payload.From = calleeID
	r.forward(ws.EventCallRejected, payload.To, payload)
}

// CallEnd notifies both participants so the non-initiating end also tears down
// its call UI.
func (r *CallRelay) CallEnd(senderID string, payload ws.CallPayload) {
	payload.From = senderID
	r.forward(ws.EventCallEnd, payload.To, payload)
	r.forward(ws.EventCallEnd, payload.From, payload)
}

// ForwardSignal relays WebRTC negotiation data (SDP and ICE candidates)
// verbatim to the peer. Without this leg, calls between peers on different
// networks never establish media.
func (r *CallRelay) ForwardSignal(senderID string, payload ws.SignalPayload) {
	payload.From = senderID
	r.forward(ws.EventWebRTCSignal, payload.To, payload)
}

func (r *CallRelay) forward(eventType, to string, payload interface{}) {
	if to == "" {
		logger.Debug("Call relay: dropping %s event with no target", eventType)
		return
	}
	event, err := ws.NewEvent(eventType, payload)
	if err != nil {
		logger.Error("Call relay: failed to encode %s event: %v", eventType, err)
		return
	}
	r.hub.SendToUser(to, event)
}
