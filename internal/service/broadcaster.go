package service

// Broadcaster pushes ingest events to live dashboard listeners.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	BroadcastEvent(msgType string, payload interface{})
}
