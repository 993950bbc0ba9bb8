package service

// Broadcaster interface for WebSocket pushes (avoids import cycle)
type Broadcaster interface {
	BroadcastToUser(userID string, msgType string, payload interface{})
}
