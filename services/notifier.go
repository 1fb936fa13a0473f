package services

import (
	"github.com/Dosada05/cs2-arena/brackets"
)

// Notifier доставляет изменения подписчикам комнаты. *brackets.Hub его реализует.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

type noopNotifier struct{}

func (noopNotifier) BroadcastToRoom(string, interface{}) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

func publish(n Notifier, room, msgType string, payload interface{}) {
	n.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    msgType,
		Payload: payload,
		RoomID:  room,
	})
}
