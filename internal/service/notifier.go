package service

import "github.com/google/uuid"

// StatusNotifier рассылает события смены статусов подключённым клиентам.
// Реализуется ws.Hub; nil-notifier допустим, события просто не уходят.
type StatusNotifier interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
	BroadcastAll(event string, data any) error
}
