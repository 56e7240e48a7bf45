package realtime

// Event names pushed over the realtime channel. Every connected client
// receives every event; clients filter by comparing the payload user id to
// their own session user id.
const (
	EventTaskUpdates     = "taskUpdates"
	EventStatusUpdate    = "statusUpdate"
	EventNotification    = "notification"
	EventNewNotification = "newNotification"
)

// Publisher pushes named domain events to all connected clients. It is
// injected into services so tests can substitute a recording fake.
// Delivery is best-effort, at-most-once.
type Publisher interface {
	Publish(event string, userID uint64)
}
