package ws

import "time"

const (
	EventTaskCreated   = "task.created"
	EventTaskUpdated   = "task.updated"
	EventTaskCompleted = "task.completed"
	EventTaskDeleted   = "task.deleted"

	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event is the message pushed to every feed subscriber after a successful write.
type Event struct {
	Type string    `json:"type"`
	ID   int64     `json:"id"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

// NewEvent stamps an event with the current time.
func NewEvent(typ string, id int64, data any) Event {
	return Event{Type: typ, ID: id, Data: data, At: time.Now().UTC()}
}
