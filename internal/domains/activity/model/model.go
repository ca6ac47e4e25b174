package model

import "time"

const (
	EventLogCreated        = "log.created"
	EventMessageSent       = "message.sent"
	EventProfileSignedIn   = "profile.signed_in"
	EventRoomStatusChanged = "room.status_changed"
)

// Event is the JSON payload written to the activity topic.
type Event struct {
	Type       string    `json:"type"`
	ActorID    string    `json:"actor_id"`
	SubjectID  string    `json:"subject_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
