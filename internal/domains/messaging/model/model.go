package model

import (
	"strings"
	"time"
	"vista/shared/model"
)

const (
	ThreadTableName  = "threads"
	ThreadEntityName = "thread"

	ParticipantTableName  = "thread_participants"
	ParticipantEntityName = "thread_participant"

	MessageTableName  = "messages"
	MessageEntityName = "message"

	FieldID              = "id"
	FieldTitle           = "title"
	FieldLastMessageTime = "last_message_time"
	FieldThreadID        = "thread_id"
	FieldProfileID       = "profile_id"
	FieldSenderID        = "sender_id"
	FieldContent         = "content"
)

type Thread struct {
	ID              string     `db:"id"`
	Title           string     `db:"title"`
	LastMessageTime *time.Time `db:"last_message_time"`
	model.Metadata
}

// Participant rows carry the member's directory fields through a join on profiles.
type Participant struct {
	ThreadID  string `db:"thread_id"`
	ProfileID string `db:"profile_id"`
	FirstName string `db:"first_name" table:"profiles" column:"first_name"`
	LastName  string `db:"last_name"  table:"profiles" column:"last_name"`
	Role      string `db:"role"       table:"profiles" column:"role"`
	AvatarURL string `db:"avatar_url" table:"profiles" column:"avatar_url"`
}

func (p Participant) GetJoinQuery() string {
	return "JOIN profiles ON profiles.id = thread_participants.profile_id"
}

func (p Participant) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type Message struct {
	ID              string `db:"id"`
	ThreadID        string `db:"thread_id"`
	SenderID        string `db:"sender_id"`
	Content         string `db:"content"`
	SenderFirstName string `db:"sender_first_name" table:"profiles" column:"first_name"`
	SenderLastName  string `db:"sender_last_name"  table:"profiles" column:"last_name"`
	model.Metadata
}

func (m Message) GetJoinQuery() string {
	return "JOIN profiles ON profiles.id = messages.sender_id"
}

func (m Message) SenderName() string {
	return strings.TrimSpace(m.SenderFirstName + " " + m.SenderLastName)
}
