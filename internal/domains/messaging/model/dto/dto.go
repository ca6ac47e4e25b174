package dto

import (
	"vista/internal/domains/messaging/model"
	"vista/shared"
	"vista/shared/constant"
	gModel "vista/shared/model"
	"vista/shared/timezone"

	"github.com/google/uuid"
)

type StartThreadRequest struct {
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,dive,required,uuid"`
	Title          string   `json:"title"           validate:"max=200"`
	Message        string   `json:"message"         validate:"max=5000"`
}

func (s *StartThreadRequest) ToModel(user string) model.Thread {
	return model.Thread{
		ID:       uuid.NewString(),
		Title:    s.Title,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type ReplyRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

func (r *ReplyRequest) ToModel(threadID, sender string) model.Message {
	now := timezone.Now()

	return model.Message{
		ID:       uuid.NewString(),
		ThreadID: threadID,
		SenderID: sender,
		Content:  r.Content,
		Metadata: gModel.NewMetadata(sender, now),
	}
}

func ToParticipantModels(threadID string, profileIDs []string) []model.Participant {
	participants := make([]model.Participant, len(profileIDs))
	for i, id := range profileIDs {
		participants[i] = model.Participant{ThreadID: threadID, ProfileID: id}
	}

	return participants
}

type ParticipantResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

func (r *ParticipantResponse) FromModel(model model.Participant) {
	r.ID = model.ProfileID
	r.Name = model.Name()
	r.Role = model.Role
	r.AvatarURL = model.AvatarURL
}

type MessageResponse struct {
	ID         string `json:"id"`
	ThreadID   string `json:"thread_id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
	IsMine     bool   `json:"is_mine"`
	CreatedAt  string `json:"created_at"`
}

func (r *MessageResponse) FromModel(model model.Message, viewer string) {
	r.ID = model.ID
	r.ThreadID = model.ThreadID
	r.SenderID = model.SenderID
	r.SenderName = model.SenderName()
	r.Content = model.Content
	r.IsMine = model.SenderID == viewer
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type ThreadResponse struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	LastMessageTime *string               `json:"last_message_time,omitempty"`
	Participants    []ParticipantResponse `json:"participants"`
	LastMessage     *MessageResponse      `json:"last_message,omitempty"`
	CreatedAt       string                `json:"created_at"`
}

// FromModel fills the thread and lists every participant except the viewer.
func (r *ThreadResponse) FromModel(thread model.Thread, participants []model.Participant, last *model.Message, viewer string) {
	r.ID = thread.ID
	r.Title = thread.Title
	r.CreatedAt = timezone.Format(thread.CreatedAt, constant.DateFormat)

	if thread.LastMessageTime != nil {
		lastMessageTime := timezone.Format(*thread.LastMessageTime, constant.DateFormat)
		r.LastMessageTime = &lastMessageTime
	}

	r.Participants = []ParticipantResponse{}

	for _, participant := range participants {
		if participant.ProfileID == viewer {
			continue
		}

		res := ParticipantResponse{}
		res.FromModel(participant)
		r.Participants = append(r.Participants, res)
	}

	if last != nil {
		r.LastMessage = &MessageResponse{}
		r.LastMessage.FromModel(*last, viewer)
	}
}

type InboxResponse struct {
	Threads []ThreadResponse `json:"threads"`
}

type StartThreadResponse struct {
	Thread ThreadResponse `json:"thread"`
	Reused bool           `json:"reused"`
}

type GetMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetMessagesResponse) FromModels(models []model.Message, viewer string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]MessageResponse, len(models))
	for i, m := range models {
		r.Messages[i].FromModel(m, viewer)
	}
}
