package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"vista/infras/otel/mocks"
	activityModel "vista/internal/domains/activity/model"
	activityMocks "vista/internal/domains/activity/service/mocks"
	messagingMocks "vista/internal/domains/messaging/mocks"
	"vista/internal/domains/messaging/model"
	"vista/internal/domains/messaging/model/dto"
	"vista/internal/domains/messaging/service"
	profileMocks "vista/internal/domains/profile/mocks"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc          service.Messaging
	threads      *messagingMocks.MockThread
	participants *messagingMocks.MockParticipant
	messages     *messagingMocks.MockMessage
	profiles     *profileMocks.MockProfile
	publisher    *activityMocks.MockPublisher
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		threads:      messagingMocks.NewMockThread(ctrl),
		participants: messagingMocks.NewMockParticipant(ctrl),
		messages:     messagingMocks.NewMockMessage(ctrl),
		profiles:     profileMocks.NewMockProfile(ctrl),
		publisher:    activityMocks.NewMockPublisher(ctrl),
	}

	f.svc = service.New(f.threads, f.participants, f.messages, f.profiles, mocks.NewOtel(), f.publisher)

	return f
}

func callerContext(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func member(threadID, profileID, firstName string) model.Participant {
	return model.Participant{ThreadID: threadID, ProfileID: profileID, FirstName: firstName}
}

func TestMessagingService_StartThread(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.StartThreadRequest
		setupMock  func(f fixture)
		wantCode   int
		wantReused bool
		wantNames  []string
	}{
		{
			name: "reuses existing two person thread",
			req:  dto.StartThreadRequest{ParticipantIDs: []string{"u2", "u2"}},
			setupMock: func(f fixture) {
				f.profiles.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)

				gomock.InOrder(
					f.participants.EXPECT().
						GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
						Return([]model.Participant{
							member("t1", "u1", "Ana"), member("t1", "u2", "Ben"),
							member("t2", "u1", "Ana"), member("t2", "u2", "Ben"),
							member("t3", "u1", "Ana"),
						}, nil),
					f.participants.EXPECT().
						GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
						Return([]model.Participant{
							member("t1", "u1", "Ana"), member("t1", "u2", "Ben"),
							member("t2", "u1", "Ana"), member("t2", "u2", "Ben"), member("t2", "u3", "Cy"),
						}, nil),
					f.participants.EXPECT().
						GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
						Return([]model.Participant{member("t1", "u1", "Ana"), member("t1", "u2", "Ben")}, nil),
				)

				f.threads.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Thread, error) {
						in, _ := filter.Filters[0].(gDto.Filter)
						assert.Equal(t, []string{"t1"}, in.Value)

						return []model.Thread{{ID: "t1"}}, nil
					})

				f.messages.EXPECT().Latest(gomock.Any(), []string{"t1"}).Return([]model.Message{}, nil)
			},
			wantReused: true,
			wantNames:  []string{"Ben"},
		},
		{
			name: "creates group thread with first message",
			req:  dto.StartThreadRequest{ParticipantIDs: []string{"u2", "u3"}, Title: "Gala", Message: "hello"},
			setupMock: func(f fixture) {
				f.profiles.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)

				f.threads.EXPECT().
					Open(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, thread model.Thread, rows []model.Participant, first *model.Message) error {
						assert.Equal(t, "Gala", thread.Title)
						assert.Len(t, rows, 3)
						assert.Equal(t, thread.ID, first.ThreadID)
						assert.Equal(t, "hello", first.Content)
						assert.Equal(t, first.CreatedAt, *thread.LastMessageTime)

						return nil
					})

				f.publisher.EXPECT().Publish(gomock.Any(), activityModel.EventMessageSent, "u1", gomock.Any())

				f.participants.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Participant{}, nil)

				f.messages.EXPECT().Latest(gomock.Any(), gomock.Any()).Return([]model.Message{}, nil)
			},
			wantNames: []string{},
		},
		{
			name: "reused thread gets the first message appended",
			req:  dto.StartThreadRequest{ParticipantIDs: []string{"u2"}, Message: "room 204 is ready"},
			setupMock: func(f fixture) {
				f.profiles.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)

				gomock.InOrder(
					f.participants.EXPECT().
						GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
						Return([]model.Participant{member("t1", "u1", "Ana"), member("t1", "u2", "Ben")}, nil),
					f.participants.EXPECT().
						GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
						Return([]model.Participant{member("t1", "u1", "Ana"), member("t1", "u2", "Ben")}, nil),
					f.participants.EXPECT().
						GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
						Return([]model.Participant{member("t1", "u1", "Ana"), member("t1", "u2", "Ben")}, nil),
				)

				f.threads.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Thread{{ID: "t1"}}, nil)

				f.threads.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, message model.Message) error {
						assert.Equal(t, "t1", message.ThreadID)
						assert.Equal(t, "u1", message.SenderID)

						return nil
					})

				f.publisher.EXPECT().Publish(gomock.Any(), activityModel.EventMessageSent, "u1", "t1")
				f.messages.EXPECT().Latest(gomock.Any(), []string{"t1"}).Return([]model.Message{}, nil)
			},
			wantReused: true,
			wantNames:  []string{"Ben"},
		},
		{
			name: "failed transaction sends nothing",
			req:  dto.StartThreadRequest{ParticipantIDs: []string{"u2", "u3"}, Message: "hello"},
			setupMock: func(f fixture) {
				f.profiles.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
				f.threads.EXPECT().
					Open(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
					Return(errors.New("insert message: connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:      "only the caller",
			req:       dto.StartThreadRequest{ParticipantIDs: []string{"u1"}},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown participant",
			req:  dto.StartThreadRequest{ParticipantIDs: []string{"ghost"}},
			setupMock: func(f fixture) {
				f.profiles.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tt.setupMock(f)

			res, err := f.svc.StartThread(callerContext("u1"), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantReused, res.Reused)

			names := []string{}
			for _, p := range res.Thread.Participants {
				names = append(names, p.Name)
			}

			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestMessagingService_Messages(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "oldest first for participants",
			setupMock: func(f fixture) {
				f.threads.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Thread{ID: "t1"}, nil)
				f.participants.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Participant{member("t1", "u1", "Ana"), member("t1", "u2", "Ben")}, nil)
				f.messages.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				f.messages.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Message, error) {
						assert.Equal(t, "messages.created_at", params.SortBy)
						assert.Equal(t, gDto.SortDirAsc, params.SortDir)

						return []model.Message{{ID: "m1", ThreadID: "t1", SenderID: "u1", Content: "hi"}}, nil
					})
			},
		},
		{
			name: "thread missing",
			setupMock: func(f fixture) {
				f.threads.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Thread{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "caller not a participant",
			setupMock: func(f fixture) {
				f.threads.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Thread{ID: "t1"}, nil)
				f.participants.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Participant{member("t1", "u2", "Ben"), member("t1", "u3", "Cy")}, nil)
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tt.setupMock(f)

			res, err := f.svc.Messages(callerContext("u1"), "t1", gDto.QueryParams{Page: 1, Limit: 50})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.True(t, res.Messages[0].IsMine)
		})
	}
}

func TestMessagingService_Reply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.threads.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Thread{ID: "t1"}, nil)
	f.participants.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Participant{{ThreadID: "t1", ProfileID: "u1", FirstName: "Ana", LastName: "Lopez"}}, nil)
	f.threads.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), activityModel.EventMessageSent, "u1", "t1")

	res, err := f.svc.Reply(callerContext("u1"), "t1", dto.ReplyRequest{Content: "On my way"})

	assert.NoError(t, err)
	assert.Equal(t, "Ana Lopez", res.SenderName)
	assert.Equal(t, "On my way", res.Content)
}

func TestMessagingService_Reply_AppendFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.threads.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Thread{ID: "t1"}, nil)
	f.participants.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Participant{member("t1", "u1", "Ana")}, nil)
	f.threads.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("rolled back"))

	_, err := f.svc.Reply(callerContext("u1"), "t1", dto.ReplyRequest{Content: "On my way"})

	assert.ErrorContains(t, err, "rolled back")
}

func TestMessagingService_Inbox(t *testing.T) {
	t.Run("no memberships", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.participants.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Participant{}, nil)

		res, err := f.svc.Inbox(callerContext("u1"))

		assert.NoError(t, err)
		assert.Empty(t, res.Threads)
	})

	t.Run("threads with last message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)

		gomock.InOrder(
			f.participants.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				Return([]model.Participant{member("t1", "u1", "Ana"), member("t2", "u1", "Ana")}, nil),
			f.participants.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				Return([]model.Participant{
					member("t1", "u1", "Ana"), member("t1", "u2", "Ben"),
					member("t2", "u1", "Ana"), member("t2", "u3", "Cy"),
				}, nil),
		)

		f.threads.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Thread{{ID: "t2"}, {ID: "t1"}}, nil)

		f.messages.EXPECT().
			Latest(gomock.Any(), []string{"t2", "t1"}).
			Return([]model.Message{{ID: "m9", ThreadID: "t2", SenderID: "u3", Content: "done"}}, nil)

		res, err := f.svc.Inbox(callerContext("u1"))

		assert.NoError(t, err)
		assert.Len(t, res.Threads, 2)
		assert.Equal(t, "t2", res.Threads[0].ID)
		assert.Equal(t, "done", res.Threads[0].LastMessage.Content)
		assert.Nil(t, res.Threads[1].LastMessage)
		assert.Equal(t, "Ben", res.Threads[1].Participants[0].Name)
	})
}
