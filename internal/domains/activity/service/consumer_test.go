package service_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"vista/config"
	kafkaMocks "vista/infras/kafka/mocks"
	"vista/internal/domains/activity/service"
	profileMocks "vista/internal/domains/profile/service/mocks"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConsumer_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProfile := profileMocks.NewMockProfile(ctrl)
	consumer := service.NewConsumer(kafkaMocks.NewMockClient(ctrl), mockProfile, &config.Config{})

	occurredAt := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		value     string
		setupMock func()
		wantErr   bool
	}{
		{
			name:  "touches actor",
			value: `{"type":"message.sent","actor_id":"user-1","subject_id":"thread-1","occurred_at":"2024-03-15T08:30:00Z"}`,
			setupMock: func() {
				mockProfile.EXPECT().
					Touch(gomock.Any(), "user-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, at time.Time) error {
						assert.True(t, occurredAt.Equal(at))

						return nil
					})
			},
		},
		{
			name:  "touch failure keeps the offset",
			value: `{"type":"log.created","actor_id":"user-2","occurred_at":"2024-03-15T08:30:00Z"}`,
			setupMock: func() {
				mockProfile.EXPECT().
					Touch(gomock.Any(), "user-2", gomock.Any()).
					Return(errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name:      "malformed payload is dropped",
			value:     `{not json`,
			setupMock: func() {},
		},
		{
			name:      "event without actor is ignored",
			value:     `{"type":"log.created"}`,
			setupMock: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := consumer.Handle(context.Background(), kafkaGo.Message{Value: []byte(tt.value)})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ActivityTopic = "vista.activity"
	cfg.Kafka.ConsumerGroup = "vista-worker"

	client.EXPECT().Consume(gomock.Any(), "vista-worker", "vista.activity", gomock.Any())

	service.NewConsumer(client, profileMocks.NewMockProfile(ctrl), cfg).Run(context.Background())
}
