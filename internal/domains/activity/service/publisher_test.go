package service_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"vista/config"
	"vista/infras/kafka"
	kafkaMocks "vista/infras/kafka/mocks"
	"vista/infras/metrics"
	"vista/infras/otel/mocks"
	"vista/internal/domains/activity/model"
	"vista/internal/domains/activity/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPublisher_Publish(t *testing.T) {
	tests := []struct {
		name        string
		enabled     bool
		setupMock   func(client *kafkaMocks.MockClient)
		wantOutcome string
	}{
		{
			name:    "sent",
			enabled: true,
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().
					SendMessages(gomock.Any(), "vista.activity", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						assert.Len(t, messages, 1)
						assert.Equal(t, "user-1", messages[0].Key)

						event, ok := messages[0].Value.(model.Event)
						assert.True(t, ok)
						assert.Equal(t, model.EventLogCreated, event.Type)
						assert.Equal(t, "log-1", event.SubjectID)

						return nil
					})
			},
			wantOutcome: metrics.OutcomeSent,
		},
		{
			name:    "broker failure is swallowed",
			enabled: true,
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().
					SendMessages(gomock.Any(), "vista.activity", gomock.Any()).
					Return(errors.New("broker unavailable"))
			},
			wantOutcome: metrics.OutcomeFailed,
		},
		{
			name:        "disabled",
			setupMock:   func(*kafkaMocks.MockClient) {},
			wantOutcome: metrics.OutcomeSkipped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := kafkaMocks.NewMockClient(ctrl)
			tt.setupMock(client)

			cfg := &config.Config{}
			cfg.Kafka.Enable = tt.enabled
			cfg.Kafka.ActivityTopic = "vista.activity"
			cfg.Metrics.Namespace = "vista"

			m := metrics.New(cfg)
			publisher := service.NewPublisher(client, cfg, m, mocks.NewOtel())

			publisher.Publish(context.Background(), model.EventLogCreated, "user-1", "log-1")

			time.Sleep(10 * time.Millisecond)

			assert.Equal(t, float64(1), testutil.ToFloat64(m.ActivityEventCounter.WithLabelValues(model.EventLogCreated, tt.wantOutcome)))
		})
	}
}
