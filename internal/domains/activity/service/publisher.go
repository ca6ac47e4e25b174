package service

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"
	"vista/config"
	"vista/infras/kafka"
	"vista/infras/metrics"
	"vista/infras/otel"
	"vista/internal/domains/activity/model"
	"vista/shared/constant"
	"vista/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Publisher emits activity events. Publishing never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, eventType, actorID, subjectID string)
}

type publisherImpl struct {
	client  kafka.Client
	cfg     *config.Config
	metrics *metrics.Metrics
	otel    otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, metrics *metrics.Metrics, otel otel.Otel) Publisher {
	return &publisherImpl{
		client:  client,
		cfg:     cfg,
		metrics: metrics,
		otel:    otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, eventType, actorID, subjectID string) {
	if !p.cfg.Kafka.Enable {
		p.metrics.ObserveEvent(eventType, metrics.OutcomeSkipped)

		return
	}

	event := model.Event{
		Type:       eventType,
		ActorID:    actorID,
		SubjectID:  subjectID,
		OccurredAt: timezone.Now(),
	}

	go func() {
		c, scope := p.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
		defer scope.End()

		scope.SetAttribute("event.type", eventType)

		err := p.client.SendMessages(c, p.cfg.Kafka.ActivityTopic, kafka.Message{Key: actorID, Value: event})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("type", eventType).Str("actor_id", actorID).Msg("failed to publish activity event")
			p.metrics.ObserveEvent(eventType, metrics.OutcomeFailed)

			return
		}

		p.metrics.ObserveEvent(eventType, metrics.OutcomeSent)
	}()
}
