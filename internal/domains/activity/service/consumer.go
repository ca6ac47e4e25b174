package service

import (
	"context"
	"vista/config"
	"vista/infras/kafka"
	"vista/internal/domains/activity/model"
	profileService "vista/internal/domains/profile/service"
	"vista/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer keeps profiles.last_active current from the activity topic.
type Consumer struct {
	client  kafka.Client
	profile profileService.Profile
	cfg     *config.Config
}

func NewConsumer(client kafka.Client, profile profileService.Profile, cfg *config.Config) *Consumer {
	return &Consumer{
		client:  client,
		profile: profile,
		cfg:     cfg,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	log.Info().Str("topic", c.cfg.Kafka.ActivityTopic).Msg("activity consumer started")

	c.client.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.ActivityTopic, c.Handle)
}

// Handle touches the actor's profile. Undecodable messages are dropped so they do not block the partition.
func (c *Consumer) Handle(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.Decode[model.Event](msg)
	if err != nil {
		log.Warn().Err(err).Int64("offset", msg.Offset).Msg("dropping malformed activity event")

		return nil
	}

	if event.ActorID == constant.Empty || event.ActorID == constant.ContextSystem {
		return nil
	}

	if err := c.profile.Touch(ctx, event.ActorID, event.OccurredAt); err != nil {
		return err
	}

	log.Debug().Str("type", event.Type).Str("actor_id", event.ActorID).Msg("profile activity recorded")

	return nil
}
