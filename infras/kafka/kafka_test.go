package kafka_test

import (
	"testing"
	"vista/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type event struct {
	Type    string `json:"type"`
	ActorID string `json:"actor_id"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "user-1", Value: event{Type: "log.created", ActorID: "user-1"}}

	got, err := msg.ToKafkaMessage("vista.activity")

	assert.NoError(t, err)
	assert.Equal(t, "vista.activity", got.Topic)
	assert.Equal(t, []byte("user-1"), got.Key)
	assert.JSONEq(t, `{"type":"log.created","actor_id":"user-1"}`, string(got.Value))

	_, err = (&kafka.Message{Value: func() {}}).ToKafkaMessage("vista.activity")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	decoded, err := kafka.Decode[event](kafkaGo.Message{Value: []byte(`{"type":"message.sent","actor_id":"u2"}`)})

	assert.NoError(t, err)
	assert.Equal(t, event{Type: "message.sent", ActorID: "u2"}, decoded)

	_, err = kafka.Decode[event](kafkaGo.Message{Value: []byte(`not-json`)})
	assert.Error(t, err)
}
