package queue

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/room-reservation/pkg/circuit_breaker"
	"github.com/Astemirdum/room-reservation/reservation/internal/model"
)

// Producer sends reservation events to kafka. Calls go through a circuit
// breaker so a dead broker costs one fast error instead of a timeout per
// request.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

func NewProducer(producer sarama.SyncProducer, topic string, cb circuit_breaker.CircuitBreaker, log *zap.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		cb:       cb,
		log:      log.Named("producer"),
	}
}

func (p *Producer) Publish(_ context.Context, events ...model.ReservationEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return errors.Wrap(err, "marshal event")
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic:     p.topic,
			Key:       sarama.StringEncoder(ev.RoomID),
			Value:     sarama.ByteEncoder(data),
			Timestamp: ev.Timestamp,
			Headers: []sarama.RecordHeader{
				{Key: []byte("event-type"), Value: []byte(ev.Type)},
			},
		})
	}
	err := p.cb.Call(func() error {
		return p.producer.SendMessages(msgs)
	})
	if err != nil {
		return errors.Wrapf(err, "send %d event(s), breaker %s", len(msgs), p.cb.State())
	}
	p.log.Debug("events sent", zap.Int("count", len(msgs)), zap.String("topic", p.topic))
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...model.ReservationEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
