package queue

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/placementcell/placement_service/internal/logger"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a Kafka writer for the notification topic. With
// no broker configured it returns nil and every publish becomes a
// logged no-op. SASL and TLS are only enabled when a username is
// configured, so a local broker works without credentials.
func NewProducer(broker, topic, username, password string) *Producer {
	if broker == "" {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: 10 * time.Second,
	}

	if username != "" {
		writer.Transport = &kafka.Transport{
			SASL: plain.Mechanism{Username: username, Password: password},
			TLS:  &tls.Config{},
		}
	}

	return &Producer{writer: writer}
}

func (p *Producer) PublishMessage(key, value []byte) error {
	// A missing broker must never break the calling operation.
	if p == nil || p.writer == nil {
		log := logger.Get()
		log.Warn().Msg("kafka producer not ready, skip publish")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
