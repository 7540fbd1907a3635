package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"time"

	"github.com/placementcell/placement_service/internal/interfaces"
	"github.com/placementcell/placement_service/internal/logger"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type KafkaConsumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
}

func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	cfg := kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	}

	if username != "" {
		cfg.Dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			TLS:           &tls.Config{},
			SASLMechanism: plain.Mechanism{Username: username, Password: password},
		}
	}

	return &KafkaConsumer{
		Reader:      kafka.NewReader(cfg),
		Handler:     handler,
		ServiceName: "Mail Worker",
	}
}

// Listen consumes until ctx is cancelled. Handler errors are logged and
// the loop continues; email delivery is best-effort.
func (kc *KafkaConsumer) Listen(ctx context.Context) {
	log := logger.Get().With().Str("service", kc.ServiceName).Logger()

	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			log.Error().Err(err).Msg("read message failed")
			continue
		}

		if err := kc.Handler.HandleMessage(string(msg.Value)); err != nil {
			log.Error().Err(err).Msg("handler failed")
		}
	}
}

func (kc *KafkaConsumer) Close() error {
	return kc.Reader.Close()
}
