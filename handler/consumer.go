package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/airahq/aira/domain/entity"
	"github.com/airahq/aira/domain/incident"
	"github.com/airahq/aira/domain/repository"
	"github.com/segmentio/kafka-go"
)

// messageReader is the slice of kafka.Reader the consume loop depends on.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer feeds event-bus alerts from a Kafka topic into the
// orchestrator. Delivery is at-least-once; envelopes that carry an
// incident_id land on the same incident when redelivered.
type Consumer struct {
	reader       messageReader
	topic        string
	orchestrator *incident.Orchestrator
	readBackoff  time.Duration
}

func NewConsumer(cfg repository.KafkaConfig, orchestrator *incident.Orchestrator) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        parseBrokers(cfg.Brokers),
			Topic:          cfg.Topic,
			GroupID:        cfg.GroupID,
			MinBytes:       1,
			MaxBytes:       10e6,
			MaxWait:        500 * time.Millisecond,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		topic:        cfg.Topic,
		orchestrator: orchestrator,
		readBackoff:  time.Second,
	}
}

func parseBrokers(brokers string) []string {
	brokerList := strings.Split(brokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}
	return brokerList
}

// Run consumes until ctx is cancelled. A malformed message is logged and
// skipped; one poison pill must not take the consumer group down. Read
// failures back off briefly so a down broker does not spin the loop.
func (c *Consumer) Run(ctx context.Context) {
	slog.Info("Kafka consumer started", slog.String("topic", c.topic))
	for {
		message, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.ErrClosedPipe) {
				slog.Info("Kafka consumer stopped")
				return
			}
			slog.Error("Failed to read kafka message", slog.Any("error", err))
			select {
			case <-ctx.Done():
				slog.Info("Kafka consumer stopped")
				return
			case <-time.After(c.readBackoff):
			}
			continue
		}

		result, err := c.orchestrator.HandleAlert(ctx, message.Value, entity.SourceEventBus)
		if err != nil {
			slog.Error("Failed to handle event bus alert",
				slog.Int64("offset", message.Offset), slog.Any("error", err))
			continue
		}

		alertsIngested.WithLabelValues(entity.SourceEventBus.String()).Inc()
		if result.Summary == nil {
			summaryFailures.Inc()
		}
		slog.Info("incident handled(event_bus)", slog.String("incident_id", result.IncidentID))
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
