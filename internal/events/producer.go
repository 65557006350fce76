package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
)

// Producer appends completed-transaction records to the external log topic.
// Publishing is best-effort: the checkout has already committed by the time
// the record is written.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewProducer(brokers, topic string, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

func (p *Producer) PublishTransactionRecorded(ctx context.Context, record domain.TransactionRecord) error {
	event := TransactionRecordedEvent{
		EventID:       uuid.NewString(),
		TransactionID: record.ID,
		CustomerName:  record.CustomerName,
		TotalCost:     record.TotalCost,
		Timestamp:     record.Timestamp,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: eventBytes,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish transaction record",
			zap.String("transaction_id", event.TransactionID),
			zap.Error(err))
		return err
	}

	p.logger.Info("Transaction record published",
		zap.String("event_id", event.EventID),
		zap.String("transaction_id", event.TransactionID))

	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
