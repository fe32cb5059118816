package intake

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	apperrors "demo/marketplace/internal/errors"
	"demo/marketplace/internal/model"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, o model.NewOrder) (model.OrderSummary, error)
}

type ReaderConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

func NewReader(cfg ReaderConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1e3,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
}

// Consumer feeds order submissions published on a topic into the same
// lifecycle as the HTTP API.
type Consumer struct {
	reader     MessageReader
	orders     OrderSubmitter
	logger     *zap.Logger
	retryDelay time.Duration
}

func NewConsumer(reader MessageReader, orders OrderSubmitter, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		reader:     reader,
		orders:     orders,
		logger:     logger,
		retryDelay: 500 * time.Millisecond,
	}
}

// Run consumes until ctx is cancelled. Messages that can never succeed are
// committed and skipped. A message whose upsert failed is logged and not
// committed, but there is no retry: once a later message on the same
// partition commits, the group offset moves past the failed one too.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Warn("kafka fetch failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.retryDelay):
			}
			continue
		}

		if c.handle(ctx, m) {
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				c.logger.Error("kafka commit failed", zap.Int64("offset", m.Offset), zap.Error(err))
			}
		}
	}
}

// handle reports whether the message is done with and may be committed.
func (c *Consumer) handle(ctx context.Context, m kafka.Message) bool {
	log := c.logger.With(
		zap.Int("partition", m.Partition),
		zap.Int64("offset", m.Offset),
		zap.ByteString("key", m.Key))

	var o model.NewOrder
	if err := json.Unmarshal(m.Value, &o); err != nil {
		log.Warn("skipping invalid message", zap.Error(err))
		return true
	}

	summary, err := c.orders.SubmitOrder(ctx, o)
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			log.Warn("skipping incomplete order", zap.String("reason", ve.Message), zap.Any("details", ve.Details))
			return true
		}
		if ce, ok := apperrors.IsConflictError(err); ok {
			log.Info("skipping order", zap.String("reason", ce.Message), zap.String("orderHash", o.OrderHash))
			return true
		}
		log.Error("order upsert failed, not committed", zap.Error(err))
		return false
	}

	log.Info("order ingested", zap.String("orderId", summary.ID), zap.String("orderHash", o.OrderHash))
	return true
}
