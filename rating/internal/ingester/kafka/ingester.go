package kafka

import (
	"context"
	"errors"
	"time"

	"cinecircle/pkg/logging"
	"cinecircle/rating/pkg/model"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// pollTimeout bounds each read so that cancellation is observed promptly.
const pollTimeout = 500 * time.Millisecond

// retryBackoff is the pause after a consumer error other than a poll timeout.
const retryBackoff = time.Second

type messageReader interface {
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
}

// Ingester defines a Kafka ingester.
type Ingester struct {
	consumer     *kafka.Consumer
	topic        string
	retryBackoff time.Duration
	logger       *zap.Logger
}

// NewIngester creates a new Kafka ingester.
func NewIngester(addr string, groupID string, topic string, logger *zap.Logger) (*Ingester, error) {
	logger = logger.With(
		zap.String(logging.FieldComponent, "kafka-ingester"),
		zap.String("topic", topic),
	)
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": addr,
		"group.id":          groupID,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, err
	}
	return &Ingester{consumer: consumer, topic: topic, retryBackoff: retryBackoff, logger: logger}, nil
}

// Ingest starts ingestion from Kafka and returns a channel containing
// rating events consumed from the topic. The channel is closed and the
// consumer released once ctx is done.
func (i *Ingester) Ingest(ctx context.Context) (chan model.RatingEvent, error) {
	i.logger.Info("Starting Kafka ingester")
	if err := i.consumer.SubscribeTopics([]string{i.topic}, nil); err != nil {
		return nil, err
	}

	ch := make(chan model.RatingEvent, 1)
	go func() {
		defer func() {
			close(ch)
			if err := i.consumer.Close(); err != nil {
				i.logger.Warn("Failed to close consumer", zap.Error(err))
			}
		}()
		i.consume(ctx, i.consumer, ch)
	}()
	return ch, nil
}

// consume reads messages until ctx is done, sending decoded events to ch.
func (i *Ingester) consume(ctx context.Context, r messageReader, ch chan<- model.RatingEvent) {
	for ctx.Err() == nil {
		msg, err := r.ReadMessage(pollTimeout)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) && kerr.Code() == kafka.ErrTimedOut {
				continue
			}
			i.logger.Warn("Consumer error", zap.Error(err))
			select {
			case <-time.After(i.retryBackoff):
			case <-ctx.Done():
				return
			}
			continue
		}
		event, err := decodeEvent(msg.Value)
		if err != nil {
			i.logger.Warn("Unmarshal error", zap.Error(err))
			continue
		}
		select {
		case ch <- event:
		case <-ctx.Done():
			return
		}
	}
}

func decodeEvent(b []byte) (model.RatingEvent, error) {
	var event model.RatingEvent
	if err := json.Unmarshal(b, &event); err != nil {
		return event, err
	}
	if event.UserID == "" || event.ItemID <= 0 {
		return event, errors.New("event without user or item id")
	}
	return event, nil
}
