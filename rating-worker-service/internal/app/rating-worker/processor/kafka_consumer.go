package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"staybook/pkg/logger"
	"staybook/pkg/metrics"
	"staybook/rating-worker-service/internal/app/rating-worker/entity"
	"staybook/rating-worker-service/internal/app/rating-worker/service"

	"github.com/segmentio/kafka-go"
)

const serviceName = "rating-worker"

// messageReader - часть kafka.Reader, которой пользуется consumer
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Stats() kafka.ReaderStats
	Close() error
}

// KafkaConsumer читает review_events и коммитит offset только после успешной обработки
type KafkaConsumer struct {
	reader     messageReader
	ratingSvc  service.RatingServiceInterface
	topic      string
	groupID    string
	retryDelay time.Duration
	maxDelay   time.Duration
	stopChan   chan struct{}
	doneChan   chan struct{}
}

func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	ratingSvc service.RatingServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.FirstOffset,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return newKafkaConsumer(reader, topic, groupID, ratingSvc)
}

func newKafkaConsumer(reader messageReader, topic, groupID string, ratingSvc service.RatingServiceInterface) *KafkaConsumer {
	return &KafkaConsumer{
		reader:     reader,
		ratingSvc:  ratingSvc,
		topic:      topic,
		groupID:    groupID,
		retryDelay: time.Second,
		maxDelay:   30 * time.Second,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}
}

func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().
		Str("topic", c.topic).
		Str("group", c.groupID).
		Msg("Starting Kafka consumer")

	go c.consume(ctx)
}

// Stop дожидается окончания текущего сообщения
func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	if err := c.reader.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close Kafka reader")
	}
	logger.Info().Msg("Kafka consumer stopped")
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.RecordKafkaError(serviceName, c.topic, "fetch")
			logger.Error().Err(err).Msg("Error fetching message")
			if !c.sleep(ctx, c.retryDelay) {
				return
			}
			continue
		}

		if !c.handle(ctx, message) {
			return
		}

		if err := c.reader.CommitMessages(ctx, message); err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.RecordKafkaError(serviceName, c.topic, "commit")
			logger.Error().Err(err).Int64("offset", message.Offset).Msg("Error committing message")
		}
	}
}

// handle повторяет обработку с растущей паузой, пока она не пройдет.
// Битые события пропускаются и коммитятся.
// Возвращает false, если consumer останавливают
func (c *KafkaConsumer) handle(ctx context.Context, message kafka.Message) bool {
	delay := c.retryDelay
	for attempt := 1; ; attempt++ {
		start := time.Now()
		err := c.processMessage(ctx, message)
		if err == nil {
			metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID, time.Since(start))
			return true
		}

		if isPermanent(err) {
			metrics.RecordKafkaError(serviceName, c.topic, "invalid")
			logger.Error().
				Err(err).
				Int("partition", message.Partition).
				Int64("offset", message.Offset).
				Msg("Skipping invalid review event")
			return true
		}

		metrics.RecordKafkaError(serviceName, c.topic, "process")
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int64("offset", message.Offset).
			Dur("retry_in", delay).
			Msg("Failed to process review event, retrying")

		if !c.sleep(ctx, delay) {
			return false
		}
		delay *= 2
		if delay > c.maxDelay {
			delay = c.maxDelay
		}
	}
}

func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.ReviewEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", errMalformedMessage, err)
	}

	logger.Debug().
		Str("event_type", event.EventType).
		Str("hotel_id", event.HotelID).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received review event")

	return c.ratingSvc.ProcessReviewEvent(ctx, &event)
}

var errMalformedMessage = errors.New("malformed message")

func isPermanent(err error) bool {
	return errors.Is(err, errMalformedMessage) ||
		errors.Is(err, service.ErrInvalidEvent) ||
		errors.Is(err, service.ErrUnknownEventType)
}

func (c *KafkaConsumer) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *KafkaConsumer) Stats() kafka.ReaderStats {
	return c.reader.Stats()
}
