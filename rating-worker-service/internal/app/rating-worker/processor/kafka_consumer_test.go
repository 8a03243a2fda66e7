package processor

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"staybook/rating-worker-service/internal/app/rating-worker/entity"
	"staybook/rating-worker-service/internal/app/rating-worker/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRatingService мок для RatingServiceInterface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) ProcessReviewEvent(ctx context.Context, event *entity.ReviewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRatingService) ReconcileAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeReader отдает сообщения из канала и запоминает закоммиченные offset
type fakeReader struct {
	messages chan kafka.Message

	mu        sync.Mutex
	committed []int64
	closed    bool
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	r := &fakeReader{messages: make(chan kafka.Message, len(msgs))}
	for _, m := range msgs {
		r.messages <- m
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-r.messages:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Stats() kafka.ReaderStats {
	return kafka.ReaderStats{Topic: "review_events"}
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) committedOffsets() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func eventMessage(t *testing.T, offset int64, event entity.ReviewEvent) kafka.Message {
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Topic: "review_events", Offset: offset, Key: []byte(event.HotelID), Value: value}
}

func newTestConsumer(reader messageReader, svc service.RatingServiceInterface) *KafkaConsumer {
	c := newKafkaConsumer(reader, "review_events", "rating-worker-group", svc)
	c.retryDelay = time.Millisecond
	c.maxDelay = 4 * time.Millisecond
	return c
}

// ===== processMessage Tests =====

func TestProcessMessage_DecodesEvent(t *testing.T) {
	// Arrange
	svc := new(MockRatingService)
	consumer := newTestConsumer(newFakeReader(), svc)
	ctx := context.Background()
	event := entity.ReviewEvent{EventType: entity.EventReviewCreated, ReviewID: "r-1", HotelID: "h-1", UserID: "u-1", Rating: 4}

	svc.On("ProcessReviewEvent", ctx, mock.MatchedBy(func(e *entity.ReviewEvent) bool {
		return e.ReviewID == "r-1" && e.Rating == 4 && e.EventType == entity.EventReviewCreated
	})).Return(nil)

	// Act
	err := consumer.processMessage(ctx, eventMessage(t, 1, event))

	// Assert
	assert.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestProcessMessage_InvalidJSON(t *testing.T) {
	svc := new(MockRatingService)
	consumer := newTestConsumer(newFakeReader(), svc)

	err := consumer.processMessage(context.Background(), kafka.Message{Value: []byte("{broken")})

	assert.ErrorIs(t, err, errMalformedMessage)
	assert.True(t, isPermanent(err))
	svc.AssertNotCalled(t, "ProcessReviewEvent", mock.Anything, mock.Anything)
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, isPermanent(service.ErrInvalidEvent))
	assert.True(t, isPermanent(service.ErrUnknownEventType))
	assert.False(t, isPermanent(errors.New("connection reset")))
	assert.False(t, isPermanent(context.DeadlineExceeded))
}

// ===== consume Tests =====

func TestConsume_CommitsAfterSuccessAndSkipsInvalid(t *testing.T) {
	// Arrange
	good := entity.ReviewEvent{EventType: entity.EventReviewCreated, HotelID: "h-1", UserID: "u-1", Rating: 5}
	bad := entity.ReviewEvent{EventType: "REVIEW_ARCHIVED", HotelID: "h-1", UserID: "u-1"}
	reader := newFakeReader(
		eventMessage(t, 10, good),
		kafka.Message{Offset: 11, Value: []byte("not json")},
		eventMessage(t, 12, bad),
	)

	svc := new(MockRatingService)
	svc.On("ProcessReviewEvent", mock.Anything, mock.MatchedBy(func(e *entity.ReviewEvent) bool {
		return e.EventType == entity.EventReviewCreated
	})).Return(nil)
	svc.On("ProcessReviewEvent", mock.Anything, mock.MatchedBy(func(e *entity.ReviewEvent) bool {
		return e.EventType == "REVIEW_ARCHIVED"
	})).Return(service.ErrUnknownEventType)

	consumer := newTestConsumer(reader, svc)

	// Act
	consumer.Start(context.Background())
	require.Eventually(t, func() bool {
		return len(reader.committedOffsets()) == 3
	}, time.Second, 5*time.Millisecond)
	consumer.Stop()

	// Assert
	assert.Equal(t, []int64{10, 11, 12}, reader.committedOffsets())
	assert.True(t, reader.closed)
}

func TestConsume_RetriesTransientErrorBeforeCommit(t *testing.T) {
	event := entity.ReviewEvent{EventType: entity.EventReviewDeleted, HotelID: "h-1", UserID: "u-1"}
	reader := newFakeReader(eventMessage(t, 5, event))

	svc := new(MockRatingService)
	svc.On("ProcessReviewEvent", mock.Anything, mock.Anything).Return(errors.New("db unavailable")).Twice()
	svc.On("ProcessReviewEvent", mock.Anything, mock.Anything).Return(nil).Once()

	consumer := newTestConsumer(reader, svc)

	consumer.Start(context.Background())
	require.Eventually(t, func() bool {
		return len(reader.committedOffsets()) == 1
	}, time.Second, 5*time.Millisecond)
	consumer.Stop()

	assert.Equal(t, []int64{5}, reader.committedOffsets())
	svc.AssertNumberOfCalls(t, "ProcessReviewEvent", 3)
}

func TestConsume_StopWhileRetryingDoesNotCommit(t *testing.T) {
	event := entity.ReviewEvent{EventType: entity.EventReviewCreated, HotelID: "h-1", UserID: "u-1", Rating: 3}
	reader := newFakeReader(eventMessage(t, 7, event))

	attempted := make(chan struct{}, 1)
	svc := new(MockRatingService)
	svc.On("ProcessReviewEvent", mock.Anything, mock.Anything).
		Return(errors.New("db unavailable")).
		Run(func(mock.Arguments) {
			select {
			case attempted <- struct{}{}:
			default:
			}
		})

	consumer := newTestConsumer(reader, svc)

	consumer.Start(context.Background())
	select {
	case <-attempted:
	case <-time.After(time.Second):
		t.Fatal("event was not processed")
	}
	consumer.Stop()

	assert.Empty(t, reader.committedOffsets())
}

func TestConsume_ParentContextCancelled(t *testing.T) {
	reader := newFakeReader()
	consumer := newTestConsumer(reader, new(MockRatingService))
	ctx, cancel := context.WithCancel(context.Background())

	consumer.Start(ctx)
	cancel()

	select {
	case <-consumer.doneChan:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop after context cancellation")
	}
}

func TestNewKafkaConsumer(t *testing.T) {
	consumer := NewKafkaConsumer([]string{"localhost:9092"}, "review_events", "rating-worker-group", 1, 10e6, new(MockRatingService))

	assert.NotNil(t, consumer.reader)
	assert.Equal(t, "review_events", consumer.Stats().Topic)

	require.NoError(t, consumer.reader.Close())
}
