package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCronScheduler(t *testing.T) {
	svc := new(MockRatingService)

	scheduler := NewCronScheduler(svc)

	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, svc, scheduler.ratingSvc)
}

func TestCronScheduler_Start_RegistersJob(t *testing.T) {
	// Arrange
	svc := new(MockRatingService)
	scheduler := NewCronScheduler(svc)

	// Act
	err := scheduler.Start(context.Background(), "@every 1h")
	defer scheduler.Stop()

	// Assert
	require.NoError(t, err)
	entries := scheduler.GetEntries()
	require.Len(t, entries, 1)
	assert.WithinDuration(t, time.Now().Add(time.Hour), entries[0].Next, 5*time.Second)
	svc.AssertNotCalled(t, "ReconcileAll", mock.Anything)
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	scheduler := NewCronScheduler(new(MockRatingService))

	err := scheduler.Start(context.Background(), "every hour")

	assert.Error(t, err)
	assert.Empty(t, scheduler.GetEntries())
}

func TestCronScheduler_RunsReconcile(t *testing.T) {
	svc := new(MockRatingService)
	done := make(chan struct{}, 1)
	svc.On("ReconcileAll", mock.Anything).Return(errors.New("timeout")).Run(func(mock.Arguments) {
		select {
		case done <- struct{}{}:
		default:
		}
	})

	scheduler := NewCronScheduler(svc)
	require.NoError(t, scheduler.Start(context.Background(), "@every 1s"))
	defer scheduler.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("reconcile job did not run")
	}
}
