package processor

import (
	"context"

	"staybook/pkg/logger"
	"staybook/rating-worker-service/internal/app/rating-worker/service"

	"github.com/robfig/cron/v3"
)

// printfLogger направляет логи cron в zerolog
type printfLogger func(format string, args ...interface{})

func (f printfLogger) Printf(format string, args ...interface{}) {
	f(format, args...)
}

// CronScheduler периодически сверяет агрегаты рейтингов с оценками
type CronScheduler struct {
	cron      *cron.Cron
	ratingSvc service.RatingServiceInterface
}

func NewCronScheduler(ratingSvc service.RatingServiceInterface) *CronScheduler {
	cronLogger := cron.PrintfLogger(printfLogger(logger.Printf))
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &CronScheduler{
		cron:      c,
		ratingSvc: ratingSvc,
	}
}

// Start регистрирует сверку по расписанию. Первый запуск - по расписанию, а не сразу
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: reconciling hotel ratings")
		if err := s.ratingSvc.ReconcileAll(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to reconcile hotel ratings")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("Cron scheduler started")
	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
