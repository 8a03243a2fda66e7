package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"staybook/rating-worker-service/internal/app/rating-worker/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	upsertScoreSQL = `INSERT INTO "hotel_review_scores" ("hotel_id","user_id","review_id","rating","updated_at") VALUES ($1,$2,$3,$4,$5) ON CONFLICT ("hotel_id","user_id") DO UPDATE SET`
	deleteScoreSQL = `DELETE FROM "hotel_review_scores" WHERE hotel_id = $1 AND user_id = $2`
)

type RatingRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  RatingRepository
	sqlDB *sql.DB
}

func TestRatingRepositorySuite(t *testing.T) {
	suite.Run(t, new(RatingRepositoryTestSuite))
}

func (s *RatingRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewRatingRepository(s.db)
}

func (s *RatingRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func newScore(hotelID uuid.UUID) *entity.HotelReviewScore {
	return &entity.HotelReviewScore{
		HotelID:   hotelID,
		UserID:    "user-1",
		ReviewID:  "review-1",
		Rating:    4.5,
		UpdatedAt: time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// ===== SaveScore Tests =====

func (s *RatingRepositoryTestSuite) TestSaveScore_UpsertsAndRecalculatesInOneTransaction() {
	// Arrange
	ctx := context.Background()
	hotelID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(upsertScoreSQL)).
		WithArgs(hotelID, "user-1", "review-1", 4.5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE hotels SET`)).
		WithArgs(hotelID, hotelID, hotelID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.SaveScore(ctx, newScore(hotelID))

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestSaveScore_RecalculateFailureRollsBack() {
	ctx := context.Background()
	hotelID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(upsertScoreSQL)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE hotels SET`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	err := s.repo.SaveScore(ctx, newScore(hotelID))

	s.Error(err)
	s.True(errors.Is(err, sql.ErrConnDone))
	s.Contains(err.Error(), "failed to recalculate hotel")
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestSaveScore_UpsertFailureRollsBack() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(upsertScoreSQL)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	err := s.repo.SaveScore(ctx, newScore(uuid.New()))

	s.Error(err)
	s.Contains(err.Error(), "failed to save score")
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===== DeleteScore Tests =====

func (s *RatingRepositoryTestSuite) TestDeleteScore_DeletesAndRecalculates() {
	ctx := context.Background()
	hotelID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(deleteScoreSQL)).
		WithArgs(hotelID, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE hotels SET`)).
		WithArgs(hotelID, hotelID, hotelID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.DeleteScore(ctx, hotelID, "user-1")

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestDeleteScore_MissingScoreStillRecalculates() {
	ctx := context.Background()
	hotelID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(deleteScoreSQL)).
		WithArgs(hotelID, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE hotels SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	s.NoError(s.repo.DeleteScore(ctx, hotelID, "user-1"))
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===== RecalculateAll Tests =====

func (s *RatingRepositoryTestSuite) TestRecalculateAll() {
	ctx := context.Background()

	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE hotels AS h SET`)).
		WillReturnResult(sqlmock.NewResult(0, 7))

	updated, err := s.repo.RecalculateAll(ctx)

	s.NoError(err)
	s.Equal(int64(7), updated)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestRecalculateAll_DBError() {
	ctx := context.Background()

	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE hotels AS h SET`)).
		WillReturnError(sql.ErrConnDone)

	updated, err := s.repo.RecalculateAll(ctx)

	s.Error(err)
	s.Zero(updated)
}
