package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/repository"
	"github.com/vytor/chessdrill/internal/repository/sqlite"
	"github.com/vytor/chessdrill/internal/testutil"
)

type DrillSessionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.DrillSessionRepository
}

func (s *DrillSessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewDrillSessionRepository(s.db)
}

func (s *DrillSessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func newSession(id string, drillType models.DrillType) models.DrillSession {
	return models.DrillSession{
		ID:          id,
		DrillType:   drillType,
		InputMethod: models.InputMethodClick,
		Perspective: "white",
		StartedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *DrillSessionRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Create(ctx, newSession("s1", models.DrillTypeFindSquare)))

	got, err := s.repo.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Equal("s1", got.ID)
	s.Assert().Equal(models.DrillTypeFindSquare, got.DrillType)
	s.Assert().Equal(models.InputMethodClick, got.InputMethod)
	s.Assert().True(got.StartedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	s.Assert().Nil(got.EndedAt)
}

func (s *DrillSessionRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), "missing")
	s.Assert().ErrorIs(err, sql.ErrNoRows)
	s.Assert().Nil(got)
}

func (s *DrillSessionRepositorySuite) TestEnd() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, newSession("s1", models.DrillTypeNameSquare)))
	endedAt := time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC)
	summary := models.DrillSessionSummary{TotalAttempts: 4, Correct: 3, AvgResponseMs: 850, StreakBest: 2}

	s.Require().NoError(s.repo.End(ctx, "s1", endedAt, summary))

	got, err := s.repo.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Require().NotNil(got.EndedAt)
	s.Assert().True(got.EndedAt.Equal(endedAt))
	s.Assert().Equal(summary, got.Summary)

	s.Assert().ErrorIs(s.repo.End(ctx, "missing", endedAt, summary), sql.ErrNoRows)
}

func (s *DrillSessionRepositorySuite) TestCountAndBestStreak() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, newSession("a", models.DrillTypeNameSquare)))
	s.Require().NoError(s.repo.Create(ctx, newSession("b", models.DrillTypeFindSquare)))
	s.Require().NoError(s.repo.End(ctx, "a", time.Now(), models.DrillSessionSummary{StreakBest: 7}))
	s.Require().NoError(s.repo.End(ctx, "b", time.Now(), models.DrillSessionSummary{StreakBest: 3}))

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(2, count)

	best, err := s.repo.BestStreak(ctx, "")
	s.Require().NoError(err)
	s.Assert().Equal(7, best)

	best, err = s.repo.BestStreak(ctx, models.DrillTypeFindSquare)
	s.Require().NoError(err)
	s.Assert().Equal(3, best)

	best, err = s.repo.BestStreak(ctx, models.DrillTypeMoveNotation)
	s.Require().NoError(err)
	s.Assert().Equal(0, best)
}

func TestDrillSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(DrillSessionRepositorySuite))
}
