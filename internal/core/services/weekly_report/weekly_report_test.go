package weeklyreport

import (
	"context"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/dailylog"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID("user-1")

// A Wednesday; the containing week runs Sunday 2023-05-14 through
// Saturday 2023-05-20.
var Now = time.Date(2023, 5, 17, 15, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger    *logging.FakeLogger
	dailyLogs *dailylog.FakeRepository
	service   services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.dailyLogs = dailylog.NewFakeRepository()
	suite.service = New(
		suite.logger,
		suite.dailyLogs,
		func() time.Time { return Now },
	)
}

func TestWeeklyReportService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) addLog(date time.Time, mood, sleep, energy int, taken c.Optional[bool], emotions ...string) {
	_, err := s.dailyLogs.Upsert(context.Background(), dailylog.UpsertInput{
		UserID:            USER_ID,
		Date:              date,
		MoodRating:        c.NewOptional(mood, true),
		SleepQuality:      c.NewOptional(sleep, true),
		EnergyLevel:       c.NewOptional(energy, true),
		MedicationTaken:   taken,
		EmotionCheckboxes: emotions,
		At:                date,
	})
	s.Require().Nil(err)
}

func (s *testSuite) TestWeekStartsOnSunday() {
	sunday := time.Date(2023, 5, 14, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC)
	previousSaturday := time.Date(2023, 5, 13, 0, 0, 0, 0, time.UTC)
	s.addLog(sunday, 7, 4, 6, c.Optional[bool]{})
	s.addLog(saturday, 8, 4, 6, c.Optional[bool]{})
	s.addLog(previousSaturday, 2, 1, 2, c.Optional[bool]{})

	result, err := s.service.Run(context.Background(), Input{User: user.User{ID: USER_ID}})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(sunday, result.PeriodStart)
	assert.Equal(saturday, result.PeriodEnd)
	assert.Equal(2, result.Summary.CheckInsCompleted)
	assert.Equal(7.5, result.CurrentWeek.Mood)
	assert.Equal(2.0, result.PreviousWeek.Mood)
}

func (s *testSuite) TestAdherenceIgnoresUnansweredDays() {
	monday := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	s.addLog(monday, 5, 3, 5, c.NewOptional(true, true))
	s.addLog(monday.AddDate(0, 0, 1), 5, 3, 5, c.NewOptional(false, true))
	s.addLog(monday.AddDate(0, 0, 2), 5, 3, 5, c.Optional[bool]{})

	result, err := s.service.Run(context.Background(), Input{User: user.User{ID: USER_ID}})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(50.0, result.CurrentWeek.Medication)
}

func (s *testSuite) TestGoodAndChallengingDays() {
	monday := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	s.addLog(monday, 8, 3, 5, c.Optional[bool]{})
	s.addLog(monday.AddDate(0, 0, 1), 6, 3, 5, c.Optional[bool]{})
	s.addLog(monday.AddDate(0, 0, 2), 3, 3, 5, c.Optional[bool]{})
	s.addLog(monday.AddDate(0, 0, 3), 5, 3, 5, c.Optional[bool]{})

	result, err := s.service.Run(context.Background(), Input{User: user.User{ID: USER_ID}})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(2, result.Summary.GoodDays)
	assert.Equal(1, result.Summary.ChallengingDays)
	assert.Equal(7, result.Summary.TotalDays)
}

func (s *testSuite) TestTopEmotionsAreMostFrequentFirst() {
	monday := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	s.addLog(monday, 5, 3, 5, c.Optional[bool]{}, "anxious", "tired")
	s.addLog(monday.AddDate(0, 0, 1), 5, 3, 5, c.Optional[bool]{}, "anxious", "hopeful")
	s.addLog(monday.AddDate(0, 0, 2), 5, 3, 5, c.Optional[bool]{}, "anxious", "tired", "calm")

	result, err := s.service.Run(context.Background(), Input{User: user.User{ID: USER_ID}})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal([]string{"anxious", "tired", "calm"}, result.TopEmotions)
}

func (s *testSuite) TestInsightsForLowAdherence() {
	monday := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	s.addLog(monday, 5, 5, 5, c.NewOptional(false, true))

	result, err := s.service.Run(context.Background(), Input{User: user.User{ID: USER_ID}})

	assert := s.Require()
	assert.Nil(err)
	assert.Contains(
		result.Insights,
		"Try setting daily reminders to help maintain consistent medication routine.",
	)
	assert.Contains(
		result.Insights,
		"Try to complete more daily check-ins next week - they help track your progress.",
	)
}

func (s *testSuite) TestEmptyWeeks() {
	result, err := s.service.Run(context.Background(), Input{User: user.User{ID: USER_ID}})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(0, result.Summary.CheckInsCompleted)
	assert.Equal(0.0, result.CurrentWeek.Mood)
	assert.Empty(result.TopEmotions)
}
