package savedailylog

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

var Now = time.Date(2023, 5, 15, 20, 0, 0, 0, time.UTC)

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

func TestSaveDailyLogService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreatesTodayLog() {
	result, err := s.service.Run(context.Background(), Input{
		User:              user.User{ID: USER_ID},
		MoodRating:        c.NewOptional(7, true),
		EmotionCheckboxes: []string{"hopeful", "calm"},
		SleepQuality:      c.NewOptional(4, true),
		MedicationTaken:   c.NewOptional(true, true),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC), result.DailyLog.Date)
	assert.Equal(c.NewOptional(7, true), result.DailyLog.MoodRating)
	assert.Equal([]string{"hopeful", "calm"}, result.DailyLog.EmotionCheckboxes)
}

func (s *testSuite) TestSecondSaveOverwritesSameDay() {
	_, err := s.service.Run(context.Background(), Input{
		User:       user.User{ID: USER_ID},
		MoodRating: c.NewOptional(3, true),
	})
	s.Require().Nil(err)

	result, err := s.service.Run(context.Background(), Input{
		User:       user.User{ID: USER_ID},
		MoodRating: c.NewOptional(8, true),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(c.NewOptional(8, true), result.DailyLog.MoodRating)
	assert.Len(s.dailyLogs.Logs, 1)
}

func (s *testSuite) TestRatingOutOfRange() {
	for _, rating := range []int{0, -1, 11, 100} {
		_, err := s.service.Run(context.Background(), Input{
			User:       user.User{ID: USER_ID},
			MoodRating: c.NewOptional(rating, true),
		})

		s.Require().ErrorIs(err, dailylog.ErrInvalidRating)
	}
	s.Require().Empty(s.dailyLogs.Logs)
}
