package createmedication

import (
	"context"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	schedulereminders "mindlog/internal/core/services/schedule_reminders"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID("user-1")

var Now = time.Date(2023, 5, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger      *logging.FakeLogger
	medications *medication.FakeRepository
	scheduler   *medication.FakeScheduler
	service     services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.medications = medication.NewFakeRepository()
	suite.scheduler = medication.NewFakeScheduler()
	resync := schedulereminders.New(suite.logger, suite.medications, suite.scheduler)
	suite.service = New(
		suite.logger,
		suite.medications,
		resync,
		func() time.Time { return Now },
	)
}

func TestCreateMedicationService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreateSchedulesReminders() {
	result, err := s.service.Run(context.Background(), Input{
		User:          user.User{ID: USER_ID},
		Name:          "Sertraline",
		Dosage:        c.NewOptional("50mg", true),
		ReminderTimes: []string{"09:00", "21:00"},
		IsActive:      true,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal("Sertraline", result.Medication.Name)
	assert.Equal(USER_ID, result.Medication.UserID)

	assert.Equal(1, s.scheduler.SetCalls)
	assert.Len(s.scheduler.WorkingSet, 1)
	assert.Equal(result.Medication.ID, s.scheduler.WorkingSet[0].ID)
}

func (s *testSuite) TestInactiveMedicationIsNotScheduled() {
	_, err := s.service.Run(context.Background(), Input{
		User:          user.User{ID: USER_ID},
		Name:          "Sertraline",
		ReminderTimes: []string{"09:00"},
		IsActive:      false,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(1, s.scheduler.SetCalls)
	assert.Empty(s.scheduler.WorkingSet)
}

func (s *testSuite) TestNameIsRequired() {
	_, err := s.service.Run(context.Background(), Input{
		User: user.User{ID: USER_ID},
		Name: "",
	})

	assert := s.Require()
	assert.ErrorIs(err, medication.ErrMedicationNameNotSet)
	assert.Equal(0, s.scheduler.SetCalls)
}

func (s *testSuite) TestInvalidReminderTimeIsRejected() {
	_, err := s.service.Run(context.Background(), Input{
		User:          user.User{ID: USER_ID},
		Name:          "Sertraline",
		ReminderTimes: []string{"25:00"},
	})

	assert := s.Require()
	assert.ErrorIs(err, medication.ErrInvalidReminderTime)
	assert.Empty(s.medications.Medications)
}
