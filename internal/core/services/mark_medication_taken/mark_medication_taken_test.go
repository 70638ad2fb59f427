package markmedicationtaken

import (
	"context"
	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/dailylog"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID("user-1")

var Now = time.Date(2023, 5, 15, 9, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger      *logging.FakeLogger
	medications *medication.FakeRepository
	intakes     *medication.FakeIntakeRepository
	dailyLogs   *dailylog.FakeRepository
	service     services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.medications = medication.NewFakeRepository()
	suite.intakes = medication.NewFakeIntakeRepository()
	suite.dailyLogs = dailylog.NewFakeRepository()
	suite.service = New(
		suite.logger,
		suite.medications,
		suite.intakes,
		suite.dailyLogs,
		func() time.Time { return Now },
	)
}

func TestMarkMedicationTakenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createMedication(userID user.ID) medication.Medication {
	m, err := s.medications.Create(context.Background(), medication.CreateInput{
		UserID:        userID,
		Name:          "Sertraline",
		ReminderTimes: []string{"09:00"},
		IsActive:      true,
		CreatedAt:     Now,
	})
	s.Require().Nil(err)
	return m
}

func (s *testSuite) TestRecordsIntakeAndUpsertsDailyLog() {
	m := s.createMedication(USER_ID)

	result, err := s.service.Run(context.Background(), Input{
		User:         user.User{ID: USER_ID},
		MedicationID: m.ID,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(Now, result.TakenAt)
	assert.Equal(1, s.intakes.Count())

	today := dailylog.Day(Now, time.UTC)
	l, err := s.dailyLogs.GetByDate(context.Background(), USER_ID, today)
	assert.Nil(err)
	assert.Equal(c.NewOptional(true, true), l.MedicationTaken)
	assert.Equal(`Medication "Sertraline" taken at 9:30:00 AM`, l.Notes.Value)
}

func (s *testSuite) TestAppendsNoteToExistingLog() {
	m := s.createMedication(USER_ID)
	today := dailylog.Day(Now, time.UTC)
	_, err := s.dailyLogs.Upsert(context.Background(), dailylog.UpsertInput{
		UserID: USER_ID,
		Date:   today,
		Notes:  c.NewOptional("Slept well", true),
		At:     Now.Add(-time.Hour),
	})
	s.Require().Nil(err)

	_, err = s.service.Run(context.Background(), Input{
		User:         user.User{ID: USER_ID},
		MedicationID: m.ID,
	})

	assert := s.Require()
	assert.Nil(err)
	l, err := s.dailyLogs.GetByDate(context.Background(), USER_ID, today)
	assert.Nil(err)
	assert.Equal("Slept well\nMedication \"Sertraline\" taken at 9:30:00 AM", l.Notes.Value)
}

func (s *testSuite) TestForeignMedicationIsRejected() {
	m := s.createMedication(user.ID("user-2"))

	_, err := s.service.Run(context.Background(), Input{
		User:         user.User{ID: USER_ID},
		MedicationID: m.ID,
	})

	assert := s.Require()
	assert.ErrorIs(err, medication.ErrMedicationDoesNotExist)
	assert.Equal(0, s.intakes.Count())
}

func (s *testSuite) TestExplicitTakenAtIsUsed() {
	m := s.createMedication(USER_ID)
	takenAt := Now.Add(-2 * time.Hour)

	result, err := s.service.Run(context.Background(), Input{
		User:         user.User{ID: USER_ID},
		MedicationID: m.ID,
		TakenAt:      c.NewOptional(takenAt, true),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(takenAt, result.TakenAt)
	assert.Equal(takenAt, s.intakes.Intakes[0].TakenAt)
}
