package createmedication

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	c "mindlog/internal/core/domain/common"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
	service "mindlog/internal/core/services/create_medication"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2023, 5, 15, 15, 30, 30, 0, time.UTC)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Medication = medication.Medication{
		ID:            medication.ID("medication-1"),
		UserID:        user.ID("user-1"),
		Name:          input.Name,
		Dosage:        input.Dosage,
		Frequency:     input.Frequency,
		ReminderTimes: input.ReminderTimes,
		ReminderDate:  input.ReminderDate,
		IsActive:      input.IsActive,
		CreatedAt:     NOW,
		UpdatedAt:     NOW,
	}
	return result, nil
}

func TestCreateMedicationHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "name only",
			body:           `{"name": "Sertraline"}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &service.Input{
				Name:     "Sertraline",
				IsActive: true,
			},
		},
		{
			id: "all fields",
			body: `{
				"name": "Sertraline",
				"dosage": "50mg",
				"frequency": "daily",
				"reminderTimes": ["08:00", "20:00"],
				"isActive": false
			}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &service.Input{
				Name:          "Sertraline",
				Dosage:        c.NewOptional("50mg", true),
				Frequency:     c.NewOptional("daily", true),
				ReminderTimes: []string{"08:00", "20:00"},
				IsActive:      false,
			},
		},
		{
			id:             "name missing",
			body:           `{"dosage": "50mg"}`,
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			id:             "invalid json",
			body:           `{"name": `,
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
	}

	for _, testcase := range cases {
		stub := &stubService{}
		handler := New(stub)
		rw := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/medications", strings.NewReader(testcase.body))

		handler.ServeHTTP(rw, request)

		assert.Equal(t, testcase.expectedStatus, rw.Code, testcase.id)
		if testcase.expectedInput == nil {
			assert.Nil(t, stub.input, testcase.id)
			continue
		}
		require.NotNil(t, stub.input, testcase.id)
		assert.Equal(t, *testcase.expectedInput, *stub.input, testcase.id)
	}
}

func TestCreateMedicationHandlerServiceErrors(t *testing.T) {
	cases := []struct {
		id             string
		err            error
		expectedStatus int
	}{
		{id: "unauthorized", err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "invalid reminder time", err: medication.ErrInvalidReminderTime, expectedStatus: http.StatusUnprocessableEntity},
		{id: "unexpected", err: assert.AnError, expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		handler := New(&stubService{err: testcase.err})
		rw := httptest.NewRecorder()
		request := httptest.NewRequest(
			http.MethodPost,
			"/medications",
			strings.NewReader(`{"name": "Sertraline"}`),
		)

		handler.ServeHTTP(rw, request)

		assert.Equal(t, testcase.expectedStatus, rw.Code, testcase.id)
	}
}
