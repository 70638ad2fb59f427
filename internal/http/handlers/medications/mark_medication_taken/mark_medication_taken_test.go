package markmedicationtaken

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
	service "mindlog/internal/core/services/mark_medication_taken"

	"github.com/go-chi/chi/v5"
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
	takenAt := NOW
	if input.TakenAt.IsPresent {
		takenAt = input.TakenAt.Value
	}
	result.Intake = medication.Intake{
		ID:           medication.ID("intake-1"),
		MedicationID: input.MedicationID,
		UserID:       user.ID("user-1"),
		TakenAt:      takenAt,
	}
	result.TakenAt = takenAt
	return result, nil
}

func newRequest(body string) *http.Request {
	request := httptest.NewRequest(
		http.MethodPost,
		"/medications/medication-1/taken",
		strings.NewReader(body),
	)
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add("medicationID", "medication-1")
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

func TestMarkMedicationTakenHandler(t *testing.T) {
	takenAt := time.Date(2023, 5, 15, 8, 0, 0, 0, time.UTC)
	cases := []struct {
		id             string
		body           string
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "empty body means taken now",
			body:           "",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{MedicationID: medication.ID("medication-1")},
		},
		{
			id:             "explicit taken at",
			body:           `{"takenAt": "2023-05-15T08:00:00Z"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				MedicationID: medication.ID("medication-1"),
				TakenAt:      c.NewOptional(takenAt, true),
			},
		},
		{
			id:             "invalid json",
			body:           `{"takenAt": `,
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
	}

	for _, testcase := range cases {
		stub := &stubService{}
		handler := New(stub)
		rw := httptest.NewRecorder()

		handler.ServeHTTP(rw, newRequest(testcase.body))

		assert.Equal(t, testcase.expectedStatus, rw.Code, testcase.id)
		if testcase.expectedInput == nil {
			assert.Nil(t, stub.input, testcase.id)
			continue
		}
		require.NotNil(t, stub.input, testcase.id)
		assert.Equal(t, *testcase.expectedInput, *stub.input, testcase.id)
	}
}

func TestMarkMedicationTakenHandlerServiceErrors(t *testing.T) {
	cases := []struct {
		id             string
		err            error
		expectedStatus int
	}{
		{id: "unauthorized", err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "not found", err: medication.ErrMedicationDoesNotExist, expectedStatus: http.StatusNotFound},
		{id: "unexpected", err: assert.AnError, expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		handler := New(&stubService{err: testcase.err})
		rw := httptest.NewRecorder()

		handler.ServeHTTP(rw, newRequest(""))

		assert.Equal(t, testcase.expectedStatus, rw.Code, testcase.id)
	}
}
