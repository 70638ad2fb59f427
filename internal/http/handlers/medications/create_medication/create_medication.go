package createmedication

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	c "mindlog/internal/core/domain/common"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/create_medication"
	"mindlog/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Name          string     `json:"name"`
	Dosage        *string    `json:"dosage"`
	Frequency     *string    `json:"frequency"`
	ReminderTimes []string   `json:"reminderTimes"`
	ReminderDate  *time.Time `json:"reminderDate"`
	IsActive      *bool      `json:"isActive"`
}

type Result struct {
	Medication response.Medication `json:"medication"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Dosage, validation.Length(0, 128)),
		validation.Field(&i.Frequency, validation.Length(0, 128)),
		validation.Field(&i.ReminderTimes, validation.Length(0, 24)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	var dosage, frequency c.Optional[string]
	if input.Dosage != nil {
		dosage = c.NewOptional(*input.Dosage, true)
	}
	if input.Frequency != nil {
		frequency = c.NewOptional(*input.Frequency, true)
	}
	var reminderDate c.Optional[time.Time]
	if input.ReminderDate != nil {
		reminderDate = c.NewOptional(*input.ReminderDate, true)
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Name:          input.Name,
			Dosage:        dosage,
			Frequency:     frequency,
			ReminderTimes: input.ReminderTimes,
			ReminderDate:  reminderDate,
			IsActive:      isActive,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, medication.ErrMedicationNameNotSet),
			errors.Is(err, medication.ErrInvalidReminderTime):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	m := response.Medication{}
	m.FromDomainType(result.Medication)
	response.Render(rw, Result{Medication: m}, http.StatusCreated)
}
