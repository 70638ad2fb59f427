package updatemedication

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
	service "mindlog/internal/core/services/update_medication"
	"mindlog/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
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

// Pointer fields distinguish "not supplied" from "explicitly cleared":
// a missing key leaves the field intact, an explicit null clears it.
type Input struct {
	Name          *string        `json:"name"`
	Dosage        doubleOptional `json:"dosage"`
	Frequency     doubleOptional `json:"frequency"`
	ReminderTimes *[]string      `json:"reminderTimes"`
	ReminderDate  dateOptional   `json:"reminderDate"`
	IsActive      *bool          `json:"isActive"`
}

type doubleOptional struct {
	Supplied bool
	Value    *string
}

func (o *doubleOptional) UnmarshalJSON(data []byte) error {
	o.Supplied = true
	return json.Unmarshal(data, &o.Value)
}

type dateOptional struct {
	Supplied bool
	Value    *time.Time
}

func (o *dateOptional) UnmarshalJSON(data []byte) error {
	o.Supplied = true
	return json.Unmarshal(data, &o.Value)
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
		validation.Field(&i.Name, validation.Length(1, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	medicationID := chi.URLParam(r, "medicationID")
	if medicationID == "" {
		response.RenderError(rw, "medication ID is required", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceInput := service.Input{MedicationID: medication.ID(medicationID)}
	if input.Name != nil {
		serviceInput.Name = c.NewOptional(*input.Name, true)
	}
	if input.Dosage.Supplied {
		var dosage c.Optional[string]
		if input.Dosage.Value != nil {
			dosage = c.NewOptional(*input.Dosage.Value, true)
		}
		serviceInput.Dosage = c.NewOptional(dosage, true)
	}
	if input.Frequency.Supplied {
		var frequency c.Optional[string]
		if input.Frequency.Value != nil {
			frequency = c.NewOptional(*input.Frequency.Value, true)
		}
		serviceInput.Frequency = c.NewOptional(frequency, true)
	}
	if input.ReminderTimes != nil {
		serviceInput.ReminderTimes = c.NewOptional(*input.ReminderTimes, true)
	}
	if input.ReminderDate.Supplied {
		var date c.Optional[time.Time]
		if input.ReminderDate.Value != nil {
			date = c.NewOptional(*input.ReminderDate.Value, true)
		}
		serviceInput.ReminderDate = c.NewOptional(date, true)
	}
	if input.IsActive != nil {
		serviceInput.IsActive = c.NewOptional(*input.IsActive, true)
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, medication.ErrMedicationDoesNotExist):
			response.RenderError(rw, "medication does not exist", http.StatusNotFound)
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
	response.Render(rw, Result{Medication: m}, http.StatusOK)
}
