package markmedicationtaken

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
	service "mindlog/internal/core/services/mark_medication_taken"
	"mindlog/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
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
	TakenAt *time.Time `json:"takenAt"`
}

type Result struct {
	Intake  response.Intake `json:"intake"`
	TakenAt time.Time       `json:"takenAt"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	err := e.Decode(i)
	if err == io.EOF {
		// The body is optional, an empty one means "taken just now".
		return nil
	}
	return err
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

	var takenAt c.Optional[time.Time]
	if input.TakenAt != nil {
		takenAt = c.NewOptional(*input.TakenAt, true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			MedicationID: medication.ID(medicationID),
			TakenAt:      takenAt,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, medication.ErrMedicationDoesNotExist):
			response.RenderError(rw, "medication does not exist", http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	intake := response.Intake{}
	intake.FromDomainType(result.Intake)
	response.Render(rw, Result{Intake: intake, TakenAt: result.TakenAt}, http.StatusOK)
}
