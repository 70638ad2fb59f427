package action

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
	"mindlog/internal/core/domain/medication"
	"mindlog/internal/core/domain/notification"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	authservice "mindlog/internal/core/services/get_user_by_session_token"
	marktaken "mindlog/internal/core/services/mark_medication_taken"
	"mindlog/internal/http/handlers/auth"
	"mindlog/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	log         logging.Logger
	authService services.Service[authservice.Input, authservice.Result]
	markService services.Service[marktaken.Input, marktaken.Result]
	scheduler   medication.Scheduler
}

func New(
	log logging.Logger,
	authService services.Service[authservice.Input, authservice.Result],
	markService services.Service[marktaken.Input, marktaken.Result],
	scheduler medication.Scheduler,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if authService == nil {
		panic(e.NewNilArgumentError("authService"))
	}
	if markService == nil {
		panic(e.NewNilArgumentError("markService"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	return &Handler{
		log:         log,
		authService: authService,
		markService: markService,
		scheduler:   scheduler,
	}
}

type Input struct {
	MedicationID string `json:"medicationId"`
	Action       string `json:"action"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.MedicationID, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Action, validation.Required, validation.In(
			string(notification.ActionTaken),
			string(notification.ActionSnooze),
			string(notification.ActionDismiss),
		)),
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

	switch notification.Action(input.Action) {
	case notification.ActionTaken:
		h.markTaken(rw, r, medication.ID(input.MedicationID))
	case notification.ActionSnooze:
		h.snooze(rw, r, medication.ID(input.MedicationID))
	case notification.ActionDismiss:
		// Dismiss acknowledges the reminder without any state change.
		response.Render(rw, struct{}{}, http.StatusOK)
	}
}

func (h *Handler) markTaken(rw http.ResponseWriter, r *http.Request, medicationID medication.ID) {
	result, err := h.markService.Run(r.Context(), marktaken.Input{MedicationID: medicationID})
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
	response.Render(rw, struct {
		Intake response.Intake `json:"intake"`
	}{Intake: intake}, http.StatusOK)
}

func (h *Handler) snooze(rw http.ResponseWriter, r *http.Request, medicationID medication.ID) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}
	result, err := h.authService.Run(r.Context(), authservice.Input{Token: token})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	h.scheduler.Snooze(medicationID)
	h.log.Info(
		r.Context(),
		"Medication reminder snoozed.",
		logging.Entry("userId", result.User.ID),
		logging.Entry("medicationId", medicationID),
	)
	response.Render(rw, struct{}{}, http.StatusOK)
}
