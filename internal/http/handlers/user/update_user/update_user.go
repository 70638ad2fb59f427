package updateuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "mindlog/internal/core/domain/common"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/update_user"
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

// Pointer fields distinguish "not supplied" from "explicitly cleared":
// a missing key leaves the field intact, an explicit null clears it.
type Input struct {
	FirstName        *string        `json:"firstName"`
	LastName         *string        `json:"lastName"`
	EmergencyContact doubleOptional `json:"emergencyContact"`
}

type doubleOptional struct {
	Supplied bool
	Value    *string
}

func (o *doubleOptional) UnmarshalJSON(data []byte) error {
	o.Supplied = true
	return json.Unmarshal(data, &o.Value)
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.FirstName, validation.Length(0, 256)),
		validation.Field(&i.LastName, validation.Length(0, 256)),
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

	serviceInput := service.Input{}
	if input.FirstName != nil {
		serviceInput.FirstName = c.NewOptional(*input.FirstName, true)
	}
	if input.LastName != nil {
		serviceInput.LastName = c.NewOptional(*input.LastName, true)
	}
	if input.EmergencyContact.Supplied {
		var contact c.Optional[string]
		if input.EmergencyContact.Value != nil {
			contact = c.NewOptional(*input.EmergencyContact.Value, true)
		}
		serviceInput.EmergencyContact = c.NewOptional(contact, true)
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
