package signup

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "mindlog/internal/core/domain/common"
	e "mindlog/internal/core/domain/errors"
	ratelimiter "mindlog/internal/core/domain/rate_limiter"
	"mindlog/internal/core/domain/user"
	"mindlog/internal/core/services"
	service "mindlog/internal/core/services/sign_up"
	"mindlog/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
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
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Age              int     `json:"age"`
	EmergencyContact *string `json:"emergencyContact"`
}

type Result struct {
	User  response.User `json:"user"`
	Token string        `json:"token"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
		validation.Field(&i.FirstName, validation.Length(0, 256)),
		validation.Field(&i.LastName, validation.Length(0, 256)),
		validation.Field(&i.Age, validation.Required, validation.Min(user.MIN_AGE), validation.Max(user.MAX_AGE)),
		validation.Field(&i.EmergencyContact, validation.Length(0, 512)),
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

	var emergencyContact c.Optional[string]
	if input.EmergencyContact != nil {
		emergencyContact = c.NewOptional(*input.EmergencyContact, true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Email:            c.NewEmail(input.Email),
			Password:         user.RawPassword(input.Password),
			FirstName:        input.FirstName,
			LastName:         input.LastName,
			Age:              input.Age,
			EmergencyContact: emergencyContact,
		},
	)
	if err != nil {
		var emailExistsErr *user.EmailAlreadyExistsError
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.As(err, &emailExistsErr):
			response.RenderError(rw, "email already exists", http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrInvalidAge):
			response.RenderError(rw, "age must be between 10 and 19", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u, Token: string(result.Token)}, http.StatusCreated)
}
