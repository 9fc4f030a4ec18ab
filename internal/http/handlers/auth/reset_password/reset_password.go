package resetpassword

import (
	"encoding/json"
	e "enemauth/internal/core/domain/errors"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/domain/user"
	"enemauth/internal/core/services"
	service "enemauth/internal/core/services/reset_password"
	"enemauth/internal/http/handlers/response"
	"io"
	"net/http"

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
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(8, 256)),
		validation.Field(&i.ConfirmPassword, validation.Required, validation.Length(0, 256)),
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

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Token:           passwordreset.Token(input.Token),
			NewPassword:     user.RawPassword(input.NewPassword),
			ConfirmPassword: user.RawPassword(input.ConfirmPassword),
		},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.RenderOutcome(rw, response.Outcome{Message: result.Message, Success: result.Success}, result.Success)
}
