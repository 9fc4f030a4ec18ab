package validateresettoken

import (
	e "enemauth/internal/core/domain/errors"
	passwordreset "enemauth/internal/core/domain/password_reset"
	"enemauth/internal/core/services"
	service "enemauth/internal/core/services/validate_password_reset_token"
	"enemauth/internal/http/handlers/response"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	err := validation.Validate(token, validation.Required, validation.Length(0, 1024))
	if err != nil {
		response.Render(rw, map[string]string{"token": err.Error()}, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Token: passwordreset.Token(token)})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	res := response.TokenValidation{Valid: result.Valid, Message: result.Message}
	if result.Email.IsPresent {
		email := string(result.Email.Value)
		res.Email = &email
	}
	response.RenderOutcome(rw, res, result.Valid)
}
