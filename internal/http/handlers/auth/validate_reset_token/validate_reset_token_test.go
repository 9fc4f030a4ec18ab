package validateresettoken

import (
	"context"
	c "enemauth/internal/core/domain/common"
	passwordreset "enemauth/internal/core/domain/password_reset"
	service "enemauth/internal/core/services/validate_password_reset_token"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	result service.Result
	input  *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	s.input = &input
	return s.result, nil
}

func TestValidateResetTokenHandler(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		result         service.Result
		expectedStatus int
		expectedBody   string
		expectedInput  *service.Input
	}{
		{
			id:  "valid",
			url: "/api/auth/validate-reset-token?token=abc",
			result: service.Result{
				Valid:   true,
				Message: passwordreset.MsgTokenValid,
				Email:   c.NewOptional(c.Email("test@test.test"), true),
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"valid": true, "message": "` + passwordreset.MsgTokenValid + `", "email": "test@test.test"}`,
			expectedInput:  &service.Input{Token: passwordreset.Token("abc")},
		},
		{
			id:             "invalid",
			url:            "/api/auth/validate-reset-token?token=abc",
			result:         service.Result{Valid: false, Message: passwordreset.MsgTokenInvalidOrExpired},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"valid": false, "message": "` + passwordreset.MsgTokenInvalidOrExpired + `", "email": null}`,
			expectedInput:  &service.Input{Token: passwordreset.Token("abc")},
		},
		{
			id:             "missing token",
			url:            "/api/auth/validate-reset-token",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"token": "cannot be blank"}`,
		},
		{
			id:             "too long token",
			url:            "/api/auth/validate-reset-token?token=" + strings.Repeat("a", 1025),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"token": "the length must be no more than 1024"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{result: testcase.result}
			req := httptest.NewRequest(http.MethodGet, testcase.url, nil)
			rr := httptest.NewRecorder()

			New(stub).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.JSONEq(t, testcase.expectedBody, rr.Body.String())
			assert.Equal(t, testcase.expectedInput, stub.input)
		})
	}
}
