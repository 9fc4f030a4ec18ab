package forgotpassword

import (
	"context"
	c "enemauth/internal/core/domain/common"
	passwordreset "enemauth/internal/core/domain/password_reset"
	ratelimiter "enemauth/internal/core/domain/rate_limiter"
	service "enemauth/internal/core/services/request_password_reset"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	result service.Result
	err    error
	input  *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return s.result, nil
}

func TestForgotPasswordHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		result         service.Result
		err            error
		expectedStatus int
		expectedBody   string
		expectedInput  *service.Input
	}{
		{
			id:             "accepted",
			body:           `{"email": "Test@Test.test"}`,
			result:         service.Result{Message: passwordreset.MsgRequestAccepted, Success: true},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message": "` + passwordreset.MsgRequestAccepted + `", "success": true}`,
			expectedInput:  &service.Input{Email: c.Email("test@test.test")},
		},
		{
			id:             "rate limited by recent token",
			body:           `{"email": "test@test.test"}`,
			result:         service.Result{Message: passwordreset.MsgRequestRateLimited, Success: false},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message": "` + passwordreset.MsgRequestRateLimited + `", "success": false}`,
			expectedInput:  &service.Input{Email: c.Email("test@test.test")},
		},
		{
			id:             "rate limit exceeded",
			body:           `{"email": "test@test.test"}`,
			err:            ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `{"error": "rate limit exceeded"}`,
			expectedInput:  &service.Input{Email: c.Email("test@test.test")},
		},
		{
			id:             "canceled",
			body:           `{"email": "test@test.test"}`,
			err:            errors.New("context canceled"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error": "internal error"}`,
			expectedInput:  &service.Input{Email: c.Email("test@test.test")},
		},
		{
			id:             "invalid json",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "invalid request data"}`,
		},
		{
			id:             "invalid email",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"email": "must be a valid email address"}`,
		},
		{
			id:             "missing email",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"email": "cannot be blank"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{result: testcase.result, err: testcase.err}
			req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", strings.NewReader(testcase.body))
			rr := httptest.NewRecorder()

			New(stub).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.JSONEq(t, testcase.expectedBody, rr.Body.String())
			assert.Equal(t, testcase.expectedInput, stub.input)
		})
	}
}
