package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderOutcome(t *testing.T) {
	cases := []struct {
		success        bool
		expectedStatus int
		expectedBody   string
	}{
		{success: true, expectedStatus: http.StatusOK, expectedBody: `{"message": "ok", "success": true}`},
		{success: false, expectedStatus: http.StatusBadRequest, expectedBody: `{"message": "ok", "success": false}`},
	}

	for _, testcase := range cases {
		rr := httptest.NewRecorder()

		RenderOutcome(rr, Outcome{Message: "ok", Success: testcase.success}, testcase.success)

		assert.Equal(t, testcase.expectedStatus, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, testcase.expectedBody, rr.Body.String())
	}
}

func TestTokenValidationRendersNullEmail(t *testing.T) {
	rr := httptest.NewRecorder()

	Render(rr, TokenValidation{Valid: false, Message: "invalid"}, http.StatusBadRequest)

	assert.JSONEq(t, `{"valid": false, "message": "invalid", "email": null}`, rr.Body.String())
}

func TestRenderRateLimitExceeded(t *testing.T) {
	rr := httptest.NewRecorder()

	RenderRateLimitExceeded(rr)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.JSONEq(t, `{"error": "rate limit exceeded"}`, rr.Body.String())
}
