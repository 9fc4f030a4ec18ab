package passwordreset

// User-facing messages. They never carry internal error details.
const (
	MsgRequestAccepted       = "If the email exists in our database, you will receive instructions to reset your password."
	MsgRequestRateLimited    = "A password reset email was sent recently. Check your inbox or wait a few minutes."
	MsgInternalError         = "Internal server error. Please try again later."
	MsgTokenValid            = "Token is valid."
	MsgTokenInvalidOrExpired = "Invalid or expired token."
	MsgTokenValidationError  = "Could not validate token."
	MsgPasswordsMismatch     = "Passwords do not match."
	MsgPasswordReset         = "Password has been reset. You can now log in with the new password."
)
