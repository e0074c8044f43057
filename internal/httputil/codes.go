package httputil

// Machine-readable error codes returned alongside error messages.
// Clients should branch on these rather than on message text.
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"

	CodeMissingAuth        = "MISSING_AUTHENTICATION"
	CodeInvalidAuthHeader  = "INVALID_AUTH_HEADER"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeUnknownSubject     = "UNKNOWN_SUBJECT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"

	CodeEmailAlreadyExists      = "EMAIL_ALREADY_EXISTS"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeNoSecurityQuestion      = "NO_SECURITY_QUESTION"
	CodeIncorrectSecurityAnswer = "INCORRECT_SECURITY_ANSWER"

	CodeRideNotFound  = "RIDE_NOT_FOUND"
	CodeRideFull      = "RIDE_FULL"
	CodeAlreadyJoined = "ALREADY_JOINED"
	CodeAlreadyHost   = "ALREADY_HOST"
)
