package httpx

// Header names used by the auth pipeline. Canonical form, as normalized by
// net/http.
const (
	// CSRFHeaderName carries the client's echo of the session CSRF token.
	CSRFHeaderName = "X-Csrf-Token"
	// OrgHeaderName carries the organisation selector for org-scoped requests.
	OrgHeaderName = "X-Org-Id"
)

// csrfExemptPaths lists the bootstrap endpoints a client must be able to hit
// before any session or CSRF token exists.
var csrfExemptPaths = map[string]bool{
	"/auth/register": true,
	"/auth/login":    true,
	"/auth/exchange": true,
	"/auth/logout":   true,
}

// Wire error codes shared with the frontend.
const (
	codeUnauthorized       = "Unauthorized"
	codeSessionExpiredAbs  = "SESSION_EXPIRED_ABSOLUTE_TTL"
	codeCSRF               = "CSRF"
	codeInvalidOrgID       = "INVALID_ORG_ID"
	codeForbiddenOrg       = "FORBIDDEN_ORG"
	codeOrgNotFound        = "ORG_NOT_FOUND"
	codeMissingOrgContext  = "MISSING_ORG_CONTEXT"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeUsernameInUse      = "USERNAME_IN_USE"
	codeEmailInUse         = "EMAIL_IN_USE"
	codeRegisterFailed     = "REGISTER_FAILED"
	codeValidationError    = "VALIDATION_ERROR"
	codeInternal           = "INTERNAL"
)
