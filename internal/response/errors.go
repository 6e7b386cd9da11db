package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound           ErrCode = "NOT_FOUND"
	ErrConflict           ErrCode = "CONFLICT"
	ErrInUse              ErrCode = "IN_USE"
	ErrUnknownCollection  ErrCode = "UNKNOWN_COLLECTION"
	ErrUnsupportedFormat  ErrCode = "UNSUPPORTED_FORMAT"
	ErrActionForbidden    ErrCode = "ACTION_FORBIDDEN"
	ErrNotOnRoster        ErrCode = "NOT_ON_ROSTER"
	ErrRosterUnconfigured ErrCode = "ROSTER_UNCONFIGURED"

	// ─── Request lifecycle ─────────────────────────────────────────────
	ErrRequestNotFound        ErrCode = "REQUEST_NOT_FOUND"
	ErrRequestAlreadyResolved ErrCode = "REQUEST_ALREADY_RESOLVED"
	ErrUserNotFound           ErrCode = "USER_NOT_FOUND"
	ErrInsufficientCredits    ErrCode = "INSUFFICIENT_CREDITS"
	ErrTransactionConflict    ErrCode = "TRANSACTION_CONFLICT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Incorrect email or password."
	case ErrSessionInvalidated:
		return "Your session has ended. Please sign in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."
	case ErrEmailTaken:
		return "An account with this email already exists."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is limited to enrolled students."
	case ErrAdminAccessOnly:
		return "This resource is limited to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrInUse:
		return "Resource is still referenced by the guest list."
	case ErrUnknownCollection:
		return "Unknown collection."
	case ErrUnsupportedFormat:
		return "Unsupported export format."
	case ErrActionForbidden:
		return "This action is not allowed."
	case ErrNotOnRoster:
		return "No registration form submission was found for this email."
	case ErrRosterUnconfigured:
		return "Registration form lookup is not configured."

	// ─── Request lifecycle ─────────────────────────────────────────────
	case ErrRequestNotFound:
		return "Request not found."
	case ErrRequestAlreadyResolved:
		return "This request has already been approved or declined."
	case ErrUserNotFound:
		return "The user for this request no longer exists."
	case ErrInsufficientCredits:
		return "The student does not have enough credits for this class."
	case ErrTransactionConflict:
		return "The request was modified concurrently. Please retry."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
