package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authorization ─────────────────────────────────────────────────
	ErrSignInRequired  ErrCode = "SIGN_IN_REQUIRED"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrUnknownFilter  ErrCode = "UNKNOWN_FILTER"

	// ─── Exam flow ─────────────────────────────────────────────────────
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrInvalidSelection  ErrCode = "INVALID_SELECTION"
	ErrNoActiveExam      ErrCode = "NO_ACTIVE_EXAM"
	ErrAlreadySubmitted  ErrCode = "ALREADY_SUBMITTED"
	ErrIndexOutOfRange   ErrCode = "INDEX_OUT_OF_RANGE"
	ErrOptionOutOfRange  ErrCode = "OPTION_OUT_OF_RANGE"
	ErrNoResult          ErrCode = "NO_RESULT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrStorageUnavailable ErrCode = "STORAGE_UNAVAILABLE"
	ErrInternal           ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authorization ─────────────────────────────────────────────────
	case ErrSignInRequired:
		return "Please sign in to continue."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrUnknownFilter:
		return "Unknown review filter. Use all, correct, incorrect or skipped."

	// ─── Exam flow ─────────────────────────────────────────────────────
	case ErrInvalidTransition:
		return "This action is not available on the current screen."
	case ErrInvalidSelection:
		return "The selected branch, topic or test is not valid."
	case ErrNoActiveExam:
		return "There is no exam in progress."
	case ErrAlreadySubmitted:
		return "This exam has already been submitted."
	case ErrIndexOutOfRange:
		return "Question number is out of range."
	case ErrOptionOutOfRange:
		return "Answer option is out of range."
	case ErrNoResult:
		return "There is no completed exam to show."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrStorageUnavailable:
		return "Storage is temporarily unavailable."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
