package resolve

// ErrorCode classifies resolver failures.
type ErrorCode string

const (
	CodeNone              ErrorCode = ""
	CodeInvalidState      ErrorCode = "INVALID_STATE"
	CodeCardNotFound      ErrorCode = "CARD_NOT_FOUND"
	CodeInvalidTarget     ErrorCode = "INVALID_TARGET"
	CodeTargetNotAlive    ErrorCode = "TARGET_NOT_ALIVE"
	CodeRuleValidation    ErrorCode = "RULE_VALIDATION_FAILED"
	CodeUsageLimitReached ErrorCode = "USAGE_LIMIT_REACHED"
)

// Result is the outcome of one resolver invocation. A failed resolver has
// already stopped mutating and pushed nothing; rolling back earlier frames is
// nobody's job — the driving loop stops draining and surfaces the failure.
type Result struct {
	Success    bool
	Code       ErrorCode
	MessageKey string
	Details    map[string]string
}

// Ok returns a successful result.
func Ok() Result {
	return Result{Success: true}
}

// Fail returns a failed result with the given code and message key.
func Fail(code ErrorCode, messageKey string) Result {
	return Result{Code: code, MessageKey: messageKey}
}

// FailDetails returns a failed result carrying structured details.
func FailDetails(code ErrorCode, messageKey string, details map[string]string) Result {
	return Result{Code: code, MessageKey: messageKey, Details: details}
}
