package market

import "errors"

// ErrorCode identifies a failure kind so callers can map it to a policy
// (HTTP status, retry, fallback) without string matching.
type ErrorCode string

const (
	CodeInvalidHour       ErrorCode = "INVALID_HOUR"
	CodeInvalidPrice      ErrorCode = "INVALID_PRICE"
	CodeInvalidQuantity   ErrorCode = "INVALID_QUANTITY"
	CodeInvalidSide       ErrorCode = "INVALID_SIDE"
	CodeBiddingClosed     ErrorCode = "BIDDING_CLOSED"
	CodeBatchTooLarge     ErrorCode = "BATCH_TOO_LARGE"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeNothingToClear    ErrorCode = "NOTHING_TO_CLEAR"
	CodeNotInitialized    ErrorCode = "NOT_INITIALIZED"
	CodeDataUnavailable   ErrorCode = "DATA_UNAVAILABLE"
)

// Error is a typed simulation error. Validation and transition failures
// never mutate state; callers distinguish them by Code.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// CodeOf extracts the ErrorCode from err, or "" if err is not a market error.
func CodeOf(err error) ErrorCode {
	var me *Error
	if errors.As(err, &me) {
		return me.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
