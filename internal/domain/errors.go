package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Categories
	ErrMsgUserInput         = "invalid input"
	ErrMsgResourceExhausted = "resource exhausted"
	ErrMsgConfiguration     = "configuration error"
	ErrMsgStorage           = "storage error"

	// User input errors
	ErrMsgInvalidInput   = "invalid request"
	ErrMsgInvalidAmount  = "amount must be positive"
	ErrMsgInvalidLetter  = "letter must be a single character A-Z"
	ErrMsgMissingUserID  = "user id is required"
	ErrMsgUserIDTooLong  = "user id is too long"
	ErrMsgAmountTooLarge = "amount exceeds the cash limit"
	ErrMsgBalanceLimit   = "balance would exceed the cash limit"
	ErrMsgWordNotFound   = "word not found"
	ErrMsgWordInactive   = "word is not active"
	ErrMsgMissionMissing = "mission not found"

	// Resource errors
	ErrMsgInsufficientSpins   = "insufficient spins"
	ErrMsgInsufficientLetters = "insufficient letters"
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgMissionUnavailable  = "mission not available"
	ErrMsgDailyLoginClaimed   = "daily login reward already claimed today"

	// Configuration errors
	ErrMsgNoActiveSlots        = "no active reward slots"
	ErrMsgMalformedSlotPayload = "malformed reward slot payload"
	ErrMsgInvalidTotalWeight   = "total slot weight must be positive"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Error categories. Every specific error below wraps exactly one of these, so
// callers can branch on the category with errors.Is.
var (
	// ErrUserInput is recoverable and reported with no state change.
	ErrUserInput = errors.New(ErrMsgUserInput)
	// ErrResourceExhausted is an expected rejection; never retried automatically.
	ErrResourceExhausted = errors.New(ErrMsgResourceExhausted)
	// ErrConfiguration indicates bad administrative data.
	ErrConfiguration = errors.New(ErrMsgConfiguration)
	// ErrStorage is an unexpected failure of the transactional store.
	ErrStorage = errors.New(ErrMsgStorage)
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidInput  = fmt.Errorf("%w: %s", ErrUserInput, ErrMsgInvalidInput)
	ErrInvalidAmount = fmt.Errorf("%w: %s", ErrUserInput, ErrMsgInvalidAmount)
	ErrInvalidLetter = fmt.Errorf("%w: %s", ErrUserInput, ErrMsgInvalidLetter)
	ErrMissingUserID = fmt.Errorf("%w: %s", ErrUserInput, ErrMsgMissingUserID)
	ErrUserIDTooLong = fmt.Errorf("%w: %s", ErrUserInput, ErrMsgUserIDTooLong)
	// ErrBalanceLimit rejects a credit whose result would not fit a cash column.
	ErrBalanceLimit    = fmt.Errorf("%w: %s", ErrInvalidAmount, ErrMsgBalanceLimit)
	ErrWordNotFound    = fmt.Errorf("%w: %s", ErrUserInput, ErrMsgWordNotFound)
	ErrWordInactive    = fmt.Errorf("%w: %s", ErrUserInput, ErrMsgWordInactive)
	ErrMissionNotFound = fmt.Errorf("%w: %s", ErrUserInput, ErrMsgMissionMissing)

	ErrInsufficientSpins   = fmt.Errorf("%w: %s", ErrResourceExhausted, ErrMsgInsufficientSpins)
	ErrInsufficientLetters = fmt.Errorf("%w: %s", ErrResourceExhausted, ErrMsgInsufficientLetters)
	ErrInsufficientFunds   = fmt.Errorf("%w: %s", ErrResourceExhausted, ErrMsgInsufficientFunds)
	ErrMissionNotAvailable = fmt.Errorf("%w: %s", ErrResourceExhausted, ErrMsgMissionUnavailable)
	// ErrDailyLoginClaimed is the login-mission flavour of ErrMissionNotAvailable.
	ErrDailyLoginClaimed = fmt.Errorf("%w: %s", ErrMissionNotAvailable, ErrMsgDailyLoginClaimed)

	ErrNoActiveSlots        = fmt.Errorf("%w: %s", ErrConfiguration, ErrMsgNoActiveSlots)
	ErrMalformedSlotPayload = fmt.Errorf("%w: %s", ErrConfiguration, ErrMsgMalformedSlotPayload)
	ErrInvalidTotalWeight   = fmt.Errorf("%w: %s", ErrConfiguration, ErrMsgInvalidTotalWeight)
)

// ErrorClass is the coarse category of an engine error.
type ErrorClass string

const (
	ClassNone              ErrorClass = ""
	ClassUserInput         ErrorClass = "user_input"
	ClassResourceExhausted ErrorClass = "resource_exhausted"
	ClassConfiguration     ErrorClass = "configuration"
	ClassStorage           ErrorClass = "storage"
	ClassUnknown           ErrorClass = "unknown"
)

// Classify reports the category of err. Unclassified non-nil errors are
// ClassUnknown and should be treated like storage failures.
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrUserInput):
		return ClassUserInput
	case errors.Is(err, ErrResourceExhausted):
		return ClassResourceExhausted
	case errors.Is(err, ErrConfiguration):
		return ClassConfiguration
	case errors.Is(err, ErrStorage):
		return ClassStorage
	default:
		return ClassUnknown
	}
}

// StorageError wraps a driver failure so that it matches both ErrStorage and
// the original error.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
