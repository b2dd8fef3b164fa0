package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/logger"
)

// Request-level error messages.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidPathParam      = "Invalid %s path parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs."
	ErrMsgMissingUserIDError    = "User id is required"
	ErrMsgInvalidAmountError    = "Amount must be a positive value with at most two decimal places"
	ErrMsgWordNotFoundError     = "Word not found"
	ErrMsgWordInactiveError     = "That word is not currently active"
	ErrMsgMissionNotFoundError  = "Mission not found"
	ErrMsgNotEnoughSpinsError   = "No spins available"
	ErrMsgNotEnoughLettersError = "You don't have the letters for that word"
	ErrMsgNotEnoughMoneyError   = "Not enough money"
	ErrMsgDailyLoginError       = "Daily login reward already claimed today"
	ErrMsgMissionLockedError    = "Mission not available"
	ErrMsgRewardsUnavailable    = "Rewards are temporarily unavailable. Please try again later."
)

// Success messages
const (
	MsgSlotSaved = "Reward slot saved"
	MsgWordSaved = "Word saved"
	MsgTierSaved = "Deposit tier saved"
)

// mapServiceErrorToUserMessage converts engine errors to a status code and a
// message safe to show to users.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrWordNotFound):
		return http.StatusNotFound, ErrMsgWordNotFoundError
	case errors.Is(err, domain.ErrMissionNotFound):
		return http.StatusNotFound, ErrMsgMissionNotFoundError
	case errors.Is(err, domain.ErrWordInactive):
		return http.StatusBadRequest, ErrMsgWordInactiveError
	case errors.Is(err, domain.ErrMissingUserID):
		return http.StatusBadRequest, ErrMsgMissingUserIDError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInsufficientSpins):
		return http.StatusConflict, ErrMsgNotEnoughSpinsError
	case errors.Is(err, domain.ErrInsufficientLetters):
		return http.StatusConflict, ErrMsgNotEnoughLettersError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrDailyLoginClaimed):
		return http.StatusConflict, ErrMsgDailyLoginError
	case errors.Is(err, domain.ErrMissionNotAvailable):
		return http.StatusConflict, ErrMsgMissionLockedError
	}

	switch domain.Classify(err) {
	case domain.ClassUserInput:
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case domain.ClassResourceExhausted:
		return http.StatusConflict, ErrMsgMissionLockedError
	case domain.ClassConfiguration:
		return http.StatusInternalServerError, ErrMsgRewardsUnavailable
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}

// respondServiceError logs err at a level matching its category and writes
// the mapped response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, msg := mapServiceErrorToUserMessage(err)

	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err, "class", domain.Classify(err))
	} else {
		log.Debug(opName+" rejected", "error", err, "status", status)
	}

	respondError(w, status, msg)
}
