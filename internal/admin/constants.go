package admin

// Log messages
const (
	LogMsgSlotSaved = "Reward slot saved"
	LogMsgWordSaved = "Word definition saved"
	LogMsgTierSaved = "Deposit tier saved"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToSaveSlot = "failed to save reward slot"
	ErrContextFailedToSaveWord = "failed to save word definition"
	ErrContextFailedToSaveTier = "failed to save deposit tier"
)

// Validation messages
const (
	ErrMsgPayloadNotCash    = "cash payload must be a non-negative decimal"
	ErrMsgPayloadNotLetter  = "letter payload must be one uppercase letter"
	ErrMsgRewardNotPositive = "reward amount must be positive"
	ErrMsgLettersMismatch   = "required letters must be positive counts of A-Z"
	ErrMsgMinNotPositive    = "minimum amount must be positive"
	ErrMsgMaxBelowMin       = "maximum amount must not be below minimum"
	ErrMsgAmountOverLimit   = "amount must be below 10000000000000000"
)
