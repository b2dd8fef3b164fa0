package engine

// Log messages
const (
	LogMsgSpinCompleted   = "Spin completed"
	LogMsgRequestRejected = "Request rejected"
	LogMsgRequestFailed   = "Request failed"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToEnsureUser   = "failed to ensure account"
	ErrContextFailedToSpendSpin    = "failed to spend spin"
	ErrContextFailedToCreditCash   = "failed to credit cash"
	ErrContextFailedToCreditLetter = "failed to credit letter"
	ErrContextFailedToGetSlots     = "failed to get reward slots"
	ErrContextFailedToGetAccount   = "failed to get account"
	ErrContextFailedToGetLetters   = "failed to get letter holdings"
	ErrContextFailedToGetLedger    = "failed to get ledger entries"
	ErrContextFailedToGetWords     = "failed to get words"
	ErrContextFailedToGetTiers     = "failed to get deposit tiers"
)
