package wordbonus

// Log messages
const (
	LogMsgClaimWordCalled = "ClaimWord called"
	LogMsgWordClaimed     = "Word bonus paid"
	LogMsgClaimRejected   = "Word claim rejected"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToGetWord      = "failed to get word"
	ErrContextFailedToGetHoldings  = "failed to get letter holdings"
	ErrContextFailedToEnsureUser   = "failed to ensure account"
	ErrContextFailedToDebitLetter  = "failed to debit letter"
	ErrContextFailedToCreditReward = "failed to credit word reward"
)
