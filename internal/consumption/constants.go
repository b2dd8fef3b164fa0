package consumption

// Log messages
const (
	LogMsgRejected      = "Conditional update rejected"
	LogMsgCommitFailed  = "Failed to commit transaction"
	LogMsgBeginTxFailed = "Failed to begin transaction"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToBeginTx      = "failed to begin transaction"
	ErrContextFailedToCommitTx     = "failed to commit transaction"
	ErrContextFailedToEnsureUser   = "failed to ensure account"
	ErrContextFailedToSpendSpins   = "failed to spend spins"
	ErrContextFailedToCreditSpins  = "failed to credit spins"
	ErrContextFailedToAdjustCash   = "failed to adjust cash"
	ErrContextFailedToAdjustLetter = "failed to adjust letter"
	ErrContextFailedToAppendLedger = "failed to append ledger entry"
	ErrContextFailedToReadAccount  = "failed to read account"
)
