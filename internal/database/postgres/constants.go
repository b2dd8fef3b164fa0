package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeCheckViolation is raised when a CHECK constraint rejects a row
	PgErrorCodeCheckViolation = "23514"
	// PgErrorCodeForeignKeyViolation is raised when a referenced row is missing
	PgErrorCodeForeignKeyViolation = "23503"
	// PgErrorCodeNumericOutOfRange is raised when a balance outgrows NUMERIC(18,2)
	PgErrorCodeNumericOutOfRange = "22003"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToCommit           = "failed to commit transaction"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToGetSlots   = "failed to get reward slots"
	ErrMsgFailedToGetWord    = "failed to get word"
	ErrMsgFailedToGetWords   = "failed to get words"
	ErrMsgFailedToGetLetters = "failed to get word letters"
	ErrMsgFailedToGetTier    = "failed to get deposit tier"
	ErrMsgFailedToGetTiers   = "failed to get deposit tiers"
	ErrMsgFailedToSaveSlot   = "failed to save reward slot"
	ErrMsgFailedToSaveWord   = "failed to save word"
	ErrMsgFailedToSaveTier   = "failed to save deposit tier"
)

// Error Messages - Account Operations
const (
	ErrMsgFailedToGetAccount      = "failed to get account"
	ErrMsgFailedToGetHoldings     = "failed to get letter holdings"
	ErrMsgFailedToGetProgress     = "failed to get mission progress"
	ErrMsgFailedToGetLedger       = "failed to get ledger entries"
	ErrMsgFailedToEnsureAccount   = "failed to ensure account"
	ErrMsgFailedToSpendSpins      = "failed to spend spins"
	ErrMsgFailedToCreditSpins     = "failed to credit spins"
	ErrMsgFailedToAdjustCash      = "failed to adjust cash"
	ErrMsgFailedToAdjustLetter    = "failed to adjust letter"
	ErrMsgFailedToEnsureProgress  = "failed to ensure mission progress"
	ErrMsgFailedToIncrementClaim  = "failed to increment mission claim"
	ErrMsgFailedToClaimDaily      = "failed to claim daily login"
	ErrMsgFailedToMarkBonus       = "failed to mark first deposit bonus"
	ErrMsgFailedToAppendLedger    = "failed to append ledger entry"
	ErrMsgFailedToScanLedgerEntry = "failed to scan ledger entry"
)
