package mission

// CashScale is the number of decimal places cash amounts carry.
const CashScale = 2

// Log messages
const (
	LogMsgDepositProcessed  = "Deposit processed"
	LogMsgTierUnlocked      = "Deposit tier unlocked"
	LogMsgFirstDepositBonus = "First deposit bonus granted"
	LogMsgMissionClaimed    = "Mission claimed"
	LogMsgMissionRejected   = "Mission claim rejected"
	LogMsgDailyLoginClaimed = "Daily login spins granted"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToGetTiers      = "failed to get deposit tiers"
	ErrContextFailedToGetTier       = "failed to get deposit tier"
	ErrContextFailedToEnsureUser    = "failed to ensure account"
	ErrContextFailedToCreditCash    = "failed to credit deposit"
	ErrContextFailedToEnsureMission = "failed to ensure mission progress"
	ErrContextFailedToClaimMission  = "failed to increment mission claim"
	ErrContextFailedToCreditSpins   = "failed to credit spins"
	ErrContextFailedToMarkBonus     = "failed to mark first deposit bonus"
	ErrContextFailedToClaimLogin    = "failed to claim daily login"
	ErrContextFailedToGetProgress   = "failed to get mission progress"
)

// Error messages
const (
	ErrMsgDailyLoginDisabled = "daily login reward is disabled"
	ErrMsgTooManyDecimals    = "amount has more than two decimal places"
)
