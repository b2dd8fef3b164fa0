package domain

// SpinCompletedPayload is the payload of EventTypeSpinCompleted
type SpinCompletedPayload struct {
	UserID       string     `json:"user_id"`
	SlotID       int        `json:"slot_id"`
	OutcomeKind  RewardKind `json:"outcome_kind"`
	OutcomeValue string     `json:"outcome_value"`
	CashWon      float64    `json:"cash_won,omitempty"`
	Timestamp    int64      `json:"timestamp"`
}

// WordClaimedPayload is the payload of EventTypeWordClaimed
type WordClaimedPayload struct {
	UserID       string  `json:"user_id"`
	WordID       int     `json:"word_id"`
	Word         string  `json:"word"`
	RewardAmount float64 `json:"reward_amount"`
	Timestamp    int64   `json:"timestamp"`
}

// DepositProcessedPayload is the payload of EventTypeDepositProcessed
type DepositProcessedPayload struct {
	UserID          string  `json:"user_id"`
	Amount          float64 `json:"amount"`
	UnlockedTierIDs []int   `json:"unlocked_tier_ids"`
	BonusSpins      int     `json:"bonus_spins"`
	Timestamp       int64   `json:"timestamp"`
}

// MissionClaimedPayload is the payload of EventTypeMissionClaimed
type MissionClaimedPayload struct {
	UserID       string `json:"user_id"`
	TierID       int    `json:"tier_id"`
	SpinsGranted int    `json:"spins_granted"`
	Timestamp    int64  `json:"timestamp"`
}

// DailyLoginClaimedPayload is the payload of EventTypeDailyLoginClaimed
type DailyLoginClaimedPayload struct {
	UserID       string `json:"user_id"`
	SpinsGranted int    `json:"spins_granted"`
	Timestamp    int64  `json:"timestamp"`
}

// RequestRejectedPayload is the payload of EventTypeRequestRejected
type RequestRejectedPayload struct {
	UserID    string     `json:"user_id"`
	Operation string     `json:"operation"`
	Class     ErrorClass `json:"class"`
	Reason    string     `json:"reason"`
	Timestamp int64      `json:"timestamp"`
}
