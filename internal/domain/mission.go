package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositTier is an amount range that unlocks a claimable spin reward.
// A nil MaxAmount means the range is unbounded above.
type DepositTier struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	MinAmount        decimal.Decimal  `json:"min_amount"`
	MaxAmount        *decimal.Decimal `json:"max_amount,omitempty"`
	SpinsGranted     int              `json:"spins_granted"`
	MaxClaimsPerUser int              `json:"max_claims_per_user"`
	Active           bool             `json:"active"`
}

// Matches reports whether amount falls inside the tier's inclusive range.
func (t DepositTier) Matches(amount decimal.Decimal) bool {
	if amount.LessThan(t.MinAmount) {
		return false
	}
	return t.MaxAmount == nil || amount.LessThanOrEqual(*t.MaxAmount)
}

// MissionProgress tracks how many claims a user has used against a tier.
type MissionProgress struct {
	UserID      string     `json:"user_id"`
	TierID      int        `json:"tier_id"`
	ClaimsUsed  int        `json:"claims_used"`
	UnlockedAt  time.Time  `json:"unlocked_at"`
	LastClaimAt *time.Time `json:"last_claim_at,omitempty"`
}

// DepositResult is returned by ProcessDeposit.
type DepositResult struct {
	UserID          string          `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	UnlockedTierIDs []int           `json:"unlocked_tier_ids"`
	BonusSpins      int             `json:"bonus_spins,omitempty"`
}

// MissionClaimResult is returned by ClaimMission.
type MissionClaimResult struct {
	UserID          string `json:"user_id"`
	TierID          int    `json:"tier_id"`
	SpinsGranted    int    `json:"spins_granted"`
	RemainingClaims int    `json:"remaining_claims"`
	AvailableSpins  int    `json:"available_spins"`
}

// DailyLoginResult is returned by ClaimDailyLogin.
type DailyLoginResult struct {
	UserID         string    `json:"user_id"`
	SpinsGranted   int       `json:"spins_granted"`
	AvailableSpins int       `json:"available_spins"`
	ClaimedAt      time.Time `json:"claimed_at"`
}
