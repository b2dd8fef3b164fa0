package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserAccount holds the per-user counters. CashBalance and AvailableSpins are
// never negative.
type UserAccount struct {
	ID                       string          `json:"id"`
	CashBalance              decimal.Decimal `json:"cash_balance"`
	AvailableSpins           int             `json:"available_spins"`
	FirstDepositBonusGranted bool            `json:"first_deposit_bonus_granted"`
	LastDailyLoginAt         *time.Time      `json:"last_daily_login_at,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// NewUserAccount returns the zero-balance, zero-spin account an unknown user
// id reads as.
func NewUserAccount(userID string) *UserAccount {
	return &UserAccount{
		ID:          userID,
		CashBalance: decimal.Zero,
	}
}

// AccountSummary is the read model returned to callers.
type AccountSummary struct {
	Account  UserAccount       `json:"account"`
	Letters  LetterCounts      `json:"letters"`
	Missions []MissionProgress `json:"missions"`
}
