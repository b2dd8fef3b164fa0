package domain

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxUserIDLength matches the user_id column width.
const MaxUserIDLength = 128

// CashLimit is the exclusive upper bound of any amount or balance; cash
// columns are NUMERIC(18,2).
var CashLimit = decimal.New(1, 16)

// WithinCashLimit reports whether d fits a cash column.
func WithinCashLimit(d decimal.Decimal) bool {
	return d.LessThan(CashLimit)
}

// ValidUserIDLength reports whether userID fits the user_id column.
func ValidUserIDLength(userID string) bool {
	return utf8.RuneCountInString(userID) <= MaxUserIDLength
}

// Ledger query limits
const (
	DefaultLedgerLimit = 20
	MaxLedgerLimit     = 100
)

// Engine operation names, used in logs, events and metrics labels
const (
	OpSpin            = "spin"
	OpClaimWord       = "claim_word"
	OpProcessDeposit  = "process_deposit"
	OpClaimMission    = "claim_mission"
	OpClaimDailyLogin = "claim_daily_login"
)

// ClampLedgerLimit bounds a caller-supplied ledger page size.
func ClampLedgerLimit(limit int) int {
	if limit <= 0 {
		return DefaultLedgerLimit
	}
	if limit > MaxLedgerLimit {
		return MaxLedgerLimit
	}
	return limit
}
