package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerKind enumerates transaction types in the audit log.
type LedgerKind string

const (
	LedgerKindSpin              LedgerKind = "SPIN"
	LedgerKindWordBonus         LedgerKind = "WORD_BONUS"
	LedgerKindDeposit           LedgerKind = "DEPOSIT"
	LedgerKindMissionSpin       LedgerKind = "MISSION_SPIN"
	LedgerKindDailyLoginSpin    LedgerKind = "DAILY_LOGIN_SPIN"
	LedgerKindFirstDepositBonus LedgerKind = "FIRST_DEPOSIT_BONUS"
	LedgerKindSpinDebit         LedgerKind = "SPIN_DEBIT"
	LedgerKindSpinCredit        LedgerKind = "SPIN_CREDIT"
	LedgerKindCashAdjustment    LedgerKind = "CASH_ADJUSTMENT"
	LedgerKindLetterAdjustment  LedgerKind = "LETTER_ADJUSTMENT"
)

// LedgerEntry is one immutable audit record. Entries are only ever inserted.
type LedgerEntry struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"user_id"`
	Kind      LedgerKind       `json:"kind"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Note      string           `json:"note"`
	CreatedAt time.Time        `json:"created_at"`
}
