package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RewardKind is the type of outcome a slot pays.
type RewardKind string

const (
	RewardKindCash   RewardKind = "CASH"
	RewardKindLetter RewardKind = "LETTER"
)

// Valid reports whether k is a known reward kind.
func (k RewardKind) Valid() bool {
	return k == RewardKindCash || k == RewardKindLetter
}

// RewardSlot is one configured weighted outcome of the lottery.
// Payload is a decimal string for CASH and a single uppercase letter for LETTER.
type RewardSlot struct {
	ID        int        `json:"id"`
	Kind      RewardKind `json:"kind"`
	Payload   string     `json:"payload"`
	Weight    int        `json:"weight"`
	Active    bool       `json:"active"`
	SortOrder int        `json:"sort_order"`
}

// CashAmount parses the payload of a CASH slot.
func (s RewardSlot) CashAmount() (decimal.Decimal, error) {
	if s.Kind != RewardKindCash {
		return decimal.Zero, fmt.Errorf("%w: slot %d is %s, not %s", ErrMalformedSlotPayload, s.ID, s.Kind, RewardKindCash)
	}
	amount, err := decimal.NewFromString(s.Payload)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: slot %d payload %q: %v", ErrMalformedSlotPayload, s.ID, s.Payload, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: slot %d pays a negative amount", ErrMalformedSlotPayload, s.ID)
	}
	return amount, nil
}

// Letter parses the payload of a LETTER slot.
func (s RewardSlot) Letter() (string, error) {
	if s.Kind != RewardKindLetter {
		return "", fmt.Errorf("%w: slot %d is %s, not %s", ErrMalformedSlotPayload, s.ID, s.Kind, RewardKindLetter)
	}
	if !IsLetter(s.Payload) {
		return "", fmt.Errorf("%w: slot %d payload %q is not a single uppercase letter", ErrMalformedSlotPayload, s.ID, s.Payload)
	}
	return s.Payload, nil
}

// SpinResult is what a committed spin returns.
type SpinResult struct {
	UserID         string           `json:"user_id"`
	SlotID         int              `json:"slot_id"`
	OutcomeKind    RewardKind       `json:"outcome_kind"`
	OutcomeValue   string           `json:"outcome_value"`
	CashWon        *decimal.Decimal `json:"cash_won,omitempty"`
	LetterWon      string           `json:"letter_won,omitempty"`
	RemainingSpins int              `json:"remaining_spins"`
}
