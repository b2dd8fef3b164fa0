package consumption

// The methods in this file are the single-mutation API: each runs one
// conditional change and its ledger entry in its own transaction. Operations
// that touch several rows (spin, word claims, deposits, mission claims) call
// the RewardTx methods directly inside one Run instead, so they do not nest
// transactions.

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/logger"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

// TrySpendSpins decrements the user's spins by n only if at least n are
// available. ok is false when the balance is insufficient; nothing is written
// in that case.
func (u *Unit) TrySpendSpins(ctx context.Context, userID string, n int) (remaining int, ok bool, err error) {
	if err := ValidateUserID(userID); err != nil {
		return 0, false, err
	}
	if n <= 0 {
		return 0, false, domain.ErrInvalidAmount
	}

	err = u.Run(ctx, func(tx repository.RewardTx) error {
		if err := tx.EnsureAccount(ctx, userID); err != nil {
			return Wrap(ErrContextFailedToEnsureUser, err)
		}
		remaining, ok, err = tx.TrySpendSpins(ctx, userID, n)
		if err != nil {
			return Wrap(ErrContextFailedToSpendSpins, err)
		}
		if !ok {
			return domain.ErrInsufficientSpins
		}
		return Append(ctx, tx, userID, domain.LedgerKindSpinDebit, nil, fmt.Sprintf("spent %d spin(s)", n))
	})
	return settle(ctx, remaining, err)
}

// CreditSpins grants n spins. Credits always succeed.
func (u *Unit) CreditSpins(ctx context.Context, userID string, n int, note string) (int, error) {
	if err := ValidateUserID(userID); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	var total int
	err := u.Run(ctx, func(tx repository.RewardTx) error {
		var err error
		total, err = tx.CreditSpins(ctx, userID, n)
		if err != nil {
			return Wrap(ErrContextFailedToCreditSpins, err)
		}
		if note == "" {
			note = fmt.Sprintf("credited %d spin(s)", n)
		}
		return Append(ctx, tx, userID, domain.LedgerKindSpinCredit, nil, note)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// AdjustCash applies delta to the user's balance. A non-negative delta always
// succeeds and creates the account if needed; a zero delta changes nothing
// and writes no ledger entry. A debit that would overdraw returns ok=false and
// changes nothing. A credit past domain.CashLimit fails with
// domain.ErrBalanceLimit.
func (u *Unit) AdjustCash(ctx context.Context, userID string, delta decimal.Decimal, note string) (balance decimal.Decimal, ok bool, err error) {
	if err := ValidateUserID(userID); err != nil {
		return decimal.Zero, false, err
	}
	if delta.IsZero() {
		return u.currentBalance(ctx, userID)
	}

	err = u.Run(ctx, func(tx repository.RewardTx) error {
		balance, ok, err = tx.AdjustCash(ctx, userID, delta)
		if err != nil {
			return Wrap(ErrContextFailedToAdjustCash, err)
		}
		if !ok && delta.IsNegative() {
			return domain.ErrInsufficientFunds
		}
		if !ok {
			return domain.ErrBalanceLimit
		}
		amount := delta
		if note == "" {
			note = fmt.Sprintf("cash adjusted by %s", delta.StringFixed(2))
		}
		return Append(ctx, tx, userID, domain.LedgerKindCashAdjustment, &amount, note)
	})
	return settle(ctx, balance, err)
}

// AdjustLetter applies delta to one letter holding. Credits create the holding;
// a zero delta reports the current count without writing; a debit below zero
// returns ok=false and changes nothing.
func (u *Unit) AdjustLetter(ctx context.Context, userID, letter string, delta int) (count int, ok bool, err error) {
	if err := ValidateUserID(userID); err != nil {
		return 0, false, err
	}
	letter, err = domain.NormalizeLetter(letter)
	if err != nil {
		return 0, false, err
	}
	if delta == 0 {
		return u.currentLetter(ctx, userID, letter)
	}

	err = u.Run(ctx, func(tx repository.RewardTx) error {
		if err := tx.EnsureAccount(ctx, userID); err != nil {
			return Wrap(ErrContextFailedToEnsureUser, err)
		}
		count, ok, err = tx.AdjustLetter(ctx, userID, letter, delta)
		if err != nil {
			return Wrap(ErrContextFailedToAdjustLetter, err)
		}
		if !ok {
			return domain.ErrInsufficientLetters
		}
		return Append(ctx, tx, userID, domain.LedgerKindLetterAdjustment, nil, fmt.Sprintf("%s%+d", letter, delta))
	})
	return settle(ctx, count, err)
}

// currentBalance ensures the account exists and returns its balance.
func (u *Unit) currentBalance(ctx context.Context, userID string) (balance decimal.Decimal, ok bool, err error) {
	err = u.Run(ctx, func(tx repository.RewardTx) error {
		if err := tx.EnsureAccount(ctx, userID); err != nil {
			return Wrap(ErrContextFailedToEnsureUser, err)
		}
		acct, err := tx.GetAccount(ctx, userID)
		if err != nil {
			return Wrap(ErrContextFailedToReadAccount, err)
		}
		if acct != nil {
			balance = acct.CashBalance
		}
		return nil
	})
	return settle(ctx, balance, err)
}

// currentLetter ensures the account exists and returns one letter count.
func (u *Unit) currentLetter(ctx context.Context, userID, letter string) (count int, ok bool, err error) {
	err = u.Run(ctx, func(tx repository.RewardTx) error {
		if err := tx.EnsureAccount(ctx, userID); err != nil {
			return Wrap(ErrContextFailedToEnsureUser, err)
		}
		holdings, err := tx.GetLetterHoldings(ctx, userID)
		if err != nil {
			return Wrap(ErrContextFailedToReadAccount, err)
		}
		count = holdings.Get(letter)
		return nil
	})
	return settle(ctx, count, err)
}

// settle turns an expected rejection back into ok=false with a nil error.
func settle[T any](ctx context.Context, value T, err error) (T, bool, error) {
	var zero T
	if err == nil {
		return value, true, nil
	}
	if IsRejection(err) {
		logger.FromContext(ctx).Debug(LogMsgRejected, "reason", err)
		return zero, false, nil
	}
	return zero, false, err
}
