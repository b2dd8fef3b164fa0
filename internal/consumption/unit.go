// Package consumption implements the atomic check-and-mutate primitives over
// the ledger store and the unit-of-work runner the engine composes them in.
package consumption

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/logger"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

// Unit runs resource mutations against a transactional store.
type Unit struct {
	store repository.Store
}

// New creates a Unit over store.
func New(store repository.Store) *Unit {
	return &Unit{store: store}
}

// Run executes fn inside one storage transaction. The transaction commits only
// when fn returns nil; any error, including an expected rejection, rolls back
// every mutation fn made.
func (u *Unit) Run(ctx context.Context, fn func(tx repository.RewardTx) error) error {
	tx, err := u.store.BeginTx(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgBeginTxFailed, "error", err)
		return asStorage(ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgCommitFailed, "error", err)
		return asStorage(ErrContextFailedToCommitTx, err)
	}
	return nil
}

// Append writes one ledger entry inside tx.
func Append(ctx context.Context, tx repository.RewardTx, userID string, kind domain.LedgerKind, amount *decimal.Decimal, note string) error {
	entry := &domain.LedgerEntry{
		UserID: userID,
		Kind:   kind,
		Amount: amount,
		Note:   note,
	}
	if err := tx.AppendLedger(ctx, entry); err != nil {
		return asStorage(ErrContextFailedToAppendLedger, err)
	}
	return nil
}

// Wrap annotates a storage-layer error from inside a transaction.
func Wrap(op string, err error) error {
	return asStorage(op, err)
}

// asStorage wraps err with op, tagging it as a storage failure unless it
// already carries a category.
func asStorage(op string, err error) error {
	if domain.Classify(err) != domain.ClassUnknown {
		return fmt.Errorf("%s: %w", op, err)
	}
	return domain.StorageError(op, err)
}

// ValidateUserID rejects an empty user id or one longer than the store holds.
func ValidateUserID(userID string) error {
	if userID == "" {
		return domain.ErrMissingUserID
	}
	if !domain.ValidUserIDLength(userID) {
		return fmt.Errorf("%w: %d characters max", domain.ErrUserIDTooLong, domain.MaxUserIDLength)
	}
	return nil
}

// IsRejection reports whether err is an expected resource rejection rather
// than a failure.
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrResourceExhausted)
}
