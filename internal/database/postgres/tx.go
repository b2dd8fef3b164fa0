package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

// rewardTx implements repository.RewardTx on a pgx transaction.
type rewardTx struct {
	tx pgx.Tx
}

var _ repository.RewardTx = (*rewardTx)(nil)

func (t *rewardTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback maps pgx.ErrTxClosed onto repository.ErrTxClosed so SafeRollback
// stays quiet after a successful commit.
func (t *rewardTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}

// EnsureAccount creates the account if needed and takes its row lock. The
// no-op DO UPDATE locks an existing row, which DO NOTHING would not, so every
// multi-row transaction for a user queues on the account row before touching
// letters or mission progress.
func (t *rewardTx) EnsureAccount(ctx context.Context, userID string) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO user_accounts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id`, userID)
	if err != nil {
		return storageErr(ErrMsgFailedToEnsureAccount, err)
	}
	return nil
}

func (t *rewardTx) GetAccount(ctx context.Context, userID string) (*domain.UserAccount, error) {
	return getAccount(ctx, t.tx, userID)
}

// GetLetterHoldings locks the user's holding rows until the transaction ends.
func (t *rewardTx) GetLetterHoldings(ctx context.Context, userID string) (domain.LetterCounts, error) {
	return getLetterHoldings(ctx, t.tx, userID, true)
}

func (t *rewardTx) TrySpendSpins(ctx context.Context, userID string, n int) (int, bool, error) {
	var remaining int
	err := t.tx.QueryRow(ctx, `
		UPDATE user_accounts
		SET available_spins = available_spins - $2, updated_at = NOW()
		WHERE user_id = $1 AND available_spins >= $2
		RETURNING available_spins`, userID, n).Scan(&remaining)
	if err != nil {
		if isNoRows(err) {
			return 0, false, nil
		}
		return 0, false, storageErr(ErrMsgFailedToSpendSpins, err)
	}
	return remaining, true, nil
}

func (t *rewardTx) CreditSpins(ctx context.Context, userID string, n int) (int, error) {
	var total int
	err := t.tx.QueryRow(ctx, `
		INSERT INTO user_accounts (user_id, available_spins) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET available_spins = user_accounts.available_spins + EXCLUDED.available_spins, updated_at = NOW()
		RETURNING available_spins`, userID, n).Scan(&total)
	if err != nil {
		return 0, storageErr(ErrMsgFailedToCreditSpins, err)
	}
	return total, nil
}

// AdjustCash upserts credits and guards debits with cash_balance + delta >= 0.
// A credit that overflows the column is reported as ok=false; the pgx
// transaction is aborted at that point and the caller must roll back.
func (t *rewardTx) AdjustCash(ctx context.Context, userID string, delta decimal.Decimal) (decimal.Decimal, bool, error) {
	var (
		balance decimal.Decimal
		err     error
	)
	if !delta.IsNegative() {
		err = t.tx.QueryRow(ctx, `
			INSERT INTO user_accounts (user_id, cash_balance) VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE
			SET cash_balance = user_accounts.cash_balance + EXCLUDED.cash_balance, updated_at = NOW()
			RETURNING cash_balance`, userID, delta).Scan(&balance)
	} else {
		err = t.tx.QueryRow(ctx, `
			UPDATE user_accounts
			SET cash_balance = cash_balance + $2, updated_at = NOW()
			WHERE user_id = $1 AND cash_balance + $2 >= 0
			RETURNING cash_balance`, userID, delta).Scan(&balance)
	}
	if err != nil {
		if isNoRows(err) || isConstraintViolation(err) || isNumericOverflow(err) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, storageErr(ErrMsgFailedToAdjustCash, err)
	}
	return balance, true, nil
}

// AdjustLetter upserts credits and guards debits with count + delta >= 0.
func (t *rewardTx) AdjustLetter(ctx context.Context, userID, letter string, delta int) (int, bool, error) {
	var (
		count int
		err   error
	)
	if delta >= 0 {
		if err := t.EnsureAccount(ctx, userID); err != nil {
			return 0, false, err
		}
		err = t.tx.QueryRow(ctx, `
			INSERT INTO letter_holdings (user_id, letter, count) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, letter) DO UPDATE
			SET count = letter_holdings.count + EXCLUDED.count
			RETURNING count`, userID, letter, delta).Scan(&count)
	} else {
		err = t.tx.QueryRow(ctx, `
			UPDATE letter_holdings
			SET count = count + $3
			WHERE user_id = $1 AND letter = $2 AND count + $3 >= 0
			RETURNING count`, userID, letter, delta).Scan(&count)
	}
	if err != nil {
		if isNoRows(err) {
			return 0, false, nil
		}
		return 0, false, storageErr(ErrMsgFailedToAdjustLetter, err)
	}
	return count, true, nil
}

func (t *rewardTx) EnsureMissionProgress(ctx context.Context, userID string, tierID int, now time.Time) (int, error) {
	var used int
	// The no-op update makes RETURNING yield the existing row on conflict.
	err := t.tx.QueryRow(ctx, `
		INSERT INTO mission_progress (user_id, tier_id, claims_used, unlocked_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (user_id, tier_id) DO UPDATE SET tier_id = EXCLUDED.tier_id
		RETURNING claims_used`, userID, tierID, now).Scan(&used)
	if err != nil {
		return 0, storageErr(ErrMsgFailedToEnsureProgress, err)
	}
	return used, nil
}

// IncrementMissionClaim relies on ON CONFLICT DO UPDATE re-evaluating its
// WHERE against the latest row version, so two claims racing for the last
// slot serialize on the row lock and the loser matches nothing.
func (t *rewardTx) IncrementMissionClaim(ctx context.Context, userID string, tierID, maxClaims int, now time.Time) (int, bool, error) {
	if maxClaims < 1 {
		return 0, false, nil
	}
	var used int
	err := t.tx.QueryRow(ctx, `
		INSERT INTO mission_progress (user_id, tier_id, claims_used, unlocked_at, last_claim_at)
		VALUES ($1, $2, 1, $4, $4)
		ON CONFLICT (user_id, tier_id) DO UPDATE
		SET claims_used = mission_progress.claims_used + 1, last_claim_at = EXCLUDED.last_claim_at
		WHERE mission_progress.claims_used < $3
		RETURNING claims_used`, userID, tierID, maxClaims, now).Scan(&used)
	if err != nil {
		if isNoRows(err) {
			return 0, false, nil
		}
		return 0, false, storageErr(ErrMsgFailedToIncrementClaim, err)
	}
	return used, true, nil
}

func (t *rewardTx) ClaimDailyLogin(ctx context.Context, userID string, dayStart, now time.Time, spins int) (int, bool, error) {
	var total int
	err := t.tx.QueryRow(ctx, `
		INSERT INTO user_accounts (user_id, available_spins, last_daily_login_at) VALUES ($1, $4, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET available_spins = user_accounts.available_spins + EXCLUDED.available_spins,
		    last_daily_login_at = EXCLUDED.last_daily_login_at,
		    updated_at = NOW()
		WHERE user_accounts.last_daily_login_at IS NULL OR user_accounts.last_daily_login_at < $2
		RETURNING available_spins`, userID, dayStart, now, spins).Scan(&total)
	if err != nil {
		if isNoRows(err) {
			return 0, false, nil
		}
		return 0, false, storageErr(ErrMsgFailedToClaimDaily, err)
	}
	return total, true, nil
}

func (t *rewardTx) MarkFirstDepositBonus(ctx context.Context, userID string) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE user_accounts
		SET first_deposit_bonus_granted = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND NOT first_deposit_bonus_granted`, userID)
	if err != nil {
		return false, storageErr(ErrMsgFailedToMarkBonus, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *rewardTx) AppendLedger(ctx context.Context, entry *domain.LedgerEntry) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO ledger_entries (user_id, kind, amount, note)
		VALUES ($1, $2, $3, $4)
		RETURNING entry_id, created_at`,
		entry.UserID, string(entry.Kind), nullDecimal(entry.Amount), entry.Note).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return storageErr(ErrMsgFailedToAppendLedger, err)
	}
	return nil
}
