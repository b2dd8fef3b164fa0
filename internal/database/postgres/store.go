// Package postgres implements repository.Store on PostgreSQL. Every resource
// mutation is a single conditional statement whose affected row, or absence of
// one, decides success.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

// Store is the PostgreSQL reward store.
type Store struct {
	db *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a Store over db.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// BeginTx starts a READ COMMITTED transaction. Conditional updates re-check
// their predicate against the latest committed row, so no stronger isolation
// is needed.
func (s *Store) BeginTx(ctx context.Context) (repository.RewardTx, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, storageErr(ErrMsgFailedToBeginTransaction, err)
	}
	return &rewardTx{tx: tx}, nil
}

// GetAccount returns nil for an unknown user.
func (s *Store) GetAccount(ctx context.Context, userID string) (*domain.UserAccount, error) {
	return getAccount(ctx, s.db, userID)
}

func (s *Store) GetLetterHoldings(ctx context.Context, userID string) (domain.LetterCounts, error) {
	return getLetterHoldings(ctx, s.db, userID, false)
}

func (s *Store) GetMissionProgress(ctx context.Context, userID string) ([]domain.MissionProgress, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, tier_id, claims_used, unlocked_at, last_claim_at
		FROM mission_progress
		WHERE user_id = $1
		ORDER BY tier_id`, userID)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetProgress, err)
	}
	progress, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MissionProgress, error) {
		var p domain.MissionProgress
		err := row.Scan(&p.UserID, &p.TierID, &p.ClaimsUsed, &p.UnlockedAt, &p.LastClaimAt)
		return p, err
	})
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetProgress, err)
	}
	return progress, nil
}

// GetLedgerEntries returns up to limit entries, newest first.
func (s *Store) GetLedgerEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT entry_id, user_id, kind, amount, note, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY entry_id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetLedger, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerEntry, error) {
		var (
			e      domain.LedgerEntry
			kind   string
			amount decimal.NullDecimal
		)
		if err := row.Scan(&e.ID, &e.UserID, &kind, &amount, &e.Note, &e.CreatedAt); err != nil {
			return e, fmt.Errorf("%s: %w", ErrMsgFailedToScanLedgerEntry, err)
		}
		e.Kind = domain.LedgerKind(kind)
		e.Amount = ptrDecimal(amount)
		return e, nil
	})
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetLedger, err)
	}
	return entries, nil
}

func getAccount(ctx context.Context, q querier, userID string) (*domain.UserAccount, error) {
	var a domain.UserAccount
	err := q.QueryRow(ctx, `
		SELECT user_id, cash_balance, available_spins, first_deposit_bonus_granted,
		       last_daily_login_at, created_at, updated_at
		FROM user_accounts
		WHERE user_id = $1`, userID).Scan(
		&a.ID, &a.CashBalance, &a.AvailableSpins, &a.FirstDepositBonusGranted,
		&a.LastDailyLoginAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storageErr(ErrMsgFailedToGetAccount, err)
	}
	return &a, nil
}

// getLetterHoldings reads the positive holdings. forUpdate row-locks them so a
// word claim's re-check and debits see one consistent state.
func getLetterHoldings(ctx context.Context, q querier, userID string, forUpdate bool) (domain.LetterCounts, error) {
	sql := `SELECT letter, count FROM letter_holdings WHERE user_id = $1 AND count > 0 ORDER BY letter`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, sql, userID)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetHoldings, err)
	}
	defer rows.Close()

	holdings := make(domain.LetterCounts)
	for rows.Next() {
		var (
			letter string
			count  int
		)
		if err := rows.Scan(&letter, &count); err != nil {
			return nil, storageErr(ErrMsgFailedToGetHoldings, err)
		}
		holdings[letter] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(ErrMsgFailedToGetHoldings, err)
	}
	return holdings, nil
}
