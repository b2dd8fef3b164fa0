package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// RewardTx extends Tx with the conditional mutations the engine composes.
// Every mutating method is a single conditional statement: the boolean result
// reports whether the condition held, and an error is returned only for
// storage failures.
type RewardTx interface {
	Tx // Commit, Rollback

	// EnsureAccount creates a zero-balance, zero-spin account if userID is
	// unknown and locks the account row until the transaction ends. Operations
	// touching more than one row call it first, so all of a user's
	// transactions acquire row locks in the same order: account, then letters
	// or mission progress.
	EnsureAccount(ctx context.Context, userID string) error
	GetAccount(ctx context.Context, userID string) (*domain.UserAccount, error)
	GetLetterHoldings(ctx context.Context, userID string) (domain.LetterCounts, error)

	// TrySpendSpins decrements spins by n only if at least n are available.
	TrySpendSpins(ctx context.Context, userID string, n int) (remaining int, ok bool, err error)
	// CreditSpins adds n spins unconditionally.
	CreditSpins(ctx context.Context, userID string, n int) (total int, err error)
	// AdjustCash applies delta only if the resulting balance is non-negative.
	AdjustCash(ctx context.Context, userID string, delta decimal.Decimal) (balance decimal.Decimal, ok bool, err error)
	// AdjustLetter applies delta to one letter holding only if the resulting
	// count is non-negative. Credits create the holding row if absent.
	AdjustLetter(ctx context.Context, userID, letter string, delta int) (count int, ok bool, err error)

	// EnsureMissionProgress creates the (user, tier) progress row if absent and
	// returns the claims already used.
	EnsureMissionProgress(ctx context.Context, userID string, tierID int, now time.Time) (claimsUsed int, err error)
	// IncrementMissionClaim bumps claims_used and last_claim_at only while
	// claims_used < maxClaims, creating the row if absent.
	IncrementMissionClaim(ctx context.Context, userID string, tierID, maxClaims int, now time.Time) (claimsUsed int, ok bool, err error)

	// ClaimDailyLogin stamps last_daily_login_at and adds spins only if the
	// previous claim happened before dayStart.
	ClaimDailyLogin(ctx context.Context, userID string, dayStart, now time.Time, spins int) (total int, ok bool, err error)
	// MarkFirstDepositBonus flips first_deposit_bonus_granted from false to true.
	MarkFirstDepositBonus(ctx context.Context, userID string) (ok bool, err error)

	// AppendLedger inserts one audit entry, filling ID and CreatedAt.
	AppendLedger(ctx context.Context, entry *domain.LedgerEntry) error
}
