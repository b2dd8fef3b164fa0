package memstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

// tx mutates the store in place while holding its lock and records an undo
// step for every change.
type tx struct {
	store *Store
	undo  []func()
	done  bool
}

var _ repository.RewardTx = (*tx)(nil)

func (t *tx) check() error {
	if t.done {
		return repository.ErrTxClosed
	}
	return nil
}

func (t *tx) Commit(ctx context.Context) error {
	if err := t.check(); err != nil {
		return err
	}
	t.done = true
	t.undo = nil
	t.store.unlock()
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if err := t.check(); err != nil {
		return err
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.done = true
	t.undo = nil
	t.store.unlock()
	return nil
}

// saveAccount snapshots the account before a mutation.
func (t *tx) saveAccount(userID string) *domain.UserAccount {
	a := t.store.accounts[userID]
	prev := *a
	t.undo = append(t.undo, func() { *t.store.accounts[userID] = prev })
	return a
}

func (t *tx) EnsureAccount(ctx context.Context, userID string) error {
	if err := t.check(); err != nil {
		return err
	}
	if _, ok := t.store.accounts[userID]; ok {
		return nil
	}
	now := t.store.now()
	a := domain.NewUserAccount(userID)
	a.CreatedAt, a.UpdatedAt = now, now
	t.store.accounts[userID] = a
	t.undo = append(t.undo, func() { delete(t.store.accounts, userID) })
	return nil
}

func (t *tx) GetAccount(ctx context.Context, userID string) (*domain.UserAccount, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	return t.store.account(userID), nil
}

func (t *tx) GetLetterHoldings(ctx context.Context, userID string) (domain.LetterCounts, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	return t.store.letters[userID].Positive(), nil
}

func (t *tx) TrySpendSpins(ctx context.Context, userID string, n int) (int, bool, error) {
	if err := t.check(); err != nil {
		return 0, false, err
	}
	a, ok := t.store.accounts[userID]
	if !ok || a.AvailableSpins < n {
		return 0, false, nil
	}
	a = t.saveAccount(userID)
	a.AvailableSpins -= n
	a.UpdatedAt = t.store.now()
	return a.AvailableSpins, true, nil
}

func (t *tx) CreditSpins(ctx context.Context, userID string, n int) (int, error) {
	if err := t.EnsureAccount(ctx, userID); err != nil {
		return 0, err
	}
	a := t.saveAccount(userID)
	a.AvailableSpins += n
	a.UpdatedAt = t.store.now()
	return a.AvailableSpins, nil
}

func (t *tx) AdjustCash(ctx context.Context, userID string, delta decimal.Decimal) (decimal.Decimal, bool, error) {
	if err := t.EnsureAccount(ctx, userID); err != nil {
		return decimal.Zero, false, err
	}
	a := t.store.accounts[userID]
	next := a.CashBalance.Add(delta)
	if next.IsNegative() || !domain.WithinCashLimit(next) {
		return a.CashBalance, false, nil
	}
	a = t.saveAccount(userID)
	a.CashBalance = next
	a.UpdatedAt = t.store.now()
	return next, true, nil
}

func (t *tx) AdjustLetter(ctx context.Context, userID, letter string, delta int) (int, bool, error) {
	if err := t.check(); err != nil {
		return 0, false, err
	}
	holdings, exists := t.store.letters[userID]
	current := holdings.Get(letter)
	if current+delta < 0 {
		return current, false, nil
	}
	if !exists {
		holdings = make(domain.LetterCounts)
		t.store.letters[userID] = holdings
		t.undo = append(t.undo, func() { delete(t.store.letters, userID) })
	}
	prev, had := holdings[letter]
	t.undo = append(t.undo, func() {
		if had {
			holdings[letter] = prev
		} else {
			delete(holdings, letter)
		}
	})
	holdings[letter] = current + delta
	return current + delta, true, nil
}

func (t *tx) EnsureMissionProgress(ctx context.Context, userID string, tierID int, now time.Time) (int, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	key := progressKey{userID: userID, tierID: tierID}
	if p, ok := t.store.progress[key]; ok {
		return p.ClaimsUsed, nil
	}
	t.store.progress[key] = &domain.MissionProgress{UserID: userID, TierID: tierID, UnlockedAt: now}
	t.undo = append(t.undo, func() { delete(t.store.progress, key) })
	return 0, nil
}

func (t *tx) IncrementMissionClaim(ctx context.Context, userID string, tierID, maxClaims int, now time.Time) (int, bool, error) {
	if _, err := t.EnsureMissionProgress(ctx, userID, tierID, now); err != nil {
		return 0, false, err
	}
	p := t.store.progress[progressKey{userID: userID, tierID: tierID}]
	if p.ClaimsUsed >= maxClaims {
		return p.ClaimsUsed, false, nil
	}
	prev := *p
	t.undo = append(t.undo, func() { *p = prev })
	p.ClaimsUsed++
	claimedAt := now
	p.LastClaimAt = &claimedAt
	return p.ClaimsUsed, true, nil
}

func (t *tx) ClaimDailyLogin(ctx context.Context, userID string, dayStart, now time.Time, spins int) (int, bool, error) {
	if err := t.EnsureAccount(ctx, userID); err != nil {
		return 0, false, err
	}
	a := t.store.accounts[userID]
	if a.LastDailyLoginAt != nil && !a.LastDailyLoginAt.Before(dayStart) {
		return a.AvailableSpins, false, nil
	}
	a = t.saveAccount(userID)
	claimedAt := now
	a.LastDailyLoginAt = &claimedAt
	a.AvailableSpins += spins
	a.UpdatedAt = now
	return a.AvailableSpins, true, nil
}

func (t *tx) MarkFirstDepositBonus(ctx context.Context, userID string) (bool, error) {
	if err := t.EnsureAccount(ctx, userID); err != nil {
		return false, err
	}
	if t.store.accounts[userID].FirstDepositBonusGranted {
		return false, nil
	}
	a := t.saveAccount(userID)
	a.FirstDepositBonusGranted = true
	a.UpdatedAt = t.store.now()
	return true, nil
}

func (t *tx) AppendLedger(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := t.check(); err != nil {
		return err
	}
	s := t.store
	s.nextLedgerID++
	entry.ID = s.nextLedgerID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	stored := *entry
	if entry.Amount != nil {
		amount := *entry.Amount
		stored.Amount = &amount
	}
	s.ledger = append(s.ledger, stored)
	n := len(s.ledger) - 1
	t.undo = append(t.undo, func() {
		s.ledger = s.ledger[:n]
		s.nextLedgerID--
	})
	return nil
}
