// Package memstore is an in-memory repository.Store. Transactions are fully
// serialized: BeginTx holds an exclusive lock until Commit or Rollback, and
// Rollback replays an undo log. It backs STORE_DRIVER=memory and unit tests.
package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

type progressKey struct {
	userID string
	tierID int
}

// Store holds all state behind a single-slot semaphore.
type Store struct {
	sem chan struct{}
	now func() time.Time

	accounts map[string]*domain.UserAccount
	letters  map[string]domain.LetterCounts
	progress map[progressKey]*domain.MissionProgress
	ledger   []domain.LedgerEntry

	slots map[int]domain.RewardSlot
	words map[int]domain.WordDefinition
	tiers map[int]domain.DepositTier

	nextLedgerID int64
	nextSlotID   int
	nextWordID   int
	nextTierID   int
}

var _ repository.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		sem:      make(chan struct{}, 1),
		now:      time.Now,
		accounts: make(map[string]*domain.UserAccount),
		letters:  make(map[string]domain.LetterCounts),
		progress: make(map[progressKey]*domain.MissionProgress),
		slots:    make(map[int]domain.RewardSlot),
		words:    make(map[int]domain.WordDefinition),
		tiers:    make(map[int]domain.DepositTier),
	}
}

// SetClock overrides the timestamp source. Test helper.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) lock(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return domain.StorageError("acquire lock", ctx.Err())
	}
}

func (s *Store) unlock() {
	<-s.sem
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// BeginTx blocks until no other transaction is open.
func (s *Store) BeginTx(ctx context.Context) (repository.RewardTx, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	return &tx{store: s}, nil
}

// GetActiveRewardSlots returns active slots ordered by sort order then id.
func (s *Store) GetActiveRewardSlots(ctx context.Context) ([]domain.RewardSlot, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	out := make([]domain.RewardSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		if slot.Active {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetWord(ctx context.Context, wordID int) (*domain.WordDefinition, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	w, ok := s.words[wordID]
	if !ok {
		return nil, nil
	}
	w = copyWord(w)
	return &w, nil
}

func (s *Store) GetActiveWords(ctx context.Context) ([]domain.WordDefinition, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	out := make([]domain.WordDefinition, 0, len(s.words))
	for _, w := range s.words {
		if w.Active {
			out = append(out, copyWord(w))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetDepositTier(ctx context.Context, tierID int) (*domain.DepositTier, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	t, ok := s.tiers[tierID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *Store) GetActiveDepositTiers(ctx context.Context) ([]domain.DepositTier, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	out := make([]domain.DepositTier, 0, len(s.tiers))
	for _, t := range s.tiers {
		if t.Active {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MinAmount.Equal(out[j].MinAmount) {
			return out[i].MinAmount.LessThan(out[j].MinAmount)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) SaveRewardSlot(ctx context.Context, slot *domain.RewardSlot) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	if slot.ID == 0 {
		s.nextSlotID++
		slot.ID = s.nextSlotID
	} else if slot.ID > s.nextSlotID {
		s.nextSlotID = slot.ID
	}
	s.slots[slot.ID] = *slot
	return nil
}

func (s *Store) SaveWord(ctx context.Context, word *domain.WordDefinition) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	if word.ID == 0 {
		s.nextWordID++
		word.ID = s.nextWordID
	} else if word.ID > s.nextWordID {
		s.nextWordID = word.ID
	}
	s.words[word.ID] = copyWord(*word)
	return nil
}

func (s *Store) SaveDepositTier(ctx context.Context, tier *domain.DepositTier) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	if tier.ID == 0 {
		s.nextTierID++
		tier.ID = s.nextTierID
	} else if tier.ID > s.nextTierID {
		s.nextTierID = tier.ID
	}
	s.tiers[tier.ID] = *tier
	return nil
}

func (s *Store) GetAccount(ctx context.Context, userID string) (*domain.UserAccount, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	return s.account(userID), nil
}

func (s *Store) GetLetterHoldings(ctx context.Context, userID string) (domain.LetterCounts, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	return s.letters[userID].Positive(), nil
}

func (s *Store) GetMissionProgress(ctx context.Context, userID string) ([]domain.MissionProgress, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	out := []domain.MissionProgress{}
	for k, p := range s.progress {
		if k.userID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TierID < out[j].TierID })
	return out, nil
}

func (s *Store) GetLedgerEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	out := []domain.LedgerEntry{}
	for i := len(s.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if s.ledger[i].UserID == userID {
			out = append(out, s.ledger[i])
		}
	}
	return out, nil
}

// account returns a copy of the stored account or nil. Caller holds the lock.
func (s *Store) account(userID string) *domain.UserAccount {
	a, ok := s.accounts[userID]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

func copyWord(w domain.WordDefinition) domain.WordDefinition {
	req := make(domain.LetterCounts, len(w.RequiredLetters))
	for l, n := range w.RequiredLetters {
		req[l] = n
	}
	w.RequiredLetters = req
	return w
}
