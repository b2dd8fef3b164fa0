package engine

import (
	"context"

	"github.com/osse101/LetterSpin_Go/internal/consumption"
	"github.com/osse101/LetterSpin_Go/internal/domain"
)

// GetAccountSummary reads the user's counters without creating an account.
func (s *service) GetAccountSummary(ctx context.Context, userID string) (*domain.AccountSummary, error) {
	if err := consumption.ValidateUserID(userID); err != nil {
		return nil, err
	}

	account, err := s.store.GetAccount(ctx, userID)
	if err != nil {
		return nil, consumption.Wrap(ErrContextFailedToGetAccount, err)
	}
	if account == nil {
		account = domain.NewUserAccount(userID)
	}

	letters, err := s.store.GetLetterHoldings(ctx, userID)
	if err != nil {
		return nil, consumption.Wrap(ErrContextFailedToGetLetters, err)
	}

	progress, err := s.missions.Progress(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.AccountSummary{
		Account:  *account,
		Letters:  letters.Positive(),
		Missions: progress,
	}, nil
}

// GetLedger returns the newest entries first. limit is clamped to
// [1, domain.MaxLedgerLimit]; zero selects the default.
func (s *service) GetLedger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if err := consumption.ValidateUserID(userID); err != nil {
		return nil, err
	}
	entries, err := s.store.GetLedgerEntries(ctx, userID, domain.ClampLedgerLimit(limit))
	if err != nil {
		return nil, consumption.Wrap(ErrContextFailedToGetLedger, err)
	}
	return entries, nil
}

func (s *service) ListWords(ctx context.Context) ([]domain.WordDefinition, error) {
	words, err := s.catalog.GetActiveWords(ctx)
	if err != nil {
		return nil, consumption.Wrap(ErrContextFailedToGetWords, err)
	}
	return words, nil
}

func (s *service) ListDepositTiers(ctx context.Context) ([]domain.DepositTier, error) {
	tiers, err := s.catalog.GetActiveDepositTiers(ctx)
	if err != nil {
		return nil, consumption.Wrap(ErrContextFailedToGetTiers, err)
	}
	return tiers, nil
}
