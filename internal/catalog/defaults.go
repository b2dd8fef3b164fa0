package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/domain"
)

// Writer persists catalog records. ID 0 inserts.
type Writer interface {
	SaveRewardSlot(ctx context.Context, slot *domain.RewardSlot) error
	SaveWord(ctx context.Context, word *domain.WordDefinition) error
	SaveDepositTier(ctx context.Context, tier *domain.DepositTier) error
}

// Seed is a starter configuration.
type Seed struct {
	Slots []domain.RewardSlot
	Words []domain.WordDefinition
	Tiers []domain.DepositTier
}

// Defaults returns the catalog the memory store starts with. It matches the
// rows inserted by the initial migration.
func Defaults() Seed {
	maxLow := decimal.RequireFromString("99.99")
	maxHigh := decimal.RequireFromString("199.99")

	return Seed{
		Slots: []domain.RewardSlot{
			{Kind: domain.RewardKindCash, Payload: "0.50", Weight: 30, Active: true, SortOrder: 1},
			{Kind: domain.RewardKindCash, Payload: "1.00", Weight: 20, Active: true, SortOrder: 2},
			{Kind: domain.RewardKindCash, Payload: "5.00", Weight: 5, Active: true, SortOrder: 3},
			{Kind: domain.RewardKindLetter, Payload: "W", Weight: 12, Active: true, SortOrder: 4},
			{Kind: domain.RewardKindLetter, Payload: "I", Weight: 12, Active: true, SortOrder: 5},
			{Kind: domain.RewardKindLetter, Payload: "N", Weight: 12, Active: true, SortOrder: 6},
			{Kind: domain.RewardKindLetter, Payload: "B", Weight: 3, Active: true, SortOrder: 7},
			{Kind: domain.RewardKindLetter, Payload: "G", Weight: 3, Active: true, SortOrder: 8},
			{Kind: domain.RewardKindLetter, Payload: "O", Weight: 3, Active: true, SortOrder: 9},
		},
		Words: []domain.WordDefinition{
			{Word: "WIN", RequiredLetters: domain.LetterCounts{"W": 1, "I": 1, "N": 1}, RewardAmount: decimal.RequireFromString("10.00"), Active: true},
			{Word: "BINGO", RequiredLetters: domain.LetterCounts{"B": 1, "I": 1, "N": 1, "G": 1, "O": 1}, RewardAmount: decimal.RequireFromString("50.00"), Active: true},
		},
		Tiers: []domain.DepositTier{
			{Name: "Bronze", MinAmount: decimal.NewFromInt(50), MaxAmount: &maxLow, SpinsGranted: 1, MaxClaimsPerUser: 1, Active: true},
			{Name: "Silver", MinAmount: decimal.NewFromInt(100), MaxAmount: &maxHigh, SpinsGranted: 1, MaxClaimsPerUser: 1, Active: true},
		},
	}
}

// Apply writes every record of the seed.
func (s Seed) Apply(ctx context.Context, w Writer) error {
	for i := range s.Slots {
		slot := s.Slots[i]
		if err := w.SaveRewardSlot(ctx, &slot); err != nil {
			return fmt.Errorf("failed to seed slot %d: %w", i, err)
		}
	}
	for i := range s.Words {
		word := s.Words[i]
		if err := w.SaveWord(ctx, &word); err != nil {
			return fmt.Errorf("failed to seed word %s: %w", word.Word, err)
		}
	}
	for i := range s.Tiers {
		tier := s.Tiers[i]
		if err := w.SaveDepositTier(ctx, &tier); err != nil {
			return fmt.Errorf("failed to seed tier %s: %w", tier.Name, err)
		}
	}
	return nil
}
