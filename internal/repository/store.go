package repository

import (
	"context"

	"github.com/osse101/LetterSpin_Go/internal/domain"
)

// Catalog defines access to global reward configuration
type Catalog interface {
	// GetActiveRewardSlots returns active slots in stable (sort_order, id) order.
	GetActiveRewardSlots(ctx context.Context) ([]domain.RewardSlot, error)
	// GetWord returns nil, nil when the word does not exist.
	GetWord(ctx context.Context, wordID int) (*domain.WordDefinition, error)
	GetActiveWords(ctx context.Context) ([]domain.WordDefinition, error)
	// GetDepositTier returns nil, nil when the tier does not exist.
	GetDepositTier(ctx context.Context, tierID int) (*domain.DepositTier, error)
	GetActiveDepositTiers(ctx context.Context) ([]domain.DepositTier, error)

	// Admin writes. A zero ID inserts and assigns the new ID.
	SaveRewardSlot(ctx context.Context, slot *domain.RewardSlot) error
	SaveWord(ctx context.Context, word *domain.WordDefinition) error
	SaveDepositTier(ctx context.Context, tier *domain.DepositTier) error
}

// Accounts defines the non-transactional per-user reads
type Accounts interface {
	// GetAccount returns nil, nil for an unknown user.
	GetAccount(ctx context.Context, userID string) (*domain.UserAccount, error)
	GetLetterHoldings(ctx context.Context, userID string) (domain.LetterCounts, error)
	GetMissionProgress(ctx context.Context, userID string) ([]domain.MissionProgress, error)
	// GetLedgerEntries returns the newest entries first.
	GetLedgerEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
}

// Store is the transactional ledger store the engine runs against
type Store interface {
	Catalog
	Accounts

	BeginTx(ctx context.Context) (RewardTx, error)
	Ping(ctx context.Context) error
}
