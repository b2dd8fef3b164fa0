// Package wordbonus pays cash for assembling a word from collected letters.
package wordbonus

import (
	"context"
	"fmt"

	"github.com/osse101/LetterSpin_Go/internal/consumption"
	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/logger"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

// Contains reports whether holdings contains required as a multiset. An empty
// requirement is always contained; a missing holding counts as zero.
func Contains(holdings, required domain.LetterCounts) bool {
	for letter, need := range required {
		if need <= 0 {
			continue
		}
		if holdings.Get(letter) < need {
			return false
		}
	}
	return true
}

// Store is the subset of repository.Store the matcher reads.
type Store interface {
	GetWord(ctx context.Context, wordID int) (*domain.WordDefinition, error)
	GetLetterHoldings(ctx context.Context, userID string) (domain.LetterCounts, error)
}

// Matcher evaluates and pays word-bonus claims.
type Matcher struct {
	store Store
	unit  *consumption.Unit
}

// NewMatcher creates a Matcher.
func NewMatcher(store Store, unit *consumption.Unit) *Matcher {
	return &Matcher{store: store, unit: unit}
}

func (m *Matcher) loadWord(ctx context.Context, wordID int) (*domain.WordDefinition, error) {
	word, err := m.store.GetWord(ctx, wordID)
	if err != nil {
		return nil, consumption.Wrap(ErrContextFailedToGetWord, err)
	}
	if word == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrWordNotFound, wordID)
	}
	return word, nil
}

// CanClaim reports whether userID currently holds every letter wordID needs.
// It never mutates state: an unknown user simply holds no letters, and an
// inactive word is never claimable.
func (m *Matcher) CanClaim(ctx context.Context, userID string, wordID int) (bool, error) {
	if err := consumption.ValidateUserID(userID); err != nil {
		return false, err
	}
	word, err := m.loadWord(ctx, wordID)
	if err != nil {
		return false, err
	}
	if !word.Active {
		return false, nil
	}
	holdings, err := m.store.GetLetterHoldings(ctx, userID)
	if err != nil {
		return false, consumption.Wrap(ErrContextFailedToGetHoldings, err)
	}
	return Contains(holdings, word.RequiredLetters), nil
}

// Claim debits every required letter and credits the word's reward, all in one
// transaction. Eligibility is re-checked inside the transaction and each debit
// is itself conditional, so a concurrent claim that consumed the letters first
// leaves this one with ErrInsufficientLetters and no partial debits.
func (m *Matcher) Claim(ctx context.Context, userID string, wordID int) (*domain.WordClaimResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgClaimWordCalled, "userID", userID, "wordID", wordID)

	if err := consumption.ValidateUserID(userID); err != nil {
		return nil, err
	}
	word, err := m.loadWord(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if !word.Active {
		return nil, fmt.Errorf("%w: %s", domain.ErrWordInactive, word.Word)
	}

	required := word.RequiredLetters.Positive()
	result := &domain.WordClaimResult{
		UserID:         userID,
		WordID:         word.ID,
		Word:           word.Word,
		RewardAmount:   word.RewardAmount,
		LettersDebited: required,
	}

	err = m.unit.Run(ctx, func(tx repository.RewardTx) error {
		if err := tx.EnsureAccount(ctx, userID); err != nil {
			return consumption.Wrap(ErrContextFailedToEnsureUser, err)
		}

		holdings, err := tx.GetLetterHoldings(ctx, userID)
		if err != nil {
			return consumption.Wrap(ErrContextFailedToGetHoldings, err)
		}
		if !Contains(holdings, required) {
			return domain.ErrInsufficientLetters
		}

		// Sorted order keeps row locks consistent across concurrent claims.
		for _, letter := range required.Letters() {
			_, ok, err := tx.AdjustLetter(ctx, userID, letter, -required[letter])
			if err != nil {
				return consumption.Wrap(ErrContextFailedToDebitLetter, err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrInsufficientLetters, letter)
			}
		}

		balance, ok, err := tx.AdjustCash(ctx, userID, word.RewardAmount)
		if err != nil {
			return consumption.Wrap(ErrContextFailedToCreditReward, err)
		}
		if !ok {
			return domain.ErrBalanceLimit
		}
		result.NewBalance = balance

		amount := word.RewardAmount
		return consumption.Append(ctx, tx, userID, domain.LedgerKindWordBonus, &amount,
			fmt.Sprintf("word %s (#%d)", word.Word, word.ID))
	})
	if err != nil {
		if consumption.IsRejection(err) {
			log.Info(LogMsgClaimRejected, "userID", userID, "wordID", wordID, "reason", err)
		}
		return nil, err
	}

	log.Info(LogMsgWordClaimed, "userID", userID, "word", word.Word, "amount", word.RewardAmount.String())
	return result, nil
}
