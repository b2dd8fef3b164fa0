// Package admin validates and persists global reward configuration.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/logger"
)

// Store persists catalog records. ID 0 inserts, otherwise the row is replaced.
type Store interface {
	SaveRewardSlot(ctx context.Context, slot *domain.RewardSlot) error
	SaveWord(ctx context.Context, word *domain.WordDefinition) error
	SaveDepositTier(ctx context.Context, tier *domain.DepositTier) error
}

// Invalidator drops cached configuration after a write.
type Invalidator interface {
	Invalidate()
}

// SlotInput describes a reward slot to create or replace.
type SlotInput struct {
	ID        int    `json:"id" validate:"min=0"`
	Kind      string `json:"kind" validate:"required,oneof=CASH LETTER"`
	Payload   string `json:"payload" validate:"required,max=32"`
	Weight    int    `json:"weight" validate:"min=1"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sort_order"`
}

// WordInput describes a word definition. Letters derive from Word when
// RequiredLetters is empty.
type WordInput struct {
	ID              int            `json:"id" validate:"min=0"`
	Word            string         `json:"word" validate:"required,alpha,max=32"`
	RequiredLetters map[string]int `json:"required_letters,omitempty"`
	RewardAmount    string         `json:"reward_amount" validate:"required"`
	Active          bool           `json:"active"`
}

// TierInput describes a deposit tier. An empty MaxAmount is unbounded.
type TierInput struct {
	ID               int    `json:"id" validate:"min=0"`
	Name             string `json:"name" validate:"required,max=64"`
	MinAmount        string `json:"min_amount" validate:"required"`
	MaxAmount        string `json:"max_amount,omitempty"`
	SpinsGranted     int    `json:"spins_granted" validate:"min=1"`
	MaxClaimsPerUser int    `json:"max_claims_per_user" validate:"min=1"`
	Active           bool   `json:"active"`
}

// Service defines admin configuration writes
type Service interface {
	SaveSlot(ctx context.Context, in SlotInput) (*domain.RewardSlot, error)
	SaveWord(ctx context.Context, in WordInput) (*domain.WordDefinition, error)
	SaveTier(ctx context.Context, in TierInput) (*domain.DepositTier, error)
}

type service struct {
	store    Store
	cache    Invalidator
	validate *validator.Validate
}

// NewService creates a new admin service. cache may be nil.
func NewService(store Store, cache Invalidator) Service {
	return &service{
		store:    store,
		cache:    cache,
		validate: validator.New(),
	}
}

func (s *service) check(in interface{}) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func (s *service) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

// SaveSlot validates and persists a reward slot.
func (s *service) SaveSlot(ctx context.Context, in SlotInput) (*domain.RewardSlot, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	slot := &domain.RewardSlot{
		ID:        in.ID,
		Kind:      domain.RewardKind(in.Kind),
		Payload:   strings.TrimSpace(in.Payload),
		Weight:    in.Weight,
		Active:    in.Active,
		SortOrder: in.SortOrder,
	}
	switch slot.Kind {
	case domain.RewardKindCash:
		amount, err := slot.CashAmount()
		if err != nil {
			return nil, invalid(ErrMsgPayloadNotCash)
		}
		if !domain.WithinCashLimit(amount.Round(2)) {
			return nil, invalid(ErrMsgAmountOverLimit)
		}
		slot.Payload = amount.StringFixed(2)
	case domain.RewardKindLetter:
		if _, err := slot.Letter(); err != nil {
			return nil, invalid(ErrMsgPayloadNotLetter)
		}
	}

	if err := s.store.SaveRewardSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveSlot, err)
	}
	s.invalidate()

	logger.FromContext(ctx).Info(LogMsgSlotSaved, "slot_id", slot.ID, "kind", slot.Kind, "weight", slot.Weight)
	return slot, nil
}

// SaveWord validates and persists a word definition.
func (s *service) SaveWord(ctx context.Context, in WordInput) (*domain.WordDefinition, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	word := strings.ToUpper(strings.TrimSpace(in.Word))
	letters, err := requiredLetters(word, in.RequiredLetters)
	if err != nil {
		return nil, err
	}

	reward, err := decimal.NewFromString(in.RewardAmount)
	if err != nil || !reward.IsPositive() {
		return nil, invalid(ErrMsgRewardNotPositive)
	}
	if !domain.WithinCashLimit(reward.Round(2)) {
		return nil, invalid(ErrMsgAmountOverLimit)
	}

	def := &domain.WordDefinition{
		ID:              in.ID,
		Word:            word,
		RequiredLetters: letters,
		RewardAmount:    reward.Round(2),
		Active:          in.Active,
	}
	if err := s.store.SaveWord(ctx, def); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveWord, err)
	}
	s.invalidate()

	logger.FromContext(ctx).Info(LogMsgWordSaved, "word_id", def.ID, "word", def.Word)
	return def, nil
}

func requiredLetters(word string, given map[string]int) (domain.LetterCounts, error) {
	if len(given) == 0 {
		letters, err := domain.LettersOf(word)
		if err != nil {
			return nil, invalid(ErrMsgLettersMismatch)
		}
		return letters, nil
	}

	letters := make(domain.LetterCounts, len(given))
	for raw, n := range given {
		l, err := domain.NormalizeLetter(raw)
		if err != nil || n <= 0 {
			return nil, invalid(ErrMsgLettersMismatch)
		}
		letters[l] += n
	}
	return letters, nil
}

// displayName title-cases a tier name for listings.
func displayName(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// SaveTier validates and persists a deposit tier.
func (s *service) SaveTier(ctx context.Context, in TierInput) (*domain.DepositTier, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	minAmount, err := decimal.NewFromString(in.MinAmount)
	if err != nil || !minAmount.IsPositive() {
		return nil, invalid(ErrMsgMinNotPositive)
	}
	if !domain.WithinCashLimit(minAmount.Round(2)) {
		return nil, invalid(ErrMsgAmountOverLimit)
	}

	tier := &domain.DepositTier{
		ID:               in.ID,
		Name:             displayName(in.Name),
		MinAmount:        minAmount.Round(2),
		SpinsGranted:     in.SpinsGranted,
		MaxClaimsPerUser: in.MaxClaimsPerUser,
		Active:           in.Active,
	}
	if in.MaxAmount != "" {
		maxAmount, err := decimal.NewFromString(in.MaxAmount)
		if err != nil || maxAmount.LessThan(minAmount) {
			return nil, invalid(ErrMsgMaxBelowMin)
		}
		maxAmount = maxAmount.Round(2)
		if !domain.WithinCashLimit(maxAmount) {
			return nil, invalid(ErrMsgAmountOverLimit)
		}
		tier.MaxAmount = &maxAmount
	}

	if err := s.store.SaveDepositTier(ctx, tier); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveTier, err)
	}
	s.invalidate()

	logger.FromContext(ctx).Info(LogMsgTierSaved, "tier_id", tier.ID, "name", tier.Name)
	return tier, nil
}
