// Package engine composes the selector, the consumption unit, the word matcher
// and the mission evaluator into the public reward operations.
package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/consumption"
	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/event"
	"github.com/osse101/LetterSpin_Go/internal/logger"
	"github.com/osse101/LetterSpin_Go/internal/mission"
	"github.com/osse101/LetterSpin_Go/internal/repository"
	"github.com/osse101/LetterSpin_Go/internal/selector"
	"github.com/osse101/LetterSpin_Go/internal/utils"
	"github.com/osse101/LetterSpin_Go/internal/wordbonus"
)

// Catalog lists active configuration for read-only views. catalog.Catalog
// satisfies it.
type Catalog interface {
	GetActiveRewardSlots(ctx context.Context) ([]domain.RewardSlot, error)
	GetActiveWords(ctx context.Context) ([]domain.WordDefinition, error)
	GetActiveDepositTiers(ctx context.Context) ([]domain.DepositTier, error)
}

// Publisher delivers post-commit events. event.ResilientPublisher satisfies it.
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Options configures the engine.
type Options struct {
	DailyLoginSpins        int
	FirstDepositBonusSpins int
	// Random overrides the crypto/rand draw used by the selector.
	Random utils.RandomIntFunc
}

// Service defines the reward operations exposed to callers
type Service interface {
	Spin(ctx context.Context, userID string) (*domain.SpinResult, error)
	ClaimWordBonus(ctx context.Context, userID string, wordID int) (*domain.WordClaimResult, error)
	CanClaimWord(ctx context.Context, userID string, wordID int) (bool, error)
	ProcessDeposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.DepositResult, error)
	ClaimMission(ctx context.Context, userID string, tierID int) (*domain.MissionClaimResult, error)
	ClaimDailyLogin(ctx context.Context, userID string) (*domain.DailyLoginResult, error)
	GetAccountSummary(ctx context.Context, userID string) (*domain.AccountSummary, error)
	GetLedger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
	ListWords(ctx context.Context) ([]domain.WordDefinition, error)
	ListDepositTiers(ctx context.Context) ([]domain.DepositTier, error)
}

type service struct {
	store     repository.Store
	catalog   Catalog
	unit      *consumption.Unit
	selector  *selector.Selector
	words     *wordbonus.Matcher
	missions  *mission.Evaluator
	publisher Publisher
}

// NewService creates the reward engine. publisher may be nil.
func NewService(store repository.Store, catalog Catalog, publisher Publisher, opts Options) Service {
	unit := consumption.New(store)
	return &service{
		store:    store,
		catalog:  catalog,
		unit:     unit,
		selector: selector.NewWithRandom(opts.Random),
		words:    wordbonus.NewMatcher(store, unit),
		missions: mission.NewEvaluator(store, store, unit, mission.Options{
			DailyLoginSpins:        opts.DailyLoginSpins,
			FirstDepositBonusSpins: opts.FirstDepositBonusSpins,
		}),
		publisher: publisher,
	}
}

// Spin spends one spin, draws a slot and credits its reward in a single
// transaction. Exactly one SPIN ledger entry is written; the spin debit is
// part of that entry rather than a separate one.
func (s *service) Spin(ctx context.Context, userID string) (*domain.SpinResult, error) {
	if err := consumption.ValidateUserID(userID); err != nil {
		return nil, s.reject(ctx, userID, domain.OpSpin, err)
	}

	// Slots come from the store rather than the catalog cache so a slot
	// deactivated on another instance never pays out. They are read outside
	// the transaction; a load failure only surfaces once the spin has been
	// proven spendable.
	slots, slotErr := s.store.GetActiveRewardSlots(ctx)

	var result *domain.SpinResult
	err := s.unit.Run(ctx, func(tx repository.RewardTx) error {
		if err := tx.EnsureAccount(ctx, userID); err != nil {
			return consumption.Wrap(ErrContextFailedToEnsureUser, err)
		}
		remaining, ok, err := tx.TrySpendSpins(ctx, userID, 1)
		if err != nil {
			return consumption.Wrap(ErrContextFailedToSpendSpin, err)
		}
		if !ok {
			return domain.ErrInsufficientSpins
		}
		if slotErr != nil {
			return consumption.Wrap(ErrContextFailedToGetSlots, slotErr)
		}

		slot, err := s.selector.Select(slots)
		if err != nil {
			return err
		}
		result, err = resolve(ctx, tx, userID, slot)
		if err != nil {
			return err
		}
		result.RemainingSpins = remaining
		return nil
	})
	if err != nil {
		return nil, s.reject(ctx, userID, domain.OpSpin, err)
	}

	logger.FromContext(ctx).Info(LogMsgSpinCompleted,
		"userID", userID, "slotID", result.SlotID, "kind", result.OutcomeKind, "value", result.OutcomeValue)
	s.publish(ctx, event.NewSpinCompletedEvent(result))
	return result, nil
}

// resolve credits the reward of slot and writes the SPIN ledger entry.
func resolve(ctx context.Context, tx repository.RewardTx, userID string, slot domain.RewardSlot) (*domain.SpinResult, error) {
	result := &domain.SpinResult{
		UserID:       userID,
		SlotID:       slot.ID,
		OutcomeKind:  slot.Kind,
		OutcomeValue: slot.Payload,
	}

	switch slot.Kind {
	case domain.RewardKindCash:
		amount, err := slot.CashAmount()
		if err != nil {
			return nil, err
		}
		_, ok, err := tx.AdjustCash(ctx, userID, amount)
		if err != nil {
			return nil, consumption.Wrap(ErrContextFailedToCreditCash, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: slot %d pays %s", domain.ErrBalanceLimit, slot.ID, amount)
		}
		result.CashWon = &amount
		result.OutcomeValue = amount.StringFixed(mission.CashScale)
		note := fmt.Sprintf("slot %d: %s %s", slot.ID, slot.Kind, result.OutcomeValue)
		return result, consumption.Append(ctx, tx, userID, domain.LedgerKindSpin, &amount, note)

	case domain.RewardKindLetter:
		letter, err := slot.Letter()
		if err != nil {
			return nil, err
		}
		_, ok, err := tx.AdjustLetter(ctx, userID, letter, 1)
		if err != nil {
			return nil, consumption.Wrap(ErrContextFailedToCreditLetter, err)
		}
		if !ok {
			return nil, consumption.Wrap(ErrContextFailedToCreditLetter, fmt.Errorf("credit of %s rejected", letter))
		}
		result.LetterWon = letter
		note := fmt.Sprintf("slot %d: %s %s", slot.ID, slot.Kind, letter)
		return result, consumption.Append(ctx, tx, userID, domain.LedgerKindSpin, nil, note)

	default:
		return nil, fmt.Errorf("%w: slot %d has unknown kind %q", domain.ErrMalformedSlotPayload, slot.ID, slot.Kind)
	}
}

// ClaimWordBonus debits the word's letters and pays its reward.
func (s *service) ClaimWordBonus(ctx context.Context, userID string, wordID int) (*domain.WordClaimResult, error) {
	result, err := s.words.Claim(ctx, userID, wordID)
	if err != nil {
		return nil, s.reject(ctx, userID, domain.OpClaimWord, err)
	}
	s.publish(ctx, event.NewWordClaimedEvent(result))
	return result, nil
}

// CanClaimWord reports eligibility without mutating anything.
func (s *service) CanClaimWord(ctx context.Context, userID string, wordID int) (bool, error) {
	return s.words.CanClaim(ctx, userID, wordID)
}

// ProcessDeposit credits a deposit and unlocks the tiers it matches.
func (s *service) ProcessDeposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.DepositResult, error) {
	result, err := s.missions.ProcessDeposit(ctx, userID, amount)
	if err != nil {
		return nil, s.reject(ctx, userID, domain.OpProcessDeposit, err)
	}
	s.publish(ctx, event.NewDepositProcessedEvent(result))
	return result, nil
}

// ClaimMission grants a tier's spins if the user's cap allows it.
func (s *service) ClaimMission(ctx context.Context, userID string, tierID int) (*domain.MissionClaimResult, error) {
	result, err := s.missions.ClaimMission(ctx, userID, tierID)
	if err != nil {
		return nil, s.reject(ctx, userID, domain.OpClaimMission, err)
	}
	s.publish(ctx, event.NewMissionClaimedEvent(result))
	return result, nil
}

// ClaimDailyLogin grants the once-per-day login spins.
func (s *service) ClaimDailyLogin(ctx context.Context, userID string) (*domain.DailyLoginResult, error) {
	result, err := s.missions.ClaimDailyLogin(ctx, userID)
	if err != nil {
		return nil, s.reject(ctx, userID, domain.OpClaimDailyLogin, err)
	}
	s.publish(ctx, event.NewDailyLoginClaimedEvent(result))
	return result, nil
}

// reject logs a failed operation at a level matching its class and emits a
// request.rejected event. err is returned unchanged.
func (s *service) reject(ctx context.Context, userID, op string, err error) error {
	log := logger.FromContext(ctx)
	class := domain.Classify(err)
	switch class {
	case domain.ClassUserInput:
		log.Debug(LogMsgRequestRejected, "operation", op, "userID", userID, "class", class, "error", err)
	case domain.ClassResourceExhausted:
		log.Info(LogMsgRequestRejected, "operation", op, "userID", userID, "class", class, "error", err)
	default:
		log.Error(LogMsgRequestFailed, "operation", op, "userID", userID, "class", class, "error", err)
	}
	s.publish(ctx, event.NewRequestRejectedEvent(userID, op, err))
	return err
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, evt)
}
