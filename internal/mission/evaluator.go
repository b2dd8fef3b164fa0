// Package mission ties deposits and logins to claimable spins.
package mission

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/consumption"
	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/logger"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

// TierSource lists the active deposit tiers. The catalog cache satisfies it.
type TierSource interface {
	GetActiveDepositTiers(ctx context.Context) ([]domain.DepositTier, error)
}

// Store is the subset of repository.Store the evaluator reads directly.
type Store interface {
	GetDepositTier(ctx context.Context, tierID int) (*domain.DepositTier, error)
	GetMissionProgress(ctx context.Context, userID string) ([]domain.MissionProgress, error)
}

// Options tunes the supplementary login and first-deposit rewards. Zero
// disables the corresponding reward.
type Options struct {
	DailyLoginSpins        int
	FirstDepositBonusSpins int
}

// Evaluator matches deposits to tiers and enforces per-user claim caps.
type Evaluator struct {
	store Store
	tiers TierSource
	unit  *consumption.Unit
	opts  Options
	now   func() time.Time // Injectable for testing
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(store Store, tiers TierSource, unit *consumption.Unit, opts Options) *Evaluator {
	return &Evaluator{
		store: store,
		tiers: tiers,
		unit:  unit,
		opts:  opts,
		now:   time.Now,
	}
}

// MatchTiers returns every active tier whose inclusive range contains amount.
func MatchTiers(tiers []domain.DepositTier, amount decimal.Decimal) []domain.DepositTier {
	var matched []domain.DepositTier
	for _, t := range tiers {
		if t.Active && t.Matches(amount) {
			matched = append(matched, t)
		}
	}
	return matched
}

// ValidateAmount rejects non-positive amounts, amounts at or above the cash
// limit and sub-cent precision.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !domain.WithinCashLimit(amount) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, domain.ErrMsgAmountTooLarge)
	}
	if !amount.Equal(amount.Round(CashScale)) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, ErrMsgTooManyDecimals)
	}
	return nil
}

// ProcessDeposit credits amount to the user's balance and unlocks every
// matching tier the user has not exhausted. Unlocking grants nothing by
// itself; spins are paid by ClaimMission.
func (e *Evaluator) ProcessDeposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.DepositResult, error) {
	if err := consumption.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	tiers, err := e.tiers.GetActiveDepositTiers(ctx)
	if err != nil {
		return nil, consumption.Wrap(ErrContextFailedToGetTiers, err)
	}
	matched := MatchTiers(tiers, amount)
	now := e.now()

	result := &domain.DepositResult{
		UserID:          userID,
		Amount:          amount,
		UnlockedTierIDs: []int{},
	}

	err = e.unit.Run(ctx, func(tx repository.RewardTx) error {
		if err := tx.EnsureAccount(ctx, userID); err != nil {
			return consumption.Wrap(ErrContextFailedToEnsureUser, err)
		}
		balance, ok, err := tx.AdjustCash(ctx, userID, amount)
		if err != nil {
			return consumption.Wrap(ErrContextFailedToCreditCash, err)
		}
		if !ok {
			return domain.ErrBalanceLimit
		}
		result.NewBalance = balance

		deposited := amount
		if err := consumption.Append(ctx, tx, userID, domain.LedgerKindDeposit, &deposited, "deposit"); err != nil {
			return err
		}

		for _, tier := range matched {
			used, err := tx.EnsureMissionProgress(ctx, userID, tier.ID, now)
			if err != nil {
				return consumption.Wrap(ErrContextFailedToEnsureMission, err)
			}
			if used < tier.MaxClaimsPerUser {
				result.UnlockedTierIDs = append(result.UnlockedTierIDs, tier.ID)
			}
		}

		return e.grantFirstDepositBonus(ctx, tx, userID, result)
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgDepositProcessed, "userID", userID, "amount", amount.String(), "unlocked", result.UnlockedTierIDs)
	if result.BonusSpins > 0 {
		log.Info(LogMsgFirstDepositBonus, "userID", userID, "spins", result.BonusSpins)
	}
	for _, tierID := range result.UnlockedTierIDs {
		log.Debug(LogMsgTierUnlocked, "userID", userID, "tierID", tierID)
	}
	return result, nil
}

func (e *Evaluator) grantFirstDepositBonus(ctx context.Context, tx repository.RewardTx, userID string, result *domain.DepositResult) error {
	if e.opts.FirstDepositBonusSpins <= 0 {
		return nil
	}
	flipped, err := tx.MarkFirstDepositBonus(ctx, userID)
	if err != nil {
		return consumption.Wrap(ErrContextFailedToMarkBonus, err)
	}
	if !flipped {
		return nil
	}
	if _, err := tx.CreditSpins(ctx, userID, e.opts.FirstDepositBonusSpins); err != nil {
		return consumption.Wrap(ErrContextFailedToCreditSpins, err)
	}
	result.BonusSpins = e.opts.FirstDepositBonusSpins
	return consumption.Append(ctx, tx, userID, domain.LedgerKindFirstDepositBonus, nil,
		fmt.Sprintf("first deposit bonus: %d spin(s)", e.opts.FirstDepositBonusSpins))
}

// ClaimMission grants a tier's spins if the user is under the tier's cap.
// The cap check, increment and spin credit share one transaction, and the
// increment is conditional on claims_used < max, so concurrent claims cannot
// both take the last slot.
func (e *Evaluator) ClaimMission(ctx context.Context, userID string, tierID int) (*domain.MissionClaimResult, error) {
	if err := consumption.ValidateUserID(userID); err != nil {
		return nil, err
	}
	tier, err := e.store.GetDepositTier(ctx, tierID)
	if err != nil {
		return nil, consumption.Wrap(ErrContextFailedToGetTier, err)
	}
	if tier == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrMissionNotFound, tierID)
	}
	if !tier.Active {
		return nil, fmt.Errorf("%w: tier %d is inactive", domain.ErrMissionNotAvailable, tierID)
	}

	log := logger.FromContext(ctx)
	now := e.now()
	result := &domain.MissionClaimResult{UserID: userID, TierID: tier.ID, SpinsGranted: tier.SpinsGranted}

	err = e.unit.Run(ctx, func(tx repository.RewardTx) error {
		if err := tx.EnsureAccount(ctx, userID); err != nil {
			return consumption.Wrap(ErrContextFailedToEnsureUser, err)
		}
		used, ok, err := tx.IncrementMissionClaim(ctx, userID, tier.ID, tier.MaxClaimsPerUser, now)
		if err != nil {
			return consumption.Wrap(ErrContextFailedToClaimMission, err)
		}
		if !ok {
			return fmt.Errorf("%w: tier %d cap %d reached", domain.ErrMissionNotAvailable, tier.ID, tier.MaxClaimsPerUser)
		}
		result.RemainingClaims = tier.MaxClaimsPerUser - used

		total, err := tx.CreditSpins(ctx, userID, tier.SpinsGranted)
		if err != nil {
			return consumption.Wrap(ErrContextFailedToCreditSpins, err)
		}
		result.AvailableSpins = total

		return consumption.Append(ctx, tx, userID, domain.LedgerKindMissionSpin, nil,
			fmt.Sprintf("tier %d: %d spin(s), claim %d/%d", tier.ID, tier.SpinsGranted, used, tier.MaxClaimsPerUser))
	})
	if err != nil {
		if consumption.IsRejection(err) {
			log.Info(LogMsgMissionRejected, "userID", userID, "tierID", tierID, "reason", err)
		}
		return nil, err
	}

	log.Info(LogMsgMissionClaimed, "userID", userID, "tierID", tierID, "spins", tier.SpinsGranted)
	return result, nil
}

// ClaimDailyLogin grants the daily login spins at most once per UTC day.
func (e *Evaluator) ClaimDailyLogin(ctx context.Context, userID string) (*domain.DailyLoginResult, error) {
	if err := consumption.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if e.opts.DailyLoginSpins <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissionNotAvailable, ErrMsgDailyLoginDisabled)
	}

	now := e.now().UTC()
	dayStart := StartOfDay(now)
	result := &domain.DailyLoginResult{UserID: userID, SpinsGranted: e.opts.DailyLoginSpins, ClaimedAt: now}

	err := e.unit.Run(ctx, func(tx repository.RewardTx) error {
		total, ok, err := tx.ClaimDailyLogin(ctx, userID, dayStart, now, e.opts.DailyLoginSpins)
		if err != nil {
			return consumption.Wrap(ErrContextFailedToClaimLogin, err)
		}
		if !ok {
			return domain.ErrDailyLoginClaimed
		}
		result.AvailableSpins = total
		return consumption.Append(ctx, tx, userID, domain.LedgerKindDailyLoginSpin, nil,
			fmt.Sprintf("daily login %s: %d spin(s)", dayStart.Format(time.DateOnly), e.opts.DailyLoginSpins))
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgDailyLoginClaimed, "userID", userID, "spins", e.opts.DailyLoginSpins)
	return result, nil
}

// Progress lists the user's mission progress rows without creating any.
func (e *Evaluator) Progress(ctx context.Context, userID string) ([]domain.MissionProgress, error) {
	if err := consumption.ValidateUserID(userID); err != nil {
		return nil, err
	}
	progress, err := e.store.GetMissionProgress(ctx, userID)
	if err != nil {
		return nil, consumption.Wrap(ErrContextFailedToGetProgress, err)
	}
	return progress, nil
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
