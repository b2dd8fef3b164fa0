// Package selector picks one reward slot from a weighted list.
package selector

import (
	"fmt"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/utils"
)

// Selector performs weighted random selection over reward slots.
type Selector struct {
	rng utils.RandomIntFunc // Injectable for testing
}

// New returns a Selector backed by crypto/rand.
func New() *Selector {
	return &Selector{rng: utils.SecureRandomInt}
}

// NewWithRandom returns a Selector that draws from rng.
func NewWithRandom(rng utils.RandomIntFunc) *Selector {
	if rng == nil {
		rng = utils.SecureRandomInt
	}
	return &Selector{rng: rng}
}

// TotalWeight sums the weights, counting negative weights as zero.
func TotalWeight(slots []domain.RewardSlot) int {
	total := 0
	for _, s := range slots {
		if s.Weight > 0 {
			total += s.Weight
		}
	}
	return total
}

// Select draws r uniformly from [1, total] and returns the first slot whose
// cumulative weight reaches r. Slot order must be stable between calls.
func (s *Selector) Select(slots []domain.RewardSlot) (domain.RewardSlot, error) {
	if len(slots) == 0 {
		return domain.RewardSlot{}, domain.ErrNoActiveSlots
	}

	total := TotalWeight(slots)
	if total <= 0 {
		return domain.RewardSlot{}, domain.ErrInvalidTotalWeight
	}

	roll, err := s.rng(1, total)
	if err != nil {
		return domain.RewardSlot{}, fmt.Errorf("failed to draw random number: %w", err)
	}

	return pick(slots, roll)
}

func pick(slots []domain.RewardSlot, roll int) (domain.RewardSlot, error) {
	cumulative := 0
	for _, slot := range slots {
		if slot.Weight <= 0 {
			continue
		}
		cumulative += slot.Weight
		if roll <= cumulative {
			return slot, nil
		}
	}
	return domain.RewardSlot{}, fmt.Errorf("%w: roll %d exceeds total %d", domain.ErrInvalidTotalWeight, roll, cumulative)
}
