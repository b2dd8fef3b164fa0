package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/validation"
)

//go:embed seed.schema.json
var seedSchema []byte

// seedFile is the on-disk catalog layout. Active defaults to true.
type seedFile struct {
	Slots []struct {
		domain.RewardSlot
		Active *bool `json:"active"`
	} `json:"slots"`
	Words []struct {
		domain.WordDefinition
		Active *bool `json:"active"`
	} `json:"words"`
	Tiers []struct {
		domain.DepositTier
		Active *bool `json:"active"`
	} `json:"tiers"`
}

// LoadSeedFile reads a catalog from a JSON file after validating it against
// the embedded seed schema. Words without explicit letters require the
// letters that spell them.
func LoadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed validates and decodes a JSON catalog.
func ParseSeed(data []byte) (Seed, error) {
	v, err := validation.NewSchemaValidator("seed.schema.json", seedSchema)
	if err != nil {
		return Seed{}, err
	}
	if err := v.ValidateBytes(data); err != nil {
		return Seed{}, fmt.Errorf("invalid catalog seed: %w", err)
	}

	var file seedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Seed{}, fmt.Errorf("failed to decode catalog seed: %w", err)
	}

	var seed Seed
	for _, s := range file.Slots {
		slot := s.RewardSlot
		slot.Active = activeOrDefault(s.Active)
		seed.Slots = append(seed.Slots, slot)
	}
	for _, w := range file.Words {
		word := w.WordDefinition
		word.Active = activeOrDefault(w.Active)
		if len(word.RequiredLetters) == 0 {
			letters, err := domain.LettersOf(word.Word)
			if err != nil {
				return Seed{}, fmt.Errorf("word %s: %w", word.Word, err)
			}
			word.RequiredLetters = letters
		}
		seed.Words = append(seed.Words, word)
	}
	for _, t := range file.Tiers {
		tier := t.DepositTier
		tier.Active = activeOrDefault(t.Active)
		if tier.MaxAmount != nil && tier.MaxAmount.LessThan(tier.MinAmount) {
			return Seed{}, fmt.Errorf("tier %s: %w", tier.Name, domain.ErrInvalidInput)
		}
		seed.Tiers = append(seed.Tiers, tier)
	}
	return seed, nil
}

func activeOrDefault(active *bool) bool {
	return active == nil || *active
}
