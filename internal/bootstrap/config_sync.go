package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/LetterSpin_Go/internal/catalog"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

// SeedCatalog writes a starter catalog when the store has no active reward
// slots: the JSON catalog at seedFile when set, otherwise the built-in
// defaults. A store that already holds configuration, such as one seeded by
// the migrations, is left untouched. Returns whether seeding happened.
func SeedCatalog(ctx context.Context, store repository.Catalog, seedFile string) (bool, error) {
	slots, err := store.GetActiveRewardSlots(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedReadCatalog, err)
	}
	if len(slots) > 0 {
		slog.Info(LogMsgCatalogPresent, "active_slots", len(slots))
		return false, nil
	}

	seed := catalog.Defaults()
	if seedFile != "" {
		if seed, err = catalog.LoadSeedFile(seedFile); err != nil {
			return false, fmt.Errorf("%s: %w", ErrMsgFailedSeedCatalog, err)
		}
	}
	if err := seed.Apply(ctx, store); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedSeedCatalog, err)
	}

	slog.Info(LogMsgCatalogSeeded,
		"source", seedSource(seedFile),
		"slots", len(seed.Slots),
		"words", len(seed.Words),
		"tiers", len(seed.Tiers))
	return true, nil
}

func seedSource(seedFile string) string {
	if seedFile == "" {
		return "defaults"
	}
	return seedFile
}
