package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/LetterSpin_Go/internal/domain"
)

func (s *Store) GetActiveRewardSlots(ctx context.Context) ([]domain.RewardSlot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT slot_id, kind, payload, weight, active, sort_order
		FROM reward_slots
		WHERE active
		ORDER BY sort_order, slot_id`)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetSlots, err)
	}
	slots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RewardSlot, error) {
		var (
			slot domain.RewardSlot
			kind string
		)
		err := row.Scan(&slot.ID, &kind, &slot.Payload, &slot.Weight, &slot.Active, &slot.SortOrder)
		slot.Kind = domain.RewardKind(kind)
		return slot, err
	})
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetSlots, err)
	}
	return slots, nil
}

// GetWord returns nil for an unknown id.
func (s *Store) GetWord(ctx context.Context, wordID int) (*domain.WordDefinition, error) {
	var w domain.WordDefinition
	err := s.db.QueryRow(ctx, `
		SELECT word_id, word, reward_amount, active
		FROM word_definitions
		WHERE word_id = $1`, wordID).Scan(&w.ID, &w.Word, &w.RewardAmount, &w.Active)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storageErr(ErrMsgFailedToGetWord, err)
	}

	letters, err := s.wordLetters(ctx, `WHERE word_id = $1`, wordID)
	if err != nil {
		return nil, err
	}
	w.RequiredLetters = letters[w.ID]
	if w.RequiredLetters == nil {
		w.RequiredLetters = domain.LetterCounts{}
	}
	return &w, nil
}

func (s *Store) GetActiveWords(ctx context.Context) ([]domain.WordDefinition, error) {
	rows, err := s.db.Query(ctx, `
		SELECT word_id, word, reward_amount, active
		FROM word_definitions
		WHERE active
		ORDER BY word_id`)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetWords, err)
	}
	words, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WordDefinition, error) {
		var w domain.WordDefinition
		err := row.Scan(&w.ID, &w.Word, &w.RewardAmount, &w.Active)
		return w, err
	})
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetWords, err)
	}

	letters, err := s.wordLetters(ctx, `WHERE word_id IN (SELECT word_id FROM word_definitions WHERE active)`)
	if err != nil {
		return nil, err
	}
	for i := range words {
		words[i].RequiredLetters = letters[words[i].ID]
		if words[i].RequiredLetters == nil {
			words[i].RequiredLetters = domain.LetterCounts{}
		}
	}
	return words, nil
}

// wordLetters loads required letters grouped by word id.
func (s *Store) wordLetters(ctx context.Context, where string, args ...any) (map[int]domain.LetterCounts, error) {
	rows, err := s.db.Query(ctx, `SELECT word_id, letter, required_count FROM word_letters `+where, args...)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetLetters, err)
	}
	defer rows.Close()

	out := make(map[int]domain.LetterCounts)
	for rows.Next() {
		var (
			wordID int
			letter string
			count  int
		)
		if err := rows.Scan(&wordID, &letter, &count); err != nil {
			return nil, storageErr(ErrMsgFailedToGetLetters, err)
		}
		if out[wordID] == nil {
			out[wordID] = make(domain.LetterCounts)
		}
		out[wordID][letter] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(ErrMsgFailedToGetLetters, err)
	}
	return out, nil
}

const tierColumns = `tier_id, name, min_amount, max_amount, spins_granted, max_claims_per_user, active`

func scanTier(row pgx.Row) (domain.DepositTier, error) {
	var (
		t         domain.DepositTier
		maxAmount decimal.NullDecimal
	)
	err := row.Scan(&t.ID, &t.Name, &t.MinAmount, &maxAmount, &t.SpinsGranted, &t.MaxClaimsPerUser, &t.Active)
	t.MaxAmount = ptrDecimal(maxAmount)
	return t, err
}

// GetDepositTier returns nil for an unknown id.
func (s *Store) GetDepositTier(ctx context.Context, tierID int) (*domain.DepositTier, error) {
	t, err := scanTier(s.db.QueryRow(ctx, `SELECT `+tierColumns+` FROM deposit_tiers WHERE tier_id = $1`, tierID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storageErr(ErrMsgFailedToGetTier, err)
	}
	return &t, nil
}

func (s *Store) GetActiveDepositTiers(ctx context.Context) ([]domain.DepositTier, error) {
	rows, err := s.db.Query(ctx, `SELECT `+tierColumns+` FROM deposit_tiers WHERE active ORDER BY min_amount, tier_id`)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetTiers, err)
	}
	tiers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DepositTier, error) {
		return scanTier(row)
	})
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetTiers, err)
	}
	return tiers, nil
}

// SaveRewardSlot inserts when slot.ID is 0 and upserts otherwise.
func (s *Store) SaveRewardSlot(ctx context.Context, slot *domain.RewardSlot) error {
	var err error
	if slot.ID == 0 {
		err = s.db.QueryRow(ctx, `
			INSERT INTO reward_slots (kind, payload, weight, active, sort_order)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING slot_id`,
			string(slot.Kind), slot.Payload, slot.Weight, slot.Active, slot.SortOrder).Scan(&slot.ID)
	} else {
		_, err = s.db.Exec(ctx, `
			INSERT INTO reward_slots (slot_id, kind, payload, weight, active, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (slot_id) DO UPDATE
			SET kind = EXCLUDED.kind, payload = EXCLUDED.payload, weight = EXCLUDED.weight,
			    active = EXCLUDED.active, sort_order = EXCLUDED.sort_order`,
			slot.ID, string(slot.Kind), slot.Payload, slot.Weight, slot.Active, slot.SortOrder)
	}
	if err != nil {
		return storageErr(ErrMsgFailedToSaveSlot, err)
	}
	return nil
}

// SaveWord writes the word and replaces its letter rows in one transaction.
func (s *Store) SaveWord(ctx context.Context, word *domain.WordDefinition) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return storageErr(ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if word.ID == 0 {
		err = tx.QueryRow(ctx, `
			INSERT INTO word_definitions (word, reward_amount, active)
			VALUES ($1, $2, $3)
			RETURNING word_id`, word.Word, word.RewardAmount, word.Active).Scan(&word.ID)
	} else {
		_, err = tx.Exec(ctx, `
			INSERT INTO word_definitions (word_id, word, reward_amount, active)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (word_id) DO UPDATE
			SET word = EXCLUDED.word, reward_amount = EXCLUDED.reward_amount, active = EXCLUDED.active`,
			word.ID, word.Word, word.RewardAmount, word.Active)
	}
	if err != nil {
		return storageErr(ErrMsgFailedToSaveWord, err)
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM word_letters WHERE word_id = $1`, word.ID)
	for _, letter := range word.RequiredLetters.Letters() {
		batch.Queue(`INSERT INTO word_letters (word_id, letter, required_count) VALUES ($1, $2, $3)`,
			word.ID, letter, word.RequiredLetters[letter])
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return storageErr(ErrMsgFailedToSaveWord, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr(ErrMsgFailedToCommit, err)
	}
	return nil
}

// SaveDepositTier inserts when tier.ID is 0 and upserts otherwise.
func (s *Store) SaveDepositTier(ctx context.Context, tier *domain.DepositTier) error {
	var err error
	if tier.ID == 0 {
		err = s.db.QueryRow(ctx, `
			INSERT INTO deposit_tiers (name, min_amount, max_amount, spins_granted, max_claims_per_user, active)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING tier_id`,
			tier.Name, tier.MinAmount, nullDecimal(tier.MaxAmount), tier.SpinsGranted, tier.MaxClaimsPerUser, tier.Active).Scan(&tier.ID)
	} else {
		_, err = s.db.Exec(ctx, `
			INSERT INTO deposit_tiers (tier_id, name, min_amount, max_amount, spins_granted, max_claims_per_user, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (tier_id) DO UPDATE
			SET name = EXCLUDED.name, min_amount = EXCLUDED.min_amount, max_amount = EXCLUDED.max_amount,
			    spins_granted = EXCLUDED.spins_granted, max_claims_per_user = EXCLUDED.max_claims_per_user,
			    active = EXCLUDED.active`,
			tier.ID, tier.Name, tier.MinAmount, nullDecimal(tier.MaxAmount), tier.SpinsGranted, tier.MaxClaimsPerUser, tier.Active)
	}
	if err != nil {
		return storageErr(ErrMsgFailedToSaveTier, err)
	}
	return nil
}
