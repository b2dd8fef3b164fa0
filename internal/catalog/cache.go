// Package catalog is a read-through cache over global reward configuration.
package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/metrics"
	"github.com/osse101/LetterSpin_Go/internal/repository"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// Cache keys and metric kinds
const (
	KeySlots = "slots"
	KeyWords = "words"
	KeyTiers = "tiers"
)

// Defaults used when the configured size or TTL is not positive
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 30 * time.Second
)

type cachedEntry struct {
	Version  string
	Slots    []domain.RewardSlot
	Words    []domain.WordDefinition
	Tiers    []domain.DepositTier
	CachedAt time.Time
}

// Catalog serves active slots, words and tiers from a TTL cache and passes
// single-record lookups straight to the store. Claims always read the current
// word or tier; only the listings may be up to one TTL stale.
type Catalog struct {
	store repository.Catalog
	lru   *expirable.LRU[string, *cachedEntry]
}

// New creates a catalog cache with the specified size and TTL.
func New(store repository.Catalog, size int, ttl time.Duration) *Catalog {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Catalog{
		store: store,
		lru:   expirable.NewLRU[string, *cachedEntry](size, nil, ttl),
	}
}

func (c *Catalog) get(key string) (*cachedEntry, bool) {
	entry, found := c.lru.Get(key)
	if found && entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		found = false
	}
	result := metrics.ResultMiss
	if found {
		result = metrics.ResultHit
	}
	metrics.CatalogCacheLookups.WithLabelValues(key, result).Inc()
	return entry, found
}

func (c *Catalog) set(key string, entry *cachedEntry) {
	entry.Version = CacheSchemaVersion
	entry.CachedAt = time.Now()
	c.lru.Add(key, entry)
}

// GetActiveRewardSlots returns the active slots in stable order.
func (c *Catalog) GetActiveRewardSlots(ctx context.Context) ([]domain.RewardSlot, error) {
	if entry, ok := c.get(KeySlots); ok {
		return append([]domain.RewardSlot(nil), entry.Slots...), nil
	}
	slots, err := c.store.GetActiveRewardSlots(ctx)
	if err != nil {
		return nil, err
	}
	c.set(KeySlots, &cachedEntry{Slots: slots})
	return append([]domain.RewardSlot(nil), slots...), nil
}

// GetActiveWords returns the active word definitions.
func (c *Catalog) GetActiveWords(ctx context.Context) ([]domain.WordDefinition, error) {
	if entry, ok := c.get(KeyWords); ok {
		return copyWords(entry.Words), nil
	}
	words, err := c.store.GetActiveWords(ctx)
	if err != nil {
		return nil, err
	}
	c.set(KeyWords, &cachedEntry{Words: words})
	return copyWords(words), nil
}

// GetActiveDepositTiers returns the active deposit tiers.
func (c *Catalog) GetActiveDepositTiers(ctx context.Context) ([]domain.DepositTier, error) {
	if entry, ok := c.get(KeyTiers); ok {
		return append([]domain.DepositTier(nil), entry.Tiers...), nil
	}
	tiers, err := c.store.GetActiveDepositTiers(ctx)
	if err != nil {
		return nil, err
	}
	c.set(KeyTiers, &cachedEntry{Tiers: tiers})
	return append([]domain.DepositTier(nil), tiers...), nil
}

// GetWord reads one word from the store, bypassing the cache.
func (c *Catalog) GetWord(ctx context.Context, wordID int) (*domain.WordDefinition, error) {
	return c.store.GetWord(ctx, wordID)
}

// GetDepositTier reads one tier from the store, bypassing the cache.
func (c *Catalog) GetDepositTier(ctx context.Context, tierID int) (*domain.DepositTier, error) {
	return c.store.GetDepositTier(ctx, tierID)
}

// Invalidate drops every cached listing.
func (c *Catalog) Invalidate() {
	c.lru.Purge()
}

func copyWords(words []domain.WordDefinition) []domain.WordDefinition {
	out := make([]domain.WordDefinition, len(words))
	for i, w := range words {
		req := make(domain.LetterCounts, len(w.RequiredLetters))
		for l, n := range w.RequiredLetters {
			req[l] = n
		}
		w.RequiredLetters = req
		out[i] = w
	}
	return out
}
