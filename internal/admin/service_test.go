package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/memstore"
)

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate() {
	m.Called()
}

func TestSaveSlot(t *testing.T) {
	tests := []struct {
		name    string
		in      SlotInput
		wantErr bool
		payload string
	}{
		{name: "cash", in: SlotInput{Kind: "CASH", Payload: "1.5", Weight: 10, Active: true}, payload: "1.50"},
		{name: "letter", in: SlotInput{Kind: "LETTER", Payload: "Q", Weight: 1, Active: true}, payload: "Q"},
		{name: "zero weight", in: SlotInput{Kind: "CASH", Payload: "1", Weight: 0}, wantErr: true},
		{name: "empty payload", in: SlotInput{Kind: "CASH", Payload: "", Weight: 1}, wantErr: true},
		{name: "negative cash", in: SlotInput{Kind: "CASH", Payload: "-1", Weight: 1}, wantErr: true},
		{name: "bad cash", in: SlotInput{Kind: "CASH", Payload: "abc", Weight: 1}, wantErr: true},
		{name: "lowercase letter", in: SlotInput{Kind: "LETTER", Payload: "q", Weight: 1}, wantErr: true},
		{name: "two letters", in: SlotInput{Kind: "LETTER", Payload: "AB", Weight: 1}, wantErr: true},
		{name: "unknown kind", in: SlotInput{Kind: "ITEM", Payload: "x", Weight: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := new(mockInvalidator)
			if !tt.wantErr {
				cache.On("Invalidate").Once()
			}
			svc := NewService(memstore.NewStore(), cache)

			slot, err := svc.SaveSlot(context.Background(), tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUserInput)
				cache.AssertNotCalled(t, "Invalidate")
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, slot.ID)
			assert.Equal(t, tt.payload, slot.Payload)
			cache.AssertExpectations(t)
		})
	}
}

func TestSaveWord_DerivesLetters(t *testing.T) {
	store := memstore.NewStore()
	svc := NewService(store, nil)

	def, err := svc.SaveWord(context.Background(), WordInput{Word: "hello", RewardAmount: "5", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "HELLO", def.Word)
	assert.Equal(t, domain.LetterCounts{"H": 1, "E": 1, "L": 2, "O": 1}, def.RequiredLetters)
	assert.True(t, def.RewardAmount.Equal(decimal.NewFromInt(5)))

	stored, err := store.GetWord(context.Background(), def.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, def.RequiredLetters, stored.RequiredLetters)
}

func TestSaveWord_Validation(t *testing.T) {
	svc := NewService(memstore.NewStore(), nil)
	ctx := context.Background()

	_, err := svc.SaveWord(ctx, WordInput{Word: "AB", RewardAmount: "0"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SaveWord(ctx, WordInput{Word: "A1", RewardAmount: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SaveWord(ctx, WordInput{Word: "AB", RewardAmount: "99999999999999999"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SaveWord(ctx, WordInput{Word: "AB", RequiredLetters: map[string]int{"A": 0}, RewardAmount: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	def, err := svc.SaveWord(ctx, WordInput{Word: "AB", RequiredLetters: map[string]int{"a": 2, "B": 1}, RewardAmount: "1"})
	require.NoError(t, err)
	assert.Equal(t, domain.LetterCounts{"A": 2, "B": 1}, def.RequiredLetters)
}

func TestSaveTier(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memstore.NewStore(), nil)

	tier, err := svc.SaveTier(ctx, TierInput{Name: "Gold", MinAmount: "200", SpinsGranted: 2, MaxClaimsPerUser: 1, Active: true})
	require.NoError(t, err)
	assert.Nil(t, tier.MaxAmount)

	tier, err = svc.SaveTier(ctx, TierInput{Name: "  low roller ", MinAmount: "50", MaxAmount: "99.99", SpinsGranted: 1, MaxClaimsPerUser: 1})
	require.NoError(t, err)
	require.NotNil(t, tier.MaxAmount)
	assert.Equal(t, "99.99", tier.MaxAmount.StringFixed(2))
	assert.Equal(t, "Low Roller", tier.Name)

	_, err = svc.SaveTier(ctx, TierInput{Name: "Bad", MinAmount: "0", SpinsGranted: 1, MaxClaimsPerUser: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SaveTier(ctx, TierInput{Name: "Bad", MinAmount: "100", MaxAmount: "50", SpinsGranted: 1, MaxClaimsPerUser: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SaveTier(ctx, TierInput{Name: "Bad", MinAmount: "10", SpinsGranted: 0, MaxClaimsPerUser: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SaveTier(ctx, TierInput{Name: "Huge", MinAmount: "10", MaxAmount: "1e16", SpinsGranted: 1, MaxClaimsPerUser: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrMsgAmountOverLimit)
}

type failingStore struct {
	*memstore.Store
}

func (f failingStore) SaveDepositTier(ctx context.Context, tier *domain.DepositTier) error {
	return errors.New("disk full")
}

func TestSaveTier_StoreFailureKeepsCache(t *testing.T) {
	cache := new(mockInvalidator)
	svc := NewService(failingStore{memstore.NewStore()}, cache)

	_, err := svc.SaveTier(context.Background(), TierInput{Name: "x", MinAmount: "1", SpinsGranted: 1, MaxClaimsPerUser: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextFailedToSaveTier)
	cache.AssertNotCalled(t, "Invalidate")
}
