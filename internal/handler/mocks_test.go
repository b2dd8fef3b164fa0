package handler

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/LetterSpin_Go/internal/admin"
	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/engine"
)

// MockEngineService mocks engine.Service
type MockEngineService struct {
	mock.Mock
}

var _ engine.Service = (*MockEngineService)(nil)

// NewMockEngineService creates a mock that asserts its expectations on cleanup
func NewMockEngineService(t *testing.T) *MockEngineService {
	m := &MockEngineService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEngineService) Spin(ctx context.Context, userID string) (*domain.SpinResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinResult), args.Error(1)
}

func (m *MockEngineService) ClaimWordBonus(ctx context.Context, userID string, wordID int) (*domain.WordClaimResult, error) {
	args := m.Called(ctx, userID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WordClaimResult), args.Error(1)
}

func (m *MockEngineService) CanClaimWord(ctx context.Context, userID string, wordID int) (bool, error) {
	args := m.Called(ctx, userID, wordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngineService) ProcessDeposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.DepositResult, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositResult), args.Error(1)
}

func (m *MockEngineService) ClaimMission(ctx context.Context, userID string, tierID int) (*domain.MissionClaimResult, error) {
	args := m.Called(ctx, userID, tierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MissionClaimResult), args.Error(1)
}

func (m *MockEngineService) ClaimDailyLogin(ctx context.Context, userID string) (*domain.DailyLoginResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyLoginResult), args.Error(1)
}

func (m *MockEngineService) GetAccountSummary(ctx context.Context, userID string) (*domain.AccountSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}

func (m *MockEngineService) GetLedger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEngineService) ListWords(ctx context.Context) ([]domain.WordDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordDefinition), args.Error(1)
}

func (m *MockEngineService) ListDepositTiers(ctx context.Context) ([]domain.DepositTier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepositTier), args.Error(1)
}

// MockAdminService mocks admin.Service
type MockAdminService struct {
	mock.Mock
}

var _ admin.Service = (*MockAdminService)(nil)

func (m *MockAdminService) SaveSlot(ctx context.Context, in admin.SlotInput) (*domain.RewardSlot, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardSlot), args.Error(1)
}

func (m *MockAdminService) SaveWord(ctx context.Context, in admin.WordInput) (*domain.WordDefinition, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WordDefinition), args.Error(1)
}

func (m *MockAdminService) SaveTier(ctx context.Context, in admin.TierInput) (*domain.DepositTier, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositTier), args.Error(1)
}
