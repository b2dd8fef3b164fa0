package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/LetterSpin_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Engine event types
const (
	SpinCompleted     Type = domain.EventTypeSpinCompleted
	WordClaimed       Type = domain.EventTypeWordClaimed
	DepositProcessed  Type = domain.EventTypeDepositProcessed
	MissionClaimed    Type = domain.EventTypeMissionClaimed
	DailyLoginClaimed Type = domain.EventTypeDailyLoginClaimed
	RequestRejected   Type = domain.EventTypeRequestRejected
)

// EngineTypes lists every event type the engine publishes.
var EngineTypes = []Type{
	SpinCompleted,
	WordClaimed,
	DepositProcessed,
	MissionClaimed,
	DailyLoginClaimed,
	RequestRejected,
}

// Type-safe event constructors

// NewSpinCompletedEvent creates a spin.completed event from a committed spin
func NewSpinCompletedEvent(res *domain.SpinResult) Event {
	payload := domain.SpinCompletedPayload{
		UserID:       res.UserID,
		SlotID:       res.SlotID,
		OutcomeKind:  res.OutcomeKind,
		OutcomeValue: res.OutcomeValue,
		Timestamp:    time.Now().Unix(),
	}
	if res.CashWon != nil {
		payload.CashWon = res.CashWon.InexactFloat64()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinCompleted,
		Payload: payload,
		Metadata: map[string]interface{}{
			"remaining_spins": res.RemainingSpins,
		},
	}
}

// NewWordClaimedEvent creates a word.claimed event
func NewWordClaimedEvent(res *domain.WordClaimResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WordClaimed,
		Payload: domain.WordClaimedPayload{
			UserID:       res.UserID,
			WordID:       res.WordID,
			Word:         res.Word,
			RewardAmount: res.RewardAmount.InexactFloat64(),
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewDepositProcessedEvent creates a deposit.processed event
func NewDepositProcessedEvent(res *domain.DepositResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DepositProcessed,
		Payload: domain.DepositProcessedPayload{
			UserID:          res.UserID,
			Amount:          res.Amount.InexactFloat64(),
			UnlockedTierIDs: res.UnlockedTierIDs,
			BonusSpins:      res.BonusSpins,
			Timestamp:       time.Now().Unix(),
		},
	}
}

// NewMissionClaimedEvent creates a mission.claimed event
func NewMissionClaimedEvent(res *domain.MissionClaimResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MissionClaimed,
		Payload: domain.MissionClaimedPayload{
			UserID:       res.UserID,
			TierID:       res.TierID,
			SpinsGranted: res.SpinsGranted,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewDailyLoginClaimedEvent creates a daily_login.claimed event
func NewDailyLoginClaimedEvent(res *domain.DailyLoginResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DailyLoginClaimed,
		Payload: domain.DailyLoginClaimedPayload{
			UserID:       res.UserID,
			SpinsGranted: res.SpinsGranted,
			Timestamp:    res.ClaimedAt.Unix(),
		},
	}
}

// NewRequestRejectedEvent creates a request.rejected event for a refused operation
func NewRequestRejectedEvent(userID, operation string, err error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RequestRejected,
		Payload: domain.RequestRejectedPayload{
			UserID:    userID,
			Operation: operation,
			Class:     domain.Classify(err),
			Reason:    err.Error(),
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every handler subscribed to the event type on the calling
// goroutine. All handlers run even when some fail; a panicking handler is
// reported as a failure.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := runHandler(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(ErrMsgHandlersFailed, len(errs), event.Type, errors.Join(errs...))
	}
	return nil
}

func runHandler(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, event)
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
