package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/LetterSpin_Go/internal/domain"
	"github.com/osse101/LetterSpin_Go/internal/event"
	"github.com/osse101/LetterSpin_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.EngineTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.SpinCompleted:
		err = recordSpin(evt)
	case event.WordClaimed:
		err = recordWordClaim(evt)
	case event.DepositProcessed:
		err = recordDeposit(evt)
	case event.MissionClaimed:
		err = recordMissionClaim(evt)
	case event.DailyLoginClaimed:
		err = recordDailyLogin(evt)
	case event.RequestRejected:
		err = recordRejection(evt)
	}
	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func recordSpin(evt event.Event) error {
	p, err := event.DecodePayload[domain.SpinCompletedPayload](evt.Payload)
	if err != nil {
		return err
	}
	Spins.WithLabelValues(string(p.OutcomeKind)).Inc()
	switch p.OutcomeKind {
	case domain.RewardKindCash:
		CashPaidOut.WithLabelValues(SourceSpin).Add(p.CashWon)
	case domain.RewardKindLetter:
		LettersAwarded.WithLabelValues(p.OutcomeValue).Inc()
	}
	return nil
}

func recordWordClaim(evt event.Event) error {
	p, err := event.DecodePayload[domain.WordClaimedPayload](evt.Payload)
	if err != nil {
		return err
	}
	WordClaims.WithLabelValues(p.Word).Inc()
	CashPaidOut.WithLabelValues(SourceWordBonus).Add(p.RewardAmount)
	return nil
}

func recordDeposit(evt event.Event) error {
	p, err := event.DecodePayload[domain.DepositProcessedPayload](evt.Payload)
	if err != nil {
		return err
	}
	Deposits.Inc()
	DepositAmount.Add(p.Amount)
	for _, tierID := range p.UnlockedTierIDs {
		TiersUnlocked.WithLabelValues(strconv.Itoa(tierID)).Inc()
	}
	if p.BonusSpins > 0 {
		SpinsGranted.WithLabelValues(SourceFirstDeposit).Add(float64(p.BonusSpins))
	}
	return nil
}

func recordMissionClaim(evt event.Event) error {
	p, err := event.DecodePayload[domain.MissionClaimedPayload](evt.Payload)
	if err != nil {
		return err
	}
	MissionClaims.WithLabelValues(strconv.Itoa(p.TierID)).Inc()
	SpinsGranted.WithLabelValues(SourceMission).Add(float64(p.SpinsGranted))
	return nil
}

func recordDailyLogin(evt event.Event) error {
	p, err := event.DecodePayload[domain.DailyLoginClaimedPayload](evt.Payload)
	if err != nil {
		return err
	}
	DailyLogins.Inc()
	SpinsGranted.WithLabelValues(SourceDailyLogin).Add(float64(p.SpinsGranted))
	return nil
}

func recordRejection(evt event.Event) error {
	p, err := event.DecodePayload[domain.RequestRejectedPayload](evt.Payload)
	if err != nil {
		return err
	}
	Rejections.WithLabelValues(p.Operation, string(p.Class)).Inc()
	return nil
}
