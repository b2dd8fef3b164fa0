package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking. They are published only after the owning transaction
// has committed.
//
// Event types follow the pattern: <entity>.<action> (e.g., "spin.completed")
const (
	// EventTypeSpinCompleted is published after a spin commits
	EventTypeSpinCompleted = "spin.completed"

	// EventTypeWordClaimed is published after a word bonus is paid
	EventTypeWordClaimed = "word.claimed"

	// EventTypeDepositProcessed is published after a deposit is credited
	EventTypeDepositProcessed = "deposit.processed"

	// EventTypeMissionClaimed is published after a deposit-tier mission is claimed
	EventTypeMissionClaimed = "mission.claimed"

	// EventTypeDailyLoginClaimed is published after the daily login spins are granted
	EventTypeDailyLoginClaimed = "daily_login.claimed"

	// EventTypeRequestRejected is published when an engine operation is refused
	EventTypeRequestRejected = "request.rejected"
)
