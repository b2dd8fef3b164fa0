package event

import "time"

// EventSchemaVersion is stamped on every engine event
const EventSchemaVersion = "1.0"

// Retry tuning
const (
	// DefaultRetryQueueSize bounds events waiting for a retry; overflow is dead-lettered
	DefaultRetryQueueSize = 1000

	// MaxRetryDelay caps the exponential backoff
	MaxRetryDelay = 30 * time.Second
)

// DeadLetterFileMode is the permission of a newly created dead-letter file
const DeadLetterFileMode = 0o644

// Log messages
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
)

// ErrMsgHandlersFailed formats the aggregate error of a synchronous publish
const ErrMsgHandlersFailed = "%d handler(s) failed for event %s: %w"

// RetryDelay is the wait before the given retry attempt (1-based):
// base, 2*base, 4*base and so on, capped at MaxRetryDelay.
func RetryDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 32 {
		return MaxRetryDelay
	}
	d := base << (attempt - 1)
	if d <= 0 || d > MaxRetryDelay {
		return MaxRetryDelay
	}
	return d
}
