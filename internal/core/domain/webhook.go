package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxWebhookRetries bounds how many times the retry scheduler re-attempts
// an unprocessed WebhookEvent before it is considered dead-lettered.
const MaxWebhookRetries = 5

// WebhookRetrySchedule gives the delay, in seconds, before the Nth retry
// (index = current retry_count) is eligible. Past the end of the table the
// last entry is reused.
var WebhookRetrySchedule = [...]time.Duration{
	60 * time.Second,
	300 * time.Second,
	900 * time.Second,
	3600 * time.Second,
	21600 * time.Second,
}

// RetryIntervalFor returns the eligible-after duration for a given
// retry_count, clamping to the last schedule entry beyond its length.
func RetryIntervalFor(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	if retryCount >= len(WebhookRetrySchedule) {
		return WebhookRetrySchedule[len(WebhookRetrySchedule)-1]
	}
	return WebhookRetrySchedule[retryCount]
}

// WebhookEvent is a received upstream notification awaiting (or having
// completed) processing. Once Processed is true, ProcessedAt is set and
// no further mutation occurs.
type WebhookEvent struct {
	ID            uuid.UUID  `json:"id"`
	TransactionID *uuid.UUID `json:"transaction_id,omitempty"`
	Provider      string     `json:"provider"`
	EventType     string     `json:"event_type,omitempty"`
	Payload       []byte     `json:"payload"` // raw, opaque JSON
	Signature     *string    `json:"-"`
	Verified      bool       `json:"verified"`
	Processed     bool       `json:"processed"`
	RetryCount    int        `json:"retry_count"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

// DueAt returns the instant at which this event becomes eligible for its
// next retry attempt.
func (e *WebhookEvent) DueAt() time.Time {
	return e.CreatedAt.Add(RetryIntervalFor(e.RetryCount))
}

// DeadLettered reports whether the event has exhausted its retry budget.
func (e *WebhookEvent) DeadLettered() bool {
	return !e.Processed && e.RetryCount >= MaxWebhookRetries
}
