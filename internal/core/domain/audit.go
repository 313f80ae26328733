package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit event-type constants. Dotted short names, append-only.
const (
	EventPaymentInitiated          = "payment.initiated"
	EventPaymentProcessing         = "payment.processing"
	EventPaymentCompleted          = "payment.completed"
	EventPaymentFailed             = "payment.failed"
	EventPaymentVerificationFailed = "payment.verification_failed"
	EventRefundInitiated           = "refund.initiated"
	EventRefundCompleted           = "refund.completed"
	EventRefundPending             = "refund.pending"
)

// AuditLog is an append-only record of a Transaction's lifecycle. Never
// mutated after insert.
type AuditLog struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	EventType     string    `json:"event_type"`
	EventData     []byte    `json:"event_data,omitempty"` // opaque JSON
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	ClientIP      string    `json:"client_ip,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
