package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the canonical payment-status vocabulary every
// adapter's upstream codes are normalised into.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"
	TransactionStatusRefunded   TransactionStatus = "refunded"
)

// legalTransitions is the DAG of permitted status changes. Anything not
// listed here is an InvariantViolation.
var legalTransitions = map[TransactionStatus]map[TransactionStatus]bool{
	TransactionStatusPending: {
		TransactionStatusProcessing: true,
		TransactionStatusFailed:     true,
	},
	TransactionStatusProcessing: {
		TransactionStatusCompleted: true,
		TransactionStatusFailed:    true,
	},
	TransactionStatusCompleted: {
		TransactionStatusRefunded: true,
	},
}

// CanTransition reports whether moving from `from` to `to` is legal.
func CanTransition(from, to TransactionStatus) bool {
	if from == to {
		return false
	}
	next, ok := legalTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// IsTerminal reports whether a status accepts no further transitions
// except the COMPLETED -> REFUNDED edge.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusRefunded
}

// Customer holds the optional customer fields attached to a Transaction.
type Customer struct {
	ID    string `json:"id,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Transaction is the canonical payment record.
type Transaction struct {
	ID                    uuid.UUID         `json:"id"`
	IdempotencyKey        string            `json:"idempotency_key"`
	MerchantID            uuid.UUID         `json:"merchant_id"`
	Provider              string            `json:"provider"`
	ProviderTransactionID *string           `json:"provider_transaction_id,omitempty"`
	ProviderResponse      []byte            `json:"provider_response,omitempty"`
	AmountCents           int64             `json:"-"` // fixed-point, 2 decimals, stored as integer cents
	Currency              string            `json:"currency"`
	Status                TransactionStatus `json:"status"`
	Customer              Customer          `json:"customer"`
	PaymentMethod         string            `json:"payment_method,omitempty"`
	Metadata              []byte            `json:"metadata,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
	CompletedAt           *time.Time        `json:"completed_at,omitempty"`
}

// Amount returns the transaction amount as a decimal string with exactly
// two fractional digits, e.g. "50.00".
func (t *Transaction) Amount() string {
	return FormatAmountCents(t.AmountCents)
}

var amountRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ParseAmountCents parses a decimal amount string (at most two fractional
// digits, per §6's canonical request) into integer cents. Rejects
// negative amounts, more than two fractional digits, and non-numeric input.
func ParseAmountCents(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if !amountRe.MatchString(amount) {
		return 0, fmt.Errorf("amount %q is not a valid decimal with at most two fractional digits", amount)
	}
	parts := strings.SplitN(amount, ".", 2)
	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount: %w", err)
	}
	var frac int64
	if len(parts) == 2 {
		fracStr := parts[1]
		if len(fracStr) == 1 {
			fracStr += "0"
		}
		frac, err = strconv.ParseInt(fracStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing amount: %w", err)
		}
	}
	return whole*100 + frac, nil
}

// FormatAmountCents renders integer cents as a fixed two-decimal string.
func FormatAmountCents(cents int64) string {
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)
	frac := cents % 100
	fracStr := strconv.FormatInt(frac, 10)
	if frac < 10 {
		fracStr = "0" + fracStr
	}
	return neg + whole + "." + fracStr
}
