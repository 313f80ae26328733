package postgres

import (
	"context"
	"fmt"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.AuditLog) error {
	query := `INSERT INTO audit_logs (id, transaction_id, event_type, event_data, user_id, client_ip, user_agent, timestamp)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	args := []any{a.ID, a.TransactionID, a.EventType, a.EventData, a.UserID, a.ClientIP, a.UserAgent, a.Timestamp}

	var err error
	if tx != nil {
		_, err = tx.Exec(ctx, query, args...)
	} else {
		_, err = r.pool.Exec(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]domain.AuditLog, error) {
	query := `SELECT id, transaction_id, event_type, event_data, user_id, client_ip, user_agent, timestamp
		FROM audit_logs WHERE transaction_id = $1 ORDER BY timestamp ASC`

	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var a domain.AuditLog
		if err := rows.Scan(&a.ID, &a.TransactionID, &a.EventType, &a.EventData, &a.UserID, &a.ClientIP, &a.UserAgent, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, a)
	}
	return logs, rows.Err()
}
