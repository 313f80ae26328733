package service

import (
	"context"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultAuditService implements ports.AuditService over an AuditRepository.
type DefaultAuditService struct {
	repo ports.AuditRepository
}

// NewDefaultAuditService creates a new audit service.
func NewDefaultAuditService(repo ports.AuditRepository) *DefaultAuditService {
	return &DefaultAuditService{repo: repo}
}

// Log writes an AuditLog row. When tx is non-nil, the write is part of the
// caller's transaction (a state-change and its audit trail commit or roll
// back together, per the gateway's ordering guarantee). When tx is nil the
// write is its own standalone statement, used by the payment service for
// events that change no state (refund initiated/failed, verification failed).
func (s *DefaultAuditService) Log(ctx context.Context, tx pgx.Tx, entry *domain.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return s.repo.Create(ctx, tx, entry)
}
