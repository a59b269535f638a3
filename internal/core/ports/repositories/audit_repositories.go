package repositories

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
)

// AuditRepository stores an append-only trail of domain events.
type AuditRepository interface {
	Save(ctx context.Context, entry domain.AuditEntry) error
}

// EventPublisher sends a message body to an exchange with a routing key.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body any) error
}
