package subscribers

import (
	"context"
	"fmt"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
)

// EventForwarder republishes every transaction event to a message broker,
// routed by event name.
type EventForwarder struct {
	publisher portsrepo.EventPublisher
	exchange  string
}

func NewEventForwarder(publisher portsrepo.EventPublisher, exchange string) *EventForwarder {
	return &EventForwarder{publisher: publisher, exchange: exchange}
}

func (s *EventForwarder) Name() string { return "event_forwarder" }

func (s *EventForwarder) SubscribedTo() []string {
	return domain.TransactionEventNames
}

func (s *EventForwarder) Handle(ctx context.Context, event domain.DomainEvent) error {
	if err := s.publisher.Publish(ctx, s.exchange, event.EventName(), event.ToPrimitives()); err != nil {
		return fmt.Errorf("forward %s %s: %w", event.EventName(), event.EventID(), err)
	}
	return nil
}

// AuditRecorder keeps an append-only trail of every transaction event.
type AuditRecorder struct {
	repo portsrepo.AuditRepository
}

func NewAuditRecorder(repo portsrepo.AuditRepository) *AuditRecorder {
	return &AuditRecorder{repo: repo}
}

func (s *AuditRecorder) Name() string { return "audit_recorder" }

func (s *AuditRecorder) SubscribedTo() []string {
	return domain.TransactionEventNames
}

func (s *AuditRecorder) Handle(ctx context.Context, event domain.DomainEvent) error {
	return s.repo.Save(ctx, domain.NewAuditEntry(event))
}
