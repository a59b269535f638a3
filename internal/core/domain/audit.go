package domain

import "time"

// AuditEntry is the stored trace of one domain event.
type AuditEntry struct {
	EventID     string
	EventName   string
	AggregateID string
	OccurredOn  time.Time
	Payload     map[string]any
}

func NewAuditEntry(e DomainEvent) AuditEntry {
	return AuditEntry{
		EventID:     e.EventID(),
		EventName:   e.EventName(),
		AggregateID: e.AggregateID(),
		OccurredOn:  e.OccurredOn(),
		Payload:     e.ToPrimitives(),
	}
}
