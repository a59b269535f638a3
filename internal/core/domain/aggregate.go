package domain

// AggregateRoot queues domain events until they are pulled for publishing.
type AggregateRoot struct {
	events []DomainEvent
}

func (r *AggregateRoot) record(e DomainEvent) {
	r.events = append(r.events, e)
}

// PullDomainEvents returns the queued events and clears the queue.
func (r *AggregateRoot) PullDomainEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}
