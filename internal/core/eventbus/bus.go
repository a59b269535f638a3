// Package eventbus delivers domain events to the subscribers registered for them.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/sourcegraph/conc/pool"
)

// Subscriber reacts to the events it declares interest in.
type Subscriber interface {
	Name() string
	SubscribedTo() []string
	Handle(ctx context.Context, event domain.DomainEvent) error
}

// InMemoryBus dispatches events in-process. The subscriber index is built once
// at construction and never changes afterwards.
type InMemoryBus struct {
	logger      *slog.Logger
	subscribers map[string][]Subscriber
}

// NewInMemoryBus indexes the given subscribers by the event names they handle.
func NewInMemoryBus(logger *slog.Logger, subscribers ...Subscriber) *InMemoryBus {
	if logger == nil {
		logger = slog.Default()
	}
	index := make(map[string][]Subscriber)
	for _, s := range subscribers {
		for _, name := range s.SubscribedTo() {
			index[name] = append(index[name], s)
		}
	}
	return &InMemoryBus{logger: logger, subscribers: index}
}

// SubscribersFor returns the names of the subscribers registered for an event name.
func (b *InMemoryBus) SubscribersFor(eventName string) []string {
	subs := b.subscribers[eventName]
	names := make([]string, 0, len(subs))
	for _, s := range subs {
		names = append(names, s.Name())
	}
	return names
}

// Publish runs every (event, subscriber) pair concurrently and waits for all of
// them. Subscriber errors and panics are logged, never returned: the batch is
// considered delivered once every handler has finished. Handlers see the
// caller's context values but not its cancellation or deadline.
func (b *InMemoryBus) Publish(ctx context.Context, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	ctx = context.WithoutCancel(ctx)

	p := pool.New().WithErrors()
	for _, event := range events {
		event := event
		for _, sub := range b.subscribers[event.EventName()] {
			sub := sub
			p.Go(func() error {
				return b.deliver(ctx, sub, event)
			})
		}
	}

	if err := p.Wait(); err != nil {
		b.logger.Warn("Event batch delivered with subscriber failures",
			slog.Int("events", len(events)),
			slog.String("error", err.Error()))
	}
	return nil
}

func (b *InMemoryBus) deliver(ctx context.Context, sub Subscriber, event domain.DomainEvent) (err error) {
	logger := b.logger.With(
		slog.String("subscriber", sub.Name()),
		slog.String("event_name", event.EventName()),
		slog.String("event_id", event.EventID()),
		slog.String("aggregate_id", event.AggregateID()),
	)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber %s panicked: %v", sub.Name(), r)
			logger.Error("Subscriber panicked", slog.Any("panic", r))
		}
	}()

	if err := sub.Handle(ctx, event); err != nil {
		logger.Error("Subscriber failed to handle event", slog.String("error", err.Error()))
		return fmt.Errorf("subscriber %s: %w", sub.Name(), err)
	}
	logger.Debug("Subscriber handled event")
	return nil
}
