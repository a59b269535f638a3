package services

import (
	"context"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
)

// EventBus publishes the events pulled from an aggregate.
type EventBus interface {
	Publish(ctx context.Context, events []domain.DomainEvent) error
}

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Balance     BalanceSvcFacade
	Transaction TransactionSvcFacade
	Category    CategorySvcFacade
	User        UserSvcFacade
	Token       TokenSvcFacade
}
