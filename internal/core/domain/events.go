package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event names, matched exactly by the event bus.
const (
	TransactionCreatedEvent            = "transaction.created"
	TransactionAmountUpdatedEvent      = "transaction.amount_updated"
	TransactionDirectionUpdatedEvent   = "transaction.direction_updated"
	TransactionCategoryUpdatedEvent    = "transaction.category_updated"
	TransactionDescriptionUpdatedEvent = "transaction.description_updated"
	TransactionDateUpdatedEvent        = "transaction.date_updated"
	TransactionNotesUpdatedEvent       = "transaction.notes_updated"
	TransactionDeletedEvent            = "transaction.deleted"
)

// TransactionEventNames lists every event a Transaction can record.
var TransactionEventNames = []string{
	TransactionCreatedEvent,
	TransactionAmountUpdatedEvent,
	TransactionDirectionUpdatedEvent,
	TransactionCategoryUpdatedEvent,
	TransactionDescriptionUpdatedEvent,
	TransactionDateUpdatedEvent,
	TransactionNotesUpdatedEvent,
	TransactionDeletedEvent,
}

// DomainEvent is an immutable record of something that happened to an aggregate.
type DomainEvent interface {
	EventID() string
	EventName() string
	AggregateID() string
	OccurredOn() time.Time
	// ToPrimitives returns a JSON-friendly payload including the base fields.
	ToPrimitives() map[string]any
}

// BaseEvent holds the fields shared by every event.
type BaseEvent struct {
	eventID     string
	eventName   string
	aggregateID string
	occurredOn  time.Time
}

func newBaseEvent(name, aggregateID string) BaseEvent {
	return BaseEvent{
		eventID:     uuid.NewString(),
		eventName:   name,
		aggregateID: aggregateID,
		occurredOn:  time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.eventID }
func (e BaseEvent) EventName() string     { return e.eventName }
func (e BaseEvent) AggregateID() string   { return e.aggregateID }
func (e BaseEvent) OccurredOn() time.Time { return e.occurredOn }

func (e BaseEvent) primitives(payload map[string]any) map[string]any {
	return map[string]any{
		"eventId":     e.eventID,
		"eventName":   e.eventName,
		"aggregateId": e.aggregateID,
		"occurredOn":  formatTime(e.occurredOn),
		"attributes":  payload,
	}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

type TransactionCreated struct {
	BaseEvent
	UserID      string
	AccountID   string
	CategoryID  *string
	Amount      Money
	Direction   Direction
	Description string
	Date        time.Time
}

func (e *TransactionCreated) ToPrimitives() map[string]any {
	return e.primitives(map[string]any{
		"userId":      e.UserID,
		"accountId":   e.AccountID,
		"categoryId":  optional(e.CategoryID),
		"amount":      e.Amount.Amount().String(),
		"currency":    e.Amount.Currency(),
		"direction":   string(e.Direction),
		"description": e.Description,
		"date":        formatTime(e.Date),
	})
}

type TransactionAmountUpdated struct {
	BaseEvent
	AccountID      string
	Amount         Money
	PreviousAmount Money
	Direction      Direction
}

func (e *TransactionAmountUpdated) ToPrimitives() map[string]any {
	return e.primitives(map[string]any{
		"accountId":        e.AccountID,
		"amount":           e.Amount.Amount().String(),
		"currency":         e.Amount.Currency(),
		"previousAmount":   e.PreviousAmount.Amount().String(),
		"previousCurrency": e.PreviousAmount.Currency(),
		"direction":        string(e.Direction),
	})
}

type TransactionDirectionUpdated struct {
	BaseEvent
	AccountID         string
	Amount            Money
	Direction         Direction
	PreviousDirection Direction
}

func (e *TransactionDirectionUpdated) ToPrimitives() map[string]any {
	return e.primitives(map[string]any{
		"accountId":         e.AccountID,
		"amount":            e.Amount.Amount().String(),
		"currency":          e.Amount.Currency(),
		"direction":         string(e.Direction),
		"previousDirection": string(e.PreviousDirection),
	})
}

type TransactionCategoryUpdated struct {
	BaseEvent
	AccountID          string
	CategoryID         *string
	PreviousCategoryID *string
}

func (e *TransactionCategoryUpdated) ToPrimitives() map[string]any {
	return e.primitives(map[string]any{
		"accountId":          e.AccountID,
		"categoryId":         optional(e.CategoryID),
		"previousCategoryId": optional(e.PreviousCategoryID),
	})
}

type TransactionDescriptionUpdated struct {
	BaseEvent
	AccountID           string
	Description         string
	PreviousDescription string
}

func (e *TransactionDescriptionUpdated) ToPrimitives() map[string]any {
	return e.primitives(map[string]any{
		"accountId":           e.AccountID,
		"description":         e.Description,
		"previousDescription": e.PreviousDescription,
	})
}

type TransactionDateUpdated struct {
	BaseEvent
	AccountID    string
	Date         time.Time
	PreviousDate time.Time
}

func (e *TransactionDateUpdated) ToPrimitives() map[string]any {
	return e.primitives(map[string]any{
		"accountId":    e.AccountID,
		"date":         formatTime(e.Date),
		"previousDate": formatTime(e.PreviousDate),
	})
}

type TransactionNotesUpdated struct {
	BaseEvent
	AccountID     string
	Notes         *string
	PreviousNotes *string
}

func (e *TransactionNotesUpdated) ToPrimitives() map[string]any {
	return e.primitives(map[string]any{
		"accountId":     e.AccountID,
		"notes":         optional(e.Notes),
		"previousNotes": optional(e.PreviousNotes),
	})
}

// TransactionDeleted carries the final state of the removed transaction.
type TransactionDeleted struct {
	BaseEvent
	UserID     string
	AccountID  string
	CategoryID *string
	Amount     Money
	Direction  Direction
}

func (e *TransactionDeleted) ToPrimitives() map[string]any {
	return e.primitives(map[string]any{
		"userId":     e.UserID,
		"accountId":  e.AccountID,
		"categoryId": optional(e.CategoryID),
		"amount":     e.Amount.Amount().String(),
		"currency":   e.Amount.Currency(),
		"direction":  string(e.Direction),
	})
}
