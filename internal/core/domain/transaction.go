package domain

import (
	"strings"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Transaction records money moving in or out of one account. Every mutation
// queues a domain event describing what changed and what it changed from.
type Transaction struct {
	AggregateRoot

	id          string
	userID      string
	accountID   string
	categoryID  *string
	amount      Money
	direction   Direction
	description string
	date        time.Time
	notes       *string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTransactionParams holds the inputs of CreateTransaction.
type NewTransactionParams struct {
	ID          string
	UserID      string
	AccountID   string
	CategoryID  *string
	Amount      decimal.Decimal
	Currency    string
	Direction   Direction
	Description string
	Date        time.Time
	Notes       *string
}

// TransactionUpdate is a partial update; nil fields are left untouched.
// Amount and Currency together form the new Money value.
type TransactionUpdate struct {
	Amount        *decimal.Decimal
	Currency      *string
	Direction     *Direction
	Description   *string
	Date          *time.Time
	Notes         *string
	CategoryID    *string
	ClearCategory bool
}

// IsEmpty reports whether the update carries no field at all.
func (u TransactionUpdate) IsEmpty() bool {
	return u.Amount == nil && u.Currency == nil && u.Direction == nil && u.Description == nil &&
		u.Date == nil && u.Notes == nil && u.CategoryID == nil && !u.ClearCategory
}

// CreateTransaction validates the inputs and records a TransactionCreated event.
func CreateTransaction(p NewTransactionParams) (*Transaction, error) {
	if err := validateID("transaction id", p.ID); err != nil {
		return nil, err
	}
	if err := validateID("user id", p.UserID); err != nil {
		return nil, err
	}
	if err := validateID("account id", p.AccountID); err != nil {
		return nil, err
	}
	if err := validateCategoryID(p.CategoryID); err != nil {
		return nil, err
	}
	amount, err := NewMoney(p.Amount, p.Currency)
	if err != nil {
		return nil, err
	}
	if !p.Direction.IsValid() {
		return nil, apperrors.NewInvalidArgument("invalid direction %q", string(p.Direction))
	}
	description, err := validateDescription(p.Description)
	if err != nil {
		return nil, err
	}
	if err := validateDate(p.Date); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &Transaction{
		id:          p.ID,
		userID:      p.UserID,
		accountID:   p.AccountID,
		categoryID:  copyString(p.CategoryID),
		amount:      amount,
		direction:   p.Direction,
		description: description,
		date:        p.Date.UTC(),
		notes:       normalizeNotes(p.Notes),
		createdAt:   now,
		updatedAt:   now,
	}
	t.record(&TransactionCreated{
		BaseEvent:   newBaseEvent(TransactionCreatedEvent, t.id),
		UserID:      t.userID,
		AccountID:   t.accountID,
		CategoryID:  copyString(t.categoryID),
		Amount:      t.amount,
		Direction:   t.direction,
		Description: t.description,
		Date:        t.date,
	})
	return t, nil
}

func validateCategoryID(id *string) error {
	if id == nil {
		return nil
	}
	return validateID("category id", *id)
}

func validateDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperrors.NewInvalidArgument("transaction description must not be empty")
	}
	return s, nil
}

func validateDate(d time.Time) error {
	if d.IsZero() {
		return apperrors.NewInvalidArgument("transaction date is required")
	}
	if d.After(time.Now()) {
		return apperrors.NewInvalidArgument("transaction date %s is in the future", formatTime(d))
	}
	return nil
}

func normalizeNotes(n *string) *string {
	if n == nil {
		return nil
	}
	v := strings.TrimSpace(*n)
	if v == "" {
		return nil
	}
	return &v
}

func (t *Transaction) ID() string           { return t.id }
func (t *Transaction) UserID() string       { return t.userID }
func (t *Transaction) AccountID() string    { return t.accountID }
func (t *Transaction) CategoryID() *string  { return copyString(t.categoryID) }
func (t *Transaction) Amount() Money        { return t.amount }
func (t *Transaction) Direction() Direction { return t.direction }
func (t *Transaction) Description() string  { return t.description }
func (t *Transaction) Date() time.Time      { return t.date }
func (t *Transaction) Notes() *string       { return copyString(t.notes) }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time { return t.updatedAt }

func (t *Transaction) BelongsTo(userID string) bool {
	return t.userID == userID
}

// SignedAmount is the net effect this transaction has on its account balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	return SignedAmount(t.amount.Amount(), t.direction)
}

// Update applies a partial update. All present fields are validated before any
// of them is applied, so a failed update leaves the transaction untouched.
// Fields are applied in a fixed order: amount, direction, category,
// description, date, notes; each one records its own event.
func (t *Transaction) Update(u TransactionUpdate) error {
	var amount *Money
	if u.Amount != nil || u.Currency != nil {
		value, currency := t.amount.Amount(), t.amount.Currency()
		if u.Amount != nil {
			value = *u.Amount
		}
		if u.Currency != nil {
			currency = *u.Currency
		}
		m, err := NewMoney(value, currency)
		if err != nil {
			return err
		}
		amount = &m
	}
	if u.Direction != nil && !u.Direction.IsValid() {
		return apperrors.NewInvalidArgument("invalid direction %q", string(*u.Direction))
	}
	if !u.ClearCategory {
		if err := validateCategoryID(u.CategoryID); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if _, err := validateDescription(*u.Description); err != nil {
			return err
		}
	}
	if u.Date != nil {
		if err := validateDate(*u.Date); err != nil {
			return err
		}
	}

	if amount != nil {
		t.ChangeAmount(*amount)
	}
	if u.Direction != nil {
		if err := t.ChangeDirection(*u.Direction); err != nil {
			return err
		}
	}
	switch {
	case u.ClearCategory:
		if err := t.ChangeCategory(nil); err != nil {
			return err
		}
	case u.CategoryID != nil:
		if err := t.ChangeCategory(u.CategoryID); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if err := t.ChangeDescription(*u.Description); err != nil {
			return err
		}
	}
	if u.Date != nil {
		if err := t.ChangeDate(*u.Date); err != nil {
			return err
		}
	}
	if u.Notes != nil {
		t.ChangeNotes(u.Notes)
	}
	return nil
}

// ChangeAmount replaces the amount (and possibly its currency).
func (t *Transaction) ChangeAmount(amount Money) {
	previous := t.amount
	t.amount = amount
	t.touch()
	t.record(&TransactionAmountUpdated{
		BaseEvent:      newBaseEvent(TransactionAmountUpdatedEvent, t.id),
		AccountID:      t.accountID,
		Amount:         t.amount,
		PreviousAmount: previous,
		Direction:      t.direction,
	})
}

func (t *Transaction) ChangeDirection(d Direction) error {
	if !d.IsValid() {
		return apperrors.NewInvalidArgument("invalid direction %q", string(d))
	}
	previous := t.direction
	t.direction = d
	t.touch()
	t.record(&TransactionDirectionUpdated{
		BaseEvent:         newBaseEvent(TransactionDirectionUpdatedEvent, t.id),
		AccountID:         t.accountID,
		Amount:            t.amount,
		Direction:         t.direction,
		PreviousDirection: previous,
	})
	return nil
}

// ChangeCategory sets the category; nil removes it.
func (t *Transaction) ChangeCategory(categoryID *string) error {
	if err := validateCategoryID(categoryID); err != nil {
		return err
	}
	previous := t.categoryID
	t.categoryID = copyString(categoryID)
	t.touch()
	t.record(&TransactionCategoryUpdated{
		BaseEvent:          newBaseEvent(TransactionCategoryUpdatedEvent, t.id),
		AccountID:          t.accountID,
		CategoryID:         copyString(t.categoryID),
		PreviousCategoryID: previous,
	})
	return nil
}

func (t *Transaction) ChangeDescription(description string) error {
	description, err := validateDescription(description)
	if err != nil {
		return err
	}
	previous := t.description
	t.description = description
	t.touch()
	t.record(&TransactionDescriptionUpdated{
		BaseEvent:           newBaseEvent(TransactionDescriptionUpdatedEvent, t.id),
		AccountID:           t.accountID,
		Description:         t.description,
		PreviousDescription: previous,
	})
	return nil
}

func (t *Transaction) ChangeDate(date time.Time) error {
	if err := validateDate(date); err != nil {
		return err
	}
	previous := t.date
	t.date = date.UTC()
	t.touch()
	t.record(&TransactionDateUpdated{
		BaseEvent:    newBaseEvent(TransactionDateUpdatedEvent, t.id),
		AccountID:    t.accountID,
		Date:         t.date,
		PreviousDate: previous,
	})
	return nil
}

// ChangeNotes sets the notes; a blank value removes them.
func (t *Transaction) ChangeNotes(notes *string) {
	previous := t.notes
	t.notes = normalizeNotes(notes)
	t.touch()
	t.record(&TransactionNotesUpdated{
		BaseEvent:     newBaseEvent(TransactionNotesUpdatedEvent, t.id),
		AccountID:     t.accountID,
		Notes:         copyString(t.notes),
		PreviousNotes: previous,
	})
}

// Delete records a TransactionDeleted event; the caller removes it from storage.
func (t *Transaction) Delete() {
	t.record(&TransactionDeleted{
		BaseEvent:  newBaseEvent(TransactionDeletedEvent, t.id),
		UserID:     t.userID,
		AccountID:  t.accountID,
		CategoryID: copyString(t.categoryID),
		Amount:     t.amount,
		Direction:  t.direction,
	})
}

func (t *Transaction) touch() {
	t.updatedAt = time.Now().UTC()
}

// TransactionPrimitives is the flat representation used by repositories and the HTTP boundary.
type TransactionPrimitives struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	AccountID   string          `json:"accountId"`
	CategoryID  *string         `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Direction   string          `json:"direction"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Notes       *string         `json:"notes"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func (t *Transaction) ToPrimitives() TransactionPrimitives {
	return TransactionPrimitives{
		ID:          t.id,
		UserID:      t.userID,
		AccountID:   t.accountID,
		CategoryID:  copyString(t.categoryID),
		Amount:      t.amount.Amount(),
		Currency:    t.amount.Currency(),
		Direction:   string(t.direction),
		Description: t.description,
		Date:        formatTime(t.date),
		Notes:       copyString(t.notes),
		CreatedAt:   formatTime(t.createdAt),
		UpdatedAt:   formatTime(t.updatedAt),
	}
}

// TransactionFromPrimitives rebuilds a transaction without recording any event.
// The date is not re-checked against the current time.
func TransactionFromPrimitives(p TransactionPrimitives) (*Transaction, error) {
	amount, err := NewMoney(p.Amount, p.Currency)
	if err != nil {
		return nil, err
	}
	direction, err := ParseDirection(p.Direction)
	if err != nil {
		return nil, err
	}
	date, err := parseTime("date", p.Date)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTime("createdAt", p.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime("updatedAt", p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		id:          p.ID,
		userID:      p.UserID,
		accountID:   p.AccountID,
		categoryID:  copyString(p.CategoryID),
		amount:      amount,
		direction:   direction,
		description: p.Description,
		date:        date,
		notes:       copyString(p.Notes),
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}
