package mapping

import (
	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d *domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.ID(),
		UserID:        d.UserID(),
		AccountID:     d.AccountID(),
		CategoryID:    d.CategoryID(),
		Amount:        d.Amount().Amount(),
		Currency:      d.Amount().Currency(),
		Direction:     string(d.Direction()),
		Description:   d.Description(),
		Date:          d.Date(),
		Notes:         d.Notes(),
		CreatedAt:     d.CreatedAt(),
		UpdatedAt:     d.UpdatedAt(),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
// No events are recorded.
func ToDomainTransaction(m models.Transaction) (*domain.Transaction, error) {
	return domain.TransactionFromPrimitives(domain.TransactionPrimitives{
		ID:          m.TransactionID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Direction:   m.Direction,
		Description: m.Description,
		Date:        formatTimestamp(m.Date),
		Notes:       m.Notes,
		CreatedAt:   formatTimestamp(m.CreatedAt),
		UpdatedAt:   formatTimestamp(m.UpdatedAt),
	})
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) ([]*domain.Transaction, error) {
	ds := make([]*domain.Transaction, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}
