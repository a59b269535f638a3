package mapping

import (
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	"github.com/bacaxnot/finance-sub000/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d *domain.Account) models.Account {
	return models.Account{
		AccountID:      d.ID(),
		UserID:         d.UserID(),
		Name:           d.Name(),
		Currency:       d.Currency(),
		InitialBalance: d.InitialBalance().Amount(),
		CurrentBalance: d.CurrentBalance().Amount(),
		Version:        d.Version(),
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) (*domain.Account, error) {
	return domain.AccountFromPrimitives(domain.AccountPrimitives{
		ID:             m.AccountID,
		UserID:         m.UserID,
		Name:           m.Name,
		Currency:       m.Currency,
		InitialBalance: m.InitialBalance,
		CurrentBalance: m.CurrentBalance,
		Version:        m.Version,
		CreatedAt:      formatTimestamp(m.CreatedAt),
		UpdatedAt:      formatTimestamp(m.UpdatedAt),
	})
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) ([]*domain.Account, error) {
	ds := make([]*domain.Account, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainAccount(m)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(domain.TimestampLayout)
}
