package domain

import "github.com/bacaxnot/finance-sub000/internal/apperrors"

// BalanceOperation is the sense of a balance adjustment.
type BalanceOperation string

const (
	BalanceAdd      BalanceOperation = "add"
	BalanceSubtract BalanceOperation = "subtract"
)

func ParseBalanceOperation(s string) (BalanceOperation, error) {
	op := BalanceOperation(s)
	if !op.IsValid() {
		return "", apperrors.NewInvalidArgument("invalid balance operation %q", s)
	}
	return op, nil
}

func (o BalanceOperation) IsValid() bool {
	return o == BalanceAdd || o == BalanceSubtract
}
