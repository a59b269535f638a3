package domain

import (
	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/google/uuid"
)

func validateID(field, value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return apperrors.NewInvalidArgument("%s %q is not a valid UUID", field, value)
	}
	return nil
}
