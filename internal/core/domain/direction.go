package domain

import (
	"github.com/bacaxnot/finance-sub000/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction increases or decreases a balance.
type Direction string

const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

// ParseDirection validates a raw direction string.
func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(raw); d {
	case Inbound, Outbound:
		return d, nil
	default:
		return "", apperrors.NewInvalidArgument("invalid direction %q", raw)
	}
}

func (d Direction) IsValid() bool {
	return d == Inbound || d == Outbound
}

func (d Direction) Opposite() Direction {
	if d == Inbound {
		return Outbound
	}
	return Inbound
}

// SignedAmount returns amount as a positive number for inbound and negative for outbound.
func SignedAmount(amount decimal.Decimal, d Direction) decimal.Decimal {
	if d == Outbound {
		return amount.Neg()
	}
	return amount
}
