package handler

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// toDecimalPtr converts a float64 to a *decimal.Decimal
func toDecimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// toUUIDStringPtr converts an optional uuid to its string form
func toUUIDStringPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
