package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidLineItem = errors.New("invalid line item")

// LineItem is a (quantity, unit price) pair as captured on a cart entry or
// an order line.
type LineItem struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineTotal computes quantity x unitPrice with exact decimal arithmetic.
// Quantity must be positive and the unit price non-negative.
func LineTotal(quantity int, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 || unitPrice.IsNegative() {
		return decimal.Zero, ErrInvalidLineItem
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// OrderTotal sums the line totals of every item. It is pure: no rounding
// beyond what the inputs carry, no side effects.
func OrderTotal(items []LineItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		line, err := LineTotal(item.Quantity, item.UnitPrice)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(line)
	}
	return total, nil
}
