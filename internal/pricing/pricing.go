// Package pricing derives the order summary from a cart snapshot. Pure
// functions only; nothing here holds state, and amounts stay unrounded until
// formatted for display.
package pricing

import (
	"fmt"

	"storefront/internal/cart"
)

const (
	// FlatShipping is charged on every order. The constant applies even to
	// an empty cart; an empty cart never reaches checkout in practice.
	FlatShipping = 9.99

	// TaxRate applies to the subtotal.
	TaxRate = 0.08
)

// Summary is the derived breakdown for the current cart. It is recomputed on
// every read and never stored.
type Summary struct {
	Items    int
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
}

// Summarize computes a Summary from a cart snapshot.
func Summarize(lines []cart.Line) Summary {
	var s Summary
	for _, l := range lines {
		s.Items += l.Quantity
		s.Subtotal += l.Subtotal()
	}
	s.Shipping = FlatShipping
	s.Tax = s.Subtotal * TaxRate
	s.Total = s.Subtotal + s.Shipping + s.Tax
	return s
}

// Format renders a monetary amount for display with two decimal places.
// Rounding happens here and only here.
func Format(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
