// Package calc derives order and invoice amounts. All functions are pure:
// no persistence, no clock, fully deterministic.
package calc

import "fmt"

// ValidationError reports calculator input that was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// OrderTotals is the down-payment split for an order.
type OrderTotals struct {
	TotalAmount       int64
	DownpaymentAmount int64
	RemainingAmount   int64
}

// ComputeOrderTotals splits basePrice into a down payment and a remainder.
// The down payment is percentage of the total rounded to the nearest whole
// currency unit; the remainder absorbs the rounding so the two always sum
// back to the total. With useDownpayment false the split is zero/total.
func ComputeOrderTotals(basePrice int64, percentage int64, useDownpayment bool) (OrderTotals, error) {
	if basePrice < 0 {
		return OrderTotals{}, &ValidationError{Field: "base_price", Reason: "must not be negative"}
	}

	totals := OrderTotals{
		TotalAmount:     basePrice,
		RemainingAmount: basePrice,
	}
	if !useDownpayment {
		return totals, nil
	}

	if percentage < 0 {
		return OrderTotals{}, &ValidationError{Field: "downpayment_percentage", Reason: "must not be negative"}
	}
	if percentage > 100 {
		return OrderTotals{}, &ValidationError{Field: "downpayment_percentage", Reason: "must not exceed 100"}
	}

	// Round half up; operands are non-negative here.
	totals.DownpaymentAmount = (basePrice*percentage + 50) / 100
	totals.RemainingAmount = basePrice - totals.DownpaymentAmount
	return totals, nil
}

// ComputeInvoiceTotal returns subtotal + taxAmount. Zero values are valid.
func ComputeInvoiceTotal(subtotal, taxAmount int64) (int64, error) {
	if subtotal < 0 {
		return 0, &ValidationError{Field: "subtotal", Reason: "must not be negative"}
	}
	if taxAmount < 0 {
		return 0, &ValidationError{Field: "tax_amount", Reason: "must not be negative"}
	}
	return subtotal + taxAmount, nil
}

// ComputeTax applies a basis-point tax rate to a subtotal, rounding half up.
func ComputeTax(subtotal int64, rateBps int) (int64, error) {
	if subtotal < 0 {
		return 0, &ValidationError{Field: "subtotal", Reason: "must not be negative"}
	}
	if rateBps < 0 || rateBps > 10_000 {
		return 0, &ValidationError{Field: "tax_rate_bps", Reason: "must be between 0 and 10000"}
	}
	return (subtotal*int64(rateBps) + 5_000) / 10_000, nil
}
