package billing

import "github.com/shopspring/decimal"

// TaxBasis selects the amount per-line tax is computed on. The source system
// taxed the full pre-discount line amount; that stays the default, but the
// alternative is a policy switch rather than a code change.
type TaxBasis string

const (
	TaxBasisPreDiscount  TaxBasis = "pre_discount"
	TaxBasisPostDiscount TaxBasis = "post_discount"
)

// TaxBasisFromString maps a config value to a TaxBasis, defaulting to pre-discount.
func TaxBasisFromString(s string) TaxBasis {
	if TaxBasis(s) == TaxBasisPostDiscount {
		return TaxBasisPostDiscount
	}
	return TaxBasisPreDiscount
}

var oneHundred = decimal.NewFromInt(100)

// Totals holds the derived amounts of an invoice or draft. All values keep
// full decimal precision; rounding happens at presentation time only.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxTotal       decimal.Decimal `json:"tax_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// Rounded returns the totals rounded to 2 decimal places for display.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:       t.Subtotal.Round(2),
		TaxTotal:       t.TaxTotal.Round(2),
		DiscountAmount: t.DiscountAmount.Round(2),
		GrandTotal:     t.GrandTotal.Round(2),
	}
}

// ComputeTotals derives subtotal, tax total, discount amount and grand total
// from the given lines. It is pure: permuting lines or calling it twice with
// identical inputs yields identical output.
//
//	subtotal       = Σ price·qty
//	taxTotal       = Σ taxable·rate/100 per line (taxable per basis)
//	discountAmount = subtotal·discount/100
//	grandTotal     = max(0, subtotal − discountAmount + taxTotal + shipping)
func ComputeTotals(lines []Line, discountPercent, shipping decimal.Decimal, basis TaxBasis) Totals {
	discountPercent = clampRate(discountPercent)
	if shipping.IsNegative() {
		shipping = decimal.Zero
	}

	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, line := range lines {
		amount := line.Amount()
		subtotal = subtotal.Add(amount)

		taxable := amount
		if basis == TaxBasisPostDiscount {
			taxable = amount.Sub(amount.Mul(discountPercent).Div(oneHundred))
		}
		taxTotal = taxTotal.Add(taxable.Mul(clampRate(line.TaxRate)).Div(oneHundred))
	}

	discountAmount := subtotal.Mul(discountPercent).Div(oneHundred)
	grandTotal := subtotal.Sub(discountAmount).Add(taxTotal).Add(shipping)
	if grandTotal.IsNegative() {
		grandTotal = decimal.Zero
	}
	return Totals{
		Subtotal:       subtotal,
		TaxTotal:       taxTotal,
		DiscountAmount: discountAmount,
		GrandTotal:     grandTotal,
	}
}

// DerivePaymentStatus maps the paid amount against the grand total.
// Paying exactly the grand total counts as Paid.
func DerivePaymentStatus(grandTotal, amountPaid decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.LessThanOrEqual(decimal.Zero):
		return StatusDue
	case amountPaid.GreaterThanOrEqual(grandTotal):
		return StatusPaid
	default:
		return StatusPartial
	}
}

// clampRate forces a percentage into [0, 100].
func clampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	if rate.GreaterThan(oneHundred) {
		return oneHundred
	}
	return rate
}
