package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func line(id, name string, price string, qty int, taxRate string) Line {
	return Line{ProductID: id, Name: name, UnitPrice: dec(price), Qty: qty, TaxRate: dec(taxRate)}
}

func TestComputeTotals(t *testing.T) {
	woodAndNails := []Line{
		line("P001", "Pine Wood (1ft)", "500", 10, "18"),
		line("P004", "Nails Pack", "50", 4, "18"),
	}

	tests := []struct {
		name            string
		lines           []Line
		discountPercent decimal.Decimal
		shipping        decimal.Decimal
		basis           TaxBasis
		want            Totals
	}{
		{
			name:  "no discount no shipping",
			lines: woodAndNails,
			basis: TaxBasisPreDiscount,
			want: Totals{
				Subtotal:       dec("5200"),
				TaxTotal:       dec("936"),
				DiscountAmount: dec("0"),
				GrandTotal:     dec("6136"),
			},
		},
		{
			name:            "10 percent discount",
			lines:           woodAndNails,
			discountPercent: dec("10"),
			basis:           TaxBasisPreDiscount,
			want: Totals{
				Subtotal:       dec("5200"),
				TaxTotal:       dec("936"),
				DiscountAmount: dec("520"),
				GrandTotal:     dec("5616"),
			},
		},
		{
			name:            "10 percent discount taxed post discount",
			lines:           woodAndNails,
			discountPercent: dec("10"),
			basis:           TaxBasisPostDiscount,
			want: Totals{
				Subtotal:       dec("5200"),
				TaxTotal:       dec("842.4"),
				DiscountAmount: dec("520"),
				GrandTotal:     dec("5522.4"),
			},
		},
		{
			name:     "shipping added after discount and tax",
			lines:    woodAndNails,
			shipping: dec("150"),
			basis:    TaxBasisPreDiscount,
			want: Totals{
				Subtotal:       dec("5200"),
				TaxTotal:       dec("936"),
				DiscountAmount: dec("0"),
				GrandTotal:     dec("6286"),
			},
		},
		{
			name:  "empty lines",
			lines: nil,
			basis: TaxBasisPreDiscount,
			want: Totals{
				Subtotal:       dec("0"),
				TaxTotal:       dec("0"),
				DiscountAmount: dec("0"),
				GrandTotal:     dec("0"),
			},
		},
		{
			name:            "discount above 100 clamps",
			lines:           []Line{line("P004", "Nails Pack", "50", 1, "0")},
			discountPercent: dec("250"),
			basis:           TaxBasisPreDiscount,
			want: Totals{
				Subtotal:       dec("50"),
				TaxTotal:       dec("0"),
				DiscountAmount: dec("50"),
				GrandTotal:     dec("0"),
			},
		},
		{
			name:            "negative discount clamps to zero",
			lines:           []Line{line("P004", "Nails Pack", "50", 1, "0")},
			discountPercent: dec("-10"),
			basis:           TaxBasisPreDiscount,
			want: Totals{
				Subtotal:       dec("50"),
				TaxTotal:       dec("0"),
				DiscountAmount: dec("0"),
				GrandTotal:     dec("50"),
			},
		},
		{
			name:     "negative shipping ignored",
			lines:    []Line{line("P004", "Nails Pack", "50", 1, "0")},
			shipping: dec("-99"),
			basis:    TaxBasisPreDiscount,
			want: Totals{
				Subtotal:       dec("50"),
				TaxTotal:       dec("0"),
				DiscountAmount: dec("0"),
				GrandTotal:     dec("50"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, tt.discountPercent, tt.shipping, tt.basis)
			assertTotalsEqual(t, got, tt.want)
		})
	}
}

func TestComputeTotals_pure(t *testing.T) {
	lines := []Line{
		line("P001", "Pine Wood (1ft)", "500", 10, "18"),
		line("P004", "Nails Pack", "50", 4, "18"),
		line("P005", "Glue (500ml)", "180", 2, "12"),
	}
	reversed := []Line{lines[2], lines[1], lines[0]}

	first := ComputeTotals(lines, dec("5"), dec("100"), TaxBasisPreDiscount)
	again := ComputeTotals(lines, dec("5"), dec("100"), TaxBasisPreDiscount)
	permuted := ComputeTotals(reversed, dec("5"), dec("100"), TaxBasisPreDiscount)

	assertTotalsEqual(t, again, first)
	assertTotalsEqual(t, permuted, first)
}

func TestComputeTotals_grandTotalNeverNegative(t *testing.T) {
	// 100% discount leaves nothing taxable post-discount
	lines := []Line{line("P004", "Nails Pack", "50", 1, "18")}
	got := ComputeTotals(lines, dec("100"), decimal.Zero, TaxBasisPostDiscount)
	if !got.GrandTotal.Equal(decimal.Zero) {
		t.Errorf("GrandTotal = %s; want 0", got.GrandTotal)
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		grandTotal decimal.Decimal
		amountPaid decimal.Decimal
		want       PaymentStatus
	}{
		{name: "nothing paid", grandTotal: dec("6136"), amountPaid: dec("0"), want: StatusDue},
		{name: "negative paid", grandTotal: dec("6136"), amountPaid: dec("-5"), want: StatusDue},
		{name: "partial", grandTotal: dec("6136"), amountPaid: dec("3000"), want: StatusPartial},
		{name: "exactly paid", grandTotal: dec("6136"), amountPaid: dec("6136"), want: StatusPaid},
		{name: "overpaid", grandTotal: dec("6136"), amountPaid: dec("7000"), want: StatusPaid},
		{name: "zero total zero paid", grandTotal: dec("0"), amountPaid: dec("0"), want: StatusDue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DerivePaymentStatus(tt.grandTotal, tt.amountPaid); got != tt.want {
				t.Errorf("DerivePaymentStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaxBasisFromString(t *testing.T) {
	if got := TaxBasisFromString("post_discount"); got != TaxBasisPostDiscount {
		t.Errorf("TaxBasisFromString(post_discount) = %v", got)
	}
	if got := TaxBasisFromString("lol"); got != TaxBasisPreDiscount {
		t.Errorf("TaxBasisFromString(lol) = %v; want pre_discount default", got)
	}
}

func assertTotalsEqual(t *testing.T, got, want Totals) {
	t.Helper()
	if !got.Subtotal.Equal(want.Subtotal) {
		t.Errorf("Subtotal = %s; want %s", got.Subtotal, want.Subtotal)
	}
	if !got.TaxTotal.Equal(want.TaxTotal) {
		t.Errorf("TaxTotal = %s; want %s", got.TaxTotal, want.TaxTotal)
	}
	if !got.DiscountAmount.Equal(want.DiscountAmount) {
		t.Errorf("DiscountAmount = %s; want %s", got.DiscountAmount, want.DiscountAmount)
	}
	if !got.GrandTotal.Equal(want.GrandTotal) {
		t.Errorf("GrandTotal = %s; want %s", got.GrandTotal, want.GrandTotal)
	}
}
