package billing

import "fmt"

// Row is one label/value pair of the tabular invoice rendition. Blank rows
// separate the header, item and totals sections.
type Row struct {
	Label string
	Value string
}

// ToTabular flattens an invoice into ordered label/value rows for renderers
// that output line-oriented formats. Amounts are fixed to 2 decimal places.
func ToTabular(inv Invoice, basis TaxBasis) []Row {
	totals := inv.Totals(basis).Rounded()

	rows := []Row{
		{"Invoice", inv.Number},
		{"Date", inv.Date.Format("2006-01-02")},
		{"Customer", inv.Customer.Name},
		{},
	}
	for _, item := range inv.Items {
		rows = append(rows, Row{
			Label: item.Name,
			Value: fmt.Sprintf("%d x %s = %s", item.Qty, item.UnitPrice.StringFixed(2), item.Amount().StringFixed(2)),
		})
	}
	rows = append(rows,
		Row{},
		Row{"Subtotal", totals.Subtotal.StringFixed(2)},
		Row{"Discount %", inv.DiscountPercent.StringFixed(2)},
		Row{"Discount", totals.DiscountAmount.StringFixed(2)},
		Row{"Shipping", inv.Shipping.StringFixed(2)},
		Row{"Tax", totals.TaxTotal.StringFixed(2)},
		Row{"Total", totals.GrandTotal.StringFixed(2)},
		Row{"Paid", inv.AmountPaid.StringFixed(2)},
		Row{"Status", string(inv.Status(basis))},
	)
	return rows
}
