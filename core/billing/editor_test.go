package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core/catalog"
)

func product(id, name, price, taxRate string) catalog.Product {
	return catalog.Product{ID: id, Name: name, Price: dec(price), TaxRate: dec(taxRate)}
}

func TestEditor_AddLine(t *testing.T) {
	e := NewEditor()
	wood := product("P001", "Pine Wood (1ft)", "500", "18")
	nails := product("P004", "Nails Pack", "50", "18")

	e.AddLine(wood)
	e.AddLine(nails)
	e.AddLine(wood) // same product increments qty

	lines := e.Lines()
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d; want 2", len(lines))
	}
	if lines[0].Qty != 2 {
		t.Errorf("wood qty = %d; want 2", lines[0].Qty)
	}
	if lines[1].Qty != 1 {
		t.Errorf("nails qty = %d; want 1", lines[1].Qty)
	}
	if !lines[0].UnitPrice.Equal(dec("500")) {
		t.Errorf("wood price = %s; want 500", lines[0].UnitPrice)
	}
}

func TestEditor_AddLine_snapshotsPrice(t *testing.T) {
	e := NewEditor()
	wood := product("P001", "Pine Wood (1ft)", "500", "18")
	e.AddLine(wood)

	// a later catalog price change must not touch the draft
	wood.Price = dec("999")

	if got := e.Lines()[0].UnitPrice; !got.Equal(dec("500")) {
		t.Errorf("UnitPrice = %s; want snapshot 500", got)
	}
}

func TestEditor_SetQuantity(t *testing.T) {
	e := NewEditor()
	e.AddLine(product("P001", "Pine Wood (1ft)", "500", "18"))

	if err := e.SetQuantity("P001", 10); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}
	if got := e.Lines()[0].Qty; got != 10 {
		t.Errorf("qty = %d; want 10", got)
	}

	// quantity zero removes the line
	if err := e.SetQuantity("P001", 0); err != nil {
		t.Fatalf("SetQuantity() error = %v", err)
	}
	if !e.Empty() {
		t.Error("draft still has lines after setting qty to 0")
	}

	if err := e.SetQuantity("P404", 1); err != ErrUnknownLine {
		t.Errorf("SetQuantity() error = %v, want ErrUnknownLine", err)
	}
}

func TestEditor_setters(t *testing.T) {
	e := NewEditor()
	e.AddLine(product("P001", "Pine Wood (1ft)", "500", "18"))

	if err := e.SetUnitPrice("P001", dec("-10")); err != nil {
		t.Fatalf("SetUnitPrice() error = %v", err)
	}
	if got := e.Lines()[0].UnitPrice; !got.Equal(decimal.Zero) {
		t.Errorf("negative price floored to %s; want 0", got)
	}

	if err := e.SetTaxRate("P001", dec("150")); err != nil {
		t.Fatalf("SetTaxRate() error = %v", err)
	}
	if got := e.Lines()[0].TaxRate; !got.Equal(dec("100")) {
		t.Errorf("tax rate clamped to %s; want 100", got)
	}

	if err := e.SetUnitPrice("P404", dec("1")); err != ErrUnknownLine {
		t.Errorf("SetUnitPrice() error = %v, want ErrUnknownLine", err)
	}
	if err := e.SetTaxRate("P404", dec("1")); err != ErrUnknownLine {
		t.Errorf("SetTaxRate() error = %v, want ErrUnknownLine", err)
	}

	e.SetDiscountPercent(dec("120"))
	e.SetShipping(dec("-5"))
	e.SetAmountPaid(dec("-5"))
	e.SetPaymentMethod("Barter") // invalid, ignored
	e.SetPaymentMethod(MethodCheque)

	d := e.Draft()
	if !d.DiscountPercent.Equal(dec("100")) {
		t.Errorf("DiscountPercent = %s; want 100", d.DiscountPercent)
	}
	if !d.Shipping.Equal(decimal.Zero) {
		t.Errorf("Shipping = %s; want 0", d.Shipping)
	}
	if !d.AmountPaid.Equal(decimal.Zero) {
		t.Errorf("AmountPaid = %s; want 0", d.AmountPaid)
	}
	if d.Method != MethodCheque {
		t.Errorf("Method = %s; want Cheque", d.Method)
	}
}

func TestEditor_RemoveLine(t *testing.T) {
	e := NewEditor()
	e.AddLine(product("P001", "Pine Wood (1ft)", "500", "18"))
	e.AddLine(product("P004", "Nails Pack", "50", "18"))

	e.RemoveLine("P001")
	e.RemoveLine("P404") // absent, no-op

	lines := e.Lines()
	if len(lines) != 1 || lines[0].ProductID != "P004" {
		t.Errorf("lines = %+v; want only P004", lines)
	}
}

func TestEditor_Totals(t *testing.T) {
	e := NewEditor()
	e.AddLine(product("P001", "Pine Wood (1ft)", "500", "18"))
	_ = e.SetQuantity("P001", 10)
	e.AddLine(product("P004", "Nails Pack", "50", "18"))
	_ = e.SetQuantity("P004", 4)

	got := e.Totals(TaxBasisPreDiscount)
	assertTotalsEqual(t, got, Totals{
		Subtotal:       dec("5200"),
		TaxTotal:       dec("936"),
		DiscountAmount: dec("0"),
		GrandTotal:     dec("6136"),
	})
}

func TestEditor_Reset(t *testing.T) {
	e := NewEditor()
	e.SetCustomer("C001")
	e.AddLine(product("P001", "Pine Wood (1ft)", "500", "18"))
	e.SetNote("deliver friday")

	e.Reset()

	if !e.Empty() {
		t.Error("lines survived Reset()")
	}
	d := e.Draft()
	if d.CustomerID != "" || d.Note != "" {
		t.Errorf("draft fields survived Reset(): %+v", d)
	}
	if _, editing := e.Mode().Editing(); editing {
		t.Error("editing mode survived Reset()")
	}
}

func TestNewEditorFor(t *testing.T) {
	inv := Invoice{
		Number:   "INV-1003",
		Customer: catalog.Customer{ID: "C002", Name: "Sai Enterprises"},
		Items: []Line{
			line("P001", "Pine Wood (1ft)", "500", 10, "18"),
		},
		DiscountPercent: dec("10"),
		Method:          MethodOnline,
		AmountPaid:      dec("3000"),
	}

	e := NewEditorFor(inv)

	number, editing := e.Mode().Editing()
	if !editing || number != "INV-1003" {
		t.Errorf("Mode().Editing() = %q, %v; want INV-1003, true", number, editing)
	}
	d := e.Draft()
	if d.CustomerID != "C002" {
		t.Errorf("CustomerID = %q; want C002", d.CustomerID)
	}
	if len(d.Lines) != 1 || d.Lines[0].Qty != 10 {
		t.Errorf("Lines = %+v; want the invoice items", d.Lines)
	}

	// edits stay local to the draft
	_ = e.SetQuantity("P001", 2)
	if inv.Items[0].Qty != 10 {
		t.Error("editing the draft mutated the invoice")
	}
}

func TestNewEditorFromDraft(t *testing.T) {
	d := Draft{
		CustomerID: "C001",
		Lines: []Line{
			line("P001", "Pine Wood (1ft)", "500", 2, "18"),
			line("P009", "Ghost", "10", 0, "0"),             // dropped
			line("P001", "Pine Wood (1ft)", "500", 3, "18"), // merged
			{ProductID: "P005", Name: "Glue (500ml)", UnitPrice: dec("-1"), Qty: 1, TaxRate: dec("300")},
		},
		DiscountPercent: dec("-4"),
		Method:          "Barter",
	}

	e := NewEditorFromDraft(d)
	lines := e.Lines()

	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d; want 2", len(lines))
	}
	if lines[0].ProductID != "P001" || lines[0].Qty != 5 {
		t.Errorf("lines[0] = %+v; want P001 qty 5", lines[0])
	}
	if !lines[1].UnitPrice.Equal(decimal.Zero) || !lines[1].TaxRate.Equal(dec("100")) {
		t.Errorf("lines[1] = %+v; want floored price and clamped rate", lines[1])
	}

	out := e.Draft()
	if !out.DiscountPercent.Equal(decimal.Zero) {
		t.Errorf("DiscountPercent = %s; want 0", out.DiscountPercent)
	}
	if out.Method != "" {
		t.Errorf("Method = %q; want invalid method dropped", out.Method)
	}
}

func TestEditor_Guard(t *testing.T) {
	e := NewEditor()
	e.SetCustomer("C001")
	e.AddLine(product("P001", "Pine Wood (1ft)", "500", "18"))

	if err := e.Guard(catalog.KindProduct, "P001"); err != catalog.ErrProductInUse {
		t.Errorf("Guard(product in draft) = %v; want ErrProductInUse", err)
	}
	if err := e.Guard(catalog.KindProduct, "P004"); err != nil {
		t.Errorf("Guard(unused product) = %v; want nil", err)
	}
	if err := e.Guard(catalog.KindCustomer, "C001"); err != catalog.ErrCustomerInUse {
		t.Errorf("Guard(billed customer) = %v; want ErrCustomerInUse", err)
	}
	if err := e.Guard(catalog.KindCustomer, "C002"); err != nil {
		t.Errorf("Guard(other customer) = %v; want nil", err)
	}

	// an empty draft holds nothing
	e.Reset()
	e.SetCustomer("C001")
	if err := e.Guard(catalog.KindCustomer, "C001"); err != nil {
		t.Errorf("Guard(customer on empty draft) = %v; want nil", err)
	}
}
