package exportsvc

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core"
	"github.com/bizdesk/backoffice/core/billing"
	"github.com/bizdesk/backoffice/core/catalog"
)

func newAdapter() *Adapter {
	return NewAdapter(&core.Config{
		AppName: "Bizdesk",
		Billing: core.BillingConfig{InvoicePrefix: "INV", TaxBasis: "pre_discount", Currency: "INR"},
	})
}

func sampleInvoice() billing.Invoice {
	price := decimal.NewFromInt(500)
	rate := decimal.NewFromInt(18)
	return billing.Invoice{
		Number:   "INV-1001",
		Date:     time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Customer: catalog.Customer{ID: "C001", Name: "Balaji Corp", Address: "Delhi"},
		Items: []billing.Line{
			{ProductID: "P001", Name: "Pine Wood (1ft)", UnitPrice: price, Qty: 10, TaxRate: rate},
		},
		Method:     billing.MethodCash,
		AmountPaid: decimal.NewFromInt(5900),
	}
}

func TestAdapter_RenderCSV(t *testing.T) {
	var buff bytes.Buffer
	if err := newAdapter().RenderCSV(&buff, sampleInvoice()); err != nil {
		t.Fatalf("RenderCSV() error = %v", err)
	}

	got := buff.String()
	wantLines := []string{
		"Invoice,INV-1001",
		"Date,2024-03-15",
		"Customer,Balaji Corp",
		"Pine Wood (1ft),10 x 500.00 = 5000.00",
		"Subtotal,5000.00",
		"Tax,900.00",
		"Total,5900.00",
		"Paid,5900.00",
		"Status,Paid",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("RenderCSV() output missing %q:\n%s", want, got)
		}
	}
}

func TestAdapter_RenderPDF(t *testing.T) {
	var buff bytes.Buffer
	if err := newAdapter().RenderPDF(&buff, sampleInvoice()); err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(buff.Bytes(), []byte("%PDF")) {
		t.Errorf("RenderPDF() output does not start with %%PDF header")
	}
}
