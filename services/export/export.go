package exportsvc

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/bizdesk/backoffice/core"
	"github.com/bizdesk/backoffice/core/billing"
)

// Adapter renders finalized invoices into portable formats. It never mutates
// the invoice and recomputes totals on every render.
type Adapter struct {
	appName  string
	currency string
	basis    billing.TaxBasis
}

var _ billing.Renderer = (*Adapter)(nil)

func NewAdapter(conf *core.Config) *Adapter {
	return &Adapter{
		appName:  conf.AppName,
		currency: conf.Billing.Currency,
		basis:    billing.TaxBasisFromString(conf.Billing.TaxBasis),
	}
}

// RenderCSV writes the invoice as two-column label/value records.
func (ad *Adapter) RenderCSV(w io.Writer, inv billing.Invoice) error {
	cw := csv.NewWriter(w)
	for _, row := range billing.ToTabular(inv, ad.basis) {
		if err := cw.Write([]string{row.Label, row.Value}); err != nil {
			return errors.Wrap(err, "writing CSV record")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing CSV")
}

// RenderPDF writes a printable A4 rendition: header block, item table, totals.
func (ad *Adapter) RenderPDF(w io.Writer, inv billing.Invoice) error {
	totals := inv.Totals(ad.basis).Rounded()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(100, 10, ad.appName)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, "Invoice "+inv.Number, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Date: "+inv.Date.Format("2006-01-02"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Billed to: "+inv.Customer.Name)
	pdf.Ln(6)
	if inv.Customer.Address != "" {
		pdf.Cell(0, 6, inv.Customer.Address)
		pdf.Ln(6)
	}
	if inv.Customer.Phone != "" {
		pdf.Cell(0, 6, "Phone: "+inv.Customer.Phone)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, "Tax %", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(80, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Qty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 8, item.TaxRate.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, item.Amount().StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	ad.totalRow(pdf, "Subtotal", totals.Subtotal.StringFixed(2), false)
	ad.totalRow(pdf, "Discount ("+inv.DiscountPercent.StringFixed(2)+"%)", totals.DiscountAmount.StringFixed(2), false)
	ad.totalRow(pdf, "Shipping", inv.Shipping.StringFixed(2), false)
	ad.totalRow(pdf, "Tax", totals.TaxTotal.StringFixed(2), false)
	ad.totalRow(pdf, "Total ("+ad.currency+")", totals.GrandTotal.StringFixed(2), true)
	ad.totalRow(pdf, "Paid", inv.AmountPaid.StringFixed(2), false)
	ad.totalRow(pdf, "Status", string(inv.Status(ad.basis)), true)

	if inv.Note != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, inv.Note, "", "L", false)
	}

	return errors.Wrap(pdf.Output(w), "writing PDF")
}

func (ad *Adapter) totalRow(pdf *gofpdf.Fpdf, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.CellFormat(150, 7, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, value, "", 1, "R", false, 0, "")
}
