package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core"
	"github.com/bizdesk/backoffice/core/catalog"
)

// Payment methods
const (
	MethodCash   PaymentMethod = "Cash"
	MethodOnline PaymentMethod = "Online"
	MethodCheque PaymentMethod = "Cheque"
	MethodCredit PaymentMethod = "Credit"
)

// Payment statuses, derived from grand total vs amount paid; never stored.
const (
	StatusDue     PaymentStatus = "Due"
	StatusPartial PaymentStatus = "Partial"
	StatusPaid    PaymentStatus = "Paid"
)

var AllMethods = []PaymentMethod{MethodCash, MethodOnline, MethodCheque, MethodCredit}

type (
	PaymentMethod string
	PaymentStatus string
)

func (m PaymentMethod) Valid() bool {
	for _, method := range AllMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Line is one product entry within a draft or finalized invoice. Price and tax
// rate are snapshots taken when the product was added and stay independently
// editable until the invoice is saved.
type Line struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price" validate:"dgte0"`
	Qty       int             `json:"qty" validate:"gte=1"`
	TaxRate   decimal.Decimal `json:"tax_rate" validate:"drate"`
}

// Amount is the pre-discount line amount: unit price × quantity.
func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Draft is an invoice being composed. It has no identity until saved.
type Draft struct {
	CustomerID      string          `json:"customer_id"`
	Lines           []Line          `json:"items" validate:"dive"`
	DiscountPercent decimal.Decimal `json:"discount" validate:"drate"`
	Shipping        decimal.Decimal `json:"shipping" validate:"dgte0"`
	Note            string          `json:"note"`
	Method          PaymentMethod   `json:"payment_method" validate:"omitempty,paymethod"`
	AmountPaid      decimal.Decimal `json:"amount_paid" validate:"dgte0"`
}

func (d *Draft) Validate() error {
	d.CustomerID = core.CleanString(d.CustomerID)
	d.Note = core.CleanString(d.Note)
	if d.CustomerID == "" {
		return core.NewValidationError(ErrMissingCustomer, core.FieldError{Field: "customer_id", Error: ErrMissingCustomer.Error()})
	}
	if len(d.Lines) == 0 {
		return core.NewValidationError(ErrEmptyInvoice, core.FieldError{Field: "items", Error: ErrEmptyInvoice.Error()})
	}
	if d.Method == "" {
		d.Method = MethodCash
	}
	return core.Validate.Struct(d)
}

func (d Draft) copyLines() []Line {
	lines := make([]Line, len(d.Lines))
	copy(lines, d.Lines)
	return lines
}

// Invoice is a finalized, immutable ledger entry. Totals are never stored;
// they are re-derived from Items, DiscountPercent and Shipping on every read.
type Invoice struct {
	Seq             int              `json:"-"`
	Number          string           `json:"number"`
	Date            time.Time        `json:"date"` // UTC
	Customer        catalog.Customer `json:"customer"`
	Items           []Line           `json:"items"`
	DiscountPercent decimal.Decimal  `json:"discount"`
	Shipping        decimal.Decimal  `json:"shipping"`
	Note            string           `json:"note,omitempty"`
	Method          PaymentMethod    `json:"payment_method"`
	AmountPaid      decimal.Decimal  `json:"amount_paid"`
}

func (inv Invoice) Totals(basis TaxBasis) Totals {
	return ComputeTotals(inv.Items, inv.DiscountPercent, inv.Shipping, basis)
}

func (inv Invoice) Status(basis TaxBasis) PaymentStatus {
	return DerivePaymentStatus(inv.Totals(basis).GrandTotal, inv.AmountPaid)
}

// QueryFilter does a case-insensitive substring match on one of the invoice
// number, customer name, date string (2006-01-02) or an item name.
type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Match reports whether an invoice satisfies the filter. Repositories without
// their own query engine delegate to it so filter semantics never diverge.
func (qf QueryFilter) Match(inv Invoice) bool {
	term := strings.ToLower(qf.Search)
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(inv.Number), term) {
		return true
	}
	if strings.Contains(strings.ToLower(inv.Customer.Name), term) {
		return true
	}
	if strings.Contains(inv.Date.Format("2006-01-02"), term) {
		return true
	}
	for _, item := range inv.Items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			return true
		}
	}
	return false
}
