package billing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core/catalog"
)

var ErrUnknownLine = errors.New("no line for this product in the current draft")

// Mode tags what the editor is working on: a brand new invoice or an existing
// one being re-composed. It is carried explicitly rather than inferred from
// optional fields.
type Mode struct {
	editing bool
	number  string
}

func ModeNew() Mode { return Mode{} }

func ModeEditing(number string) Mode { return Mode{editing: true, number: number} }

// Editing returns the invoice number being edited, if any.
func (m Mode) Editing() (string, bool) { return m.number, m.editing }

// Editor owns one invoice draft: an ordered collection of lines keyed by
// product identifier plus the draft-level fields. It is not safe for
// concurrent use; a single active editor is assumed.
type Editor struct {
	mode  Mode
	draft Draft
}

func NewEditor() *Editor {
	return &Editor{mode: ModeNew()}
}

// NewEditorFor opens an existing finalized invoice for re-composition.
// The ledger entry itself stays untouched; saving produces a new invoice.
func NewEditorFor(inv Invoice) *Editor {
	draft := Draft{
		CustomerID:      inv.Customer.ID,
		Lines:           make([]Line, len(inv.Items)),
		DiscountPercent: inv.DiscountPercent,
		Shipping:        inv.Shipping,
		Note:            inv.Note,
		Method:          inv.Method,
		AmountPaid:      inv.AmountPaid,
	}
	copy(draft.Lines, inv.Items)
	return &Editor{mode: ModeEditing(inv.Number), draft: draft}
}

// NewEditorFromDraft replays an externally assembled draft through the editor
// so its invariants hold: duplicate product lines merge, zero-quantity lines
// drop, rates clamp.
func NewEditorFromDraft(d Draft) *Editor {
	e := NewEditor()
	e.SetCustomer(d.CustomerID)
	for _, l := range d.Lines {
		if l.Qty < 1 {
			continue
		}
		if idx := e.find(l.ProductID); idx >= 0 {
			e.draft.Lines[idx].Qty += l.Qty
			continue
		}
		e.draft.Lines = append(e.draft.Lines, Line{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: floorZero(l.UnitPrice),
			Qty:       l.Qty,
			TaxRate:   clampRate(l.TaxRate),
		})
	}
	e.SetDiscountPercent(d.DiscountPercent)
	e.SetShipping(d.Shipping)
	e.SetNote(d.Note)
	e.SetPaymentMethod(d.Method)
	e.SetAmountPaid(d.AmountPaid)
	return e
}

func (e *Editor) Mode() Mode { return e.mode }

// AddLine adds a product to the draft. If a line for that product already
// exists its quantity increments by 1; otherwise a new quantity-1 line is
// appended, snapshotting the product's current price and tax rate.
func (e *Editor) AddLine(prd catalog.Product) {
	if idx := e.find(prd.ID); idx >= 0 {
		e.draft.Lines[idx].Qty++
		return
	}
	e.draft.Lines = append(e.draft.Lines, Line{
		ProductID: prd.ID,
		Name:      prd.Name,
		UnitPrice: prd.Price,
		Qty:       1,
		TaxRate:   clampRate(prd.TaxRate),
	})
}

// SetQuantity updates a line's quantity. A quantity below 1 removes the line
// entirely; zero-quantity lines are never retained.
func (e *Editor) SetQuantity(productID string, qty int) error {
	idx := e.find(productID)
	if idx < 0 {
		return ErrUnknownLine
	}
	if qty < 1 {
		e.removeAt(idx)
		return nil
	}
	e.draft.Lines[idx].Qty = qty
	return nil
}

func (e *Editor) SetUnitPrice(productID string, price decimal.Decimal) error {
	idx := e.find(productID)
	if idx < 0 {
		return ErrUnknownLine
	}
	e.draft.Lines[idx].UnitPrice = floorZero(price)
	return nil
}

func (e *Editor) SetTaxRate(productID string, rate decimal.Decimal) error {
	idx := e.find(productID)
	if idx < 0 {
		return ErrUnknownLine
	}
	e.draft.Lines[idx].TaxRate = clampRate(rate)
	return nil
}

func (e *Editor) RemoveLine(productID string) {
	if idx := e.find(productID); idx >= 0 {
		e.removeAt(idx)
	}
}

func (e *Editor) SetCustomer(id string) { e.draft.CustomerID = id }
func (e *Editor) SetNote(note string)   { e.draft.Note = note }

func (e *Editor) SetDiscountPercent(d decimal.Decimal) { e.draft.DiscountPercent = clampRate(d) }
func (e *Editor) SetShipping(s decimal.Decimal)        { e.draft.Shipping = floorZero(s) }
func (e *Editor) SetAmountPaid(p decimal.Decimal)      { e.draft.AmountPaid = floorZero(p) }

func (e *Editor) SetPaymentMethod(m PaymentMethod) {
	if m.Valid() {
		e.draft.Method = m
	}
}

// Lines returns a copy of the current draft lines in insertion order.
func (e *Editor) Lines() []Line {
	return e.draft.copyLines()
}

// Draft returns a deep copy of the draft being composed.
func (e *Editor) Draft() Draft {
	d := e.draft
	d.Lines = e.draft.copyLines()
	return d
}

func (e *Editor) Empty() bool { return len(e.draft.Lines) == 0 }

// Totals recomputes the derived amounts for the current draft state. There is
// no implicit recomputation; callers invoke it after every edit they care about.
func (e *Editor) Totals(basis TaxBasis) Totals {
	return ComputeTotals(e.draft.Lines, e.draft.DiscountPercent, e.draft.Shipping, basis)
}

// Reset clears all lines and draft fields, returning the editor to a new
// empty draft. Required after a successful save or an explicit discard.
func (e *Editor) Reset() {
	e.mode = ModeNew()
	e.draft = Draft{}
}

// Guard is a catalog.RemoveGuard: it vetoes removing a product that has a
// line in the draft, or the customer the draft is billed to.
func (e *Editor) Guard(kind catalog.Kind, id string) error {
	switch kind {
	case catalog.KindProduct:
		if e.find(id) >= 0 {
			return catalog.ErrProductInUse
		}
	case catalog.KindCustomer:
		if !e.Empty() && e.draft.CustomerID == id {
			return catalog.ErrCustomerInUse
		}
	}
	return nil
}

func (e *Editor) find(productID string) int {
	for i, l := range e.draft.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (e *Editor) removeAt(idx int) {
	e.draft.Lines = append(e.draft.Lines[:idx], e.draft.Lines[idx+1:]...)
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
