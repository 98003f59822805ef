package billing

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core"
	"github.com/bizdesk/backoffice/core/catalog"
)

var (
	// errors
	ErrNotFound        = errors.New("invoice not found")
	ErrMissingCustomer = errors.New("no customer selected")
	ErrEmptyInvoice    = errors.New("invoice has no line items")

	nowFunc = time.Now // mockable
)

// seqFloor keeps invoice numbers in the historical range (first is INV-1001).
const seqFloor = 1000

type (
	Repository interface {
		// MaxSeq returns the highest sequential identifier ever assigned, or 0
		// for an empty ledger. The next number is derived from it at startup.
		MaxSeq() (int, error)
		CreateInvoice(inv Invoice) (Invoice, error)
		QueryAllInvoices() ([]Invoice, error) // most-recent-first
		GetInvoiceByNumber(number string) (Invoice, error)
		// FilterInvoices applies QueryFilter.Match semantics in ledger order,
		// most-recent-first.
		FilterInvoices(filter QueryFilter) ([]Invoice, error)
	}

	// Renderer produces an attachable rendition of a finalized invoice.
	Renderer interface {
		RenderCSV(w io.Writer, inv Invoice) error
	}

	Service interface {
		// Save finalizes a draft: validates it, snapshots the customer,
		// assigns the next sequential number and appends to the ledger.
		// A failed save leaves both the ledger and the draft unchanged.
		Save(draft Draft) (Invoice, error)
		Get(number string) (Invoice, error)
		QueryAll() ([]Invoice, error)
		Filter(filter QueryFilter) ([]Invoice, error)
		Report() (SalesReport, error)
		Basis() TaxBasis
	}

	service struct {
		repo     Repository
		catSvc   catalog.Service
		mailSvc  core.EmailService
		renderer Renderer // optional; nil sends receipts without attachment
		prefix   string
		basis    TaxBasis

		mu  sync.Mutex
		seq int
	}
)

var _ Service = (*service)(nil)

func NewService(conf *core.Config, repo Repository, catSvc catalog.Service, mailSvc core.EmailService, renderer Renderer) (Service, error) {
	seq, err := repo.MaxSeq()
	if err != nil {
		return nil, err
	}
	if seq < seqFloor {
		seq = seqFloor
	}
	return &service{
		repo:     repo,
		catSvc:   catSvc,
		mailSvc:  mailSvc,
		renderer: renderer,
		prefix:   conf.Billing.InvoicePrefix,
		basis:    TaxBasisFromString(conf.Billing.TaxBasis),
		seq:      seq,
	}, nil
}

func (svc *service) Basis() TaxBasis { return svc.basis }

func (svc *service) Save(draft Draft) (Invoice, error) {
	if err := draft.Validate(); err != nil {
		return Invoice{}, err
	}

	cust, err := svc.catSvc.GetCustomer(draft.CustomerID)
	if err != nil {
		if err == catalog.ErrCustomerNotFound {
			return Invoice{}, core.NewValidationError(err, core.FieldError{Field: "customer_id", Error: err.Error()})
		}
		return Invoice{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	seq := svc.seq + 1
	inv := Invoice{
		Seq:             seq,
		Number:          fmt.Sprintf("%s-%d", svc.prefix, seq),
		Date:            nowFunc().UTC(),
		Customer:        cust,
		Items:           draft.copyLines(),
		DiscountPercent: clampRate(draft.DiscountPercent),
		Shipping:        draft.Shipping,
		Note:            draft.Note,
		Method:          draft.Method,
		AmountPaid:      draft.AmountPaid,
	}

	saved, err := svc.repo.CreateInvoice(inv)
	if err != nil {
		return Invoice{}, err
	}
	svc.seq = seq

	svc.sendReceipt(saved)
	return saved, nil
}

func (svc *service) Get(number string) (Invoice, error) {
	return svc.repo.GetInvoiceByNumber(core.CleanString(number))
}

func (svc *service) QueryAll() ([]Invoice, error) {
	return svc.repo.QueryAllInvoices()
}

func (svc *service) Filter(filter QueryFilter) ([]Invoice, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllInvoices()
	}
	return svc.repo.FilterInvoices(filter)
}

// sendReceipt emails the finalized invoice to the customer with the CSV
// rendition attached. Sending happens off the save path; a mail failure never
// fails the save.
func (svc *service) sendReceipt(inv Invoice) {
	if svc.mailSvc == nil || inv.Customer.Email == "" {
		return
	}

	totals := inv.Totals(svc.basis).Rounded()
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: inv.Customer.Name, Address: inv.Customer.Email}},
		Subject: fmt.Sprintf("Invoice %s", inv.Number),
		TextContent: fmt.Sprintf(
			"Dear %s,\r\n\r\nPlease find invoice %s dated %s attached.\r\nTotal: %s, Paid: %s, Status: %s.\r\n\r\n%s\r\n",
			inv.Customer.Name, inv.Number, inv.Date.Format("2006-01-02"),
			totals.GrandTotal.StringFixed(2), inv.AmountPaid.StringFixed(2), inv.Status(svc.basis), inv.Note,
		),
	}
	if svc.renderer != nil {
		var buff bytes.Buffer
		if err := svc.renderer.RenderCSV(&buff, inv); err == nil {
			_ = msg.Attach(&buff, inv.Number+".csv", "text/csv")
		}
	}
	svc.mailSvc.SendMessages(msg)
}

// ProductSales aggregates a single product's sold quantity and revenue
// across the whole ledger.
type ProductSales struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type SalesReport struct {
	InvoiceCount int             `json:"invoice_count"`
	GrossTotal   decimal.Decimal `json:"gross_total"`
	PaidTotal    decimal.Decimal `json:"paid_total"`
	DueTotal     decimal.Decimal `json:"due_total"`
	TopProducts  []ProductSales  `json:"top_products"`
}

const topProductCount = 5

// Report aggregates the ledger into dashboard figures: invoice count, gross,
// paid and outstanding totals, and the best selling products by quantity.
func (svc *service) Report() (SalesReport, error) {
	invoices, err := svc.repo.QueryAllInvoices()
	if err != nil {
		return SalesReport{}, err
	}

	rep := SalesReport{
		InvoiceCount: len(invoices),
		GrossTotal:   decimal.Zero,
		PaidTotal:    decimal.Zero,
		DueTotal:     decimal.Zero,
	}
	sales := make(map[string]*ProductSales)
	order := make([]string, 0)

	for _, inv := range invoices {
		grand := inv.Totals(svc.basis).GrandTotal
		rep.GrossTotal = rep.GrossTotal.Add(grand)
		rep.PaidTotal = rep.PaidTotal.Add(inv.AmountPaid)
		if due := grand.Sub(inv.AmountPaid); due.IsPositive() {
			rep.DueTotal = rep.DueTotal.Add(due)
		}
		for _, item := range inv.Items {
			ps, ok := sales[item.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: item.ProductID, Name: item.Name, Revenue: decimal.Zero}
				sales[item.ProductID] = ps
				order = append(order, item.ProductID)
			}
			ps.Quantity += item.Qty
			ps.Revenue = ps.Revenue.Add(item.Amount())
		}
	}

	top := make([]ProductSales, 0, len(order))
	for _, id := range order {
		top = append(top, *sales[id])
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > topProductCount {
		top = top[:topProductCount]
	}
	rep.TopProducts = top
	return rep, nil
}
