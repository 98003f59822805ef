package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core/billing"
	"github.com/bizdesk/backoffice/core/catalog"
)

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) billing.Repository {
	return &invoiceRepository{db: db}
}

// invoiceRow denormalizes the customer snapshot into the invoice table so a
// ledger entry stays readable even after the catalog customer is removed.
type invoiceRow struct {
	Seq             int             `db:"seq"`
	Number          string          `db:"number"`
	Date            time.Time       `db:"date"`
	CustomerID      string          `db:"customer_id"`
	CustomerName    string          `db:"customer_name"`
	CustomerPhone   string          `db:"customer_phone"`
	CustomerEmail   string          `db:"customer_email"`
	CustomerAddress string          `db:"customer_address"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	Shipping        decimal.Decimal `db:"shipping"`
	Note            string          `db:"note"`
	Method          string          `db:"method"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
}

type itemRow struct {
	InvoiceSeq int             `db:"invoice_seq"`
	Position   int             `db:"position"`
	ProductID  string          `db:"product_id"`
	Name       string          `db:"name"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	Qty        int             `db:"qty"`
	TaxRate    decimal.Decimal `db:"tax_rate"`
}

func (r invoiceRow) toInvoice(items []billing.Line) billing.Invoice {
	return billing.Invoice{
		Seq:    r.Seq,
		Number: r.Number,
		Date:   r.Date,
		Customer: catalog.Customer{
			ID:      r.CustomerID,
			Name:    r.CustomerName,
			Phone:   r.CustomerPhone,
			Email:   r.CustomerEmail,
			Address: r.CustomerAddress,
		},
		Items:           items,
		DiscountPercent: r.DiscountPercent,
		Shipping:        r.Shipping,
		Note:            r.Note,
		Method:          billing.PaymentMethod(r.Method),
		AmountPaid:      r.AmountPaid,
	}
}

func (r itemRow) toLine() billing.Line {
	return billing.Line{
		ProductID: r.ProductID,
		Name:      r.Name,
		UnitPrice: r.UnitPrice,
		Qty:       r.Qty,
		TaxRate:   r.TaxRate,
	}
}

func (repo *invoiceRepository) MaxSeq() (int, error) {
	var max int
	if err := repo.db.Get(&max, `SELECT COALESCE(MAX(seq), 0) FROM invoice`); err != nil {
		return 0, errors.Wrap(err, "querying max invoice seq")
	}
	return max, nil
}

func (repo *invoiceRepository) CreateInvoice(inv billing.Invoice) (billing.Invoice, error) {
	tx, err := repo.db.Beginx()
	if err != nil {
		return billing.Invoice{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO invoice (
			seq, number, date,
			customer_id, customer_name, customer_phone, customer_email, customer_address,
			discount_percent, shipping, note, method, amount_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = tx.Exec(q,
		inv.Seq, inv.Number, inv.Date,
		inv.Customer.ID, inv.Customer.Name, inv.Customer.Phone, inv.Customer.Email, inv.Customer.Address,
		inv.DiscountPercent, inv.Shipping, inv.Note, string(inv.Method), inv.AmountPaid)
	if err != nil {
		return billing.Invoice{}, errors.Wrap(err, "creating invoice")
	}

	const itemQ = `
		INSERT INTO invoice_item (invoice_seq, position, product_id, name, unit_price, qty, tax_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, item := range inv.Items {
		if _, err = tx.Exec(itemQ, inv.Seq, i, item.ProductID, item.Name, item.UnitPrice, item.Qty, item.TaxRate); err != nil {
			return billing.Invoice{}, errors.Wrap(err, "creating invoice item")
		}
	}

	if err = tx.Commit(); err != nil {
		return billing.Invoice{}, errors.Wrap(err, "committing invoice")
	}
	return inv, nil
}

func (repo *invoiceRepository) QueryAllInvoices() ([]billing.Invoice, error) {
	var rows []invoiceRow
	if err := repo.db.Select(&rows, `SELECT * FROM invoice ORDER BY seq DESC`); err != nil {
		return nil, errors.Wrap(err, "querying invoices")
	}
	return repo.attachItems(rows)
}

func (repo *invoiceRepository) GetInvoiceByNumber(number string) (billing.Invoice, error) {
	var row invoiceRow
	err := repo.db.Get(&row, `SELECT * FROM invoice WHERE number = $1`, number)
	if err == sql.ErrNoRows {
		return billing.Invoice{}, billing.ErrNotFound
	}
	if err != nil {
		return billing.Invoice{}, errors.Wrap(err, "getting invoice")
	}
	invs, err := repo.attachItems([]invoiceRow{row})
	if err != nil {
		return billing.Invoice{}, err
	}
	return invs[0], nil
}

// FilterInvoices matches the number, customer name, date string or an item name
// against the search term, mirroring billing.QueryFilter.Match.
func (repo *invoiceRepository) FilterInvoices(filter billing.QueryFilter) ([]billing.Invoice, error) {
	const q = `
		SELECT DISTINCT i.* FROM invoice i
		LEFT JOIN invoice_item it ON it.invoice_seq = i.seq
		WHERE i.number ILIKE $1
			OR i.customer_name ILIKE $1
			OR to_char(i.date, 'YYYY-MM-DD') LIKE $1
			OR it.name ILIKE $1
		ORDER BY i.seq DESC`
	var rows []invoiceRow
	if err := repo.db.Select(&rows, q, "%"+filter.Search+"%"); err != nil {
		return nil, errors.Wrap(err, "filtering invoices")
	}
	return repo.attachItems(rows)
}

func (repo *invoiceRepository) attachItems(rows []invoiceRow) ([]billing.Invoice, error) {
	invs := make([]billing.Invoice, 0, len(rows))
	for _, row := range rows {
		var itemRows []itemRow
		err := repo.db.Select(&itemRows, `SELECT * FROM invoice_item WHERE invoice_seq = $1 ORDER BY position`, row.Seq)
		if err != nil {
			return nil, errors.Wrap(err, "querying invoice items")
		}
		items := make([]billing.Line, 0, len(itemRows))
		for _, ir := range itemRows {
			items = append(items, ir.toLine())
		}
		invs = append(invs, row.toInvoice(items))
	}
	return invs, nil
}
