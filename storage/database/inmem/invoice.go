package inmemdb

import (
	"github.com/bizdesk/backoffice/core/billing"
)

type invoiceRepository struct {
	db *invoiceTable
}

func NewInvoiceRepository(db *DB) billing.Repository {
	return &invoiceRepository{db: db.invoice}
}

// query returns the ledger most-recent-first.
func (repo *invoiceRepository) query() []billing.Invoice {
	invs := make([]billing.Invoice, 0, len(repo.db.entries))
	for i := len(repo.db.entries) - 1; i >= 0; i-- {
		invs = append(invs, cloneInvoice(repo.db.entries[i]))
	}
	return invs
}

// cloneInvoice detaches the Items slice so callers can never reach the
// stored ledger entry's backing array.
func cloneInvoice(inv billing.Invoice) billing.Invoice {
	items := make([]billing.Line, len(inv.Items))
	copy(items, inv.Items)
	inv.Items = items
	return inv
}

func (repo *invoiceRepository) MaxSeq() (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var max int
	for _, inv := range repo.db.entries {
		if inv.Seq > max {
			max = inv.Seq
		}
	}
	return max, nil
}

func (repo *invoiceRepository) CreateInvoice(inv billing.Invoice) (billing.Invoice, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.entries = append(repo.db.entries, inv)
	return inv, nil
}

func (repo *invoiceRepository) QueryAllInvoices() ([]billing.Invoice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *invoiceRepository) GetInvoiceByNumber(number string) (billing.Invoice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, inv := range repo.db.entries {
		if inv.Number == number {
			return cloneInvoice(inv), nil
		}
	}
	return billing.Invoice{}, billing.ErrNotFound
}

func (repo *invoiceRepository) FilterInvoices(filter billing.QueryFilter) ([]billing.Invoice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	invs := make([]billing.Invoice, 0)
	for _, inv := range repo.query() {
		if filter.Match(inv) {
			invs = append(invs, inv)
		}
	}
	return invs, nil
}
