package inmemdb

import (
	"sync"

	"github.com/bizdesk/backoffice/core/billing"
	"github.com/bizdesk/backoffice/core/catalog"
)

type (
	// DB is a process-local store backing development and tests. Catalog tables
	// keep insertion order alongside the map; the invoice table is an
	// append-only slice, matching the ledger's semantics.
	DB struct {
		product  *productTable
		customer *customerTable
		invoice  *invoiceTable
	}

	productTable struct {
		sync.RWMutex
		table map[string]*catalog.Product
		order []string
	}

	customerTable struct {
		sync.RWMutex
		table map[string]*catalog.Customer
		order []string
	}

	invoiceTable struct {
		sync.RWMutex
		entries []billing.Invoice
	}
)

func Open() (*DB, error) {
	db := &DB{
		product:  &productTable{table: make(map[string]*catalog.Product)},
		customer: &customerTable{table: make(map[string]*catalog.Customer)},
		invoice:  &invoiceTable{},
	}
	return db, nil
}
