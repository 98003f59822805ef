package inmemdb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core/billing"
	"github.com/bizdesk/backoffice/core/catalog"
	testutil "github.com/bizdesk/backoffice/tests"
)

func openDB(t *testing.T) *DB {
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return db
}

func TestCatalogRepository_ordering(t *testing.T) {
	db := openDB(t)
	repo := NewCatalogRepository(db)

	testutil.CreateProduct(t, repo, "P003", "Fiber Sheet", "1200", "18", "sheet", "Sheet")
	testutil.CreateProduct(t, repo, "P001", "Pine Wood (1ft)", "500", "18", "pcs", "Wood")
	testutil.CreateProduct(t, repo, "P002", "MDF Board (4x8)", "750", "12", "sheet", "Board")

	prds, err := repo.QueryAllProducts()
	if err != nil {
		t.Fatalf("QueryAllProducts() error = %v", err)
	}
	wantOrder := []string{"P003", "P001", "P002"}
	for i, want := range wantOrder {
		if prds[i].ID != want {
			t.Fatalf("order = %v; want insertion order %v", prds, wantOrder)
		}
	}

	// deletion keeps the relative order of the rest
	if err = repo.DeleteProduct("P001"); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}
	prds, _ = repo.QueryAllProducts()
	if len(prds) != 2 || prds[0].ID != "P003" || prds[1].ID != "P002" {
		t.Errorf("order after delete = %v; want P003, P002", prds)
	}
}

func TestCatalogRepository_uniqueness(t *testing.T) {
	db := openDB(t)
	repo := NewCatalogRepository(db)

	testutil.CreateProduct(t, repo, "P001", "Pine Wood (1ft)", "500", "18", "pcs", "Wood")
	testutil.CreateCustomer(t, repo, "C001", "Balaji Corp", "9876543210", "balaji@example.com", "Delhi")

	if err := repo.CheckProductUniqueness("P001"); err != catalog.ErrProductExists {
		t.Errorf("CheckProductUniqueness() error = %v; want ErrProductExists", err)
	}
	if err := repo.CheckProductUniqueness("P999"); err != nil {
		t.Errorf("CheckProductUniqueness() error = %v; want nil", err)
	}
	if _, err := repo.CreateCustomer(catalog.Customer{ID: "C001", Name: "Dup"}); err != catalog.ErrCustomerExists {
		t.Errorf("CreateCustomer() error = %v; want ErrCustomerExists", err)
	}
}

func TestInvoiceRepository(t *testing.T) {
	db := openDB(t)
	repo := NewInvoiceRepository(db)

	if seq, err := repo.MaxSeq(); err != nil || seq != 0 {
		t.Fatalf("MaxSeq() = %d, %v; want 0 on empty ledger", seq, err)
	}

	newInvoice := func(seq int, number, customer string) billing.Invoice {
		return billing.Invoice{
			Seq:      seq,
			Number:   number,
			Date:     time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
			Customer: catalog.Customer{ID: "C001", Name: customer},
			Items: []billing.Line{
				{ProductID: "P001", Name: "Pine Wood (1ft)", UnitPrice: decimal.NewFromInt(500), Qty: 1, TaxRate: decimal.NewFromInt(18)},
			},
			Method: billing.MethodCash,
		}
	}

	if _, err := repo.CreateInvoice(newInvoice(1001, "INV-1001", "Balaji Corp")); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}
	if _, err := repo.CreateInvoice(newInvoice(1002, "INV-1002", "Sai Enterprises")); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}

	if seq, _ := repo.MaxSeq(); seq != 1002 {
		t.Errorf("MaxSeq() = %d; want 1002", seq)
	}

	invs, err := repo.QueryAllInvoices()
	if err != nil {
		t.Fatalf("QueryAllInvoices() error = %v", err)
	}
	if len(invs) != 2 || invs[0].Number != "INV-1002" || invs[1].Number != "INV-1001" {
		t.Errorf("QueryAllInvoices() = %v; want most recent first", invs)
	}

	inv, err := repo.GetInvoiceByNumber("INV-1001")
	if err != nil {
		t.Fatalf("GetInvoiceByNumber() error = %v", err)
	}
	if inv.Customer.Name != "Balaji Corp" {
		t.Errorf("Customer.Name = %q", inv.Customer.Name)
	}
	if _, err = repo.GetInvoiceByNumber("INV-9999"); err != billing.ErrNotFound {
		t.Errorf("GetInvoiceByNumber(missing) error = %v; want ErrNotFound", err)
	}

	filtered, err := repo.FilterInvoices(billing.QueryFilter{Search: "sai"})
	if err != nil {
		t.Fatalf("FilterInvoices() error = %v", err)
	}
	if len(filtered) != 1 || filtered[0].Number != "INV-1002" {
		t.Errorf("FilterInvoices() = %v; want INV-1002", filtered)
	}
}

func TestInvoiceRepository_entriesAreImmutable(t *testing.T) {
	db := openDB(t)
	repo := NewInvoiceRepository(db)

	inv := billing.Invoice{
		Seq:    1001,
		Number: "INV-1001",
		Date:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Items: []billing.Line{
			{ProductID: "P001", Name: "Pine Wood (1ft)", UnitPrice: decimal.NewFromInt(500), Qty: 1, TaxRate: decimal.NewFromInt(18)},
		},
		Method: billing.MethodCash,
	}
	if _, err := repo.CreateInvoice(inv); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}

	// mutating a returned invoice's items must not reach the ledger entry
	got, err := repo.GetInvoiceByNumber("INV-1001")
	if err != nil {
		t.Fatalf("GetInvoiceByNumber() error = %v", err)
	}
	got.Items[0].Qty = 999
	got.Items[0].Name = "tampered"

	invs, _ := repo.QueryAllInvoices()
	invs[0].Items[0].Qty = 999

	fresh, err := repo.GetInvoiceByNumber("INV-1001")
	if err != nil {
		t.Fatalf("GetInvoiceByNumber() error = %v", err)
	}
	if fresh.Items[0].Qty != 1 || fresh.Items[0].Name != "Pine Wood (1ft)" {
		t.Errorf("ledger entry mutated through a returned copy: %+v", fresh.Items[0])
	}
}
