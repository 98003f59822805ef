package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core"
	"github.com/bizdesk/backoffice/core/billing"
	"github.com/bizdesk/backoffice/core/catalog"
	inmemdb "github.com/bizdesk/backoffice/storage/database/inmem"
)

func setup(t *testing.T, guards ...catalog.RemoveGuard) catalog.Service {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return catalog.NewService(inmemdb.NewCatalogRepository(db), guards...)
}

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func createProduct(t *testing.T, svc catalog.Service, id, name, price, taxRate, category string) catalog.Product {
	t.Helper()
	prd, err := svc.CreateProduct(catalog.NewProduct{
		ID: id, Name: name, Price: dec(price), TaxRate: dec(taxRate), Category: category,
	})
	if err != nil {
		t.Fatalf("createProduct() failed: %v", err)
	}
	return prd
}

func TestService_products(t *testing.T) {
	svc := setup(t)

	wood := createProduct(t, svc, "P001", "Pine Wood (1ft)", "500", "18", "Wood")
	createProduct(t, svc, "P004", "Nails Pack", "50", "18", "Hardware")

	// ids are caller-assigned and unique
	np := catalog.NewProduct{ID: "P001", Name: "Another", Price: dec("1"), TaxRate: dec("0")}
	if err := np.Validate(svc); err == nil {
		t.Error("Validate() accepted a duplicate product id")
	} else if vErr, ok := err.(*core.ValidationError); !ok || vErr.Fields[0].Field != "id" {
		t.Errorf("Validate() error = %v; want ValidationError on id", err)
	}

	got, err := svc.GetProduct("P001")
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if got.Name != wood.Name || !got.Price.Equal(wood.Price) {
		t.Errorf("GetProduct() = %+v; want %+v", got, wood)
	}

	if _, err = svc.GetProduct("P404"); err != catalog.ErrProductNotFound {
		t.Errorf("GetProduct(missing) error = %v; want ErrProductNotFound", err)
	}

	all, err := svc.QueryAllProducts()
	if err != nil {
		t.Fatalf("QueryAllProducts() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "P001" || all[1].ID != "P004" {
		t.Errorf("QueryAllProducts() = %+v; want insertion order P001, P004", all)
	}

	upd, err := svc.UpdateProduct("P001", catalog.UpdateProduct{Name: "Pine Wood (2ft)", Price: dec("900"), TaxRate: dec("18")})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	if upd.Name != "Pine Wood (2ft)" || !upd.Price.Equal(dec("900")) {
		t.Errorf("UpdateProduct() = %+v", upd)
	}

	if err = svc.RemoveProduct("P004"); err != nil {
		t.Fatalf("RemoveProduct() error = %v", err)
	}
	// removing an absent id is not an error
	if err = svc.RemoveProduct("P404"); err != nil {
		t.Errorf("RemoveProduct(missing) error = %v; want nil", err)
	}
	all, _ = svc.QueryAllProducts()
	if len(all) != 1 {
		t.Errorf("len(products) = %d; want 1", len(all))
	}
}

func TestService_FilterProducts(t *testing.T) {
	svc := setup(t)
	createProduct(t, svc, "P001", "Pine Wood (1ft)", "500", "18", "Wood")
	createProduct(t, svc, "P002", "MDF Board (4x8)", "750", "12", "Board")
	createProduct(t, svc, "P007", "Plywood (8x4)", "1800", "18", "Board")

	tests := []struct {
		name    string
		search  string
		wantIDs []string
	}{
		{name: "empty returns all", search: "", wantIDs: []string{"P001", "P002", "P007"}},
		{name: "by name substring", search: "wood", wantIDs: []string{"P001", "P007"}},
		{name: "by category", search: "board", wantIDs: []string{"P002", "P007"}},
		{name: "by id", search: "p002", wantIDs: []string{"P002"}},
		{name: "no match", search: "zzz", wantIDs: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prds, err := svc.FilterProducts(catalog.QueryFilter{Search: tt.search})
			if err != nil {
				t.Fatalf("FilterProducts() error = %v", err)
			}
			ids := make([]string, 0, len(prds))
			for _, prd := range prds {
				ids = append(ids, prd.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("ids = %v; want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("ids = %v; want %v", ids, tt.wantIDs)
					break
				}
			}
		})
	}
}

func TestService_customers(t *testing.T) {
	svc := setup(t)

	cust, err := svc.CreateCustomer(catalog.NewCustomer{
		ID: "C001", Name: "Balaji Corp", Phone: "9876543210", Email: "balaji@example.com", Address: "Delhi",
	})
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	nc := catalog.NewCustomer{ID: "C001", Name: "Dup"}
	if err = nc.Validate(svc); err == nil {
		t.Error("Validate() accepted a duplicate customer id")
	}

	nc = catalog.NewCustomer{ID: "C002", Name: "Bad Email", Email: "nope"}
	if err = nc.Validate(svc); err == nil {
		t.Error("Validate() accepted an invalid email")
	}

	got, err := svc.GetCustomer("C001")
	if err != nil {
		t.Fatalf("GetCustomer() error = %v", err)
	}
	if got.Name != cust.Name {
		t.Errorf("GetCustomer() = %+v; want %+v", got, cust)
	}

	custs, err := svc.FilterCustomers(catalog.QueryFilter{Search: "delhi"})
	if err != nil {
		t.Fatalf("FilterCustomers() error = %v", err)
	}
	if len(custs) != 1 || custs[0].ID != "C001" {
		t.Errorf("FilterCustomers() = %+v; want C001", custs)
	}

	if err = svc.RemoveCustomer("C001"); err != nil {
		t.Fatalf("RemoveCustomer() error = %v", err)
	}
	if _, err = svc.GetCustomer("C001"); err != catalog.ErrCustomerNotFound {
		t.Errorf("GetCustomer() error = %v; want ErrCustomerNotFound", err)
	}
}

func TestService_removeGuards(t *testing.T) {
	editor := billing.NewEditor()
	svc := setup(t, editor.Guard)

	wood := createProduct(t, svc, "P001", "Pine Wood (1ft)", "500", "18", "Wood")
	if _, err := svc.CreateCustomer(catalog.NewCustomer{ID: "C001", Name: "Balaji Corp"}); err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	editor.SetCustomer("C001")
	editor.AddLine(wood)

	if err := svc.RemoveProduct("P001"); err != catalog.ErrProductInUse {
		t.Errorf("RemoveProduct() error = %v; want ErrProductInUse", err)
	}
	if err := svc.RemoveCustomer("C001"); err != catalog.ErrCustomerInUse {
		t.Errorf("RemoveCustomer() error = %v; want ErrCustomerInUse", err)
	}

	// both stay in the store
	if _, err := svc.GetProduct("P001"); err != nil {
		t.Errorf("GetProduct() error = %v; want guarded product kept", err)
	}

	editor.Reset()
	if err := svc.RemoveProduct("P001"); err != nil {
		t.Errorf("RemoveProduct() after Reset() error = %v", err)
	}
	if err := svc.RemoveCustomer("C001"); err != nil {
		t.Errorf("RemoveCustomer() after Reset() error = %v", err)
	}
}
