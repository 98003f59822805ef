package inmemdb

import (
	"strings"

	"github.com/bizdesk/backoffice/core/catalog"
)

type catalogRepository struct {
	products  *productTable
	customers *customerTable
}

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{products: db.product, customers: db.customer}
}

func (repo *catalogRepository) queryProducts() []catalog.Product {
	prds := make([]catalog.Product, 0, len(repo.products.order))
	for _, id := range repo.products.order {
		prds = append(prds, *repo.products.table[id])
	}
	return prds
}

func (repo *catalogRepository) queryCustomers() []catalog.Customer {
	custs := make([]catalog.Customer, 0, len(repo.customers.order))
	for _, id := range repo.customers.order {
		custs = append(custs, *repo.customers.table[id])
	}
	return custs
}

func (repo *catalogRepository) CheckProductUniqueness(id string) error {
	repo.products.RLock()
	defer repo.products.RUnlock()

	if _, ok := repo.products.table[id]; ok {
		return catalog.ErrProductExists
	}
	return nil
}

func (repo *catalogRepository) CreateProduct(prd catalog.Product) (catalog.Product, error) {
	repo.products.Lock()
	defer repo.products.Unlock()

	if _, ok := repo.products.table[prd.ID]; ok {
		return catalog.Product{}, catalog.ErrProductExists
	}
	repo.products.table[prd.ID] = &prd
	repo.products.order = append(repo.products.order, prd.ID)
	return prd, nil
}

func (repo *catalogRepository) QueryAllProducts() ([]catalog.Product, error) {
	repo.products.RLock()
	defer repo.products.RUnlock()
	return repo.queryProducts(), nil
}

func (repo *catalogRepository) GetProduct(id string) (catalog.Product, error) {
	repo.products.RLock()
	defer repo.products.RUnlock()

	if prd, ok := repo.products.table[id]; ok {
		return *prd, nil
	}
	return catalog.Product{}, catalog.ErrProductNotFound
}

func (repo *catalogRepository) FilterProducts(filter catalog.QueryFilter) ([]catalog.Product, error) {
	repo.products.RLock()
	defer repo.products.RUnlock()

	term := strings.ToLower(filter.Search)
	prds := make([]catalog.Product, 0)
	for _, prd := range repo.queryProducts() {
		if containsFold(term, prd.ID, prd.Name, prd.Category) {
			prds = append(prds, prd)
		}
	}
	return prds, nil
}

func (repo *catalogRepository) UpdateProduct(prd catalog.Product) (catalog.Product, error) {
	repo.products.Lock()
	defer repo.products.Unlock()

	orig, ok := repo.products.table[prd.ID]
	if !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	orig.Name = prd.Name
	orig.Price = prd.Price
	orig.Unit = prd.Unit
	orig.TaxRate = prd.TaxRate
	orig.Category = prd.Category
	orig.UpdatedAt = prd.UpdatedAt
	return *orig, nil
}

func (repo *catalogRepository) DeleteProduct(id string) error {
	repo.products.Lock()
	defer repo.products.Unlock()

	if _, ok := repo.products.table[id]; !ok {
		return nil
	}
	delete(repo.products.table, id)
	repo.products.order = removeID(repo.products.order, id)
	return nil
}

func (repo *catalogRepository) CheckCustomerUniqueness(id string) error {
	repo.customers.RLock()
	defer repo.customers.RUnlock()

	if _, ok := repo.customers.table[id]; ok {
		return catalog.ErrCustomerExists
	}
	return nil
}

func (repo *catalogRepository) CreateCustomer(cust catalog.Customer) (catalog.Customer, error) {
	repo.customers.Lock()
	defer repo.customers.Unlock()

	if _, ok := repo.customers.table[cust.ID]; ok {
		return catalog.Customer{}, catalog.ErrCustomerExists
	}
	repo.customers.table[cust.ID] = &cust
	repo.customers.order = append(repo.customers.order, cust.ID)
	return cust, nil
}

func (repo *catalogRepository) QueryAllCustomers() ([]catalog.Customer, error) {
	repo.customers.RLock()
	defer repo.customers.RUnlock()
	return repo.queryCustomers(), nil
}

func (repo *catalogRepository) GetCustomer(id string) (catalog.Customer, error) {
	repo.customers.RLock()
	defer repo.customers.RUnlock()

	if cust, ok := repo.customers.table[id]; ok {
		return *cust, nil
	}
	return catalog.Customer{}, catalog.ErrCustomerNotFound
}

func (repo *catalogRepository) FilterCustomers(filter catalog.QueryFilter) ([]catalog.Customer, error) {
	repo.customers.RLock()
	defer repo.customers.RUnlock()

	term := strings.ToLower(filter.Search)
	custs := make([]catalog.Customer, 0)
	for _, cust := range repo.queryCustomers() {
		if containsFold(term, cust.ID, cust.Name, cust.Phone, cust.Email, cust.Address) {
			custs = append(custs, cust)
		}
	}
	return custs, nil
}

func (repo *catalogRepository) UpdateCustomer(cust catalog.Customer) (catalog.Customer, error) {
	repo.customers.Lock()
	defer repo.customers.Unlock()

	orig, ok := repo.customers.table[cust.ID]
	if !ok {
		return catalog.Customer{}, catalog.ErrCustomerNotFound
	}
	orig.Name = cust.Name
	orig.Phone = cust.Phone
	orig.Email = cust.Email
	orig.Address = cust.Address
	orig.UpdatedAt = cust.UpdatedAt
	return *orig, nil
}

func (repo *catalogRepository) DeleteCustomer(id string) error {
	repo.customers.Lock()
	defer repo.customers.Unlock()

	if _, ok := repo.customers.table[id]; !ok {
		return nil
	}
	delete(repo.customers.table, id)
	repo.customers.order = removeID(repo.customers.order, id)
	return nil
}

func containsFold(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func removeID(order []string, id string) []string {
	for i, oid := range order {
		if oid == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
