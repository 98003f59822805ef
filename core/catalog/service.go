package catalog

import (
	"errors"
	"time"

	"github.com/bizdesk/backoffice/core"
)

var (
	// errors
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductExists    = errors.New("a product with this id already exists")
	ErrCustomerExists   = errors.New("a customer with this id already exists")
	ErrProductInUse     = errors.New("product is referenced by the invoice draft in progress")
	ErrCustomerInUse    = errors.New("customer is selected on the invoice draft in progress")
)

type (
	Repository interface {
		CheckProductUniqueness(id string) error
		CreateProduct(prd Product) (Product, error)
		QueryAllProducts() ([]Product, error)
		GetProduct(id string) (Product, error)
		// FilterProducts does a case-insensitive substring match on one of
		// Product.ID, Product.Name or Product.Category, preserving store order.
		FilterProducts(filter QueryFilter) ([]Product, error)
		UpdateProduct(prd Product) (Product, error)
		DeleteProduct(id string) error

		CheckCustomerUniqueness(id string) error
		CreateCustomer(cust Customer) (Customer, error)
		QueryAllCustomers() ([]Customer, error)
		GetCustomer(id string) (Customer, error)
		// FilterCustomers matches one of Customer.ID, Customer.Name,
		// Customer.Phone, Customer.Email or Customer.Address.
		FilterCustomers(filter QueryFilter) ([]Customer, error)
		UpdateCustomer(cust Customer) (Customer, error)
		DeleteCustomer(id string) error
	}

	// RemoveGuard vetoes removal of an entity still referenced elsewhere
	// (typically by an invoice draft in progress). The store itself has no
	// knowledge of drafts; callers supply the guard.
	RemoveGuard func(kind Kind, id string) error

	Service interface {
		CheckProductUniqueness(id string) error
		CreateProduct(np NewProduct) (Product, error)
		QueryAllProducts() ([]Product, error)
		GetProduct(id string) (Product, error)
		FilterProducts(filter QueryFilter) ([]Product, error)
		UpdateProduct(id string, up UpdateProduct) (Product, error)
		RemoveProduct(id string) error

		CheckCustomerUniqueness(id string) error
		CreateCustomer(nc NewCustomer) (Customer, error)
		QueryAllCustomers() ([]Customer, error)
		GetCustomer(id string) (Customer, error)
		FilterCustomers(filter QueryFilter) ([]Customer, error)
		UpdateCustomer(id string, uc UpdateCustomer) (Customer, error)
		RemoveCustomer(id string) error
	}

	service struct {
		repo   Repository
		guards []RemoveGuard
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, guards ...RemoveGuard) Service {
	return &service{repo: repo, guards: guards}
}

func (svc *service) CheckProductUniqueness(id string) error {
	if err := svc.repo.CheckProductUniqueness(id); err != nil {
		if err == ErrProductExists {
			return core.NewValidationError(err, core.FieldError{Field: "id", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) CreateProduct(np NewProduct) (Product, error) {
	now := time.Now().UTC()
	prd := Product{
		ID:        np.ID,
		Name:      np.Name,
		Price:     np.Price,
		Unit:      np.Unit,
		TaxRate:   np.TaxRate,
		Category:  np.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateProduct(prd)
}

func (svc *service) QueryAllProducts() ([]Product, error) {
	return svc.repo.QueryAllProducts()
}

func (svc *service) GetProduct(id string) (Product, error) {
	return svc.repo.GetProduct(core.CleanString(id))
}

func (svc *service) FilterProducts(filter QueryFilter) ([]Product, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllProducts()
	}
	return svc.repo.FilterProducts(filter)
}

func (svc *service) UpdateProduct(id string, up UpdateProduct) (Product, error) {
	prd := Product{
		ID:        id,
		Name:      up.Name,
		Price:     up.Price,
		Unit:      up.Unit,
		TaxRate:   up.TaxRate,
		Category:  up.Category,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateProduct(prd)
}

// RemoveProduct deletes a product after every guard clears it. The store
// itself never fails when the id is absent.
func (svc *service) RemoveProduct(id string) error {
	if err := svc.checkGuards(KindProduct, id); err != nil {
		return err
	}
	return svc.repo.DeleteProduct(id)
}

func (svc *service) CheckCustomerUniqueness(id string) error {
	if err := svc.repo.CheckCustomerUniqueness(id); err != nil {
		if err == ErrCustomerExists {
			return core.NewValidationError(err, core.FieldError{Field: "id", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) CreateCustomer(nc NewCustomer) (Customer, error) {
	now := time.Now().UTC()
	cust := Customer{
		ID:        nc.ID,
		Name:      nc.Name,
		Phone:     nc.Phone,
		Email:     nc.Email,
		Address:   nc.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateCustomer(cust)
}

func (svc *service) QueryAllCustomers() ([]Customer, error) {
	return svc.repo.QueryAllCustomers()
}

func (svc *service) GetCustomer(id string) (Customer, error) {
	return svc.repo.GetCustomer(core.CleanString(id))
}

func (svc *service) FilterCustomers(filter QueryFilter) ([]Customer, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllCustomers()
	}
	return svc.repo.FilterCustomers(filter)
}

func (svc *service) UpdateCustomer(id string, uc UpdateCustomer) (Customer, error) {
	cust := Customer{
		ID:        id,
		Name:      uc.Name,
		Phone:     uc.Phone,
		Email:     uc.Email,
		Address:   uc.Address,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateCustomer(cust)
}

func (svc *service) RemoveCustomer(id string) error {
	if err := svc.checkGuards(KindCustomer, id); err != nil {
		return err
	}
	return svc.repo.DeleteCustomer(id)
}

func (svc *service) checkGuards(kind Kind, id string) error {
	for _, guard := range svc.guards {
		if err := guard(kind, id); err != nil {
			return err
		}
	}
	return nil
}
