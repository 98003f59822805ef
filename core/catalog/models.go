package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core"
)

// Kind discriminates searchable catalog entities.
type Kind string

const (
	KindProduct  Kind = "product"
	KindCustomer Kind = "customer"
)

// Product is a priced catalog item. Invoice lines snapshot its price and tax
// rate when added, so later edits never affect finalized invoices.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"` // UTC
	UpdatedAt time.Time       `json:"updated_at"` // UTC
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewProduct contains information needed to create a new Product.
type NewProduct struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"dgte0"`
	Unit     string          `json:"unit"`
	TaxRate  decimal.Decimal `json:"tax_rate" validate:"drate"`
	Category string          `json:"category"`
}

func (np *NewProduct) Validate(svc Service) error {
	np.ID = core.CleanString(np.ID)
	np.Name = core.CleanString(np.Name)
	np.Unit = core.CleanString(np.Unit)
	np.Category = core.CleanString(np.Category)

	if err := core.Validate.Struct(np); err != nil {
		return err
	}
	return svc.CheckProductUniqueness(np.ID)
}

// UpdateProduct defines what information may be provided to modify an existing
// Product. The identifier itself is never updatable.
type UpdateProduct struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price" validate:"dgte0"`
	Unit     string          `json:"unit"`
	TaxRate  decimal.Decimal `json:"tax_rate" validate:"drate"`
	Category string          `json:"category"`
}

func (up *UpdateProduct) Validate(orig Product) error {
	name := core.CleanString(up.Name)
	if name != "" {
		up.Name = name
	} else {
		up.Name = orig.Name
	}
	up.Unit = core.CleanString(up.Unit)
	up.Category = core.CleanString(up.Category)

	return core.Validate.Struct(up)
}

// NewCustomer contains information needed to create a new Customer.
type NewCustomer struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

func (nc *NewCustomer) Validate(svc Service) error {
	nc.ID = core.CleanString(nc.ID)
	nc.Name = core.CleanString(nc.Name)
	nc.Phone = core.CleanString(nc.Phone)
	nc.Email = core.CleanString(nc.Email, true /* lower */)
	nc.Address = core.CleanString(nc.Address)

	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	return svc.CheckCustomerUniqueness(nc.ID)
}

type UpdateCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

func (uc *UpdateCustomer) Validate(orig Customer) error {
	name := core.CleanString(uc.Name)
	if name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	uc.Phone = core.CleanString(uc.Phone)
	uc.Email = core.CleanString(uc.Email, true /* lower */)
	uc.Address = core.CleanString(uc.Address)

	return core.Validate.Struct(uc)
}

// QueryFilter does a case-insensitive substring match on identifier, name and
// category (products) or phone, email and address (customers).
type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
