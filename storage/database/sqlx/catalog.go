package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core/catalog"
)

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

// decimal.Decimal satisfies sql.Scanner and driver.Valuer so domain structs
// scan directly; only the db tags need mapping.
type productRow struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Unit      string          `db:"unit"`
	TaxRate   decimal.Decimal `db:"tax_rate"`
	Category  string          `db:"category"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r productRow) toProduct() catalog.Product {
	return catalog.Product(r)
}

type customerRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r customerRow) toCustomer() catalog.Customer {
	return catalog.Customer(r)
}

func (repo *catalogRepository) CheckProductUniqueness(id string) error {
	var exists bool
	err := repo.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM product WHERE id = $1)`, id)
	if err != nil {
		return errors.Wrap(err, "checking product uniqueness")
	}
	if exists {
		return catalog.ErrProductExists
	}
	return nil
}

func (repo *catalogRepository) CreateProduct(prd catalog.Product) (catalog.Product, error) {
	const q = `
		INSERT INTO product (id, name, price, unit, tax_rate, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.Exec(q,
		prd.ID, prd.Name, prd.Price, prd.Unit, prd.TaxRate, prd.Category, prd.CreatedAt, prd.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Product{}, catalog.ErrProductExists
		}
		return catalog.Product{}, errors.Wrap(err, "creating product")
	}
	return prd, nil
}

func (repo *catalogRepository) QueryAllProducts() ([]catalog.Product, error) {
	var rows []productRow
	if err := repo.db.Select(&rows, `SELECT * FROM product ORDER BY created_at, id`); err != nil {
		return nil, errors.Wrap(err, "querying products")
	}
	prds := make([]catalog.Product, 0, len(rows))
	for _, r := range rows {
		prds = append(prds, r.toProduct())
	}
	return prds, nil
}

func (repo *catalogRepository) GetProduct(id string) (catalog.Product, error) {
	var row productRow
	err := repo.db.Get(&row, `SELECT * FROM product WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	if err != nil {
		return catalog.Product{}, errors.Wrap(err, "getting product")
	}
	return row.toProduct(), nil
}

func (repo *catalogRepository) FilterProducts(filter catalog.QueryFilter) ([]catalog.Product, error) {
	const q = `
		SELECT * FROM product
		WHERE id ILIKE $1 OR name ILIKE $1 OR category ILIKE $1
		ORDER BY created_at, id`
	var rows []productRow
	if err := repo.db.Select(&rows, q, "%"+filter.Search+"%"); err != nil {
		return nil, errors.Wrap(err, "filtering products")
	}
	prds := make([]catalog.Product, 0, len(rows))
	for _, r := range rows {
		prds = append(prds, r.toProduct())
	}
	return prds, nil
}

func (repo *catalogRepository) UpdateProduct(prd catalog.Product) (catalog.Product, error) {
	const q = `
		UPDATE product
		SET name = $2, price = $3, unit = $4, tax_rate = $5, category = $6, updated_at = $7
		WHERE id = $1`
	res, err := repo.db.Exec(q, prd.ID, prd.Name, prd.Price, prd.Unit, prd.TaxRate, prd.Category, prd.UpdatedAt)
	if err != nil {
		return catalog.Product{}, errors.Wrap(err, "updating product")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return repo.GetProduct(prd.ID)
}

func (repo *catalogRepository) DeleteProduct(id string) error {
	if _, err := repo.db.Exec(`DELETE FROM product WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting product")
	}
	return nil
}

func (repo *catalogRepository) CheckCustomerUniqueness(id string) error {
	var exists bool
	err := repo.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM customer WHERE id = $1)`, id)
	if err != nil {
		return errors.Wrap(err, "checking customer uniqueness")
	}
	if exists {
		return catalog.ErrCustomerExists
	}
	return nil
}

func (repo *catalogRepository) CreateCustomer(cust catalog.Customer) (catalog.Customer, error) {
	const q = `
		INSERT INTO customer (id, name, phone, email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.db.Exec(q, cust.ID, cust.Name, cust.Phone, cust.Email, cust.Address, cust.CreatedAt, cust.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Customer{}, catalog.ErrCustomerExists
		}
		return catalog.Customer{}, errors.Wrap(err, "creating customer")
	}
	return cust, nil
}

func (repo *catalogRepository) QueryAllCustomers() ([]catalog.Customer, error) {
	var rows []customerRow
	if err := repo.db.Select(&rows, `SELECT * FROM customer ORDER BY created_at, id`); err != nil {
		return nil, errors.Wrap(err, "querying customers")
	}
	custs := make([]catalog.Customer, 0, len(rows))
	for _, r := range rows {
		custs = append(custs, r.toCustomer())
	}
	return custs, nil
}

func (repo *catalogRepository) GetCustomer(id string) (catalog.Customer, error) {
	var row customerRow
	err := repo.db.Get(&row, `SELECT * FROM customer WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return catalog.Customer{}, catalog.ErrCustomerNotFound
	}
	if err != nil {
		return catalog.Customer{}, errors.Wrap(err, "getting customer")
	}
	return row.toCustomer(), nil
}

func (repo *catalogRepository) FilterCustomers(filter catalog.QueryFilter) ([]catalog.Customer, error) {
	const q = `
		SELECT * FROM customer
		WHERE id ILIKE $1 OR name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1 OR address ILIKE $1
		ORDER BY created_at, id`
	var rows []customerRow
	if err := repo.db.Select(&rows, q, "%"+filter.Search+"%"); err != nil {
		return nil, errors.Wrap(err, "filtering customers")
	}
	custs := make([]catalog.Customer, 0, len(rows))
	for _, r := range rows {
		custs = append(custs, r.toCustomer())
	}
	return custs, nil
}

func (repo *catalogRepository) UpdateCustomer(cust catalog.Customer) (catalog.Customer, error) {
	const q = `
		UPDATE customer
		SET name = $2, phone = $3, email = $4, address = $5, updated_at = $6
		WHERE id = $1`
	res, err := repo.db.Exec(q, cust.ID, cust.Name, cust.Phone, cust.Email, cust.Address, cust.UpdatedAt)
	if err != nil {
		return catalog.Customer{}, errors.Wrap(err, "updating customer")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.Customer{}, catalog.ErrCustomerNotFound
	}
	return repo.GetCustomer(cust.ID)
}

func (repo *catalogRepository) DeleteCustomer(id string) error {
	if _, err := repo.db.Exec(`DELETE FROM customer WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting customer")
	}
	return nil
}
