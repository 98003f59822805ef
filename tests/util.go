package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core/catalog"
)

func CreateProduct(
	t *testing.T,
	repo catalog.Repository,
	id, name, price, taxRate, unit, category string,
	createdAt ...time.Time,
) catalog.Product {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	prd := catalog.Product{
		ID:        id,
		Name:      name,
		Price:     mustDecimal(t, price),
		Unit:      unit,
		TaxRate:   mustDecimal(t, taxRate),
		Category:  category,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	prd, err := repo.CreateProduct(prd)
	if err != nil {
		t.Fatalf("CreateProduct() failed: %v", err)
	}
	return prd
}

func CreateCustomer(
	t *testing.T,
	repo catalog.Repository,
	id, name, phone, email, address string,
	createdAt ...time.Time,
) catalog.Customer {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	cust := catalog.Customer{
		ID:        id,
		Name:      name,
		Phone:     phone,
		Email:     email,
		Address:   address,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	cust, err := repo.CreateCustomer(cust)
	if err != nil {
		t.Fatalf("CreateCustomer() failed: %v", err)
	}
	return cust
}

func mustDecimal(t *testing.T, v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("mustDecimal(%s) failed: %v", v, err)
	}
	return d
}
