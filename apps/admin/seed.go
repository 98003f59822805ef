package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizdesk/backoffice/core/catalog"
)

type (
	seedProduct struct {
		id, name, unit, category string
		price                    int64
		taxRate                  int64
	}
	seedCustomer struct {
		id, name, phone, email, address string
	}
)

var (
	seedProducts = []seedProduct{
		{"P001", "Pine Wood (1ft)", "pcs", "Wood", 500, 18},
		{"P002", "MDF Board (4x8)", "sheet", "Board", 750, 12},
		{"P003", "Fiber Sheet", "sheet", "Sheet", 1200, 18},
		{"P004", "Nails Pack", "pack", "Hardware", 50, 18},
		{"P005", "Glue (500ml)", "btl", "Adhesive", 180, 12},
		{"P006", "Varnish (1L)", "can", "Finish", 350, 18},
		{"P007", "Plywood (8x4)", "sheet", "Board", 1800, 18},
		{"P008", "Screws (100pcs)", "pack", "Hardware", 120, 18},
	}

	seedCustomers = []seedCustomer{
		{"C001", "Balaji Corp", "9876543210", "balaji@example.com", "Delhi"},
		{"C002", "Sai Enterprises", "9123456780", "sai@example.com", "Mumbai"},
		{"C003", "Apex Traders", "9001234567", "apex@example.com", "Bengaluru"},
		{"C004", "Sharma Furniture", "9898765432", "sharma@example.com", "Chennai"},
	}
)

// seed loads the sample catalog. Entries already present are left untouched.
func (cli *commandLine) seed() error {
	now := time.Now().UTC()

	for _, sp := range seedProducts {
		if err := cli.catRepo.CheckProductUniqueness(sp.id); err != nil {
			if err == catalog.ErrProductExists {
				continue
			}
			return err
		}
		prd := catalog.Product{
			ID:        sp.id,
			Name:      sp.name,
			Price:     decimal.NewFromInt(sp.price),
			Unit:      sp.unit,
			TaxRate:   decimal.NewFromInt(sp.taxRate),
			Category:  sp.category,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := cli.catRepo.CreateProduct(prd); err != nil {
			return err
		}
	}

	for _, sc := range seedCustomers {
		if err := cli.catRepo.CheckCustomerUniqueness(sc.id); err != nil {
			if err == catalog.ErrCustomerExists {
				continue
			}
			return err
		}
		cust := catalog.Customer{
			ID:        sc.id,
			Name:      sc.name,
			Phone:     sc.phone,
			Email:     sc.email,
			Address:   sc.address,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := cli.catRepo.CreateCustomer(cust); err != nil {
			return err
		}
	}
	return nil
}
