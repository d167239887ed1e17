// Package customer serves the customer_service.CustomerService RPCs from the sakila customer
// and address tables.
package customer

import (
	"github.com/sllt/pagser/pkg/pagser/customerpb"
	"github.com/sllt/pagser/pkg/pagser/datasource/sql"
)

// Summary is one entry of a customer listing.
type Summary struct {
	Name             string
	LastName         string
	RegistrationDate string
}

// Detail is a single customer joined with its address. Address2 is nil when the column is NULL.
type Detail struct {
	Summary
	Address  string
	Address2 *string
	District string
	Phone    string
}

//nolint:gochecknoglobals // row shapes are immutable after init
var (
	summaryShape = sql.NewShape(
		sql.String("first_name", func(s *Summary) *string { return &s.Name }),
		sql.String("last_name", func(s *Summary) *string { return &s.LastName }),
		sql.Date("create_date", func(s *Summary) *string { return &s.RegistrationDate }),
	)

	detailShape = sql.NewShape(
		sql.String("first_name", func(d *Detail) *string { return &d.Name }),
		sql.String("last_name", func(d *Detail) *string { return &d.LastName }),
		sql.Date("create_date", func(d *Detail) *string { return &d.RegistrationDate }),
		sql.String("address", func(d *Detail) *string { return &d.Address }),
		sql.OptionalString("address2", func(d *Detail) **string { return &d.Address2 }),
		sql.String("district", func(d *Detail) *string { return &d.District }),
		sql.String("phone", func(d *Detail) *string { return &d.Phone }),
	)
)

func (s Summary) proto() *customerpb.Customer {
	return &customerpb.Customer{
		Name:             s.Name,
		LastName:         s.LastName,
		RegistrationDate: s.RegistrationDate,
	}
}

func (d Detail) proto() *customerpb.CustomerDetailsResponse {
	return &customerpb.CustomerDetailsResponse{
		Name:             d.Name,
		LastName:         d.LastName,
		RegistrationDate: d.RegistrationDate,
		Address:          d.Address,
		Address2:         d.Address2,
		District:         d.District,
		Phone:            d.Phone,
	}
}
