package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Customer represents a customer or organisation record in the back-office.
type Customer struct {
	ID           int64
	Name         string
	Organisation string
	Email        string
	Phone        string
	BillingLine1 string
	BillingCity  string
	BillingZip   string
	Country      string
	Active       bool
}

// NewCustomer builds a customer ensuring required invariants.
func NewCustomer(name, email string) (*Customer, error) {
	customer := &Customer{Active: true}
	if err := customer.Rename(name); err != nil {
		return nil, err
	}
	if err := customer.UpdateContact(email, ""); err != nil {
		return nil, err
	}
	return customer, nil
}

// Rename trims and validates the customer name.
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// UpdateContact applies contact fields and validates email if present.
func (c *Customer) UpdateContact(email, phone string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	if phone = strings.TrimSpace(phone); phone != "" {
		c.Phone = phone
	}
	return nil
}

// UpdateBillingAddress replaces the billing address fields.
func (c *Customer) UpdateBillingAddress(line1, city, zip, country string) {
	c.BillingLine1 = strings.TrimSpace(line1)
	c.BillingCity = strings.TrimSpace(city)
	c.BillingZip = strings.TrimSpace(zip)
	c.Country = strings.TrimSpace(country)
}

// Deactivate marks the record inactive without deleting history.
func (c *Customer) Deactivate() {
	c.Active = false
}
