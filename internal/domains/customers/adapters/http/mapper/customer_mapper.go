package mapper

import (
	customerdomain "github.com/Apurer/go-retail-backoffice/internal/domains/customers/domain"
)

// Customer is the transport-layer shape used by the handlers.
type Customer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Organisation string `json:"organisation,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	BillingLine1 string `json:"billingLine1,omitempty"`
	BillingCity  string `json:"billingCity,omitempty"`
	BillingZip   string `json:"billingZip,omitempty"`
	Country      string `json:"country,omitempty"`
	Active       bool   `json:"active"`
}

// ToDomainCustomer converts a transport customer into the domain model.
func ToDomainCustomer(customer Customer) *customerdomain.Customer {
	return &customerdomain.Customer{
		ID:           customer.ID,
		Name:         customer.Name,
		Organisation: customer.Organisation,
		Email:        customer.Email,
		Phone:        customer.Phone,
		BillingLine1: customer.BillingLine1,
		BillingCity:  customer.BillingCity,
		BillingZip:   customer.BillingZip,
		Country:      customer.Country,
		Active:       customer.Active,
	}
}

// FromDomainCustomer converts a domain customer to the transport representation.
func FromDomainCustomer(customer *customerdomain.Customer) Customer {
	if customer == nil {
		return Customer{}
	}
	return Customer{
		ID:           customer.ID,
		Name:         customer.Name,
		Organisation: customer.Organisation,
		Email:        customer.Email,
		Phone:        customer.Phone,
		BillingLine1: customer.BillingLine1,
		BillingCity:  customer.BillingCity,
		BillingZip:   customer.BillingZip,
		Country:      customer.Country,
		Active:       customer.Active,
	}
}

// FromDomainCustomerList converts a customer list to transport form.
func FromDomainCustomerList(customers []*customerdomain.Customer) []Customer {
	out := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		out = append(out, FromDomainCustomer(customer))
	}
	return out
}
