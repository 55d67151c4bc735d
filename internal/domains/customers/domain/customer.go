package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCustomerID = errors.New("customer id is required")
	ErrInvalidName       = errors.New("customer name is required")
)

// Customer is a shopper who may request returns for their own orders.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// NewCustomer trims and validates the customer fields.
func NewCustomer(id, firstName, lastName, email, phone string) (*Customer, error) {
	c := &Customer{
		ID:        strings.TrimSpace(id),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate enforces invariants on the aggregate.
func (c *Customer) Validate() error {
	if c.ID == "" {
		return ErrInvalidCustomerID
	}
	if c.FirstName == "" && c.LastName == "" {
		return ErrInvalidName
	}
	return nil
}

// FullName joins first and last name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Session is the explicit identity handed to a customer after login.
type Session struct {
	CustomerID string
	Token      string
	ExpiresAt  time.Time
}
