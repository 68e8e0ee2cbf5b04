package domain

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
)

// OrderCollection is the logical collection every order is stored under.
const OrderCollection = "orders"

// LitersPerUnit is the volume of a single can.
const LitersPerUnit = 5

type Order struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`

	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code"`
	Notes       string `json:"notes,omitempty"`

	NewsletterOptIn bool `json:"newsletter_opt_in"`
}

// Liters returns the total packaged volume, for display only.
func (o Order) Liters() int {
	return o.Quantity * LitersPerUnit
}

type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// ValidationError aggregates every violated field of a payload, not only the
// first one found.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("order validation failed: %s", strings.Join(names, ", "))
}

// Parse decodes a raw JSON payload into an Order and validates every field.
// On constraint violations it returns a *ValidationError listing all of them.
// The returned Order is never mutated afterwards.
func Parse(raw []byte) (Order, error) {
	// an absent quantity means one can; an explicit zero is still rejected
	o := Order{Quantity: 1}
	if err := json.Unmarshal(raw, &o); err != nil {
		return Order{}, fmt.Errorf("decode order payload: %w", err)
	}

	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (o Order) validate() error {
	var verr ValidationError

	requireNonEmpty := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			verr.Fields = append(verr.Fields, FieldError{Field: field, Constraint: "must not be empty"})
		}
	}

	requireNonEmpty("product_name", o.ProductName)
	if o.Quantity < 1 {
		verr.Fields = append(verr.Fields, FieldError{Field: "quantity", Constraint: "must be at least 1"})
	}
	if o.TotalPrice < 0 {
		verr.Fields = append(verr.Fields, FieldError{Field: "total_price", Constraint: "must not be negative"})
	}
	requireNonEmpty("full_name", o.FullName)
	if strings.TrimSpace(o.Email) == "" {
		verr.Fields = append(verr.Fields, FieldError{Field: "email", Constraint: "must not be empty"})
	} else if _, err := mail.ParseAddress(o.Email); err != nil {
		verr.Fields = append(verr.Fields, FieldError{Field: "email", Constraint: "must be a valid email address"})
	}
	requireNonEmpty("phone", o.Phone)
	requireNonEmpty("address_line", o.AddressLine)
	requireNonEmpty("city", o.City)
	requireNonEmpty("postal_code", o.PostalCode)

	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}
