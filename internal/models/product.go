package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/shopspring/decimal"
)

// ID is an opaque, server-assigned identifier. The backend may send it as a
// JSON number or a JSON string; it is always handled as a string.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(data []byte) error {

	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}

	*id = ID(n.String())

	return nil
}

// MarshalJSON writes canonical integer ids back as numbers so the backend sees
// the same shape it issued. Anything else, "007" included, stays a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

type Product struct {
	ID    ID              `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

func NewProduct(id ID, name string, price decimal.Decimal, image string) (Product, error) {

	p := Product{
		ID:    id,
		Name:  strings.TrimSpace(name),
		Price: price,
		Image: strings.TrimSpace(image),
	}

	if err := p.Validate(); err != nil {
		return Product{}, err
	}

	return p, nil
}

// Validate checks the record invariants every cached product must hold.
func (p Product) Validate() error {

	if p.ID == "" {
		return errors.AddValidationError("id", "is required")
	}

	if strings.TrimSpace(p.Name) == "" {
		return errors.AddValidationError("name", "is required")
	}

	if p.Price.IsNegative() {
		return errors.AddValidationError("price", "must not be negative")
	}

	return nil
}

// ProductDraft is what an admin submits on create/update.
type ProductDraft struct {
	Name  string          `json:"name" validate:"required,max=200"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image" validate:"omitempty,max=2048"`
}

// NewProductDraft parses a user-entered price.
func NewProductDraft(name, price, image string) (*ProductDraft, error) {

	amount, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return nil, errors.AddValidationError("price", "must be a decimal number").WithError(err)
	}

	return &ProductDraft{
		Name:  strings.TrimSpace(name),
		Price: amount,
		Image: strings.TrimSpace(image),
	}, nil
}
